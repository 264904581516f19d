package ginutil

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(target string, params gin.Params) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", target, nil)
	c.Params = params
	return c
}

func TestPagination(t *testing.T) {
	tests := []struct {
		query      string
		page, size int
	}{
		{"/", 1, DefaultPageSize},
		{"/?page=3&size=5", 3, 5},
		{"/?page=0&size=0", 1, DefaultPageSize},
		{"/?page=-2&size=1000", 1, MaxPageSize},
		{"/?page=abc", 1, DefaultPageSize},
	}
	for _, tt := range tests {
		page, size := Pagination(newContext(tt.query, nil))
		assert.Equal(t, tt.page, page, tt.query)
		assert.Equal(t, tt.size, size, tt.query)
	}
}

func TestParamUint(t *testing.T) {
	v, err := ParamUint(newContext("/", gin.Params{{Key: "id", Value: "12"}}), "id")
	assert.NoError(t, err)
	assert.Equal(t, uint(12), v)

	_, err = ParamUint(newContext("/", gin.Params{{Key: "id", Value: "0"}}), "id")
	assert.Error(t, err)

	_, err = ParamUint(newContext("/", gin.Params{{Key: "id", Value: "-1"}}), "id")
	assert.Error(t, err)
}
