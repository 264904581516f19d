package ginutil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidFriendCode(t *testing.T) {
	assert.True(t, ValidFriendCode("AB12CD34"))
	assert.False(t, ValidFriendCode("ab12cd34"))
	assert.False(t, ValidFriendCode("AB12CD3"))
	assert.False(t, ValidFriendCode("AB12CD34X"))
	assert.False(t, ValidFriendCode("AB-2CD34"))
}

func TestRegisterValidators_FriendCodeTag(t *testing.T) {
	require.NoError(t, RegisterValidators())
	gin.SetMode(gin.TestMode)

	type body struct {
		Code string `json:"code" binding:"required,friendcode"`
	}
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var b body
		if err := c.ShouldBindJSON(&b); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	for code, want := range map[string]int{"AB12CD34": http.StatusOK, "nope": http.StatusBadRequest} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"code":"`+code+`"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, code)
	}
}
