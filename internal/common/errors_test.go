package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrStoryNotFound, http.StatusNotFound},
		{ErrStoryForbidden, http.StatusForbidden},
		{ErrAlreadyRegistered, http.StatusConflict},
		{ErrNicknameCharset, http.StatusBadRequest},
		{ErrKakaoFailure, http.StatusBadGateway},
		{ErrInvalidToken, http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", ErrDuplicatePending), http.StatusConflict},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusOf(tt.err), tt.err.Error())
	}
}

func TestError_WrapKeepsIdentity(t *testing.T) {
	cause := errors.New("s3 down")
	err := ErrStorageFailure.Wrap(cause)

	assert.ErrorIs(t, err, ErrStorageFailure)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrInvalidImageData)
	assert.Equal(t, "이미지 저장에 실패했습니다.", MessageOf(err))
}

func TestMessageOf_Unknown(t *testing.T) {
	assert.Equal(t, "서버 내부 오류가 발생했습니다.", MessageOf(errors.New("db down")))
}

func TestNewPage(t *testing.T) {
	p := NewPage([]int{1, 2}, 1, 20, 41)
	assert.Equal(t, int64(3), p.TotalPages)

	empty := NewPage(nil, 0, 0, 0)
	assert.Equal(t, int64(0), empty.TotalPages)
}
