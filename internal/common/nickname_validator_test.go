package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNickname(t *testing.T) {
	tests := []struct {
		name     string
		nickname string
		wantErr  error
	}{
		{name: "hangul", nickname: "보인이", wantErr: nil},
		{name: "ascii letters", nickname: "voin", wantErr: nil},
		{name: "mixed with digits", nickname: "보인voin12", wantErr: nil},
		{name: "exactly min length", nickname: "ab", wantErr: nil},
		{name: "exactly max length hangul", nickname: "가나다라마바사아자차", wantErr: nil},
		{name: "empty", nickname: "", wantErr: ErrNicknameEmpty},
		{name: "blank", nickname: "   ", wantErr: ErrNicknameEmpty},
		{name: "too short", nickname: "a", wantErr: ErrNicknameTooShort},
		{name: "too long", nickname: "abcdefghijk", wantErr: ErrNicknameTooLong},
		{name: "too long hangul", nickname: "가나다라마바사아자차카", wantErr: ErrNicknameTooLong},
		{name: "inner space", nickname: "보 인", wantErr: ErrNicknameCharset},
		{name: "special char", nickname: "voin!", wantErr: ErrNicknameCharset},
		{name: "hangul jamo only", nickname: "ㅋㅋㅋ", wantErr: ErrNicknameCharset},
		{name: "emoji", nickname: "보인😀", wantErr: ErrNicknameCharset},
		{name: "underscore", nickname: "vo_in", wantErr: ErrNicknameCharset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNickname(tt.nickname)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

// 길이 규칙이 문자셋 규칙보다 먼저 적용된다
func TestValidateNickname_RuleOrder(t *testing.T) {
	assert.ErrorIs(t, ValidateNickname("!"), ErrNicknameTooShort)
	assert.ErrorIs(t, ValidateNickname(strings.Repeat("!", 11)), ErrNicknameTooLong)
}

func TestValidateNickname_LengthBoundaryProperty(t *testing.T) {
	for n := 0; n <= 15; n++ {
		nickname := strings.Repeat("가", n)
		err := ValidateNickname(nickname)
		if n >= NicknameMinLength && n <= NicknameMaxLength {
			assert.NoError(t, err, "length %d", n)
		} else {
			assert.Error(t, err, "length %d", n)
		}
	}
}
