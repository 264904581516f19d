package common

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	NicknameMinLength = 2
	NicknameMaxLength = 10
)

// 한글 완성형, 영문, 숫자만 허용 (공백 불가)
var nicknamePattern = regexp.MustCompile(`^[가-힣a-zA-Z0-9]+$`)

var (
	ErrNicknameEmpty    = NewValidation("닉네임을 입력해주세요.")
	ErrNicknameTooLong  = NewValidation("닉네임은 10자 이하여야 합니다.")
	ErrNicknameTooShort = NewValidation("닉네임은 2자 이상이어야 합니다.")
	ErrNicknameCharset  = NewValidation("닉네임은 한글, 영문, 숫자만 사용할 수 있습니다.")
)

// ValidateNickname checks a nickname against the format rules.
// Rules are applied in order empty, too long, too short, charset and the
// first failing rule is returned.
func ValidateNickname(nickname string) error {
	if strings.TrimSpace(nickname) == "" {
		return ErrNicknameEmpty
	}

	length := utf8.RuneCountInString(nickname)
	if length > NicknameMaxLength {
		return ErrNicknameTooLong
	}
	if length < NicknameMinLength {
		return ErrNicknameTooShort
	}

	if !nicknamePattern.MatchString(nickname) {
		return ErrNicknameCharset
	}
	return nil
}
