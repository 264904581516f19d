package common

import (
	"errors"
	"net/http"
)

// Error categories. 모든 도메인 에러는 이 중 하나로 분류된다.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUpstream     = errors.New("upstream failure")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error is a categorized domain error carrying a user-facing message
type Error struct {
	kind    error
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Message returns the user-facing message without the cause
func (e *Error) Message() string {
	return e.message
}

// Unwrap exposes both the category and the cause to errors.Is / errors.As
func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{e.kind, e.cause}
	}
	return []error{e.kind}
}

// Is matches another *Error with the same category and message, so
// wrapped copies produced by Wrap still compare equal to the named error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.kind == e.kind && t.message == e.message
}

// Wrap returns a copy of e carrying cause
func (e *Error) Wrap(cause error) *Error {
	return &Error{kind: e.kind, message: e.message, cause: cause}
}

func NewNotFound(msg string) *Error     { return &Error{kind: ErrNotFound, message: msg} }
func NewForbidden(msg string) *Error    { return &Error{kind: ErrForbidden, message: msg} }
func NewConflict(msg string) *Error     { return &Error{kind: ErrConflict, message: msg} }
func NewValidation(msg string) *Error   { return &Error{kind: ErrValidation, message: msg} }
func NewUpstream(msg string) *Error     { return &Error{kind: ErrUpstream, message: msg} }
func NewUnauthorized(msg string) *Error { return &Error{kind: ErrUnauthorized, message: msg} }

// Member / signup
var (
	ErrAlreadyRegistered = NewConflict("이미 가입된 사용자입니다.")
	ErrNicknameTaken     = NewConflict("이미 사용 중인 닉네임입니다.")
	ErrMemberNotFound    = NewNotFound("회원을 찾을 수 없습니다.")
	ErrInactiveMember    = NewForbidden("비활성화된 회원입니다.")
)

// Image
var (
	ErrInvalidImageData   = NewValidation("유효하지 않은 이미지 데이터입니다.")
	ErrImageTooLarge      = NewValidation("파일 크기는 5MB를 초과할 수 없습니다.")
	ErrUnsupportedImage   = NewValidation("지원하지 않는 이미지 형식입니다. (지원 형식: jpg, jpeg, png, gif)")
	ErrInvalidImageURL    = NewValidation("유효하지 않은 이미지 URL입니다.")
	ErrImageChoiceMissing = NewValidation("프로필 이미지 선택 방식을 지정해주세요.")
	ErrStorageFailure     = NewUpstream("이미지 저장에 실패했습니다.")
)

// Story
var (
	ErrStoryNotFound       = NewNotFound("스토리를 찾을 수 없습니다.")
	ErrStoryForbidden      = NewForbidden("해당 스토리에 대한 권한이 없습니다.")
	ErrStoryContentMissing = NewValidation("내용을 입력해주세요.")
	ErrStoryNotReflection  = NewValidation("경험 돌아보기 스토리만 추가 답변을 작성할 수 있습니다.")
	ErrInvalidStoryType    = NewValidation("유효하지 않은 스토리 유형입니다.")
	ErrSituationMissing    = NewValidation("상황 맥락을 선택해주세요.")
)

// Card
var (
	ErrCardNotFound        = NewNotFound("카드를 찾을 수 없습니다.")
	ErrCardForbidden       = NewForbidden("해당 카드에 대한 권한이 없습니다.")
	ErrCoinNotFound        = NewNotFound("코인을 찾을 수 없습니다.")
	ErrKeywordNotFound     = NewNotFound("키워드를 찾을 수 없습니다.")
	ErrFormNotFound        = NewNotFound("폼을 찾을 수 없습니다.")
	ErrKeywordCoinMismatch = NewValidation("선택된 키워드가 해당 코인에 속해있지 않습니다.")
	ErrKeywordRequired     = NewValidation("키워드를 하나 이상 선택해주세요.")
	ErrNotFriends          = NewForbidden("친구에게만 카드를 보낼 수 있습니다.")
)

// Friend
var (
	ErrFriendCodeNotFound    = NewNotFound("해당 친구 코드를 가진 사용자를 찾을 수 없습니다.")
	ErrSelfRequest           = NewValidation("자기 자신에게 친구 요청을 보낼 수 없습니다.")
	ErrAlreadyFriends        = NewConflict("이미 친구 관계입니다.")
	ErrDuplicatePending      = NewConflict("이미 친구 요청을 보냈습니다.")
	ErrFriendRequestNotFound = NewNotFound("친구 요청을 찾을 수 없습니다.")
	ErrFriendForbidden       = NewForbidden("해당 친구 요청에 대한 권한이 없습니다.")
	ErrAlreadyProcessed      = NewConflict("이미 처리된 친구 요청입니다.")
	ErrFriendNotFound        = NewNotFound("친구 관계를 찾을 수 없습니다.")
)

// Auth / upstream
var (
	ErrKakaoFailure      = NewUpstream("카카오 사용자 정보를 가져오지 못했습니다.")
	ErrInvalidToken      = NewUnauthorized("유효하지 않은 토큰입니다.")
	ErrExpiredToken      = NewUnauthorized("만료된 토큰입니다.")
	ErrClassifyDisabled  = NewUpstream("AI 분류 기능이 설정되지 않았습니다.")
	ErrClassifyFailure   = NewUpstream("AI 분류에 실패했습니다.")
	ErrInvalidFriendCode = NewValidation("유효하지 않은 친구 코드입니다.")
)

// StatusOf maps an error category to an HTTP status
func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// MessageOf returns the user-facing message of a categorized error
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message()
	}
	return "서버 내부 오류가 발생했습니다."
}
