package domain

// SignupStep 회원가입 단계
type SignupStep string

const (
	SignupStepNickname     SignupStep = "NICKNAME_SETTING"
	SignupStepProfileImage SignupStep = "PROFILE_IMAGE_SETTING"
	SignupStepCompleted    SignupStep = "COMPLETED"
)

// Description 단계 표시명
func (s SignupStep) Description() string {
	switch s {
	case SignupStepNickname:
		return "닉네임 설정"
	case SignupStepProfileImage:
		return "프로필 이미지 설정"
	case SignupStepCompleted:
		return "회원가입 완료"
	}
	return ""
}

// DefaultKakaoNickname 카카오 닉네임이 없을 때 사용
const DefaultKakaoNickname = "사용자"

// KakaoProfileSnapshot 가입 화면에 기본값으로 보여줄 카카오 프로필
type KakaoProfileSnapshot struct {
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profile_image"`
	Email        string `json:"email,omitempty"`
}

// SignupStartRequest 1단계 요청
type SignupStartRequest struct {
	KakaoAccessToken string `json:"kakao_access_token" binding:"required"`
}

// SignupStepResponse 단계 진행 응답
type SignupStepResponse struct {
	CurrentStep     SignupStep            `json:"current_step"`
	NextStep        SignupStep            `json:"next_step"`
	StepDescription string                `json:"step_description"`
	KakaoProfile    *KakaoProfileSnapshot `json:"kakao_profile,omitempty"`
	Nickname        string                `json:"nickname,omitempty"`
}

// NicknameChoice 닉네임 선택. use_kakao_nickname 이면 카카오 닉네임을 쓴다.
type NicknameChoice struct {
	Nickname         string `json:"nickname"`
	UseKakaoNickname bool   `json:"use_kakao_nickname"`
}

// SignupNicknameRequest 2단계 요청
type SignupNicknameRequest struct {
	KakaoAccessToken string `json:"kakao_access_token" binding:"required"`
	NicknameChoice
}

// ImageChoice 프로필 이미지 선택. 세 가지 중 하나를 사용한다.
type ImageChoice struct {
	UseKakaoProfileImage bool   `json:"use_kakao_profile_image"`
	UseFileUpload        bool   `json:"use_file_upload"`
	ImageData            string `json:"image_data,omitempty"` // data:image/png;base64,...
	FileName             string `json:"file_name,omitempty"`
	ProfileImageURL      string `json:"profile_image_url,omitempty"`
}

// SignupCompleteRequest 3단계 요청. 닉네임 선택을 다시 보낸다.
type SignupCompleteRequest struct {
	KakaoAccessToken string `json:"kakao_access_token" binding:"required"`
	NicknameChoice
	ImageChoice
}

// SignupCompleteResponse 가입 완료 응답
type SignupCompleteResponse struct {
	CurrentStep  SignupStep      `json:"current_step"`
	Member       *MemberResponse `json:"member"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int             `json:"expires_in"`
}

// NicknameCheckResponse 닉네임 사용 가능 여부
type NicknameCheckResponse struct {
	Nickname  string `json:"nickname"`
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
}
