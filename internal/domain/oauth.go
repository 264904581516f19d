package domain

// KakaoProfile 카카오 사용자 정보 (/v2/user/me)
type KakaoProfile struct {
	ID           string `json:"id"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profile_image"`
	Email        string `json:"email,omitempty"`
}

// KakaoToken 인가 코드 교환 결과
type KakaoToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
}

// KakaoTokenRequest 카카오 액세스 토큰으로 로그인
type KakaoTokenRequest struct {
	AccessToken string `json:"access_token" binding:"required"`
}

// RefreshRequest 토큰 재발급 요청
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LoginResponse 로그인 결과. 미가입자면 IsNewUser 와 카카오 토큰만 채워진다.
type LoginResponse struct {
	IsNewUser        bool            `json:"is_new_user"`
	KakaoAccessToken string          `json:"kakao_access_token,omitempty"`
	KakaoProfile     *KakaoProfile   `json:"kakao_profile,omitempty"`
	Member           *MemberResponse `json:"member,omitempty"`
	AccessToken      string          `json:"access_token,omitempty"`
	RefreshToken     string          `json:"refresh_token,omitempty"`
	ExpiresIn        int             `json:"expires_in,omitempty"`
}

// TokenPair 재발급 결과
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}
