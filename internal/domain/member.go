package domain

import "time"

// Member 카카오 계정으로 가입한 회원
type Member struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	KakaoID      string    `gorm:"size:64;uniqueIndex;not null" json:"-"`
	Nickname     string    `gorm:"size:10;uniqueIndex;not null" json:"nickname"`
	ProfileImage string    `gorm:"size:500" json:"profile_image"`
	Email        string    `gorm:"size:255" json:"-"`
	FriendCode   string    `gorm:"size:8;uniqueIndex;not null" json:"friend_code"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Member) TableName() string { return "members" }

// MemberResponse 외부에 노출되는 회원 정보
type MemberResponse struct {
	ID           string    `json:"id"`
	Nickname     string    `json:"nickname"`
	ProfileImage string    `json:"profile_image"`
	FriendCode   string    `json:"friend_code"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToResponse converts Member to MemberResponse
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:           m.ID,
		Nickname:     m.Nickname,
		ProfileImage: m.ProfileImage,
		FriendCode:   m.FriendCode,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
	}
}

// MemberStats 회원 활동 통계
type MemberStats struct {
	CardCount       int64 `json:"card_count"`
	PublicCardCount int64 `json:"public_card_count"`
	FriendCount     int64 `json:"friend_count"`
}

// UpdateNicknameRequest 닉네임 변경 요청
type UpdateNicknameRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

// UpdateProfileImageRequest 프로필 이미지 변경 요청.
// 카카오 프로필 이미지를 쓰려면 카카오 액세스 토큰이 필요하다.
type UpdateProfileImageRequest struct {
	KakaoAccessToken string `json:"kakao_access_token,omitempty"`
	ImageChoice
}
