package domain

import "time"

// FriendStatus 친구 요청 상태.
// REJECTED, DECLINED, BLOCKED 는 스키마 호환을 위해 남겨두었고 현재 어떤 전이도 설정하지 않는다.
type FriendStatus string

const (
	FriendStatusPending  FriendStatus = "PENDING"
	FriendStatusAccepted FriendStatus = "ACCEPTED"
	FriendStatusRejected FriendStatus = "REJECTED"
	FriendStatusDeclined FriendStatus = "DECLINED"
	FriendStatusBlocked  FriendStatus = "BLOCKED"
)

// Friend 요청자 -> 수신자 방향의 친구 관계
type Friend struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	RequesterID    string       `gorm:"size:36;not null;uniqueIndex:idx_friend_pair" json:"requester_id"`
	ReceiverID     string       `gorm:"size:36;not null;uniqueIndex:idx_friend_pair;index" json:"receiver_id"`
	Status         FriendStatus `gorm:"size:20;not null;index" json:"status"`
	CoinShareCount int          `gorm:"not null;default:0" json:"coin_share_count"`
	AcceptedAt     *time.Time   `json:"accepted_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func (Friend) TableName() string { return "friends" }

// OtherParty returns the member on the other side of the edge
func (f *Friend) OtherParty(memberID string) string {
	if f.RequesterID == memberID {
		return f.ReceiverID
	}
	return f.RequesterID
}

// FriendRequestBody 친구 요청
type FriendRequestBody struct {
	FriendCode string `json:"friend_code" binding:"required,friendcode"`
}

// FriendResponse 친구 관계 응답. Member 는 상대방이다.
type FriendResponse struct {
	ID             uint            `json:"id"`
	Member         *MemberResponse `json:"member"`
	Status         FriendStatus    `json:"status"`
	CoinShareCount int             `json:"coin_share_count"`
	AcceptedAt     *time.Time      `json:"accepted_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}
