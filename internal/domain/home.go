package domain

import "time"

// HomeSlide 홈 화면 슬라이드
type HomeSlide struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Description string `json:"description"`
}

// MostOwnedCoin 가장 많이 보유한 코인
type MostOwnedCoin struct {
	Coin  *Coin `json:"coin"`
	Count int   `json:"count"`
}

// RecentCoin 가장 최근에 찾은 코인
type RecentCoin struct {
	Coin       *Coin     `json:"coin"`
	Keywords   []Keyword `json:"keywords"`
	ObtainedAt time.Time `json:"obtained_at"`
}

// MostSharedFriend 코인을 가장 많이 나눈 친구
type MostSharedFriend struct {
	Member         *MemberResponse `json:"member"`
	CoinShareCount int             `json:"coin_share_count"`
}

// HomeDashboard 홈 대시보드
type HomeDashboard struct {
	Slides           []HomeSlide       `json:"slides"`
	MostOwnedCoin    *MostOwnedCoin    `json:"most_owned_coin"`
	RecentCoin       *RecentCoin       `json:"recent_coin"`
	MostSharedFriend *MostSharedFriend `json:"most_shared_friend"`
}

// ClassifyRequest 장점 분류 요청
type ClassifyRequest struct {
	Text string `json:"text" binding:"required,max=2000"`
}

// ClassifyResponse 장점 분류 결과
type ClassifyResponse struct {
	Coin    *Coin    `json:"coin"`
	Keyword *Keyword `json:"keyword"`
	Summary string   `json:"summary"`
}
