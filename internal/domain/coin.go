package domain

import "time"

// Coin 6개의 고정된 가치 카테고리
type Coin struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	Color       string    `gorm:"size:7" json:"color"`
	Keywords    []Keyword `gorm:"foreignKey:CoinID" json:"keywords,omitempty"`
	CreatedAt   time.Time `json:"-"`
}

func (Coin) TableName() string { return "coins" }

// Keyword 정확히 하나의 코인에 속하는 세부 키워드
type Keyword struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CoinID      uint      `gorm:"not null;index" json:"coin_id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"-"`
}

func (Keyword) TableName() string { return "keywords" }

// MemberCoin 회원이 카드로 받은 코인 집계
type MemberCoin struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	MemberID        string    `gorm:"size:36;not null;uniqueIndex:idx_member_coin" json:"member_id"`
	CoinID          uint      `gorm:"not null;uniqueIndex:idx_member_coin;index" json:"coin_id"`
	Count           int       `gorm:"not null;default:0" json:"count"`
	FirstObtainedAt time.Time `gorm:"not null" json:"first_obtained_at"`
	LastObtainedAt  time.Time `gorm:"not null" json:"last_obtained_at"`
}

func (MemberCoin) TableName() string { return "member_coins" }

// Form 카드 작성 폼 (오늘의 일기, 경험 돌아보기, 친구의 장점 찾아주기)
type Form struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"size:500" json:"description"`
	Type        FormType   `gorm:"size:30;not null;uniqueIndex" json:"type"`
	Questions   []Question `gorm:"foreignKey:FormID" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"-"`
}

func (Form) TableName() string { return "forms" }

// Question 폼에 포함된 질문
type Question struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FormID     uint      `gorm:"not null;index:idx_question_order" json:"form_id"`
	Content    string    `gorm:"size:500;not null" json:"content"`
	OrderIndex int       `gorm:"not null;index:idx_question_order" json:"order_index"`
	CreatedAt  time.Time `json:"-"`
}

func (Question) TableName() string { return "questions" }

type FormType string

const (
	FormTypeTodayDiary           FormType = "TODAY_DIARY"
	FormTypeExperienceReflection FormType = "EXPERIENCE_REFLECTION"
	FormTypeFriendStrength       FormType = "FRIEND_STRENGTH"
)

// SituationContext 경험 돌아보기에서 선택하는 상황 맥락 (고정 6개)
type SituationContext struct {
	ID          int    `json:"id"`
	Code        string `json:"code"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// KeywordsByCoin 코인별 키워드 묶음 응답
type KeywordsByCoin struct {
	Coin     Coin      `json:"coin"`
	Keywords []Keyword `json:"keywords"`
}

// MasterDataResponse 마스터 데이터 전체 응답
type MasterDataResponse struct {
	Coins             []Coin             `json:"coins"`
	SituationContexts []SituationContext `json:"situation_contexts"`
	StoryTypes        []StoryTypeInfo    `json:"story_types"`
}

// CardOptionsResponse 카드 작성 시 선택지
type CardOptionsResponse struct {
	Coins             []KeywordsByCoin   `json:"coins"`
	SituationContexts []SituationContext `json:"situation_contexts"`
}

// MemberCoinResponse 회원이 모은 코인 집계
type MemberCoinResponse struct {
	Coin            *Coin     `json:"coin"`
	Count           int       `json:"count"`
	FirstObtainedAt time.Time `json:"first_obtained_at"`
	LastObtainedAt  time.Time `json:"last_obtained_at"`
}
