package domain

import "time"

// MaxCardContentLength 카드 내용 최대 길이 (문자 수)
const MaxCardContentLength = 1000

// Card 스토리와 코인/키워드를 묶은 카드
type Card struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	MemberID           string    `gorm:"size:36;not null;index" json:"member_id"`
	TargetMemberID     *string   `gorm:"size:36;index" json:"target_member_id,omitempty"`
	StoryID            *uint     `gorm:"index" json:"story_id,omitempty"`
	CoinID             uint      `gorm:"not null;index" json:"coin_id"`
	Keywords           []Keyword `gorm:"many2many:card_keywords;" json:"keywords"`
	Content            string    `gorm:"size:1000" json:"content"`
	IsPublic           bool      `gorm:"not null;default:false;index" json:"is_public"`
	IsGift             bool      `gorm:"not null;default:false" json:"is_gift"`
	SituationContextID *int      `json:"situation_context_id,omitempty"`
	CreatedAt          time.Time `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Card) TableName() string { return "cards" }

// CreateCardRequest 카드 생성 요청
type CreateCardRequest struct {
	StoryID        uint    `json:"story_id" binding:"required"`
	CoinID         uint    `json:"coin_id" binding:"required"`
	KeywordIDs     []uint  `json:"keyword_ids" binding:"required,min=1"`
	TargetMemberID *string `json:"target_member_id"`
	Content        string  `json:"content"`
	IsPublic       *bool   `json:"is_public"`
}

// UpdateVisibilityRequest 공개 여부 변경
type UpdateVisibilityRequest struct {
	IsPublic *bool `json:"is_public" binding:"required"`
}

// CardResponse 카드 응답
type CardResponse struct {
	ID               uint              `json:"id"`
	Owner            *MemberResponse   `json:"owner,omitempty"`
	Target           *MemberResponse   `json:"target,omitempty"`
	StoryID          *uint             `json:"story_id,omitempty"`
	Coin             *Coin             `json:"coin"`
	Keywords         []Keyword         `json:"keywords"`
	Content          string            `json:"content"`
	IsPublic         bool              `json:"is_public"`
	IsGift           bool              `json:"is_gift"`
	SituationContext *SituationContext `json:"situation_context,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

// CardSearchDocument Elasticsearch 색인 문서
type CardSearchDocument struct {
	ID        uint      `json:"id"`
	MemberID  string    `json:"member_id"`
	Nickname  string    `json:"nickname"`
	CoinID    uint      `json:"coin_id"`
	CoinName  string    `json:"coin_name"`
	Keywords  []string  `json:"keywords"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
