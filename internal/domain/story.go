package domain

import "time"

// StoryType 스토리 유형
type StoryType string

const (
	StoryTypeDailyDiary           StoryType = "DAILY_DIARY"
	StoryTypeExperienceReflection StoryType = "EXPERIENCE_REFLECTION"
)

// IsValid reports whether t is a known story type
func (t StoryType) IsValid() bool {
	return t == StoryTypeDailyDiary || t == StoryTypeExperienceReflection
}

// DisplayName 유형 표시명
func (t StoryType) DisplayName() string {
	switch t {
	case StoryTypeDailyDiary:
		return "오늘의 일기"
	case StoryTypeExperienceReflection:
		return "경험 돌아보기"
	}
	return ""
}

// StoryTitle 유형별로 저장되는 스토리 제목
func (t StoryType) StoryTitle() string {
	switch t {
	case StoryTypeDailyDiary:
		return "오늘의 일기"
	case StoryTypeExperienceReflection:
		return "사례 돌아보기"
	}
	return ""
}

// StoryTypeInfo 스토리 유형 목록 응답
type StoryTypeInfo struct {
	Code  StoryType `json:"code"`
	Name  string    `json:"name"`
	Title string    `json:"title"`
}

// Story 일기 또는 2단계 경험 돌아보기
type Story struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	MemberID           string    `gorm:"size:36;not null;index" json:"member_id"`
	Title              string    `gorm:"size:100;not null" json:"title"`
	Content            string    `gorm:"type:text" json:"content"`
	StoryType          StoryType `gorm:"size:30;not null" json:"story_type"`
	SituationContextID *int      `json:"situation_context_id,omitempty"`
	Answer1            string    `gorm:"type:text" json:"answer1,omitempty"`
	Answer2            string    `gorm:"type:text" json:"answer2,omitempty"`
	CreatedAt          time.Time `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Story) TableName() string { return "stories" }

// FullText 카드 내용으로 옮길 스토리 본문
func (s *Story) FullText() string {
	if s.StoryType == StoryTypeExperienceReflection {
		if s.Answer2 == "" {
			return s.Answer1
		}
		return s.Answer1 + "\n" + s.Answer2
	}
	return s.Content
}

// CreateStoryRequest 스토리 생성 요청
type CreateStoryRequest struct {
	StoryType          StoryType `json:"story_type" binding:"required"`
	Content            string    `json:"content"`
	SituationContextID *int      `json:"situation_context_id"`
}

// UpdateStoryRequest 경험 돌아보기 2단계 요청
type UpdateStoryRequest struct {
	AdditionalContent string `json:"additional_content" binding:"required"`
}

// DailyDiaryRequest 코인 찾기 - 오늘의 일기
type DailyDiaryRequest struct {
	Content string `json:"content" binding:"required"`
}

// ReflectionStep1Request 코인 찾기 - 경험 돌아보기 1단계
type ReflectionStep1Request struct {
	SituationContextID int    `json:"situation_context_id" binding:"required"`
	Content            string `json:"content" binding:"required"`
}

// ReflectionStep2Request 코인 찾기 - 경험 돌아보기 2단계
type ReflectionStep2Request struct {
	StoryID           uint   `json:"story_id" binding:"required"`
	AdditionalContent string `json:"additional_content" binding:"required"`
}

// StoryResponse 스토리 응답
type StoryResponse struct {
	ID               uint              `json:"id"`
	Title            string            `json:"title"`
	Content          string            `json:"content"`
	StoryType        StoryType         `json:"story_type"`
	SituationContext *SituationContext `json:"situation_context,omitempty"`
	Answer1          string            `json:"answer1,omitempty"`
	Answer2          string            `json:"answer2,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
