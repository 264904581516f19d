package catalog

import (
	"fmt"

	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
)

var situationContexts = []domain.SituationContext{
	{ID: 1, Code: "DAILY_LIFE", Title: "평소 내 모습", Description: "일상적 행동, 습관"},
	{ID: 2, Code: "INTERACTION", Title: "누군가와 상호작용", Description: "다른 사람과 대화, 행동"},
	{ID: 3, Code: "TEAMWORK", Title: "업무/과제/팀플", Description: "무언가를 함께하며 발견"},
	{ID: 4, Code: "CHALLENGE", Title: "도전하는 과정", Description: "새롭거나 어려운 상황"},
	{ID: 5, Code: "CONSIDERATION", Title: "배려하고 챙기는", Description: "타인을 생각하고 배려"},
	{ID: 6, Code: "ETC", Title: "기타", Description: "이 외 다른 행동"},
}

// SituationContexts returns the fixed situation list in id order
func SituationContexts() []domain.SituationContext {
	out := make([]domain.SituationContext, len(situationContexts))
	copy(out, situationContexts)
	return out
}

// SituationContext resolves a situation id
func SituationContext(id int) (domain.SituationContext, error) {
	for _, sc := range situationContexts {
		if sc.ID == id {
			return sc, nil
		}
	}
	return domain.SituationContext{}, common.NewValidation(fmt.Sprintf("유효하지 않은 상황 맥락 ID입니다: %d", id))
}

// StoryTypes returns the supported story types
func StoryTypes() []domain.StoryTypeInfo {
	types := []domain.StoryType{domain.StoryTypeDailyDiary, domain.StoryTypeExperienceReflection}
	out := make([]domain.StoryTypeInfo, 0, len(types))
	for _, t := range types {
		out = append(out, domain.StoryTypeInfo{Code: t, Name: t.DisplayName(), Title: t.StoryTitle()})
	}
	return out
}
