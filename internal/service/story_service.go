package service

import (
	"errors"
	"strings"

	"github.com/voin/voin-backend/internal/catalog"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/repository"
	"gorm.io/gorm"
)

// StoryService 오늘의 일기 / 경험 돌아보기
type StoryService interface {
	Create(memberID string, req *domain.CreateStoryRequest) (*domain.StoryResponse, error)
	AddReflection(memberID string, storyID uint, answer2 string) (*domain.StoryResponse, error)
	Get(memberID string, storyID uint) (*domain.StoryResponse, error)
	ListMine(memberID string) ([]*domain.StoryResponse, error)
	Delete(memberID string, storyID uint) error
}

type storyService struct {
	storyRepo repository.StoryRepository
}

// NewStoryService creates a new StoryService
func NewStoryService(storyRepo repository.StoryRepository) StoryService {
	return &storyService{storyRepo: storyRepo}
}

// Create 일기는 내용 필수, 경험 돌아보기는 상황 맥락과 첫 번째 답변 필수
func (s *storyService) Create(memberID string, req *domain.CreateStoryRequest) (*domain.StoryResponse, error) {
	if !req.StoryType.IsValid() {
		return nil, common.ErrInvalidStoryType
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, common.ErrStoryContentMissing
	}

	story := &domain.Story{
		MemberID:  memberID,
		Title:     req.StoryType.StoryTitle(),
		Content:   content,
		StoryType: req.StoryType,
	}

	if req.StoryType == domain.StoryTypeExperienceReflection {
		if req.SituationContextID == nil {
			return nil, common.ErrSituationMissing
		}
		if _, err := catalog.SituationContext(*req.SituationContextID); err != nil {
			return nil, err
		}
		id := *req.SituationContextID
		story.SituationContextID = &id
		story.Answer1 = content
	}

	if err := s.storyRepo.Create(story); err != nil {
		return nil, err
	}
	return toStoryResponse(story), nil
}

// AddReflection 경험 돌아보기 2단계 답변 저장
func (s *storyService) AddReflection(memberID string, storyID uint, answer2 string) (*domain.StoryResponse, error) {
	answer2 = strings.TrimSpace(answer2)
	if answer2 == "" {
		return nil, common.ErrStoryContentMissing
	}

	story, err := s.owned(memberID, storyID)
	if err != nil {
		return nil, err
	}
	if story.StoryType != domain.StoryTypeExperienceReflection {
		return nil, common.ErrStoryNotReflection
	}

	if err := s.storyRepo.UpdateAnswer2(storyID, answer2); err != nil {
		return nil, err
	}
	story.Answer2 = answer2
	return toStoryResponse(story), nil
}

// Get 본인 스토리만 조회 가능
func (s *storyService) Get(memberID string, storyID uint) (*domain.StoryResponse, error) {
	story, err := s.owned(memberID, storyID)
	if err != nil {
		return nil, err
	}
	return toStoryResponse(story), nil
}

// ListMine 최신순
func (s *storyService) ListMine(memberID string) ([]*domain.StoryResponse, error) {
	stories, err := s.storyRepo.FindByMember(memberID)
	if err != nil {
		return nil, err
	}
	responses := make([]*domain.StoryResponse, len(stories))
	for i, st := range stories {
		responses[i] = toStoryResponse(st)
	}
	return responses, nil
}

// Delete 스토리 삭제. 이 스토리로 만든 카드는 남는다.
func (s *storyService) Delete(memberID string, storyID uint) error {
	if _, err := s.owned(memberID, storyID); err != nil {
		return err
	}
	return s.storyRepo.Delete(storyID)
}

func (s *storyService) owned(memberID string, storyID uint) (*domain.Story, error) {
	story, err := s.storyRepo.FindByID(storyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrStoryNotFound
		}
		return nil, err
	}
	if story.MemberID != memberID {
		return nil, common.ErrStoryForbidden
	}
	return story, nil
}

func toStoryResponse(story *domain.Story) *domain.StoryResponse {
	resp := &domain.StoryResponse{
		ID:        story.ID,
		Title:     story.Title,
		Content:   story.Content,
		StoryType: story.StoryType,
		Answer1:   story.Answer1,
		Answer2:   story.Answer2,
		CreatedAt: story.CreatedAt,
		UpdatedAt: story.UpdatedAt,
	}
	if story.SituationContextID != nil {
		if sc, err := catalog.SituationContext(*story.SituationContextID); err == nil {
			resp.SituationContext = &sc
		}
	}
	return resp
}
