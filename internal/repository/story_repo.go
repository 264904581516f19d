package repository

import (
	"github.com/voin/voin-backend/internal/domain"
	"gorm.io/gorm"
)

// StoryRepository story data access interface
type StoryRepository interface {
	Create(story *domain.Story) error
	FindByID(id uint) (*domain.Story, error)
	FindByMember(memberID string) ([]*domain.Story, error)
	UpdateAnswer2(id uint, answer2 string) error
	Delete(id uint) error
}

type storyRepository struct {
	db *gorm.DB
}

// NewStoryRepository creates a new StoryRepository
func NewStoryRepository(db *gorm.DB) StoryRepository {
	return &storyRepository{db: db}
}

func (r *storyRepository) Create(story *domain.Story) error {
	return r.db.Create(story).Error
}

func (r *storyRepository) FindByID(id uint) (*domain.Story, error) {
	var story domain.Story
	if err := r.db.First(&story, id).Error; err != nil {
		return nil, err
	}
	return &story, nil
}

// FindByMember 최신순
func (r *storyRepository) FindByMember(memberID string) ([]*domain.Story, error) {
	var stories []*domain.Story
	err := r.db.Where("member_id = ?", memberID).Order("created_at DESC, id DESC").Find(&stories).Error
	return stories, err
}

func (r *storyRepository) UpdateAnswer2(id uint, answer2 string) error {
	result := r.db.Model(&domain.Story{}).Where("id = ?", id).Update("answer2", answer2)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 스토리 삭제. 카드는 내용 스냅샷을 유지하고 참조만 끊는다.
func (r *storyRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Card{}).Where("story_id = ?", id).
			Update("story_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Story{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
