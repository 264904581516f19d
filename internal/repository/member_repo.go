package repository

import (
	"strings"

	"github.com/voin/voin-backend/internal/domain"
	"gorm.io/gorm"
)

// MemberRepository member data access interface
type MemberRepository interface {
	Create(member *domain.Member) error
	FindByID(id string) (*domain.Member, error)
	FindByKakaoID(kakaoID string) (*domain.Member, error)
	FindByFriendCode(code string) (*domain.Member, error)
	FindByIDs(ids []string) (map[string]*domain.Member, error)
	SearchByNickname(keyword string, excludeID string, limit int) ([]*domain.Member, error)
	ExistsByKakaoID(kakaoID string) (bool, error)
	ExistsByNickname(nickname string, excludeID string) (bool, error)
	ExistsByFriendCode(code string) (bool, error)
	UpdateFields(id string, fields map[string]interface{}) error
	DeleteWithContent(id string) error
}

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

// Create inserts a member. 중복 kakao_id/friend_code/nickname 은 gorm.ErrDuplicatedKey 로 돌아온다.
func (r *memberRepository) Create(member *domain.Member) error {
	return r.db.Create(member).Error
}

func (r *memberRepository) FindByID(id string) (*domain.Member, error) {
	var member domain.Member
	if err := r.db.Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByKakaoID(kakaoID string) (*domain.Member, error) {
	var member domain.Member
	if err := r.db.Where("kakao_id = ?", kakaoID).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByFriendCode(code string) (*domain.Member, error) {
	var member domain.Member
	err := r.db.Where("friend_code = ? AND is_active = ?", strings.ToUpper(code), true).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// FindByIDs returns members keyed by id
func (r *memberRepository) FindByIDs(ids []string) (map[string]*domain.Member, error) {
	result := make(map[string]*domain.Member, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var members []*domain.Member
	if err := r.db.Where("id IN ?", ids).Find(&members).Error; err != nil {
		return nil, err
	}
	for _, m := range members {
		result[m.ID] = m
	}
	return result, nil
}

// SearchByNickname 닉네임 부분 일치 검색 (활성 회원만)
func (r *memberRepository) SearchByNickname(keyword string, excludeID string, limit int) ([]*domain.Member, error) {
	var members []*domain.Member
	query := r.db.Where("LOWER(nickname) LIKE ? AND is_active = ?", "%"+strings.ToLower(keyword)+"%", true)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Order("nickname ASC").Limit(limit).Find(&members).Error
	return members, err
}

func (r *memberRepository) ExistsByKakaoID(kakaoID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Member{}).Where("kakao_id = ?", kakaoID).Count(&count).Error
	return count > 0, err
}

func (r *memberRepository) ExistsByNickname(nickname string, excludeID string) (bool, error) {
	var count int64
	query := r.db.Model(&domain.Member{}).Where("nickname = ?", nickname)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *memberRepository) ExistsByFriendCode(code string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Member{}).Where("friend_code = ?", code).Count(&count).Error
	return count > 0, err
}

func (r *memberRepository) UpdateFields(id string, fields map[string]interface{}) error {
	result := r.db.Model(&domain.Member{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteWithContent 회원과 회원이 소유한 스토리/카드/친구 관계를 한 트랜잭션으로 삭제
func (r *memberRepository) DeleteWithContent(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		ownCards := tx.Model(&domain.Card{}).Select("id").Where("member_id = ?", id)
		if err := tx.Exec("DELETE FROM card_keywords WHERE card_id IN (?)", ownCards).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&domain.Card{}).Error; err != nil {
			return err
		}
		// 다른 회원이 보낸 카드는 남기고 수신자만 비운다
		if err := tx.Model(&domain.Card{}).Where("target_member_id = ?", id).
			Update("target_member_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&domain.Story{}).Error; err != nil {
			return err
		}
		if err := tx.Where("member_id = ?", id).Delete(&domain.MemberCoin{}).Error; err != nil {
			return err
		}
		if err := tx.Where("requester_id = ? OR receiver_id = ?", id, id).Delete(&domain.Friend{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&domain.Member{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
