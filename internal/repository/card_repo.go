package repository

import (
	"strings"
	"time"

	"github.com/voin/voin-backend/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CardRepository card data access interface
type CardRepository interface {
	CreateMinted(card *domain.Card, recipientID string, friendEdgeID *uint) error
	FindByID(id uint) (*domain.Card, error)
	FindByIDs(ids []uint) ([]*domain.Card, error)
	FindByMember(memberID string) ([]*domain.Card, error)
	FindReceived(memberID string) ([]*domain.Card, error)
	FindPublic(page, size int) ([]*domain.Card, int64, error)
	FindPublicByMembers(memberIDs []string) ([]*domain.Card, error)
	SearchPublic(keyword string, page, size int) ([]*domain.Card, int64, error)
	FindLatestCollected(memberID string) (*domain.Card, error)
	UpdateVisibility(id uint, isPublic bool) error
	Delete(id uint) error
	CountByMember(memberID string) (int64, error)
	CountPublicByMember(memberID string) (int64, error)
}

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new CardRepository
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

// CreateMinted 카드 저장, 수신자의 코인 집계 증가, 친구 관계의 코인 공유 수 증가를 한 트랜잭션으로 처리
func (r *cardRepository) CreateMinted(card *domain.Card, recipientID string, friendEdgeID *uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// 키워드는 마스터 데이터이므로 조인 테이블만 기록
		if err := tx.Omit("Keywords.*").Create(card).Error; err != nil {
			return err
		}

		now := time.Now()
		tally := &domain.MemberCoin{
			MemberID:        recipientID,
			CoinID:          card.CoinID,
			Count:           1,
			FirstObtainedAt: now,
			LastObtainedAt:  now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "member_id"}, {Name: "coin_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":            gorm.Expr("count + 1"),
				"last_obtained_at": now,
			}),
		}).Create(tally).Error; err != nil {
			return err
		}

		if friendEdgeID != nil {
			return tx.Model(&domain.Friend{}).Where("id = ?", *friendEdgeID).
				Update("coin_share_count", gorm.Expr("coin_share_count + 1")).Error
		}
		return nil
	})
}

func (r *cardRepository) FindByID(id uint) (*domain.Card, error) {
	var card domain.Card
	if err := r.db.Preload("Keywords").First(&card, id).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByIDs preserves the order of ids
func (r *cardRepository) FindByIDs(ids []uint) ([]*domain.Card, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var cards []*domain.Card
	if err := r.db.Preload("Keywords").Where("id IN ?", ids).Find(&cards).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]*domain.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	ordered := make([]*domain.Card, 0, len(cards))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

// FindByMember 내가 만든 카드 (최신순)
func (r *cardRepository) FindByMember(memberID string) ([]*domain.Card, error) {
	var cards []*domain.Card
	err := r.db.Preload("Keywords").
		Where("member_id = ?", memberID).
		Order("created_at DESC, id DESC").
		Find(&cards).Error
	return cards, err
}

// FindReceived 친구에게 받은 카드
func (r *cardRepository) FindReceived(memberID string) ([]*domain.Card, error) {
	var cards []*domain.Card
	err := r.db.Preload("Keywords").
		Where("target_member_id = ? AND member_id <> ?", memberID, memberID).
		Order("created_at DESC, id DESC").
		Find(&cards).Error
	return cards, err
}

func (r *cardRepository) FindPublic(page, size int) ([]*domain.Card, int64, error) {
	var total int64
	query := r.db.Model(&domain.Card{}).Where("is_public = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cards []*domain.Card
	err := query.Preload("Keywords").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&cards).Error
	return cards, total, err
}

// FindPublicByMembers 피드용: 주어진 회원들의 공개 카드 최신순
func (r *cardRepository) FindPublicByMembers(memberIDs []string) ([]*domain.Card, error) {
	if len(memberIDs) == 0 {
		return []*domain.Card{}, nil
	}
	var cards []*domain.Card
	err := r.db.Preload("Keywords").
		Where("member_id IN ? AND is_public = ?", memberIDs, true).
		Order("created_at DESC, id DESC").
		Find(&cards).Error
	return cards, err
}

// SearchPublic 검색엔진이 없을 때 쓰는 LIKE 검색
func (r *cardRepository) SearchPublic(keyword string, page, size int) ([]*domain.Card, int64, error) {
	like := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	query := r.db.Model(&domain.Card{}).
		Where("is_public = ?", true).
		Where("(LOWER(content) LIKE ? ESCAPE '!' OR id IN (?))", like,
			r.db.Table("card_keywords").Select("card_keywords.card_id").
				Joins("JOIN keywords ON keywords.id = card_keywords.keyword_id").
				Where("LOWER(keywords.name) LIKE ? ESCAPE '!'", like))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cards []*domain.Card
	err := query.Preload("Keywords").
		Order("created_at DESC, id DESC").
		Offset((page - 1) * size).Limit(size).
		Find(&cards).Error
	return cards, total, err
}

// '!' 를 escape 문자로 쓴다 (MySQL 문자열의 backslash 처리 회피)
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// FindLatestCollected 회원이 가장 최근에 얻은 카드 (직접 만든 카드 또는 받은 카드)
func (r *cardRepository) FindLatestCollected(memberID string) (*domain.Card, error) {
	var card domain.Card
	err := r.db.Preload("Keywords").
		Where("(target_member_id = ? OR (target_member_id IS NULL AND member_id = ?))", memberID, memberID).
		Order("created_at DESC, id DESC").
		First(&card).Error
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *cardRepository) UpdateVisibility(id uint, isPublic bool) error {
	result := r.db.Model(&domain.Card{}).Where("id = ?", id).Update("is_public", isPublic)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *cardRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM card_keywords WHERE card_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&domain.Card{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *cardRepository) CountByMember(memberID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Card{}).Where("member_id = ?", memberID).Count(&count).Error
	return count, err
}

func (r *cardRepository) CountPublicByMember(memberID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Card{}).
		Where("member_id = ? AND is_public = ?", memberID, true).
		Count(&count).Error
	return count, err
}
