package repository

import (
	"github.com/voin/voin-backend/internal/domain"
	"gorm.io/gorm"
)

// MemberCoinRepository 회원별 코인 집계 조회
type MemberCoinRepository interface {
	FindByMember(memberID string) ([]*domain.MemberCoin, error)
	FindTop(memberID string) (*domain.MemberCoin, error)
}

type memberCoinRepository struct {
	db *gorm.DB
}

// NewMemberCoinRepository creates a new MemberCoinRepository
func NewMemberCoinRepository(db *gorm.DB) MemberCoinRepository {
	return &memberCoinRepository{db: db}
}

func (r *memberCoinRepository) FindByMember(memberID string) ([]*domain.MemberCoin, error) {
	var tallies []*domain.MemberCoin
	err := r.db.Where("member_id = ?", memberID).
		Order("count DESC, coin_id ASC").
		Find(&tallies).Error
	return tallies, err
}

// FindTop 가장 많이 보유한 코인. 동률이면 최근에 얻은 코인.
func (r *memberCoinRepository) FindTop(memberID string) (*domain.MemberCoin, error) {
	var tally domain.MemberCoin
	err := r.db.Where("member_id = ? AND count > 0", memberID).
		Order("count DESC, last_obtained_at DESC").
		First(&tally).Error
	if err != nil {
		return nil, err
	}
	return &tally, nil
}
