package repository

import (
	"time"

	"github.com/voin/voin-backend/internal/domain"
	"gorm.io/gorm"
)

// FriendRepository friend edge data access interface
type FriendRepository interface {
	Create(edge *domain.Friend) error
	FindByID(id uint) (*domain.Friend, error)
	FindBetween(memberA, memberB string) ([]*domain.Friend, error)
	ExistsAccepted(memberA, memberB string) (bool, error)
	ExistsPending(requesterID, receiverID string) (bool, error)
	FindPendingReceived(receiverID string) ([]*domain.Friend, error)
	FindPendingSent(requesterID string) ([]*domain.Friend, error)
	FindAccepted(memberID string) ([]*domain.Friend, error)
	FindAcceptedEdge(memberA, memberB string) (*domain.Friend, error)
	FindTopShared(memberID string) (*domain.Friend, error)
	Accept(id uint) error
	Delete(id uint) error
	CountAccepted(memberID string) (int64, error)
}

type friendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new FriendRepository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

// Create inserts a PENDING edge. (requester, receiver) 쌍은 유니크 인덱스로 보호된다.
func (r *friendRepository) Create(edge *domain.Friend) error {
	return r.db.Create(edge).Error
}

func (r *friendRepository) FindByID(id uint) (*domain.Friend, error) {
	var edge domain.Friend
	if err := r.db.First(&edge, id).Error; err != nil {
		return nil, err
	}
	return &edge, nil
}

// FindBetween 두 회원 사이의 모든 방향 관계
func (r *friendRepository) FindBetween(memberA, memberB string) ([]*domain.Friend, error) {
	var edges []*domain.Friend
	err := r.db.Where("(requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)",
		memberA, memberB, memberB, memberA).
		Find(&edges).Error
	return edges, err
}

func (r *friendRepository) ExistsAccepted(memberA, memberB string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Friend{}).
		Where("status = ?", domain.FriendStatusAccepted).
		Where("(requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)",
			memberA, memberB, memberB, memberA).
		Count(&count).Error
	return count > 0, err
}

func (r *friendRepository) ExistsPending(requesterID, receiverID string) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Friend{}).
		Where("requester_id = ? AND receiver_id = ? AND status = ?", requesterID, receiverID, domain.FriendStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *friendRepository) FindPendingReceived(receiverID string) ([]*domain.Friend, error) {
	var edges []*domain.Friend
	err := r.db.Where("receiver_id = ? AND status = ?", receiverID, domain.FriendStatusPending).
		Order("created_at DESC, id DESC").
		Find(&edges).Error
	return edges, err
}

func (r *friendRepository) FindPendingSent(requesterID string) ([]*domain.Friend, error) {
	var edges []*domain.Friend
	err := r.db.Where("requester_id = ? AND status = ?", requesterID, domain.FriendStatusPending).
		Order("created_at DESC, id DESC").
		Find(&edges).Error
	return edges, err
}

// FindAccepted 양방향 수락된 관계
func (r *friendRepository) FindAccepted(memberID string) ([]*domain.Friend, error) {
	var edges []*domain.Friend
	err := r.db.Where("status = ?", domain.FriendStatusAccepted).
		Where("(requester_id = ? OR receiver_id = ?)", memberID, memberID).
		Order("accepted_at DESC, id DESC").
		Find(&edges).Error
	return edges, err
}

func (r *friendRepository) FindAcceptedEdge(memberA, memberB string) (*domain.Friend, error) {
	var edge domain.Friend
	err := r.db.Where("status = ?", domain.FriendStatusAccepted).
		Where("(requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)",
			memberA, memberB, memberB, memberA).
		Order("id ASC").
		First(&edge).Error
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

// FindTopShared 코인 공유 수가 가장 많은 친구 관계
func (r *friendRepository) FindTopShared(memberID string) (*domain.Friend, error) {
	var edge domain.Friend
	err := r.db.Where("status = ? AND coin_share_count > 0", domain.FriendStatusAccepted).
		Where("(requester_id = ? OR receiver_id = ?)", memberID, memberID).
		Order("coin_share_count DESC, accepted_at DESC").
		First(&edge).Error
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

// Accept PENDING -> ACCEPTED. 반대 방향의 대기 요청은 함께 정리한다.
func (r *friendRepository) Accept(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var edge domain.Friend
		if err := tx.First(&edge, id).Error; err != nil {
			return err
		}

		now := time.Now()
		result := tx.Model(&domain.Friend{}).
			Where("id = ? AND status = ?", id, domain.FriendStatusPending).
			Updates(map[string]interface{}{
				"status":      domain.FriendStatusAccepted,
				"accepted_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrEdgeNotPending
		}

		return tx.Where("requester_id = ? AND receiver_id = ? AND status = ?",
			edge.ReceiverID, edge.RequesterID, domain.FriendStatusPending).
			Delete(&domain.Friend{}).Error
	})
}

func (r *friendRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Friend{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *friendRepository) CountAccepted(memberID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Friend{}).
		Where("status = ?", domain.FriendStatusAccepted).
		Where("(requester_id = ? OR receiver_id = ?)", memberID, memberID).
		Count(&count).Error
	return count, err
}
