package service

import (
	"errors"

	"github.com/voin/voin-backend/internal/catalog"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/repository"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
	"gorm.io/gorm"
)

// FriendService 친구 요청/수락/거절과 친구 피드
type FriendService interface {
	Request(requesterID, friendCode string) (*domain.FriendResponse, error)
	Accept(callerID string, edgeID uint) (*domain.FriendResponse, error)
	Reject(callerID string, edgeID uint) error
	ListReceived(memberID string) ([]*domain.FriendResponse, error)
	ListSent(memberID string) ([]*domain.FriendResponse, error)
	ListFriends(memberID string) ([]*domain.FriendResponse, error)
	Remove(callerID, friendMemberID string) error
	Feed(memberID string) ([]*domain.CardResponse, error)
}

type friendService struct {
	friendRepo    repository.FriendRepository
	memberRepo    repository.MemberRepository
	cardRepo      repository.CardRepository
	assembler     *cardAssembler
	notifications NotificationService
}

// NewFriendService creates a new FriendService
func NewFriendService(
	friendRepo repository.FriendRepository,
	memberRepo repository.MemberRepository,
	cardRepo repository.CardRepository,
	cat *catalog.Catalog,
	notifications NotificationService,
) FriendService {
	return &friendService{
		friendRepo:    friendRepo,
		memberRepo:    memberRepo,
		cardRepo:      cardRepo,
		assembler:     &cardAssembler{catalog: cat, memberRepo: memberRepo},
		notifications: notifications,
	}
}

// Request 친구 코드로 친구 요청
func (s *friendService) Request(requesterID, friendCode string) (*domain.FriendResponse, error) {
	target, err := s.memberRepo.FindByFriendCode(friendCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrFriendCodeNotFound
		}
		return nil, err
	}
	if target.ID == requesterID {
		return nil, common.ErrSelfRequest
	}

	friends, err := s.friendRepo.ExistsAccepted(requesterID, target.ID)
	if err != nil {
		return nil, err
	}
	if friends {
		return nil, common.ErrAlreadyFriends
	}
	pending, err := s.friendRepo.ExistsPending(requesterID, target.ID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, common.ErrDuplicatePending
	}

	edge := &domain.Friend{
		RequesterID: requesterID,
		ReceiverID:  target.ID,
		Status:      domain.FriendStatusPending,
	}
	if err := s.friendRepo.Create(edge); err != nil {
		// 동시에 들어온 요청은 유니크 인덱스에서 걸린다
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, common.ErrDuplicatePending
		}
		return nil, err
	}

	friendRequestsTotal.WithLabelValues("sent").Inc()
	if requester, err := s.memberRepo.FindByID(requesterID); err == nil {
		s.notifications.NotifyFriendRequest(target.ID, requester.Nickname)
	}

	return toFriendResponse(edge, target), nil
}

// Accept 받은 사람만 수락 가능
func (s *friendService) Accept(callerID string, edgeID uint) (*domain.FriendResponse, error) {
	edge, err := s.receivedPending(callerID, edgeID)
	if err != nil {
		return nil, err
	}

	if err := s.friendRepo.Accept(edgeID); err != nil {
		switch {
		case errors.Is(err, repository.ErrEdgeNotPending):
			return nil, common.ErrAlreadyProcessed
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, common.ErrFriendRequestNotFound
		}
		return nil, err
	}

	edge, err = s.friendRepo.FindByID(edgeID)
	if err != nil {
		return nil, err
	}

	friendRequestsTotal.WithLabelValues("accepted").Inc()
	pkglogger.GetLogger().Info().
		Uint("edge_id", edgeID).
		Str("requester_id", edge.RequesterID).
		Str("receiver_id", edge.ReceiverID).
		Msg("friend request accepted")

	var requester *domain.Member
	if m, err := s.memberRepo.FindByID(edge.RequesterID); err == nil {
		requester = m
	}
	if accepter, err := s.memberRepo.FindByID(callerID); err == nil {
		s.notifications.NotifyFriendAccepted(edge.RequesterID, accepter.Nickname)
	}
	return toFriendResponse(edge, requester), nil
}

// Reject 거절하면 요청을 삭제한다
func (s *friendService) Reject(callerID string, edgeID uint) error {
	if _, err := s.receivedPending(callerID, edgeID); err != nil {
		return err
	}
	if err := s.friendRepo.Delete(edgeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrFriendRequestNotFound
		}
		return err
	}
	friendRequestsTotal.WithLabelValues("rejected").Inc()
	return nil
}

func (s *friendService) receivedPending(callerID string, edgeID uint) (*domain.Friend, error) {
	edge, err := s.friendRepo.FindByID(edgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrFriendRequestNotFound
		}
		return nil, err
	}
	if edge.ReceiverID != callerID {
		return nil, common.ErrFriendForbidden
	}
	if edge.Status != domain.FriendStatusPending {
		return nil, common.ErrAlreadyProcessed
	}
	return edge, nil
}

// ListReceived 나에게 온 대기 중인 요청 (Member 는 요청자)
func (s *friendService) ListReceived(memberID string) ([]*domain.FriendResponse, error) {
	edges, err := s.friendRepo.FindPendingReceived(memberID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(memberID, edges)
}

// ListSent 내가 보낸 대기 중인 요청 (Member 는 받는 사람)
func (s *friendService) ListSent(memberID string) ([]*domain.FriendResponse, error) {
	edges, err := s.friendRepo.FindPendingSent(memberID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(memberID, edges)
}

// ListFriends 수락된 친구 목록
func (s *friendService) ListFriends(memberID string) ([]*domain.FriendResponse, error) {
	edges, err := s.friendRepo.FindAccepted(memberID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(memberID, edges)
}

// Remove 친구 끊기 (관계 삭제)
func (s *friendService) Remove(callerID, friendMemberID string) error {
	edge, err := s.friendRepo.FindAcceptedEdge(callerID, friendMemberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrFriendNotFound
		}
		return err
	}
	if err := s.friendRepo.Delete(edge.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrFriendNotFound
		}
		return err
	}
	pkglogger.GetLogger().Info().Str("member_id", callerID).Str("friend_id", friendMemberID).Msg("friend removed")
	return nil
}

// Feed 친구들의 공개 카드 최신순
func (s *friendService) Feed(memberID string) ([]*domain.CardResponse, error) {
	edges, err := s.friendRepo.FindAccepted(memberID)
	if err != nil {
		return nil, err
	}
	if len(edges) == 0 {
		return []*domain.CardResponse{}, nil
	}

	friendIDs := make([]string, 0, len(edges))
	for _, e := range edges {
		friendIDs = append(friendIDs, e.OtherParty(memberID))
	}

	cards, err := s.cardRepo.FindPublicByMembers(friendIDs)
	if err != nil {
		return nil, err
	}
	return s.assembler.toResponses(cards)
}

func (s *friendService) toResponses(memberID string, edges []*domain.Friend) ([]*domain.FriendResponse, error) {
	ids := make([]string, len(edges))
	for i, e := range edges {
		ids[i] = e.OtherParty(memberID)
	}
	members := map[string]*domain.Member{}
	if len(ids) > 0 {
		var err error
		if members, err = s.memberRepo.FindByIDs(ids); err != nil {
			return nil, err
		}
	}

	responses := make([]*domain.FriendResponse, 0, len(edges))
	for _, e := range edges {
		responses = append(responses, toFriendResponse(e, members[e.OtherParty(memberID)]))
	}
	return responses, nil
}

func toFriendResponse(edge *domain.Friend, other *domain.Member) *domain.FriendResponse {
	resp := &domain.FriendResponse{
		ID:             edge.ID,
		Status:         edge.Status,
		CoinShareCount: edge.CoinShareCount,
		AcceptedAt:     edge.AcceptedAt,
		CreatedAt:      edge.CreatedAt,
	}
	if other != nil {
		resp.Member = other.ToResponse()
	}
	return resp
}
