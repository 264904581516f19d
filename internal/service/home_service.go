package service

import (
	"errors"

	"github.com/voin/voin-backend/internal/catalog"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/repository"
	"gorm.io/gorm"
)

var homeSlides = []domain.HomeSlide{
	{Type: "coin_discover", Title: "코인 찾기", Subtitle: "오늘 있었던 뿌듯한 순간을 떠올려보세요", Description: "새로운 코인을 발견해보세요"},
	{Type: "most_owned", Title: "가장 많이 보유한 코인", Description: "당신이 가장 많이 가진 강점"},
	{Type: "recent_coin", Title: "가장 최근에 찾은 코인", Description: "최근에 발견한 새로운 강점"},
	{Type: "most_shared_friend", Title: "코인을 가장 많이 나눈 친구", Description: "함께 성장하는 소중한 친구"},
}

// HomeService 홈 화면 대시보드
type HomeService interface {
	Dashboard(memberID string) (*domain.HomeDashboard, error)
	MostOwnedCoin(memberID string) (*domain.MostOwnedCoin, error)
	RecentCoin(memberID string) (*domain.RecentCoin, error)
	MostSharedFriend(memberID string) (*domain.MostSharedFriend, error)
	CoinCollection(memberID string) ([]*domain.MemberCoinResponse, error)
}

type homeService struct {
	memberCoinRepo repository.MemberCoinRepository
	cardRepo       repository.CardRepository
	friendRepo     repository.FriendRepository
	memberRepo     repository.MemberRepository
	catalog        *catalog.Catalog
}

// NewHomeService creates a new HomeService
func NewHomeService(
	memberCoinRepo repository.MemberCoinRepository,
	cardRepo repository.CardRepository,
	friendRepo repository.FriendRepository,
	memberRepo repository.MemberRepository,
	cat *catalog.Catalog,
) HomeService {
	return &homeService{
		memberCoinRepo: memberCoinRepo,
		cardRepo:       cardRepo,
		friendRepo:     friendRepo,
		memberRepo:     memberRepo,
		catalog:        cat,
	}
}

// Dashboard 슬라이드와 집계 항목. 아직 데이터가 없는 항목은 nil.
func (s *homeService) Dashboard(memberID string) (*domain.HomeDashboard, error) {
	owned, err := s.MostOwnedCoin(memberID)
	if err != nil {
		return nil, err
	}
	recent, err := s.RecentCoin(memberID)
	if err != nil {
		return nil, err
	}
	friend, err := s.MostSharedFriend(memberID)
	if err != nil {
		return nil, err
	}

	slides := make([]domain.HomeSlide, len(homeSlides))
	copy(slides, homeSlides)
	return &domain.HomeDashboard{
		Slides:           slides,
		MostOwnedCoin:    owned,
		RecentCoin:       recent,
		MostSharedFriend: friend,
	}, nil
}

func (s *homeService) MostOwnedCoin(memberID string) (*domain.MostOwnedCoin, error) {
	tally, err := s.memberCoinRepo.FindTop(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	coin, err := s.catalog.CoinSummary(tally.CoinID)
	if err != nil {
		return nil, err
	}
	return &domain.MostOwnedCoin{Coin: coin, Count: tally.Count}, nil
}

func (s *homeService) RecentCoin(memberID string) (*domain.RecentCoin, error) {
	card, err := s.cardRepo.FindLatestCollected(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	coin, err := s.catalog.CoinSummary(card.CoinID)
	if err != nil {
		return nil, err
	}
	return &domain.RecentCoin{Coin: coin, Keywords: card.Keywords, ObtainedAt: card.CreatedAt}, nil
}

func (s *homeService) MostSharedFriend(memberID string) (*domain.MostSharedFriend, error) {
	edge, err := s.friendRepo.FindTopShared(memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	friend, err := s.memberRepo.FindByID(edge.OtherParty(memberID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.MostSharedFriend{Member: friend.ToResponse(), CoinShareCount: edge.CoinShareCount}, nil
}

// CoinCollection 회원이 모은 코인 목록 (많이 모은 순)
func (s *homeService) CoinCollection(memberID string) ([]*domain.MemberCoinResponse, error) {
	tallies, err := s.memberCoinRepo.FindByMember(memberID)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.MemberCoinResponse, 0, len(tallies))
	for _, t := range tallies {
		coin, err := s.catalog.CoinSummary(t.CoinID)
		if err != nil {
			continue
		}
		out = append(out, &domain.MemberCoinResponse{
			Coin:            coin,
			Count:           t.Count,
			FirstObtainedAt: t.FirstObtainedAt,
			LastObtainedAt:  t.LastObtainedAt,
		})
	}
	return out, nil
}
