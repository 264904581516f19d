package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/voin/voin-backend/internal/catalog"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/repository"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
	"gorm.io/gorm"
)

// CardService 카드 발급과 조회
type CardService interface {
	Create(ctx context.Context, memberID string, req *domain.CreateCardRequest) (*domain.CardResponse, error)
	Get(memberID string, cardID uint) (*domain.CardResponse, error)
	ListMine(memberID string) ([]*domain.CardResponse, error)
	ListReceived(memberID string) ([]*domain.CardResponse, error)
	ListPublic(page, size int) (*common.Page, error)
	UpdateVisibility(ctx context.Context, memberID string, cardID uint, isPublic bool) (*domain.CardResponse, error)
	Delete(ctx context.Context, memberID string, cardID uint) error
}

type cardService struct {
	cardRepo      repository.CardRepository
	storyRepo     repository.StoryRepository
	friendRepo    repository.FriendRepository
	memberRepo    repository.MemberRepository
	catalog       *catalog.Catalog
	assembler     *cardAssembler
	search        CardSearchService
	notifications NotificationService
}

// NewCardService creates a new CardService
func NewCardService(
	cardRepo repository.CardRepository,
	storyRepo repository.StoryRepository,
	friendRepo repository.FriendRepository,
	memberRepo repository.MemberRepository,
	cat *catalog.Catalog,
	search CardSearchService,
	notifications NotificationService,
) CardService {
	return &cardService{
		cardRepo:      cardRepo,
		storyRepo:     storyRepo,
		friendRepo:    friendRepo,
		memberRepo:    memberRepo,
		catalog:       cat,
		assembler:     &cardAssembler{catalog: cat, memberRepo: memberRepo},
		search:        search,
		notifications: notifications,
	}
}

// Create 스토리에서 코인과 키워드를 골라 카드를 만든다.
// 친구를 대상으로 하면 선물 카드가 되고 친구의 코인 집계가 올라간다.
func (s *cardService) Create(ctx context.Context, memberID string, req *domain.CreateCardRequest) (*domain.CardResponse, error) {
	story, err := s.storyRepo.FindByID(req.StoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrStoryNotFound
		}
		return nil, err
	}
	if story.MemberID != memberID {
		return nil, common.ErrStoryForbidden
	}

	coin, keywords, err := s.catalog.ResolveSelection(req.CoinID, req.KeywordIDs)
	if err != nil {
		return nil, err
	}

	card := &domain.Card{
		MemberID:           memberID,
		StoryID:            &story.ID,
		CoinID:             coin.ID,
		Keywords:           keywords,
		Content:            cardContent(req.Content, story),
		SituationContextID: story.SituationContextID,
	}
	if req.IsPublic != nil {
		card.IsPublic = *req.IsPublic
	}

	recipientID := memberID
	var friendEdgeID *uint
	if req.TargetMemberID != nil && *req.TargetMemberID != "" && *req.TargetMemberID != memberID {
		edge, err := s.friendRepo.FindAcceptedEdge(memberID, *req.TargetMemberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, common.ErrNotFriends
			}
			return nil, err
		}
		target := *req.TargetMemberID
		card.TargetMemberID = &target
		card.IsGift = true
		recipientID = target
		friendEdgeID = &edge.ID
	}

	if err := s.cardRepo.CreateMinted(card, recipientID, friendEdgeID); err != nil {
		return nil, err
	}

	kind := "self"
	if card.IsGift {
		kind = "gift"
	}
	cardsMintedTotal.WithLabelValues(kind).Inc()
	pkglogger.GetLogger().Info().
		Uint("card_id", card.ID).
		Str("member_id", memberID).
		Str("recipient_id", recipientID).
		Uint("coin_id", card.CoinID).
		Msg("card minted")

	s.search.Sync(ctx, card)

	resp, err := s.assembler.toResponse(card)
	if err != nil {
		return nil, err
	}
	if card.IsGift {
		sender := ""
		if resp.Owner != nil {
			sender = resp.Owner.Nickname
		}
		s.notifications.NotifyCardReceived(recipientID, sender)
	}
	return resp, nil
}

// cardContent 입력한 요약이 없으면 스토리 본문을 사용. 최대 1000자.
func cardContent(summary string, story *domain.Story) string {
	content := strings.TrimSpace(summary)
	if content == "" {
		content = story.FullText()
	}
	return truncateRunes(content, domain.MaxCardContentLength)
}

func truncateRunes(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen])
}

// Get 작성자, 받은 사람, 또는 공개 카드만 조회 가능
func (s *cardService) Get(memberID string, cardID uint) (*domain.CardResponse, error) {
	card, err := s.find(cardID)
	if err != nil {
		return nil, err
	}
	isTarget := card.TargetMemberID != nil && *card.TargetMemberID == memberID
	if card.MemberID != memberID && !isTarget && !card.IsPublic {
		return nil, common.ErrCardForbidden
	}
	return s.assembler.toResponse(card)
}

func (s *cardService) ListMine(memberID string) ([]*domain.CardResponse, error) {
	cards, err := s.cardRepo.FindByMember(memberID)
	if err != nil {
		return nil, err
	}
	return s.assembler.toResponses(cards)
}

func (s *cardService) ListReceived(memberID string) ([]*domain.CardResponse, error) {
	cards, err := s.cardRepo.FindReceived(memberID)
	if err != nil {
		return nil, err
	}
	return s.assembler.toResponses(cards)
}

func (s *cardService) ListPublic(page, size int) (*common.Page, error) {
	cards, total, err := s.cardRepo.FindPublic(page, size)
	if err != nil {
		return nil, err
	}
	items, err := s.assembler.toResponses(cards)
	if err != nil {
		return nil, err
	}
	return common.NewPage(items, page, size, total), nil
}

// UpdateVisibility 작성자만 공개 여부를 바꿀 수 있다
func (s *cardService) UpdateVisibility(ctx context.Context, memberID string, cardID uint, isPublic bool) (*domain.CardResponse, error) {
	card, err := s.owned(memberID, cardID)
	if err != nil {
		return nil, err
	}

	if card.IsPublic != isPublic {
		if err := s.cardRepo.UpdateVisibility(cardID, isPublic); err != nil {
			return nil, err
		}
		card.IsPublic = isPublic
		s.search.Sync(ctx, card)
	}
	return s.assembler.toResponse(card)
}

// Delete 작성자만 삭제 가능. 받은 사람의 코인 집계는 그대로 둔다.
func (s *cardService) Delete(ctx context.Context, memberID string, cardID uint) error {
	if _, err := s.owned(memberID, cardID); err != nil {
		return err
	}
	if err := s.cardRepo.Delete(cardID); err != nil {
		return err
	}
	s.search.Remove(ctx, cardID)
	return nil
}

func (s *cardService) find(cardID uint) (*domain.Card, error) {
	card, err := s.cardRepo.FindByID(cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

func (s *cardService) owned(memberID string, cardID uint) (*domain.Card, error) {
	card, err := s.find(cardID)
	if err != nil {
		return nil, err
	}
	if card.MemberID != memberID {
		return nil, common.ErrCardForbidden
	}
	return card, nil
}
