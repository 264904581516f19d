package service

import (
	"context"

	"github.com/voin/voin-backend/internal/catalog"
	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/repository"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
)

const reindexBatchSize = 200

// CardIndex 공개 카드 검색 색인 (Elasticsearch)
type CardIndex interface {
	Put(ctx context.Context, cardID uint, doc interface{}) error
	Remove(ctx context.Context, cardID uint) error
	PutAll(ctx context.Context, docs map[uint]interface{}) error
	Search(ctx context.Context, keyword string, page, size int) ([]uint, int64, error)
}

// CardSearchService 공개 카드 검색. 색인이 없으면 DB LIKE 검색을 쓴다.
type CardSearchService interface {
	Sync(ctx context.Context, card *domain.Card)
	Remove(ctx context.Context, cardID uint)
	Search(ctx context.Context, keyword string, page, size int) (*common.Page, error)
	Reindex(ctx context.Context) error
}

type cardSearchService struct {
	index      CardIndex
	cardRepo   repository.CardRepository
	memberRepo repository.MemberRepository
	assembler  *cardAssembler
}

// NewCardSearchService creates a new CardSearchService. index may be nil.
func NewCardSearchService(index CardIndex, cardRepo repository.CardRepository, memberRepo repository.MemberRepository, cat *catalog.Catalog) CardSearchService {
	return &cardSearchService{
		index:      index,
		cardRepo:   cardRepo,
		memberRepo: memberRepo,
		assembler:  &cardAssembler{catalog: cat, memberRepo: memberRepo},
	}
}

// Sync 공개 카드는 색인, 비공개 카드는 색인에서 제거. 실패는 로그만 남긴다.
func (s *cardSearchService) Sync(ctx context.Context, card *domain.Card) {
	if s.index == nil {
		return
	}
	if !card.IsPublic {
		s.Remove(ctx, card.ID)
		return
	}

	nickname := ""
	if owner, err := s.memberRepo.FindByID(card.MemberID); err == nil {
		nickname = owner.Nickname
	}
	if err := s.index.Put(ctx, card.ID, s.assembler.searchDocument(card, nickname)); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Uint("card_id", card.ID).Msg("card index failed")
	}
}

func (s *cardSearchService) Remove(ctx context.Context, cardID uint) {
	if s.index == nil {
		return
	}
	if err := s.index.Remove(ctx, cardID); err != nil {
		pkglogger.GetLogger().Warn().Err(err).Uint("card_id", cardID).Msg("card index remove failed")
	}
}

// Search 본문, 키워드, 코인 이름으로 공개 카드 검색
func (s *cardSearchService) Search(ctx context.Context, keyword string, page, size int) (*common.Page, error) {
	if keyword == "" {
		return common.NewPage([]*domain.CardResponse{}, page, size, 0), nil
	}

	if s.index != nil {
		result, err := s.searchIndex(ctx, keyword, page, size)
		if err == nil {
			return result, nil
		}
		pkglogger.GetLogger().Warn().Err(err).Msg("card index search failed, falling back to database")
	}

	cards, total, err := s.cardRepo.SearchPublic(keyword, page, size)
	if err != nil {
		return nil, err
	}
	items, err := s.assembler.toResponses(cards)
	if err != nil {
		return nil, err
	}
	return common.NewPage(items, page, size, total), nil
}

func (s *cardSearchService) searchIndex(ctx context.Context, keyword string, page, size int) (*common.Page, error) {
	ids, total, err := s.index.Search(ctx, keyword, page, size)
	if err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	// 색인이 늦게 반영된 비공개 카드는 제외
	visible := cards[:0]
	for _, c := range cards {
		if c.IsPublic {
			visible = append(visible, c)
		}
	}
	items, err := s.assembler.toResponses(visible)
	if err != nil {
		return nil, err
	}
	return common.NewPage(items, page, size, total), nil
}

// Reindex 모든 공개 카드를 다시 색인
func (s *cardSearchService) Reindex(ctx context.Context) error {
	if s.index == nil {
		return nil
	}

	indexed := 0
	for page := 1; ; page++ {
		cards, _, err := s.cardRepo.FindPublic(page, reindexBatchSize)
		if err != nil {
			return err
		}
		if len(cards) == 0 {
			break
		}

		ownerIDs := make([]string, len(cards))
		for i, c := range cards {
			ownerIDs[i] = c.MemberID
		}
		owners, err := s.memberRepo.FindByIDs(ownerIDs)
		if err != nil {
			return err
		}

		docs := make(map[uint]interface{}, len(cards))
		for _, c := range cards {
			nickname := ""
			if o, ok := owners[c.MemberID]; ok {
				nickname = o.Nickname
			}
			docs[c.ID] = s.assembler.searchDocument(c, nickname)
		}
		if err := s.index.PutAll(ctx, docs); err != nil {
			return err
		}
		indexed += len(cards)

		if len(cards) < reindexBatchSize {
			break
		}
	}

	pkglogger.GetLogger().Info().Int("cards", indexed).Msg("card search index rebuilt")
	return nil
}
