package service

import (
	"github.com/voin/voin-backend/internal/catalog"
	"github.com/voin/voin-backend/internal/domain"
	"github.com/voin/voin-backend/internal/repository"
)

// cardAssembler 카드 목록을 응답으로 변환. 회원은 한 번에 조회한다.
type cardAssembler struct {
	catalog    *catalog.Catalog
	memberRepo repository.MemberRepository
}

func (a *cardAssembler) toResponses(cards []*domain.Card) ([]*domain.CardResponse, error) {
	ids := make([]string, 0, len(cards)*2)
	for _, c := range cards {
		ids = append(ids, c.MemberID)
		if c.TargetMemberID != nil {
			ids = append(ids, *c.TargetMemberID)
		}
	}

	members := map[string]*domain.Member{}
	if len(ids) > 0 {
		var err error
		if members, err = a.memberRepo.FindByIDs(ids); err != nil {
			return nil, err
		}
	}

	responses := make([]*domain.CardResponse, len(cards))
	for i, c := range cards {
		responses[i] = a.build(c, members)
	}
	return responses, nil
}

func (a *cardAssembler) toResponse(card *domain.Card) (*domain.CardResponse, error) {
	responses, err := a.toResponses([]*domain.Card{card})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

func (a *cardAssembler) build(c *domain.Card, members map[string]*domain.Member) *domain.CardResponse {
	resp := &domain.CardResponse{
		ID:        c.ID,
		StoryID:   c.StoryID,
		Keywords:  c.Keywords,
		Content:   c.Content,
		IsPublic:  c.IsPublic,
		IsGift:    c.IsGift,
		CreatedAt: c.CreatedAt,
	}
	if resp.Keywords == nil {
		resp.Keywords = []domain.Keyword{}
	}
	if coin, err := a.catalog.CoinSummary(c.CoinID); err == nil {
		resp.Coin = coin
	}
	if owner, ok := members[c.MemberID]; ok {
		resp.Owner = owner.ToResponse()
	}
	if c.TargetMemberID != nil {
		if target, ok := members[*c.TargetMemberID]; ok {
			resp.Target = target.ToResponse()
		}
	}
	if c.SituationContextID != nil {
		if sc, err := catalog.SituationContext(*c.SituationContextID); err == nil {
			resp.SituationContext = &sc
		}
	}
	return resp
}

// searchDocument 검색 색인용 문서
func (a *cardAssembler) searchDocument(c *domain.Card, nickname string) *domain.CardSearchDocument {
	doc := &domain.CardSearchDocument{
		ID:        c.ID,
		MemberID:  c.MemberID,
		Nickname:  nickname,
		CoinID:    c.CoinID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		Keywords:  make([]string, 0, len(c.Keywords)),
	}
	if coin, err := a.catalog.CoinSummary(c.CoinID); err == nil {
		doc.CoinName = coin.Name
	}
	for _, k := range c.Keywords {
		doc.Keywords = append(doc.Keywords, k.Name)
	}
	return doc
}
