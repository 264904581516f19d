package service

import (
	"github.com/voin/voin-backend/internal/catalog"
	"github.com/voin/voin-backend/internal/domain"
)

// MasterDataService 코인/키워드/상황 맥락 등 읽기 전용 마스터 데이터
type MasterDataService interface {
	All() *domain.MasterDataResponse
	Coins() []domain.Coin
	Coin(id uint) (*domain.Coin, error)
	KeywordsOf(coinID uint) ([]domain.Keyword, error)
	KeywordsByCoin() []domain.KeywordsByCoin
	SituationContexts() []domain.SituationContext
	StoryTypes() []domain.StoryTypeInfo
	CardOptions() *domain.CardOptionsResponse
	Forms() []domain.Form
	Form(id uint) (*domain.Form, error)
}

type masterDataService struct {
	catalog *catalog.Catalog
}

// NewMasterDataService creates a new MasterDataService
func NewMasterDataService(cat *catalog.Catalog) MasterDataService {
	return &masterDataService{catalog: cat}
}

func (s *masterDataService) All() *domain.MasterDataResponse {
	return &domain.MasterDataResponse{
		Coins:             s.catalog.Coins(),
		SituationContexts: catalog.SituationContexts(),
		StoryTypes:        catalog.StoryTypes(),
	}
}

func (s *masterDataService) Coins() []domain.Coin { return s.catalog.Coins() }

func (s *masterDataService) Coin(id uint) (*domain.Coin, error) { return s.catalog.Coin(id) }

func (s *masterDataService) KeywordsOf(coinID uint) ([]domain.Keyword, error) {
	return s.catalog.KeywordsOf(coinID)
}

func (s *masterDataService) KeywordsByCoin() []domain.KeywordsByCoin {
	return s.catalog.KeywordsByCoin()
}

func (s *masterDataService) SituationContexts() []domain.SituationContext {
	return catalog.SituationContexts()
}

func (s *masterDataService) StoryTypes() []domain.StoryTypeInfo { return catalog.StoryTypes() }

// CardOptions 카드 작성 화면의 선택지
func (s *masterDataService) CardOptions() *domain.CardOptionsResponse {
	return &domain.CardOptionsResponse{
		Coins:             s.catalog.KeywordsByCoin(),
		SituationContexts: catalog.SituationContexts(),
	}
}

func (s *masterDataService) Forms() []domain.Form { return s.catalog.Forms() }

func (s *masterDataService) Form(id uint) (*domain.Form, error) { return s.catalog.Form(id) }
