// Package catalog holds the seeded coin/keyword master data as an immutable
// in-memory table. It is loaded once at startup and only read afterwards.
package catalog

import (
	"fmt"

	"github.com/voin/voin-backend/internal/common"
	"github.com/voin/voin-backend/internal/domain"
	"gorm.io/gorm"
)

// Catalog read-only master data lookup
type Catalog struct {
	coins         []domain.Coin
	coinByID      map[uint]int
	coinByName    map[string]int
	keywordByID   map[uint]domain.Keyword
	keywordByName map[string]domain.Keyword
	forms         []domain.Form
}

// Load reads coins, keywords and forms from the database
func Load(db *gorm.DB) (*Catalog, error) {
	var coins []domain.Coin
	if err := db.Preload("Keywords", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("id ASC")
	}).Order("id ASC").Find(&coins).Error; err != nil {
		return nil, fmt.Errorf("코인 마스터 데이터 조회 실패: %w", err)
	}

	var forms []domain.Form
	if err := db.Preload("Questions", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("order_index ASC")
	}).Order("id ASC").Find(&forms).Error; err != nil {
		return nil, fmt.Errorf("폼 마스터 데이터 조회 실패: %w", err)
	}

	return New(coins, forms), nil
}

// New builds a Catalog from already loaded rows
func New(coins []domain.Coin, forms []domain.Form) *Catalog {
	c := &Catalog{
		coins:         make([]domain.Coin, len(coins)),
		coinByID:      make(map[uint]int, len(coins)),
		coinByName:    make(map[string]int, len(coins)),
		keywordByID:   make(map[uint]domain.Keyword),
		keywordByName: make(map[string]domain.Keyword),
		forms:         make([]domain.Form, len(forms)),
	}
	for i, coin := range coins {
		c.coins[i] = cloneCoin(coin)
		c.coinByID[coin.ID] = i
		c.coinByName[coin.Name] = i
		for _, k := range coin.Keywords {
			c.keywordByID[k.ID] = k
			c.keywordByName[k.Name] = k
		}
	}
	for i, f := range forms {
		c.forms[i] = f
		c.forms[i].Questions = append([]domain.Question(nil), f.Questions...)
	}
	return c
}

func cloneCoin(coin domain.Coin) domain.Coin {
	coin.Keywords = append([]domain.Keyword(nil), coin.Keywords...)
	return coin
}

// Coins returns all coins with their keywords
func (c *Catalog) Coins() []domain.Coin {
	out := make([]domain.Coin, len(c.coins))
	for i, coin := range c.coins {
		out[i] = cloneCoin(coin)
	}
	return out
}

// Coin resolves a coin by id
func (c *Catalog) Coin(id uint) (*domain.Coin, error) {
	i, ok := c.coinByID[id]
	if !ok {
		return nil, common.ErrCoinNotFound
	}
	coin := cloneCoin(c.coins[i])
	return &coin, nil
}

// CoinSummary resolves a coin by id without its keyword list
func (c *Catalog) CoinSummary(id uint) (*domain.Coin, error) {
	coin, err := c.Coin(id)
	if err != nil {
		return nil, err
	}
	coin.Keywords = nil
	return coin, nil
}

// CoinByName resolves a coin by its unique name
func (c *Catalog) CoinByName(name string) (*domain.Coin, error) {
	i, ok := c.coinByName[name]
	if !ok {
		return nil, common.ErrCoinNotFound
	}
	coin := cloneCoin(c.coins[i])
	return &coin, nil
}

// Keyword resolves a keyword by id
func (c *Catalog) Keyword(id uint) (*domain.Keyword, error) {
	k, ok := c.keywordByID[id]
	if !ok {
		return nil, common.ErrKeywordNotFound
	}
	return &k, nil
}

// KeywordByName resolves a keyword by its unique name
func (c *Catalog) KeywordByName(name string) (*domain.Keyword, error) {
	k, ok := c.keywordByName[name]
	if !ok {
		return nil, common.ErrKeywordNotFound
	}
	return &k, nil
}

// KeywordsOf returns the keywords owned by a coin
func (c *Catalog) KeywordsOf(coinID uint) ([]domain.Keyword, error) {
	coin, err := c.Coin(coinID)
	if err != nil {
		return nil, err
	}
	return coin.Keywords, nil
}

// KeywordBelongsTo reports whether keyword keywordID is owned by coin coinID
func (c *Catalog) KeywordBelongsTo(keywordID, coinID uint) bool {
	k, ok := c.keywordByID[keywordID]
	return ok && k.CoinID == coinID
}

// ResolveSelection validates a coin and keyword selection for a card.
// Duplicate ids collapse; every keyword must belong to the coin.
func (c *Catalog) ResolveSelection(coinID uint, keywordIDs []uint) (*domain.Coin, []domain.Keyword, error) {
	coin, err := c.CoinSummary(coinID)
	if err != nil {
		return nil, nil, err
	}
	if len(keywordIDs) == 0 {
		return nil, nil, common.ErrKeywordRequired
	}

	seen := make(map[uint]struct{}, len(keywordIDs))
	keywords := make([]domain.Keyword, 0, len(keywordIDs))
	for _, id := range keywordIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		k, err := c.Keyword(id)
		if err != nil {
			return nil, nil, err
		}
		if k.CoinID != coinID {
			return nil, nil, common.ErrKeywordCoinMismatch
		}
		keywords = append(keywords, *k)
	}
	return coin, keywords, nil
}

// KeywordsByCoin groups keywords under their coin
func (c *Catalog) KeywordsByCoin() []domain.KeywordsByCoin {
	out := make([]domain.KeywordsByCoin, 0, len(c.coins))
	for _, coin := range c.coins {
		keywords := append([]domain.Keyword(nil), coin.Keywords...)
		coin.Keywords = nil
		out = append(out, domain.KeywordsByCoin{Coin: coin, Keywords: keywords})
	}
	return out
}

// Forms returns the card forms with their questions
func (c *Catalog) Forms() []domain.Form {
	out := make([]domain.Form, len(c.forms))
	for i, f := range c.forms {
		out[i] = f
		out[i].Questions = append([]domain.Question(nil), f.Questions...)
	}
	return out
}

// Form resolves a form by id
func (c *Catalog) Form(id uint) (*domain.Form, error) {
	for _, f := range c.forms {
		if f.ID == id {
			out := f
			out.Questions = append([]domain.Question(nil), f.Questions...)
			return &out, nil
		}
	}
	return nil, common.ErrFormNotFound
}
