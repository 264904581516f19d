package migration

import (
	"github.com/voin/voin-backend/internal/domain"
	"gorm.io/gorm"
)

// Check 검증 항목 하나의 기대값과 실제값
type Check struct {
	Name     string
	Expected int64
	Actual   int64
}

// OK reports whether the actual count matches
func (c Check) OK() bool {
	return c.Expected == c.Actual
}

// Verify compares seeded master data against the built-in seed and
// counts rows that break cross-table rules.
func Verify(db *gorm.DB) ([]Check, error) {
	var keywordTotal int64
	for _, cs := range coinSeeds {
		keywordTotal += int64(len(cs.keywords))
	}

	checks := []Check{
		{Name: "coins", Expected: int64(len(coinSeeds))},
		{Name: "keywords", Expected: keywordTotal},
		{Name: "forms", Expected: int64(len(formSeeds))},
		{Name: "card keywords outside card coin", Expected: 0},
		{Name: "accepted friends without accepted_at", Expected: 0},
	}

	queries := []func(*int64) error{
		func(n *int64) error { return db.Model(&domain.Coin{}).Count(n).Error },
		func(n *int64) error { return db.Model(&domain.Keyword{}).Count(n).Error },
		func(n *int64) error { return db.Model(&domain.Form{}).Count(n).Error },
		func(n *int64) error {
			return db.Table("card_keywords").
				Joins("JOIN cards ON cards.id = card_keywords.card_id").
				Joins("JOIN keywords ON keywords.id = card_keywords.keyword_id").
				Where("keywords.coin_id <> cards.coin_id").
				Count(n).Error
		},
		func(n *int64) error {
			return db.Model(&domain.Friend{}).
				Where("status = ? AND accepted_at IS NULL", domain.FriendStatusAccepted).
				Count(n).Error
		},
	}

	for i, q := range queries {
		if err := q(&checks[i].Actual); err != nil {
			return nil, err
		}
	}
	return checks, nil
}
