package migration

import (
	"github.com/voin/voin-backend/internal/domain"
	"gorm.io/gorm"
)

// Models 마이그레이션 대상 테이블
func Models() []interface{} {
	return []interface{}{
		&domain.Coin{},
		&domain.Keyword{},
		&domain.Form{},
		&domain.Question{},
		&domain.Member{},
		&domain.MemberCoin{},
		&domain.Story{},
		&domain.Card{},
		&domain.Friend{},
	}
}

// Run executes AutoMigrate for all tables and seeds master data if empty.
func Run(db *gorm.DB) error {
	// 1. AutoMigrate - 테이블 없으면 생성, 있으면 컬럼/인덱스만 보강
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}

	// 2. Seed - 마스터 데이터가 비어있을 때만 삽입
	return SeedMasterData(db)
}
