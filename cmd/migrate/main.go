package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/voin/voin-backend/internal/config"
	"github.com/voin/voin-backend/internal/migration"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	dryRun := flag.Bool("dry-run", false, "list tables that would be migrated without executing")
	verify := flag.Bool("verify", false, "verify master data and cross-table integrity")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	if loaded := config.LoadDotEnv(); len(loaded) == 0 {
		log.Println("No .env file found, using environment variables")
	}

	if *dryRun {
		runDryRun()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logLevel := gormlogger.Warn
	if *verbose {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying DB: %v", err)
	}
	defer sqlDB.Close()

	if *verify {
		if !runVerify(db) {
			sqlDB.Close()
			os.Exit(1)
		}
		return
	}

	start := time.Now()
	log.Println("[migrate] Running schema migration and master data seed")
	if err := migration.Run(db); err != nil {
		log.Printf("[migrate] FAILED: %v", err)
		sqlDB.Close()
		os.Exit(1)
	}
	log.Printf("[migrate] Completed in %v", time.Since(start))
}

func runDryRun() {
	for _, m := range migration.Models() {
		log.Printf("[dry-run] would migrate %T", m)
	}
}

func runVerify(db *gorm.DB) bool {
	checks, err := migration.Verify(db)
	if err != nil {
		log.Printf("[verify] FAILED: %v", err)
		return false
	}

	fmt.Println()
	fmt.Println("╔══════════════════════════════════════╦══════════╦══════════╦═══════╗")
	fmt.Println("║ Check                                ║ Expected ║  Actual  ║ Match ║")
	fmt.Println("╠══════════════════════════════════════╬══════════╬══════════╬═══════╣")
	allOK := true
	for _, c := range checks {
		match := "  ✓  "
		if !c.OK() {
			match = "  ✗  "
			allOK = false
		}
		fmt.Printf("║ %-36s ║ %8d ║ %8d ║ %s ║\n", c.Name, c.Expected, c.Actual, match)
	}
	fmt.Println("╚══════════════════════════════════════╩══════════╩══════════╩═══════╝")
	return allOK
}
