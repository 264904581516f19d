package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/voin/voin-backend/internal/catalog"
	"github.com/voin/voin-backend/internal/config"
	"github.com/voin/voin-backend/internal/handler"
	"github.com/voin/voin-backend/internal/middleware"
	"github.com/voin/voin-backend/internal/migration"
	"github.com/voin/voin-backend/internal/repository"
	"github.com/voin/voin-backend/internal/routes"
	"github.com/voin/voin-backend/internal/service"
	"github.com/voin/voin-backend/internal/ws"
	pkgcache "github.com/voin/voin-backend/pkg/cache"
	pkges "github.com/voin/voin-backend/pkg/elasticsearch"
	"github.com/voin/voin-backend/pkg/ginutil"
	"github.com/voin/voin-backend/pkg/jwt"
	"github.com/voin/voin-backend/pkg/kakao"
	pkglogger "github.com/voin/voin-backend/pkg/logger"
	pkgredis "github.com/voin/voin-backend/pkg/redis"
	pkgstorage "github.com/voin/voin-backend/pkg/storage"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// @title           Voin API
// @version         1.0
// @description     Voin - 나의 장점을 코인 카드로 모으고 친구와 나누는 서비스
//
// @host            localhost:8080
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Authorization header using the Bearer scheme. Example: "Bearer {token}"

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	// 로거 초기화
	pkglogger.Init()
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	pkglogger.Info("APP_ENV=%s, loaded env files: %v", env, dotenvFiles)

	// 설정 로드
	configPath := getConfigPath()
	pkglogger.Info("Loading config from: %s", configPath)
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	config.LogResolved(cfg)
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// MySQL 연결 (필수)
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	pkglogger.Info("Connected to MySQL")
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	cat, err := catalog.Load(db)
	if err != nil {
		log.Fatalf("Failed to load master data: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		go middleware.ObserveDBStats(ctx, sqlDB, 15*time.Second)
	}

	// Redis (선택: 없으면 캐시, rate limit, 다중 인스턴스 알림이 꺼진다)
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = pkgredis.NewClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.PoolSize)
		if err != nil {
			pkglogger.Warn("Failed to connect to Redis: %v (continuing without Redis)", err)
			redisClient = nil
		} else {
			pkglogger.Info("Connected to Redis")
		}
	}
	cacheService := pkgcache.NewService(redisClient)

	// 카카오
	kakaoClient := kakao.NewClient(kakao.Config{
		ClientID:     cfg.Kakao.ClientID,
		ClientSecret: cfg.Kakao.ClientSecret,
		RedirectURI:  cfg.Kakao.RedirectURI,
		AuthHost:     cfg.Kakao.AuthHost,
		APIHost:      cfg.Kakao.APIHost,
	})
	profiles := kakao.NewCachedProfiles(kakaoClient, cacheService)

	// 프로필 이미지 저장소
	imageStore, err := initImageStore(cfg)
	if err != nil {
		log.Fatalf("Failed to init image storage: %v", err)
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.RefreshIn)

	// Repositories
	memberRepo := repository.NewMemberRepository(db)
	storyRepo := repository.NewStoryRepository(db)
	cardRepo := repository.NewCardRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	memberCoinRepo := repository.NewMemberCoinRepository(db)

	// 카드 검색 (Elasticsearch 선택)
	var cardIndex service.CardIndex
	if cfg.Elasticsearch.Enabled {
		if idx, esErr := initCardIndex(ctx, cfg); esErr != nil {
			pkglogger.Warn("Elasticsearch unavailable: %v (falling back to database search)", esErr)
		} else {
			cardIndex = idx
			pkglogger.Info("Connected to Elasticsearch")
		}
	}
	cardSearch := service.NewCardSearchService(cardIndex, cardRepo, memberRepo, cat)
	if cardIndex != nil {
		go func() {
			if err := cardSearch.Reindex(ctx); err != nil {
				pkglogger.Warn("Card reindex failed: %v", err)
			}
		}()
	}

	// 실시간 알림
	hub := ws.NewHub(redisClient)
	go hub.Run()
	notifications := service.NewNotificationService(hub)

	// Services
	authService := service.NewAuthService(kakaoClient, profiles, memberRepo, jwtManager)
	signupService := service.NewSignupService(profiles, memberRepo, service.NewFriendCodeGenerator(), imageStore, cfg.Storage.MaxSize, jwtManager)
	memberService := service.NewMemberService(memberRepo, cardRepo, friendRepo, profiles, kakaoClient, imageStore, cfg.Storage.MaxSize, cardSearch)
	storyService := service.NewStoryService(storyRepo)
	cardService := service.NewCardService(cardRepo, storyRepo, friendRepo, memberRepo, cat, cardSearch, notifications)
	friendService := service.NewFriendService(friendRepo, memberRepo, cardRepo, cat, notifications)
	homeService := service.NewHomeService(memberCoinRepo, cardRepo, friendRepo, memberRepo, cat)
	masterService := service.NewMasterDataService(cat)
	classifyService := service.NewClassifyService(service.ClassifyConfig{
		APIKey:  cfg.OpenAI.APIKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
	}, cat)

	// Gin 라우터
	if err := ginutil.RegisterValidators(); err != nil {
		log.Fatalf("Failed to register validators: %v", err)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitOrigins(cfg.CORS.AllowOrigins),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if cfg.Storage.Driver == "local" {
		router.Static(cfg.Storage.PublicPrefix, cfg.Storage.LocalDir)
	}

	routes.Setup(router, &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Signup:     handler.NewSignupHandler(signupService),
		Member:     handler.NewMemberHandler(memberService),
		Story:      handler.NewStoryHandler(storyService),
		CoinFinder: handler.NewCoinFinderHandler(storyService, cardService, masterService, classifyService),
		Card:       handler.NewCardHandler(cardService, cardSearch),
		Friend:     handler.NewFriendHandler(friendService),
		Master:     handler.NewMasterHandler(masterService, homeService),
		Home:       handler.NewHomeHandler(homeService),
		WS:         handler.NewWSHandler(hub, cfg.WebSocket.AllowedOrigins),
		Health:     handler.NewHealthHandler(db, redisClient),
	}, jwtManager, redisClient, cfg.RateLimit)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "요청한 경로를 찾을 수 없습니다.", "data": nil})
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		pkglogger.Info("Server listening on %s", srv.Addr)
		serverErr <- srv.ListenAndServe()
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		pkglogger.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			pkglogger.Error("Server failed: %v", err)
			exitCode = 1
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		pkglogger.Error("Graceful shutdown failed: %v", err)
		exitCode = 1
	}

	hub.Stop()
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	pkglogger.Info("Server stopped")
	if exitCode != 0 {
		cancel()
		stop()
		os.Exit(exitCode)
	}
}

// splitOrigins splits a comma separated origin list
func splitOrigins(s string) []string {
	var origins []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return origins
}

// initDB MySQL 연결 초기화
func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("DSN 파싱 실패: %w", err)
	}
	if mysqlCfg.Params == nil {
		mysqlCfg.Params = map[string]string{}
	}
	mysqlCfg.Params["time_zone"] = "'+09:00'"

	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() {
		logLevel = gormlogger.Info
	}
	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}

// initImageStore local 또는 s3 저장소 생성
func initImageStore(cfg *config.Config) (pkgstorage.ImageStore, error) {
	if cfg.Storage.Driver == "s3" {
		store, err := pkgstorage.NewS3Store(pkgstorage.S3Config{
			Endpoint:        cfg.Storage.Endpoint,
			Region:          cfg.Storage.Region,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			Bucket:          cfg.Storage.Bucket,
			CDNURL:          cfg.Storage.CDNURL,
			BasePath:        cfg.Storage.BasePath,
			ForcePathStyle:  cfg.Storage.ForcePathStyle,
			MaxSize:         cfg.Storage.MaxSize,
		})
		if err != nil {
			return nil, err
		}
		pkglogger.Info("Using S3 storage (bucket=%s)", cfg.Storage.Bucket)
		return store, nil
	}
	return pkgstorage.NewLocalStore(cfg.Storage.LocalDir, cfg.Storage.PublicPrefix, cfg.Storage.MaxSize)
}

// initCardIndex Elasticsearch 카드 색인 연결
func initCardIndex(ctx context.Context, cfg *config.Config) (*pkges.CardIndex, error) {
	client, err := pkges.NewClient(cfg.Elasticsearch.Addresses, cfg.Elasticsearch.Username, cfg.Elasticsearch.Password)
	if err != nil {
		return nil, err
	}
	return pkges.NewCardIndex(ctx, client, cfg.Elasticsearch.Index)
}
