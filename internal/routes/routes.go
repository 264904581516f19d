package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/voin/voin-backend/internal/config"
	"github.com/voin/voin-backend/internal/handler"
	"github.com/voin/voin-backend/internal/middleware"
	"github.com/voin/voin-backend/pkg/jwt"
)

// Handlers 라우터에 연결할 핸들러 묶음
type Handlers struct {
	Auth       *handler.AuthHandler
	Signup     *handler.SignupHandler
	Member     *handler.MemberHandler
	Story      *handler.StoryHandler
	CoinFinder *handler.CoinFinderHandler
	Card       *handler.CardHandler
	Friend     *handler.FriendHandler
	Master     *handler.MasterHandler
	Home       *handler.HomeHandler
	WS         *handler.WSHandler
	Health     *handler.HealthHandler
}

// Setup configures all API routes. redisClient may be nil, in which case rate limiting is off.
func Setup(router *gin.Engine, h *Handlers, jwtManager *jwt.Manager, redisClient *redis.Client, cfg config.RateLimitConfig) {
	auth := middleware.JWTAuth(jwtManager)

	router.GET("/health", h.Health.Health)
	router.GET("/ws", auth, h.WS.Connect)

	limited := middleware.RateLimit(redisClient, middleware.RateLimitConfig{
		RequestsPerMinute: cfg.RequestsPerMinute,
		KeyPrefix:         middleware.DefaultRateLimitConfig().KeyPrefix,
	})

	// 회원가입 (카카오 토큰으로 식별, 세션 불필요)
	signup := router.Group("/signup", limited)
	signup.POST("/start", h.Signup.Start)
	signup.POST("/nickname", h.Signup.Nickname)
	signup.POST("/profile-image", h.Signup.ProfileImage)
	signup.GET("/validate", h.Signup.Validate)

	api := router.Group("/api", limited)

	authGroup := api.Group("/auth")
	authGroup.GET("/kakao/url", h.Auth.AuthURL)
	authGroup.GET("/kakao/callback", h.Auth.Callback)
	authGroup.POST("/kakao/verify", h.Auth.Verify)
	authGroup.POST("/refresh", h.Auth.Refresh)

	members := api.Group("/members", auth)
	members.GET("/me", h.Member.GetMe)
	members.DELETE("/me", h.Member.DeleteAccount)
	members.PUT("/me/nickname", h.Member.UpdateNickname)
	members.PUT("/me/profile-image", h.Member.UpdateProfileImage)
	members.GET("/me/stats", h.Member.Stats)
	members.POST("/me/deactivate", h.Member.Deactivate)
	members.GET("/search", h.Member.Search)
	members.GET("/by-friend-code", h.Member.ByFriendCode)

	stories := api.Group("/stories", auth)
	stories.POST("", h.Story.Create)
	stories.GET("/my-stories", h.Story.ListMine)
	stories.GET("/:storyId", h.Story.Get)
	stories.PUT("/:storyId", h.Story.Update)
	stories.DELETE("/:storyId", h.Story.Delete)

	// 코인 찾기: 조회는 공개, 작성은 로그인 필요
	finder := api.Group("/coin-finder")
	finder.GET("/types", h.CoinFinder.Types)
	finder.GET("/situation-contexts", h.CoinFinder.SituationContexts)
	finder.GET("/selection-options", h.CoinFinder.SelectionOptions)
	finder.GET("/forms/:formId", h.CoinFinder.Form)
	finder.POST("/daily-diary", auth, h.CoinFinder.DailyDiary)
	finder.POST("/experience-review/step1", auth, h.CoinFinder.ReflectionStep1)
	finder.POST("/experience-review/step2", auth, h.CoinFinder.ReflectionStep2)
	finder.POST("/create-card", auth, h.CoinFinder.CreateCard)
	finder.POST("/classify", auth, middleware.RateLimitPerUser(redisClient, cfg.ClassifyPerMinute), h.CoinFinder.Classify)

	cards := api.Group("/cards")
	cards.GET("/public", h.Card.ListPublic)
	cards.GET("/search", h.Card.Search)
	cards.POST("", auth, h.Card.Create)
	cards.GET("/my-cards", auth, h.Card.ListMine)
	cards.GET("/received", auth, h.Card.ListReceived)
	cards.GET("/:cardId", auth, h.Card.Get)
	cards.PUT("/:cardId/visibility", auth, h.Card.UpdateVisibility)
	cards.DELETE("/:cardId", auth, h.Card.Delete)

	friends := api.Group("/friends", auth)
	friends.POST("/request", h.Friend.Request)
	friends.GET("/requests/received", h.Friend.ListReceived)
	friends.GET("/requests/sent", h.Friend.ListSent)
	friends.POST("/requests/:id/accept", h.Friend.Accept)
	friends.POST("/requests/:id/reject", h.Friend.Reject)
	friends.GET("", h.Friend.ListFriends)
	friends.GET("/feed", h.Friend.Feed)
	friends.DELETE("/:friendMemberId", h.Friend.Remove)

	master := api.Group("/master")
	master.GET("/all", h.Master.All)
	master.GET("/coins", h.Master.Coins)
	master.GET("/coins/:coinId/keywords", h.Master.KeywordsOf)
	master.GET("/keywords", h.Master.Keywords)
	master.GET("/situation-contexts", h.Master.SituationContexts)
	master.GET("/story-types", h.Master.StoryTypes)
	master.GET("/card-options", h.Master.CardOptions)
	master.GET("/forms", h.Master.Forms)

	coins := api.Group("/coins")
	coins.GET("", h.Master.Coins)
	coins.GET("/my", auth, h.Master.MyCoins)
	coins.GET("/:coinId", h.Master.Coin)

	home := api.Group("/home", auth)
	home.GET("/dashboard", h.Home.Dashboard)
	home.GET("/most-owned-coin", h.Home.MostOwnedCoin)
	home.GET("/recent-coin", h.Home.RecentCoin)
	home.GET("/most-shared-friend", h.Home.MostSharedFriend)
}
