package handler

import (
	"rosca-payflow-bridge/internal/adapter/http/middleware"
	redisStore "rosca-payflow-bridge/internal/adapter/storage/redis"
	"rosca-payflow-bridge/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	RoscaSvc         ports.RoscaService
	GroupRepo        ports.GroupRepository
	MemberRepo       ports.MemberRepository
	IdempotencyCache ports.IdempotencyCache     // nil = contribution replay protection disabled
	RateLimitStore   *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers   []ports.HealthChecker
	Logger           zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL, Redis and PayFlow)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	groupHandler := NewGroupHandler(deps.GroupRepo, deps.MemberRepo, deps.RoscaSvc, deps.Logger)
	roundHandler := NewRoundHandler(deps.GroupRepo, deps.MemberRepo, deps.RoscaSvc, deps.IdempotencyCache, deps.Logger)
	reportHandler := NewReportHandler(deps.GroupRepo, deps.MemberRepo, deps.RoscaSvc)

	v1 := r.Group("/api/v1")

	groups := v1.Group("/groups")
	{
		groups.POST("", rl("groups"), groupHandler.CreateGroup)
		groups.GET("/:groupId", rl("reads"), groupHandler.GetGroup)
		groups.GET("/:groupId/members", rl("reads"), groupHandler.ListMembers)
		groups.POST("/:groupId/members", rl("members"), groupHandler.AddMember)

		groups.POST("/:groupId/rounds/:round/contributions", rl("contributions"), roundHandler.Contribute)
		groups.POST("/:groupId/rounds/:round/collect", rl("collect"), roundHandler.Collect)
		groups.POST("/:groupId/rounds/:round/payout", rl("payouts"), roundHandler.Payout)

		groups.GET("/:groupId/transactions", rl("reads"), reportHandler.GroupTransactions)
		groups.GET("/:groupId/members/:memberId/transactions", rl("reads"), reportHandler.MemberTransactions)
		groups.GET("/:groupId/members/:memberId/stats", rl("reads"), reportHandler.MemberStats)
	}

	return r
}
