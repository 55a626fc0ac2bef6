package http

import (
	"time"

	"levelup_backend/internal/config"
	"levelup_backend/internal/http/handlers"
	"levelup_backend/internal/http/middleware"
	"levelup_backend/internal/repository"
	"levelup_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) {
	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db, version)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second
	authRateWindow := time.Duration(cfg.AuthRateWindow) * time.Second

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))

	// Auth / onboarding
	auth := v1.Group("/auth")
	auth.Use(middleware.RedisRateLimit(cfg.AuthRateLimit, authRateWindow))
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	// Profile
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.PATCH("/me", middleware.JWT(), h.PatchMe)
	v1.GET("/profile/:id", h.Profile)

	// Reward-granting endpoints are limited per user, not per IP
	rewardRL := middleware.RewardRateLimit(30, time.Minute)

	// Quests
	v1.GET("/me/quests", middleware.JWT(), h.GetMyQuests)
	v1.POST("/quests", middleware.JWT(), h.CreateQuest)
	v1.POST("/quests/:id/complete", middleware.JWT(), rewardRL, h.CompleteQuest)

	// Focus sessions
	v1.POST("/focus/complete", middleware.JWT(), rewardRL, h.CompleteFocus)

	// Activity log & notifications
	v1.GET("/me/activity", middleware.JWT(), h.GetMyActivity)
	v1.GET("/me/notifications", middleware.JWT(), h.GetMyNotifications)
	v1.POST("/notifications/:id/read", middleware.JWT(), h.MarkNotificationRead)

	// Shop
	v1.GET("/shop", h.ListShop)
	v1.POST("/shop/:id/buy", middleware.JWT(), h.BuyItem)
	v1.POST("/shop/:id/equip", middleware.JWT(), h.EquipItem)

	// Leaderboard
	v1.GET("/leaderboard", h.GetLeaderboard)
	v1.GET("/leaderboard/rank", middleware.JWT(), h.GetMyRank)

	// Chat over WebSocket + REST history
	messageRepo := repository.NewMessageRepository(db)
	hub := ws.NewHub(messageRepo)
	r.GET("/ws", h.WS(hub))
	v1.GET("/chat/history", h.GetChatHistory)

	// Admin (shared-secret header)
	admin := v1.Group("/admin")
	admin.Use(middleware.AdminAuth(cfg.AdminPassword))
	{
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.POST("/broadcast", h.Broadcast(hub))
		admin.POST("/notify", h.NotifyUser)
		admin.POST("/quests/rotate", h.RotateDailyQuests)
	}
}
