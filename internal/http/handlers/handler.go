package handlers

import (
	"levelup_backend/internal/repository"
	"levelup_backend/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB               *pgxpool.Pool
	UserRepo         *repository.UserRepository
	QuestRepo        *repository.QuestRepository
	ShopRepo         *repository.ShopRepository
	NotificationRepo *repository.NotificationRepository
	MessageRepo      *repository.MessageRepository

	QuestService    *service.QuestService
	FocusService    *service.FocusService
	ActivityService *service.ActivityService
}

func NewHandler(db *pgxpool.Pool) *Handler {
	activity := service.NewActivityService(db)
	return &Handler{
		DB:               db,
		UserRepo:         repository.NewUserRepository(db),
		QuestRepo:        repository.NewQuestRepository(db),
		ShopRepo:         repository.NewShopRepository(db),
		NotificationRepo: repository.NewNotificationRepository(db),
		MessageRepo:      repository.NewMessageRepository(db),
		QuestService:     service.NewQuestService(db, activity),
		FocusService:     service.NewFocusService(db, activity),
		ActivityService:  activity,
	}
}

// getUserID извлекает user_id из контекста Gin
func getUserID(c interface{ Get(any) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
