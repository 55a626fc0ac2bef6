package service

import (
	"context"

	"levelup_backend/internal/domain"
	"levelup_backend/internal/logger"
	"levelup_backend/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ActivityService records reward events and user notifications. Writes are
// best-effort: a failed insert is logged and never fails the caller.
type ActivityService struct {
	activityRepo     *repository.ActivityRepository
	notificationRepo *repository.NotificationRepository
}

func NewActivityService(db *pgxpool.Pool) *ActivityService {
	return &ActivityService{
		activityRepo:     repository.NewActivityRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
	}
}

// Record appends one activity history entry for a reward-granting event.
func (s *ActivityService) Record(ctx context.Context, userID int64, action string, xpDelta, coinsDelta int64, statDeltas map[string]int) {
	rec := &domain.ActivityRecord{
		UserID:     userID,
		Action:     action,
		XPDelta:    xpDelta,
		CoinsDelta: coinsDelta,
		StatDeltas: statDeltas,
	}

	if err := s.activityRepo.Create(ctx, rec); err != nil {
		logger.Error("failed to record activity", "error", err, "action", action, "user_id", userID)
	}
}

// Notify creates an unread notification for the user.
func (s *ActivityService) Notify(ctx context.Context, userID int64, ntype, title, message string) {
	n := &domain.Notification{
		UserID:  userID,
		NType:   ntype,
		Title:   title,
		Message: message,
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		logger.Error("failed to create notification", "error", err, "type", ntype, "user_id", userID)
	}
}

// NotifyAll рассылает уведомление всем пользователям (админская рассылка)
func (s *ActivityService) NotifyAll(ctx context.Context, ntype, title, message string) int64 {
	n, err := s.notificationRepo.CreateForAll(ctx, ntype, title, message)
	if err != nil {
		logger.Error("failed to create broadcast notifications", "error", err, "type", ntype)
		return 0
	}
	return n
}

// GetHistory returns the user's recent activity log.
func (s *ActivityService) GetHistory(ctx context.Context, userID int64, limit int) ([]*domain.ActivityRecord, error) {
	return s.activityRepo.GetByUserID(ctx, userID, limit)
}
