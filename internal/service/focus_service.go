package service

import (
	"context"
	"errors"
	"time"

	"levelup_backend/internal/domain"
	"levelup_backend/internal/progression"
	"levelup_backend/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalidDuration = errors.New("invalid focus duration")

// XP per full minute of a completed focus session, capped per session.
const (
	focusXPPerMinute = 2
	focusMaxMinutes  = 180
)

// FocusService начисляет XP за завершённые фокус-сессии и ведёт серию
// (streak) по дням активности.
type FocusService struct {
	db       *pgxpool.Pool
	userRepo *repository.UserRepository
	activity *ActivityService
}

func NewFocusService(db *pgxpool.Pool, activity *ActivityService) *FocusService {
	return &FocusService{
		db:       db,
		userRepo: repository.NewUserRepository(db),
		activity: activity,
	}
}

// FocusResult - итог фокус-сессии
type FocusResult struct {
	User    *domain.User `json:"user"`
	XPDelta int64        `json:"xp_delta"`
	Streak  int          `json:"streak"`
}

// CompleteSession выдаёт XP за сессию и обновляет серию активности.
func (s *FocusService) CompleteSession(ctx context.Context, userID int64, minutes int) (*FocusResult, error) {
	if minutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if minutes > focusMaxMinutes {
		minutes = focusMaxMinutes
	}

	xpDelta := int64(minutes * focusXPPerMinute)

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	user, err := s.userRepo.GetForUpdateTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	user.XP += xpDelta
	user.Level = progression.LevelForXP(user.XP)
	user.Tier = string(progression.TierForXP(user.XP))

	if err := s.userRepo.ApplyRewardsTx(ctx, tx, user); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	streak, err := s.userRepo.TouchStreak(ctx, userID, time.Now())
	if err != nil {
		// streak is a counter, not a reward; keep the XP grant
		streak = user.Streak
	}
	user.Streak = streak

	s.activity.Record(ctx, userID, domain.ActionFocusCompleted, xpDelta, 0, nil)

	return &FocusResult{User: user, XPDelta: xpDelta, Streak: streak}, nil
}
