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

var (
	ErrQuestNotFound    = errors.New("quest not found")
	ErrForbidden        = errors.New("quest belongs to another user")
	ErrAlreadyCompleted = errors.New("quest already completed")
)

// QuestService выполняет транзакцию завершения квеста: награда начисляется
// ровно один раз на строку квеста, сериализация конкурентных попыток идёт
// через условный UPDATE в БД.
type QuestService struct {
	db        *pgxpool.Pool
	questRepo *repository.QuestRepository
	userRepo  *repository.UserRepository
	activity  *ActivityService
}

func NewQuestService(db *pgxpool.Pool, activity *ActivityService) *QuestService {
	return &QuestService{
		db:        db,
		questRepo: repository.NewQuestRepository(db),
		userRepo:  repository.NewUserRepository(db),
		activity:  activity,
	}
}

// CompletionResult - итог завершения квеста
type CompletionResult struct {
	User  *domain.User  `json:"user"`
	Quest *domain.Quest `json:"quest"`
	// фактически применённые дельты (после клампа статов)
	XPDelta    int64          `json:"xp_delta"`
	CoinsDelta int64          `json:"coins_delta"`
	StatDeltas map[string]int `json:"stat_deltas,omitempty"`
	TierUp     bool           `json:"tier_up"`
}

// Complete атомарно выдаёт награду за квест.
//
// Порядок внутри транзакции: загрузка квеста (NotFound), проверка владения
// (Forbidden), условный переход completed=false -> true (AlreadyCompleted при
// нуле строк), блокировка строки пользователя, пересчёт level/tier, запись
// нового снимка. Журнал активности и уведомление пишутся после коммита
// best-effort: их отказ не откатывает начисление.
func (s *QuestService) Complete(ctx context.Context, questID, userID int64) (*CompletionResult, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	quest, err := s.questRepo.GetByIDTx(ctx, tx, questID)
	if err != nil {
		if errors.Is(err, repository.ErrQuestNotFound) {
			return nil, ErrQuestNotFound
		}
		return nil, err
	}

	if quest.UserID != userID {
		return nil, ErrForbidden
	}

	if quest.Completed {
		return nil, ErrAlreadyCompleted
	}

	now := time.Now()
	updatedQuest, err := s.questRepo.MarkCompletedTx(ctx, tx, questID, now)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// проиграли гонку конкурентному завершению
			return nil, ErrAlreadyCompleted
		}
		return nil, err
	}

	user, err := s.userRepo.GetForUpdateTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	oldTier := user.Tier

	user.XP += updatedQuest.RewardXP
	user.Coins += updatedQuest.RewardCoins
	user.Level = progression.LevelForXP(user.XP)
	user.Tier = string(progression.TierForXP(user.XP))
	appliedStats := progression.ApplyStatDeltas(&user.Stats, updatedQuest.RewardStats)

	if err := s.userRepo.ApplyRewardsTx(ctx, tx, user); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// observability, not correctness: log-and-continue on failure
	s.activity.Record(ctx, userID, domain.ActionQuestCompleted,
		updatedQuest.RewardXP, updatedQuest.RewardCoins, appliedStats)
	s.activity.Notify(ctx, userID, domain.NotificationQuest,
		"Quest completed", quest.Title)

	return &CompletionResult{
		User:       user,
		Quest:      updatedQuest,
		XPDelta:    updatedQuest.RewardXP,
		CoinsDelta: updatedQuest.RewardCoins,
		StatDeltas: appliedStats,
		TierUp:     user.Tier != oldTier,
	}, nil
}
