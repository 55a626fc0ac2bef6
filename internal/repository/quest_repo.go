package repository

import (
	"context"
	"errors"
	"time"

	"levelup_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrQuestNotFound = errors.New("quest not found")

const questColumns = `id, user_id, title, COALESCE(description, ''), quest_type, difficulty,
	reward_xp, reward_coins, reward_stats, completed, completed_at, expires_at, created_at`

type QuestRepository struct {
	db *pgxpool.Pool
}

func NewQuestRepository(db *pgxpool.Pool) *QuestRepository {
	return &QuestRepository{db: db}
}

func scanQuest(row pgx.Row) (*domain.Quest, error) {
	var q domain.Quest
	err := row.Scan(
		&q.ID, &q.UserID, &q.Title, &q.Description, &q.QuestType, &q.Difficulty,
		&q.RewardXP, &q.RewardCoins, &q.RewardStats, &q.Completed,
		&q.CompletedAt, &q.ExpiresAt, &q.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *QuestRepository) GetByID(ctx context.Context, id int64) (*domain.Quest, error) {
	return scanQuest(r.db.QueryRow(ctx,
		`SELECT `+questColumns+` FROM quests WHERE id = $1`, id))
}

// GetByIDTx читает квест внутри транзакции завершения
func (r *QuestRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.Quest, error) {
	return scanQuest(tx.QueryRow(ctx,
		`SELECT `+questColumns+` FROM quests WHERE id = $1`, id))
}

// GetUserQuests возвращает активные (не истёкшие) квесты пользователя
func (r *QuestRepository) GetUserQuests(ctx context.Context, userID int64) ([]*domain.Quest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+questColumns+`
		 FROM quests
		 WHERE user_id = $1 AND (expires_at IS NULL OR expires_at > now())
		 ORDER BY completed, quest_type, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, q)
	}
	return result, rows.Err()
}

func (r *QuestRepository) Create(ctx context.Context, q *domain.Quest) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO quests (user_id, title, description, quest_type, difficulty,
		                     reward_xp, reward_coins, reward_stats, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, completed, created_at`,
		q.UserID, q.Title, q.Description, q.QuestType, q.Difficulty,
		q.RewardXP, q.RewardCoins, q.RewardStats, q.ExpiresAt,
	).Scan(&q.ID, &q.Completed, &q.CreatedAt)
}

// MarkCompletedTx атомарно переводит квест в completed=true.
// pgx.ErrNoRows означает, что квест уже был завершён конкурентной попыткой -
// это и есть гарантия "награда ровно один раз". Арбитром выступает сама БД,
// поэтому схема работает и при нескольких stateless-инстансах.
func (r *QuestRepository) MarkCompletedTx(ctx context.Context, tx pgx.Tx, questID int64, now time.Time) (*domain.Quest, error) {
	var q domain.Quest
	err := tx.QueryRow(ctx,
		`UPDATE quests SET completed = true, completed_at = $2
		 WHERE id = $1 AND completed = false
		 RETURNING `+questColumns,
		questID, now,
	).Scan(
		&q.ID, &q.UserID, &q.Title, &q.Description, &q.QuestType, &q.Difficulty,
		&q.RewardXP, &q.RewardCoins, &q.RewardStats, &q.Completed,
		&q.CompletedAt, &q.ExpiresAt, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ExpireDaily помечает истекшие незавершённые daily-квесты; ротация создаёт
// новые строки вместо сброса старых
func (r *QuestRepository) ExpireDaily(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE quests SET expires_at = now()
		 WHERE quest_type = 'daily' AND completed = false
		   AND (expires_at IS NULL OR expires_at > now())
		   AND created_at < date_trunc('day', now())`,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
