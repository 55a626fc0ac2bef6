package repository

import (
	"context"

	"levelup_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ActivityRepository struct {
	db *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// Create - append-only вставка записи журнала
func (r *ActivityRepository) Create(ctx context.Context, rec *domain.ActivityRecord) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO activity_history (user_id, action, xp_delta, coins_delta, stat_deltas)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		rec.UserID, rec.Action, rec.XPDelta, rec.CoinsDelta, rec.StatDeltas,
	).Scan(&rec.ID, &rec.CreatedAt)
}

// GetByUserID возвращает последние записи журнала пользователя
func (r *ActivityRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.ActivityRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, action, xp_delta, coins_delta, stat_deltas, created_at
		 FROM activity_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.ActivityRecord
	for rows.Next() {
		var rec domain.ActivityRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Action, &rec.XPDelta,
			&rec.CoinsDelta, &rec.StatDeltas, &rec.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &rec)
	}
	return result, rows.Err()
}

// CountForAction - число записей по действию (используется в тестах сохранения наград)
func (r *ActivityRepository) CountForAction(ctx context.Context, userID int64, action string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM activity_history WHERE user_id = $1 AND action = $2`,
		userID, action,
	).Scan(&n)
	return n, err
}
