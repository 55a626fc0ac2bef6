package repository

import (
	"context"
	"errors"

	"levelup_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository struct {
	db *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO notifications (user_id, ntype, title, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, read, created_at`,
		n.UserID, n.NType, n.Title, n.Message,
	).Scan(&n.ID, &n.Read, &n.CreatedAt)
}

// CreateForAll создаёт уведомление каждому пользователю (админская рассылка)
func (r *NotificationRepository) CreateForAll(ctx context.Context, ntype, title, message string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`INSERT INTO notifications (user_id, ntype, title, message)
		 SELECT id, $1, $2, $3 FROM users`,
		ntype, title, message,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// GetByUserID возвращает уведомления пользователя, непрочитанные первыми
func (r *NotificationRepository) GetByUserID(ctx context.Context, userID int64, limit int) ([]*domain.Notification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, ntype, title, message, read, created_at
		 FROM notifications
		 WHERE user_id = $1
		 ORDER BY read, created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.NType, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &n)
	}
	return result, rows.Err()
}

// MarkRead помечает уведомление прочитанным; только своё
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
