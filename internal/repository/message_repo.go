package repository

import (
	"context"

	"levelup_backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create сохраняет сообщение и сразу подтягивает имя отправителя для рассылки
func (r *MessageRepository) Create(ctx context.Context, m *domain.Message) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO messages (user_id, channel, content)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, (SELECT username FROM users WHERE id = $1)`,
		m.UserID, m.Channel, m.Content,
	).Scan(&m.ID, &m.CreatedAt, &m.Username)
}

// GetRecent возвращает последние сообщения канала в хронологическом порядке
func (r *MessageRepository) GetRecent(ctx context.Context, channel string, limit int) ([]*domain.Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT m.id, m.user_id, m.channel, m.content, u.username, m.created_at
		 FROM messages m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.channel = $1
		 ORDER BY m.id DESC
		 LIMIT $2`,
		channel, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Channel, &m.Content, &m.Username, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}

	// reverse to chronological order
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, rows.Err()
}
