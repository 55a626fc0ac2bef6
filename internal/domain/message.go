package domain

import "time"

// Message - сохранённое сообщение чата
type Message struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Channel   string    `db:"channel" json:"channel"`
	Content   string    `db:"content" json:"content"`
	Username  string    `json:"username,omitempty"` // hydrated on broadcast, not stored
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
