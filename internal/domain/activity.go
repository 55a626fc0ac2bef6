package domain

import "time"

// Activity actions
const (
	ActionQuestCompleted = "quest_completed"
	ActionFocusCompleted = "focus_completed"
	ActionShopPurchase   = "shop_purchase"
	ActionAdminAdjust    = "admin_adjust"
)

// ActivityRecord - неизменяемая запись журнала начисления наград.
// Создаётся один раз на событие, никогда не изменяется и не удаляется.
type ActivityRecord struct {
	ID         int64          `db:"id" json:"id"`
	UserID     int64          `db:"user_id" json:"user_id"`
	Action     string         `db:"action" json:"action"`
	XPDelta    int64          `db:"xp_delta" json:"xp_delta"`
	CoinsDelta int64          `db:"coins_delta" json:"coins_delta"`
	StatDeltas map[string]int `db:"stat_deltas" json:"stat_deltas,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

// Notification types
const (
	NotificationQuest    = "quest"
	NotificationReward   = "reward"
	NotificationSystem   = "system"
	NotificationAdmin    = "admin"
)

// Notification - пользовательское сообщение; изменяется только флаг read
type Notification struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	NType     string    `db:"ntype" json:"type"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Read      bool      `db:"read" json:"read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
