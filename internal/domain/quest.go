package domain

import "time"

// QuestType - тип квеста
type QuestType string

const (
	QuestTypeDaily    QuestType = "daily"
	QuestTypeWeekly   QuestType = "weekly"
	QuestTypeAI       QuestType = "ai"
	QuestTypeCampaign QuestType = "campaign"
	QuestTypeBoss     QuestType = "boss"
)

// Difficulty - сложность квеста, определяет монетную награду
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
	DifficultyEpic   Difficulty = "epic"
)

// Quest - единица вознаграждаемой работы. Награда выдаётся ровно один раз:
// переход completed=false -> true допустим не более одного раза на строку.
type Quest struct {
	ID          int64          `db:"id" json:"id"`
	UserID      int64          `db:"user_id" json:"user_id"`
	Title       string         `db:"title" json:"title"`
	Description string         `db:"description" json:"description,omitempty"`
	QuestType   QuestType      `db:"quest_type" json:"quest_type"`
	Difficulty  Difficulty     `db:"difficulty" json:"difficulty"`
	RewardXP    int64          `db:"reward_xp" json:"reward_xp"`
	RewardCoins int64          `db:"reward_coins" json:"reward_coins"`
	RewardStats map[string]int `db:"reward_stats" json:"reward_stats,omitempty"`
	Completed   bool           `db:"completed" json:"completed"`
	CompletedAt *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
	ExpiresAt   *time.Time     `db:"expires_at" json:"expires_at,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// Expired reports whether the quest's rotation window has passed.
func (q *Quest) Expired(now time.Time) bool {
	return q.ExpiresAt != nil && q.ExpiresAt.Before(now)
}
