package domain

import "time"

// Stat names used in reward maps and patch payloads
const (
	StatStrength     = "strength"
	StatAgility      = "agility"
	StatStamina      = "stamina"
	StatVitality     = "vitality"
	StatIntelligence = "intelligence"
	StatWillpower    = "willpower"
	StatCharisma     = "charisma"
)

// StatNames - канонический порядок атрибутов (совпадает с порядком колонок)
var StatNames = []string{
	StatStrength, StatAgility, StatStamina, StatVitality,
	StatIntelligence, StatWillpower, StatCharisma,
}

// Stats - семь атрибутов саморазвития, каждый в диапазоне 1..100
type Stats struct {
	Strength     int `db:"strength" json:"strength"`
	Agility      int `db:"agility" json:"agility"`
	Stamina      int `db:"stamina" json:"stamina"`
	Vitality     int `db:"vitality" json:"vitality"`
	Intelligence int `db:"intelligence" json:"intelligence"`
	Willpower    int `db:"willpower" json:"willpower"`
	Charisma     int `db:"charisma" json:"charisma"`
}

// Get returns the value of a named stat, false for unknown names.
func (s Stats) Get(name string) (int, bool) {
	switch name {
	case StatStrength:
		return s.Strength, true
	case StatAgility:
		return s.Agility, true
	case StatStamina:
		return s.Stamina, true
	case StatVitality:
		return s.Vitality, true
	case StatIntelligence:
		return s.Intelligence, true
	case StatWillpower:
		return s.Willpower, true
	case StatCharisma:
		return s.Charisma, true
	}
	return 0, false
}

// Set assigns a named stat. Unknown names are ignored.
func (s *Stats) Set(name string, value int) {
	switch name {
	case StatStrength:
		s.Strength = value
	case StatAgility:
		s.Agility = value
	case StatStamina:
		s.Stamina = value
	case StatVitality:
		s.Vitality = value
	case StatIntelligence:
		s.Intelligence = value
	case StatWillpower:
		s.Willpower = value
	case StatCharisma:
		s.Charisma = value
	}
}

// Goal - цель пользователя в явном виде (раньше кодировалась строкой "category:goal")
type Goal struct {
	Category string `db:"goal_category" json:"category"`
	Specific string `db:"goal_specific" json:"specific_goal"`
}

// User - профиль со снимком прогрессии
type User struct {
	ID            int64      `db:"id" json:"id"`
	Username      string     `db:"username" json:"username"`
	Email         string     `db:"email" json:"email,omitempty"`
	XP            int64      `db:"xp" json:"xp"`
	Level         int        `db:"level" json:"level"`
	Tier          string     `db:"tier" json:"tier"`
	Coins         int64      `db:"coins" json:"coins"`
	Streak        int        `db:"streak" json:"streak"`
	LastActiveAt  *time.Time `db:"last_active_at" json:"last_active_at,omitempty"`
	Stats         Stats      `json:"stats"`
	Goal          Goal       `json:"goal"`
	EquippedTitle *string    `db:"equipped_title" json:"equipped_title,omitempty"`
	EquippedBadge *string    `db:"equipped_badge" json:"equipped_badge,omitempty"`
	EquippedTheme *string    `db:"equipped_theme" json:"equipped_theme,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

// UserPatch - частичное обновление профиля: применяются только заполненные поля
type UserPatch struct {
	Username     *string `json:"username,omitempty"`
	Email        *string `json:"email,omitempty"`
	GoalCategory *string `json:"goal_category,omitempty"`
	GoalSpecific *string `json:"goal_specific,omitempty"`

	Strength     *int `json:"strength,omitempty"`
	Agility      *int `json:"agility,omitempty"`
	Stamina      *int `json:"stamina,omitempty"`
	Vitality     *int `json:"vitality,omitempty"`
	Intelligence *int `json:"intelligence,omitempty"`
	Willpower    *int `json:"willpower,omitempty"`
	Charisma     *int `json:"charisma,omitempty"`
}

// Empty reports whether the patch carries no fields at all.
func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Email == nil &&
		p.GoalCategory == nil && p.GoalSpecific == nil &&
		p.Strength == nil && p.Agility == nil && p.Stamina == nil &&
		p.Vitality == nil && p.Intelligence == nil &&
		p.Willpower == nil && p.Charisma == nil
}
