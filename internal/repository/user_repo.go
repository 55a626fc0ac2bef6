package repository

import (
	"context"
	"errors"
	"time"

	"levelup_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres SQLSTATE unique_violation
const pgerrUniqueViolation = "23505"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrInsufficientCoins = errors.New("insufficient coins")
)

const userColumns = `id, username, COALESCE(email, ''), xp, level, tier, coins, streak, last_active_at,
	strength, agility, stamina, vitality, intelligence, willpower, charisma,
	COALESCE(goal_category, ''), COALESCE(goal_specific, ''),
	equipped_title, equipped_badge, equipped_theme, created_at`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.XP, &u.Level, &u.Tier, &u.Coins, &u.Streak, &u.LastActiveAt,
		&u.Stats.Strength, &u.Stats.Agility, &u.Stats.Stamina, &u.Stats.Vitality,
		&u.Stats.Intelligence, &u.Stats.Willpower, &u.Stats.Charisma,
		&u.Goal.Category, &u.Goal.Specific,
		&u.EquippedTitle, &u.EquippedBadge, &u.EquippedTheme, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// Create регистрирует пользователя со стартовым балансом и базовыми статами
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	// Стартовый баланс для новых пользователей
	const initialCoins = 100

	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, coins, goal_category, goal_specific)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, xp, level, tier, coins, streak, created_at`,
		u.Username, u.Email, initialCoins, u.Goal.Category, u.Goal.Specific,
	).Scan(&u.ID, &u.XP, &u.Level, &u.Tier, &u.Coins, &u.Streak, &u.CreatedAt)
	if err != nil {
		// unique constraint на username арбитрирует конкурентные регистрации
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrUniqueViolation {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

// ApplyPatch обновляет только переданные поля, остальные не трогает
func (r *UserRepository) ApplyPatch(ctx context.Context, id int64, p domain.UserPatch) (*domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`UPDATE users SET
			username      = COALESCE($2, username),
			email         = COALESCE($3, email),
			goal_category = COALESCE($4, goal_category),
			goal_specific = COALESCE($5, goal_specific),
			strength      = LEAST(100, GREATEST(1, COALESCE($6, strength))),
			agility       = LEAST(100, GREATEST(1, COALESCE($7, agility))),
			stamina       = LEAST(100, GREATEST(1, COALESCE($8, stamina))),
			vitality      = LEAST(100, GREATEST(1, COALESCE($9, vitality))),
			intelligence  = LEAST(100, GREATEST(1, COALESCE($10, intelligence))),
			willpower     = LEAST(100, GREATEST(1, COALESCE($11, willpower))),
			charisma      = LEAST(100, GREATEST(1, COALESCE($12, charisma)))
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, p.Username, p.Email, p.GoalCategory, p.GoalSpecific,
		p.Strength, p.Agility, p.Stamina, p.Vitality,
		p.Intelligence, p.Willpower, p.Charisma))
}

// GetForUpdateTx читает и блокирует строку пользователя внутри транзакции
func (r *UserRepository) GetForUpdateTx(ctx context.Context, tx pgx.Tx, id int64) (*domain.User, error) {
	return scanUser(tx.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
}

// ApplyRewardsTx записывает новый снимок прогрессии внутри транзакции завершения квеста
func (r *UserRepository) ApplyRewardsTx(ctx context.Context, tx pgx.Tx, u *domain.User) error {
	tag, err := tx.Exec(ctx,
		`UPDATE users SET
			xp = $2, level = $3, tier = $4, coins = $5,
			strength = $6, agility = $7, stamina = $8, vitality = $9,
			intelligence = $10, willpower = $11, charisma = $12
		 WHERE id = $1`,
		u.ID, u.XP, u.Level, u.Tier, u.Coins,
		u.Stats.Strength, u.Stats.Agility, u.Stats.Stamina, u.Stats.Vitality,
		u.Stats.Intelligence, u.Stats.Willpower, u.Stats.Charisma,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SpendCoins списывает монеты, если баланса хватает (условный UPDATE, без блокировок)
func (r *UserRepository) SpendCoins(ctx context.Context, userID, amount int64) (int64, error) {
	var newBalance int64
	err := r.db.QueryRow(ctx,
		`UPDATE users SET coins = coins - $1 WHERE id = $2 AND coins >= $1 RETURNING coins`,
		amount, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			_ = r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
			if !exists {
				return 0, ErrUserNotFound
			}
			return 0, ErrInsufficientCoins
		}
		return 0, err
	}
	return newBalance, nil
}

// TouchStreak обновляет серию: вчера -> +1, сегодня -> без изменений, иначе -> 1
func (r *UserRepository) TouchStreak(ctx context.Context, userID int64, now time.Time) (int, error) {
	var streak int
	err := r.db.QueryRow(ctx,
		`UPDATE users SET
			streak = CASE
				WHEN last_active_at = $2::date THEN streak
				WHEN last_active_at = $2::date - 1 THEN streak + 1
				ELSE 1
			END,
			last_active_at = $2::date
		 WHERE id = $1
		 RETURNING streak`,
		userID, now,
	).Scan(&streak)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, err
	}
	return streak, nil
}

// Equip надевает косметический предмет; предмет должен быть куплен
func (r *UserRepository) Equip(ctx context.Context, userID int64, kind domain.ItemKind, name string) error {
	column := ""
	switch kind {
	case domain.ItemKindTitle:
		column = "equipped_title"
	case domain.ItemKindBadge:
		column = "equipped_badge"
	case domain.ItemKindTheme:
		column = "equipped_theme"
	default:
		return errors.New("unknown item kind")
	}

	tag, err := r.db.Exec(ctx,
		`UPDATE users SET `+column+` = $2 WHERE id = $1`, userID, name)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete - деструктивная админская операция; каскадно удаляет связанные строки
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// LeaderboardEntry - строка таблицы лидеров
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	XP       int64  `json:"xp"`
	Level    int    `json:"level"`
	Tier     string `json:"tier"`
}

// GetTopByXP возвращает топ пользователей по XP
func (r *UserRepository) GetTopByXP(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, username, xp, level, tier
		 FROM users
		 ORDER BY xp DESC, id
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.XP, &e.Level, &e.Tier); err != nil {
			return nil, err
		}
		e.Rank = rank
		res = append(res, e)
		rank++
	}
	return res, rows.Err()
}

// GetUserRank возвращает позицию пользователя в таблице лидеров по XP
func (r *UserRepository) GetUserRank(ctx context.Context, userID int64) (int, int64, error) {
	var rank int
	var xp int64
	err := r.db.QueryRow(ctx, `
		WITH ranked AS (
			SELECT id, xp, RANK() OVER (ORDER BY xp DESC) AS rank
			FROM users
		)
		SELECT rank, xp FROM ranked WHERE id = $1`, userID).Scan(&rank, &xp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, ErrUserNotFound
		}
		return 0, 0, err
	}
	return rank, xp, nil
}
