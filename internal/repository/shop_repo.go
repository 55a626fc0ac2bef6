package repository

import (
	"context"
	"errors"

	"levelup_backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrItemNotFound = errors.New("item not found")
	ErrAlreadyOwned = errors.New("item already owned")
)

type ShopRepository struct {
	db *pgxpool.Pool
}

func NewShopRepository(db *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{db: db}
}

func (r *ShopRepository) GetItem(ctx context.Context, id int64) (*domain.ShopItem, error) {
	var item domain.ShopItem
	err := r.db.QueryRow(ctx,
		`SELECT id, name, kind, price, created_at FROM shop_items WHERE id = $1`,
		id,
	).Scan(&item.ID, &item.Name, &item.Kind, &item.Price, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *ShopRepository) ListItems(ctx context.Context) ([]*domain.ShopItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, kind, price, created_at FROM shop_items ORDER BY kind, price, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.ShopItem
	for rows.Next() {
		var item domain.ShopItem
		if err := rows.Scan(&item.ID, &item.Name, &item.Kind, &item.Price, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	return result, rows.Err()
}

// Purchase списывает монеты и записывает владение одной транзакцией.
// Условный UPDATE баланса отсекает покупку при нехватке монет.
func (r *ShopRepository) Purchase(ctx context.Context, userID int64, item *domain.ShopItem) (newBalance int64, err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var owned bool
	if err = tx.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_items WHERE user_id = $1 AND item_id = $2)`,
		userID, item.ID,
	).Scan(&owned); err != nil {
		return 0, err
	}
	if owned {
		return 0, ErrAlreadyOwned
	}

	err = tx.QueryRow(ctx,
		`UPDATE users SET coins = coins - $1 WHERE id = $2 AND coins >= $1 RETURNING coins`,
		item.Price, userID,
	).Scan(&newBalance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			_ = tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
			if !exists {
				return 0, ErrUserNotFound
			}
			return 0, ErrInsufficientCoins
		}
		return 0, err
	}

	if _, err = tx.Exec(ctx,
		`INSERT INTO user_items (user_id, item_id) VALUES ($1, $2)`,
		userID, item.ID,
	); err != nil {
		return 0, err
	}

	return newBalance, tx.Commit(ctx)
}

// Owns проверяет владение предметом (для equip)
func (r *ShopRepository) Owns(ctx context.Context, userID, itemID int64) (bool, error) {
	var owned bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_items WHERE user_id = $1 AND item_id = $2)`,
		userID, itemID,
	).Scan(&owned)
	return owned, err
}
