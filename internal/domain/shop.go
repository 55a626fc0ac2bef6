package domain

import "time"

// ItemKind - вид косметического предмета
type ItemKind string

const (
	ItemKindTitle ItemKind = "title"
	ItemKindBadge ItemKind = "badge"
	ItemKindTheme ItemKind = "theme"
)

// ShopItem - косметический предмет в магазине
type ShopItem struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Kind      ItemKind  `db:"kind" json:"kind"`
	Price     int64     `db:"price" json:"price"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserItem - купленный пользователем предмет
type UserItem struct {
	UserID      int64     `db:"user_id" json:"user_id"`
	ItemID      int64     `db:"item_id" json:"item_id"`
	PurchasedAt time.Time `db:"purchased_at" json:"purchased_at"`
}
