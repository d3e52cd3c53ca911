package domain

import (
	"time"
)

// CREATE TABLE public.wishlist_items (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id    BIGINT NOT NULL,
//     product_id BIGINT NOT NULL,
//     created_at TIMESTAMPTZ DEFAULT NOW(),
//     UNIQUE (user_id, product_id)
// );

type WishlistItem struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_wishlist_user_product" json:"user_id"`
	ProductID uint64    `gorm:"column:product_id;not null;uniqueIndex:idx_wishlist_user_product" json:"product_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}
