package domain

import (
	"time"
)

// CREATE TABLE public.bag_items (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id    BIGINT NOT NULL,
//     product_id BIGINT NOT NULL,
//     quantity   BIGINT NOT NULL DEFAULT 1,
//     size       TEXT,
//     created_at TIMESTAMPTZ DEFAULT NOW(),
//     updated_at TIMESTAMPTZ DEFAULT NOW(),
//     UNIQUE (user_id, product_id)
// );

type BagItem struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_bag_user_product" json:"user_id"`
	ProductID uint64    `gorm:"column:product_id;not null;uniqueIndex:idx_bag_user_product" json:"product_id"`
	Quantity  int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	Size      string    `gorm:"column:size;type:text" json:"size"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (BagItem) TableName() string {
	return "bag_items"
}
