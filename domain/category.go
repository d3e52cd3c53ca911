package domain

import (
	"time"
)

// CREATE TABLE public.categories (
//     category_id   BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name          TEXT NOT NULL,
//     display_order BIGINT DEFAULT 0,
//     created_at    TIMESTAMPTZ DEFAULT NOW()
// );

type Category struct {
	CategoryID   uint64    `gorm:"primaryKey;column:category_id;autoIncrement" json:"category_id"`
	Name         string    `gorm:"column:name;type:text;not null" json:"name"`
	DisplayOrder int       `gorm:"column:display_order;default:0" json:"display_order"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Category) TableName() string {
	return "categories"
}
