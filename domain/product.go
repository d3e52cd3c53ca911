package domain

import (
	"time"
)

// CREATE TABLE public.products (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name         TEXT NOT NULL,
//     brand        TEXT,
//     category     TEXT NOT NULL,
//     description  TEXT,
//     price        NUMERIC NOT NULL,
//     sale_price   NUMERIC,
//     image_url    TEXT,
//     rating       NUMERIC DEFAULT 0,
//     rating_count BIGINT DEFAULT 0,
//     popularity   NUMERIC DEFAULT 0,
//     is_active    BOOLEAN DEFAULT TRUE,
//     created_at   TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:text;not null" json:"name"`
	Brand       string    `gorm:"column:brand;type:text" json:"brand"`
	Category    string    `gorm:"column:category;type:text;not null" json:"category"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Price       float64   `gorm:"column:price;type:numeric;not null" json:"price"`
	SalePrice   float64   `gorm:"column:sale_price;type:numeric" json:"sale_price"`
	ImageURL    string    `gorm:"column:image_url;type:text" json:"image_url"`
	Rating      float64   `gorm:"column:rating;type:numeric;default:0" json:"rating"`
	RatingCount int64     `gorm:"column:rating_count;default:0" json:"rating_count"`
	Popularity  float64   `gorm:"column:popularity;type:numeric;default:0" json:"popularity"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductFilter narrows catalog queries. Zero values mean "no constraint".
type ProductFilter struct {
	Category   string
	Categories []string
	Brands     []string
	PriceMin   float64
	PriceMax   float64
	ExcludeID  uint64
	ActiveOnly bool
}
