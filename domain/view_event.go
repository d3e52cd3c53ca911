package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Traffic sources a view can arrive from.
const (
	ViewSourceDirect   = "direct"
	ViewSourceSearch   = "search"
	ViewSourceCategory = "category"
	ViewSourceReco     = "recommendation"
	ViewSourceWishlist = "wishlist"
)

// CREATE TABLE public.view_events (
//     id             BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id        BIGINT,
//     product_id     BIGINT NOT NULL,
//     session_id     TEXT NOT NULL,
//     viewed_at      TIMESTAMPTZ NOT NULL,
//     time_spent     BIGINT DEFAULT 0,
//     scroll_depth   BIGINT DEFAULT 0,
//     source         TEXT DEFAULT 'direct',
//     added_to_wishlist BOOLEAN DEFAULT FALSE,
//     added_to_bag   BOOLEAN DEFAULT FALSE,
//     metadata       JSONB
// );
// CREATE INDEX idx_view_events_product ON view_events (product_id, viewed_at);
// CREATE INDEX idx_view_events_session ON view_events (product_id, session_id, viewed_at);

// ViewEvent is one user-or-anonymous look at one product in one
// session. UserID is nil for anonymous views. At most one live event
// exists per (user, product, session) within the session merge window;
// repeated views inside the window mutate the existing row.
type ViewEvent struct {
	ID              uint64            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          *uint             `gorm:"column:user_id" json:"user_id"`
	ProductID       uint64            `gorm:"column:product_id;not null" json:"product_id"`
	SessionID       string            `gorm:"column:session_id;not null" json:"session_id"`
	ViewedAt        time.Time         `gorm:"column:viewed_at;not null" json:"viewed_at"`
	TimeSpent       int               `gorm:"column:time_spent;default:0" json:"time_spent"`
	ScrollDepth     int               `gorm:"column:scroll_depth;default:0" json:"scroll_depth"`
	Source          string            `gorm:"column:source;default:direct" json:"source"`
	AddedToWishlist bool              `gorm:"column:added_to_wishlist;default:false" json:"added_to_wishlist"`
	AddedToBag      bool              `gorm:"column:added_to_bag;default:false" json:"added_to_bag"`
	Metadata        datatypes.JSONMap `gorm:"column:metadata;type:jsonb" json:"metadata"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (ViewEvent) TableName() string {
	return "view_events"
}

// ViewerStat is a per-viewer aggregate over a product's view events.
type ViewerStat struct {
	UserID     uint      `json:"user_id"`
	ViewCount  int       `json:"view_count"`
	LastViewed time.Time `json:"last_viewed"`
}

// ProductViewStat is a per-product aggregate over a cohort's view events.
type ProductViewStat struct {
	ProductID     uint64  `json:"product_id"`
	UniqueViewers int     `json:"unique_viewers"`
	TotalViews    int     `json:"total_views"`
	AvgTimeSpent  float64 `json:"avg_time_spent"`
	WishlistAdds  int     `json:"wishlist_adds"`
	BagAdds       int     `json:"bag_adds"`
}
