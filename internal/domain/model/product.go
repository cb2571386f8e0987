package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusDraft    ProductStatus = "draft"
)

func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDraft:
		return true
	}
	return false
}

// レビューの集計値。レビュー書き込みのたびに再計算する
type ReviewSummary struct {
	AvgRating   float64 `gorm:"not null;default:0" json:"avg_rating"`
	RatingCount int64   `gorm:"not null;default:0" json:"rating_count"`
}

type Product struct {
	ID            string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null;index" json:"name"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	ProductImages []Attachment    `gorm:"type:jsonb;serializer:json" json:"product_images"`
	Price         decimal.Decimal `gorm:"type:numeric(12,2);not null;index" json:"price"`
	StockQuantity int64           `gorm:"not null;default:0;index" json:"stock_quantity"`
	Status        ProductStatus   `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`
	SellerID      string          `gorm:"type:varchar(36);not null;index" json:"seller_id"`
	ReviewSummary ReviewSummary   `gorm:"embedded;embeddedPrefix:review_" json:"review_summary"`

	//複数カテゴリに属せる
	CategoryIDs pq.StringArray `gorm:"column:category_ids;type:text[];not null" json:"category_id"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
