package model

import "time"

type SellerRatingSummary struct {
	AvgRating   float64 `gorm:"not null;default:0" json:"avg_rating"`
	RatingCount int64   `gorm:"not null;default:0" json:"rating_count"`

	//この出品者の商品数（非正規化カウンタ）
	NumProducts int64 `gorm:"not null;default:0" json:"num_products"`
}

// 出品者。1ユーザーにつき1つ
type Seller struct {
	ID               string `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID           string `gorm:"type:varchar(36);not null;uniqueIndex:uq_sellers_user_id" json:"user_id"`
	StoreName        string `gorm:"type:varchar(255);not null" json:"store_name"`
	StoreSlug        string `gorm:"type:varchar(255);not null;index" json:"store_slug"`
	StoreDescription string `gorm:"type:text;not null" json:"store_description"`
	Address          string `gorm:"type:text;not null" json:"address"`
	ContactNumber    string `gorm:"type:varchar(30);not null" json:"contact_number"`

	ProfilePhoto *Attachment `gorm:"type:jsonb;serializer:json" json:"profile_photo"`
	CoverPhoto   *Attachment `gorm:"type:jsonb;serializer:json" json:"cover_photo"`

	RatingSummary SellerRatingSummary `gorm:"embedded;embeddedPrefix:rating_" json:"rating_summary"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
