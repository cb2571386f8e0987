package model

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// レビュー。(user_id, product_id) で一意
type Review struct {
	ID        string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string       `gorm:"type:varchar(36);not null;uniqueIndex:uq_reviews_user_product,priority:1" json:"user_id"`
	ProductID string       `gorm:"type:varchar(36);not null;uniqueIndex:uq_reviews_user_product,priority:2;index" json:"product_id"`
	Rating    int          `gorm:"not null;index" json:"rating"`
	Comment   string       `gorm:"type:text;not null" json:"comment"`
	Images    []Attachment `gorm:"type:jsonb;serializer:json" json:"images"`
	CreatedAt time.Time    `gorm:"not null;index" json:"created_at"`
}
