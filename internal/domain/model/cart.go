package model

import "time"

// 1ユーザーにつきカートは1つ。最初の追加時に作る
type Cart struct {
	ID        string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string     `gorm:"type:varchar(36);not null;uniqueIndex:uq_carts_user_id" json:"user_id"`
	Items     []CartItem `gorm:"type:jsonb;serializer:json" json:"items"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

// 商品IDで明細を探す。無ければ -1
func (c Cart) IndexOf(productID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
