package model

// カートの明細。価格は持たず、注文時に確定する
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}
