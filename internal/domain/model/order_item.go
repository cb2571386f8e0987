package model

import "github.com/shopspring/decimal"

// 注文時点の商品名と単価
type ProductSnapshot struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type OrderItem struct {
	ProductID       string          `json:"product_id"`
	Quantity        int64           `json:"quantity"`
	ProductSnapshot ProductSnapshot `json:"product_snapshot"`
}

// 小計 = 注文時単価 × 数量
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.ProductSnapshot.Price.Mul(decimal.NewFromInt(i.Quantity))
}
