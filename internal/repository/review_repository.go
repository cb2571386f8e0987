package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type ReviewFilter struct {
	ProductID string
	UserID    string
	Pagination
}

// 集計の元データ
type ReviewStats struct {
	Count int64
	Sum   int64
}

type ReviewRepository interface {
	Create(ctx context.Context, r model.Review) (model.Review, error)
	FindByID(ctx context.Context, id string) (model.Review, error)
	List(ctx context.Context, f ReviewFilter) ([]model.Review, int64, error)
	Update(ctx context.Context, r model.Review) error
	Delete(ctx context.Context, id string) error

	StatsByProduct(ctx context.Context, productID string) (ReviewStats, error)
	//出品者の全商品にまたがる集計
	StatsBySeller(ctx context.Context, sellerID string) (ReviewStats, error)
}
