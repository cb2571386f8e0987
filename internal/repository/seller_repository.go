package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type SellerRepository interface {
	Create(ctx context.Context, s model.Seller) (model.Seller, error)
	FindByID(ctx context.Context, id string) (model.Seller, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Seller, error)
	FindByUserID(ctx context.Context, userID string) (model.Seller, error)
	FindBySlug(ctx context.Context, slug string) (model.Seller, error)
	List(ctx context.Context) ([]model.Seller, error)
	Update(ctx context.Context, s model.Seller) error
	Delete(ctx context.Context, id string) error

	//num_products を delta だけ増減する。0未満にはしない
	AdjustNumProducts(ctx context.Context, id string, delta int64) error
	SetNumProducts(ctx context.Context, id string, n int64) error
	SetRating(ctx context.Context, id string, avg float64, count int64) error
}
