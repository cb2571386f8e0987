package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 一覧検索
type ProductListQuery struct {
	CategoryID string
	SellerID   string
	Status     model.ProductStatus
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	//name / description の部分一致（大文字小文字を区別しない）
	Search string
	Pagination
}

type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	ListIDs(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	//行ロック付き。Tx内で使う
	FindByIDForUpdate(ctx context.Context, id string) (model.Product, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Product, error)
	CountBySeller(ctx context.Context, sellerID string) (int64, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id string) error

	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error)
	SetReviewSummary(ctx context.Context, id string, s model.ReviewSummary) error
}
