package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type OrderFilter struct {
	UserID string
}

type OrderRepository interface {
	Create(ctx context.Context, o model.Order) (model.Order, error)
	FindByID(ctx context.Context, id string) (model.Order, error)
	//行ロック付き。Tx内で使う
	FindByIDForUpdate(ctx context.Context, id string) (model.Order, error)
	FindByIDs(ctx context.Context, ids []string) ([]model.Order, error)
	List(ctx context.Context, f OrderFilter) ([]model.Order, error)
	//status_history と shipment_details を保存
	UpdateTracking(ctx context.Context, o model.Order) error
	Delete(ctx context.Context, id string) error
}
