package repository

import (
	"context"

	"marketplace/internal/domain/model"
)

type ReturnFilter struct {
	UserID  string
	OrderID string
	Status  model.ReturnStatus
}

type ReturnRepository interface {
	Create(ctx context.Context, r model.Return) (model.Return, error)
	FindByID(ctx context.Context, id string) (model.Return, error)
	List(ctx context.Context, f ReturnFilter) ([]model.Return, error)
	UpdateStatus(ctx context.Context, id string, status model.ReturnStatus) error
	Delete(ctx context.Context, id string) error
}
