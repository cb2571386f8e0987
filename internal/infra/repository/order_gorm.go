package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Create(ctx context.Context, o model.Order) (model.Order, error) {
	if err := r.db.WithContext(ctx).Create(&o).Error; err != nil {
		return model.Order{}, translateError(err)
	}
	return o, nil
}

func (r *OrderGormRepository) FindByID(ctx context.Context, id string) (model.Order, error) {
	var o model.Order
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&o).Error; err != nil {
		return model.Order{}, translateError(err)
	}
	return o, nil
}

func (r *OrderGormRepository) FindByIDForUpdate(ctx context.Context, id string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&o).Error
	if err != nil {
		return model.Order{}, translateError(err)
	}
	return o, nil
}

func (r *OrderGormRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Order, error) {
	orders := []model.Order{}
	if len(ids) == 0 {
		return orders, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&orders).Error; err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

// 新しい順
func (r *OrderGormRepository) List(ctx context.Context, f repo.OrderFilter) ([]model.Order, error) {
	orders := []model.Order{}
	tx := r.db.WithContext(ctx).Model(&model.Order{})
	if f.UserID != "" {
		tx = tx.Where("user_id = ?", f.UserID)
	}
	if err := tx.Order("created_at desc").Find(&orders).Error; err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

func (r *OrderGormRepository) UpdateTracking(ctx context.Context, o model.Order) error {
	res := r.db.WithContext(ctx).
		Model(&o).
		Select("status_history", "shipment_details").
		Updates(&o)
	return affected(res)
}

func (r *OrderGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Order{})
	return affected(res)
}
