package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type ReturnGormRepository struct {
	db *gorm.DB
}

// DI
func NewReturnGormRepository(db *gorm.DB) *ReturnGormRepository {
	return &ReturnGormRepository{db: db}
}

func (r *ReturnGormRepository) Create(ctx context.Context, ret model.Return) (model.Return, error) {
	if err := r.db.WithContext(ctx).Create(&ret).Error; err != nil {
		return model.Return{}, translateError(err)
	}
	return ret, nil
}

func (r *ReturnGormRepository) FindByID(ctx context.Context, id string) (model.Return, error) {
	var ret model.Return
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ret).Error; err != nil {
		return model.Return{}, translateError(err)
	}
	return ret, nil
}

func (r *ReturnGormRepository) List(ctx context.Context, f repo.ReturnFilter) ([]model.Return, error) {
	returns := []model.Return{}
	tx := r.db.WithContext(ctx).Model(&model.Return{})
	if f.UserID != "" {
		tx = tx.Where("user_id = ?", f.UserID)
	}
	if f.OrderID != "" {
		tx = tx.Where("order_id = ?", f.OrderID)
	}
	if f.Status != "" {
		tx = tx.Where("status = ?", f.Status)
	}
	if err := tx.Order("created_at desc").Find(&returns).Error; err != nil {
		return []model.Return{}, err
	}
	return returns, nil
}

func (r *ReturnGormRepository) UpdateStatus(ctx context.Context, id string, status model.ReturnStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Return{}).
		Where("id = ?", id).
		Update("status", status)
	return affected(res)
}

func (r *ReturnGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Return{})
	return affected(res)
}
