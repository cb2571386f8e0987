package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"gorm.io/gorm"
)

type CategoryGormRepository struct {
	db *gorm.DB
}

// DI
func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, translateError(err)
	}
	return c, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id string) (model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return model.Category{}, translateError(err)
	}
	return c, nil
}

func (r *CategoryGormRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Category, error) {
	cats := []model.Category{}
	if len(ids) == 0 {
		return cats, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&cats).Error; err != nil {
		return []model.Category{}, err
	}
	return cats, nil
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	cats := []model.Category{}
	if err := r.db.WithContext(ctx).Order("name asc").Find(&cats).Error; err != nil {
		return []model.Category{}, err
	}
	return cats, nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).
		Model(&c).
		Select("name", "description", "updated_at").
		Updates(&c)
	return affected(res)
}

func (r *CategoryGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{})
	return affected(res)
}
