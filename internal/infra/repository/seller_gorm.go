package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"gorm.io/gorm"
)

type SellerGormRepository struct {
	db *gorm.DB
}

// DI
func NewSellerGormRepository(db *gorm.DB) *SellerGormRepository {
	return &SellerGormRepository{db: db}
}

func (r *SellerGormRepository) Create(ctx context.Context, s model.Seller) (model.Seller, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Seller{}, translateError(err)
	}
	return s, nil
}

func (r *SellerGormRepository) FindByID(ctx context.Context, id string) (model.Seller, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *SellerGormRepository) FindByUserID(ctx context.Context, userID string) (model.Seller, error) {
	return r.first(ctx, "user_id = ?", userID)
}

func (r *SellerGormRepository) FindBySlug(ctx context.Context, slug string) (model.Seller, error) {
	return r.first(ctx, "store_slug = ?", slug)
}

func (r *SellerGormRepository) first(ctx context.Context, cond string, arg string) (model.Seller, error) {
	var s model.Seller
	if err := r.db.WithContext(ctx).Where(cond, arg).Order("created_at asc").First(&s).Error; err != nil {
		return model.Seller{}, translateError(err)
	}
	return s, nil
}

func (r *SellerGormRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Seller, error) {
	sellers := []model.Seller{}
	if len(ids) == 0 {
		return sellers, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&sellers).Error; err != nil {
		return []model.Seller{}, err
	}
	return sellers, nil
}

func (r *SellerGormRepository) List(ctx context.Context) ([]model.Seller, error) {
	sellers := []model.Seller{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&sellers).Error; err != nil {
		return []model.Seller{}, err
	}
	return sellers, nil
}

// 集計カラム（rating_*）は触らない
func (r *SellerGormRepository) Update(ctx context.Context, s model.Seller) error {
	res := r.db.WithContext(ctx).
		Model(&s).
		Select("store_name", "store_slug", "store_description", "address", "contact_number",
			"profile_photo", "cover_photo", "updated_at").
		Updates(&s)
	return affected(res)
}

func (r *SellerGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Seller{})
	return affected(res)
}

func (r *SellerGormRepository) AdjustNumProducts(ctx context.Context, id string, delta int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Seller{}).
		Where("id = ?", id).
		Update("rating_num_products", gorm.Expr("GREATEST(rating_num_products + ?, 0)", delta))
	return affected(res)
}

func (r *SellerGormRepository) SetNumProducts(ctx context.Context, id string, n int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Seller{}).
		Where("id = ?", id).
		Update("rating_num_products", n)
	return affected(res)
}

func (r *SellerGormRepository) SetRating(ctx context.Context, id string, avg float64, count int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Seller{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"rating_avg_rating":   avg,
			"rating_rating_count": count,
		})
	return affected(res)
}
