package repository

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

// DI
func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) Create(ctx context.Context, rv model.Review) (model.Review, error) {
	if err := r.db.WithContext(ctx).Create(&rv).Error; err != nil {
		return model.Review{}, translateError(err)
	}
	return rv, nil
}

func (r *ReviewGormRepository) FindByID(ctx context.Context, id string) (model.Review, error) {
	var rv model.Review
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rv).Error; err != nil {
		return model.Review{}, translateError(err)
	}
	return rv, nil
}

func (r *ReviewGormRepository) List(ctx context.Context, f repo.ReviewFilter) ([]model.Review, int64, error) {
	reviews := []model.Review{}
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Review{})
	if f.ProductID != "" {
		tx = tx.Where("product_id = ?", f.ProductID)
	}
	if f.UserID != "" {
		tx = tx.Where("user_id = ?", f.UserID)
	}
	if err := tx.Count(&total).Error; err != nil {
		return []model.Review{}, 0, err
	}

	tx = tx.Order("created_at desc").Order("id desc")
	if f.Limit > 0 {
		tx = tx.Offset(f.Offset()).Limit(f.Limit)
	}
	if err := tx.Find(&reviews).Error; err != nil {
		return []model.Review{}, 0, err
	}
	return reviews, total, nil
}

func (r *ReviewGormRepository) Update(ctx context.Context, rv model.Review) error {
	res := r.db.WithContext(ctx).
		Model(&rv).
		Select("rating", "comment", "images").
		Updates(&rv)
	return affected(res)
}

func (r *ReviewGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Review{})
	return affected(res)
}

func (r *ReviewGormRepository) StatsByProduct(ctx context.Context, productID string) (repo.ReviewStats, error) {
	var s repo.ReviewStats
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COUNT(*) AS count, COALESCE(SUM(rating), 0) AS sum").
		Where("product_id = ?", productID).
		Scan(&s).Error
	if err != nil {
		return repo.ReviewStats{}, err
	}
	return s, nil
}

func (r *ReviewGormRepository) StatsBySeller(ctx context.Context, sellerID string) (repo.ReviewStats, error) {
	var s repo.ReviewStats
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COUNT(reviews.id) AS count, COALESCE(SUM(reviews.rating), 0) AS sum").
		Joins("JOIN products ON products.id = reviews.product_id").
		Where("products.seller_id = ?", sellerID).
		Scan(&s).Error
	if err != nil {
		return repo.ReviewStats{}, err
	}
	return s, nil
}
