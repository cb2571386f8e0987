package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

func (r *CartGormRepository) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	var cart model.Cart
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return model.Cart{}, translateError(err)
	}
	return cart, nil
}

func (r *CartGormRepository) FindByUserIDForUpdate(ctx context.Context, userID string) (model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return model.Cart{}, translateError(err)
	}
	return cart, nil
}

// 無ければ作る→ロックを取って読み直す
func (r *CartGormRepository) GetOrCreateForUpdate(ctx context.Context, c model.Cart) (model.Cart, error) {
	//同時作成はuser_idの一意制約で片方だけ残る
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&c).Error
	if err != nil {
		return model.Cart{}, translateError(err)
	}
	return r.FindByUserIDForUpdate(ctx, c.UserID)
}

func (r *CartGormRepository) SaveItems(ctx context.Context, c model.Cart) error {
	res := r.db.WithContext(ctx).
		Model(&c).
		Select("items", "updated_at").
		Updates(&c)
	return affected(res)
}
