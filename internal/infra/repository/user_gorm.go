package repository

import (
	"context"

	"marketplace/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserGormRepository struct {
	db *gorm.DB
}

// DI
func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	if err := r.db.WithContext(ctx).Create(&u).Error; err != nil {
		return model.User{}, translateError(err)
	}
	return u, nil
}

func (r *UserGormRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return model.User{}, translateError(err)
	}
	return u, nil
}

func (r *UserGormRepository) FindByIDForUpdate(ctx context.Context, id string) (model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&u).Error
	if err != nil {
		return model.User{}, translateError(err)
	}
	return u, nil
}

func (r *UserGormRepository) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	users := []model.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return []model.User{}, err
	}
	return users, nil
}

func (r *UserGormRepository) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&users).Error; err != nil {
		return []model.User{}, err
	}
	return users, nil
}

// 埋め込み（住所など）も含めて全カラム保存する
func (r *UserGormRepository) Update(ctx context.Context, u model.User) error {
	res := r.db.WithContext(ctx).
		Model(&u).
		Select("*").
		Omit("id", "created_at").
		Updates(&u)
	return affected(res)
}

func (r *UserGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{})
	return affected(res)
}
