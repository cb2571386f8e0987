package repository

import (
	"context"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// 絞り込み・ページング付きで新しい順に返す
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	products := []model.Product{}
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if q.CategoryID != "" {
		tx = tx.Where("? = ANY(category_ids)", q.CategoryID)
	}
	if q.SellerID != "" {
		tx = tx.Where("seller_id = ?", q.SellerID)
	}
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	//name / description
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + likeEscaper.Replace(s) + "%"
		tx = tx.Where("(name ILIKE ? OR description ILIKE ?)", like, like)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	tx = tx.Order("created_at desc").Order("id desc")
	if q.Limit > 0 {
		tx = tx.Offset(q.Offset()).Limit(q.Limit)
	}
	if err := tx.Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

func (r *ProductGormRepository) ListIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Order("id").Pluck("id", &ids).Error; err != nil {
		return []string{}, err
	}
	return ids, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return model.Product{}, translateError(err)
	}
	return p, nil
}

func (r *ProductGormRepository) FindByIDForUpdate(ctx context.Context, id string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return model.Product{}, translateError(err)
	}
	return p, nil
}

func (r *ProductGormRepository) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	products := []model.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

func (r *ProductGormRepository) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).Where("seller_id = ?", sellerID).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, translateError(err)
	}
	return p, nil
}

// 商品の更新。review_summary は SetReviewSummary でのみ更新する
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).
		Model(&p).
		Select("name", "description", "product_images", "price", "stock_quantity", "status",
			"category_ids", "updated_at").
		Updates(&p)
	return affected(res)
}

// 商品削除
func (r *ProductGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Product{})
	return affected(res)
}

// 在庫が足りるときだけ減らす
func (r *ProductGormRepository) DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, qty).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

func (r *ProductGormRepository) SetReviewSummary(ctx context.Context, id string, s model.ReviewSummary) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"review_avg_rating":   s.AvgRating,
			"review_rating_count": s.RatingCount,
		})
	return affected(res)
}
