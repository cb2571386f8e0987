package repository

import (
	"context"

	repo "marketplace/internal/repository"

	"gorm.io/gorm"
)

type reposGorm struct {
	users      repo.UserRepository
	sellers    repo.SellerRepository
	categories repo.CategoryRepository
	products   repo.ProductRepository
	carts      repo.CartRepository
	orders     repo.OrderRepository
	returns    repo.ReturnRepository
	reviews    repo.ReviewRepository
}

func newReposGorm(db *gorm.DB) *reposGorm {
	return &reposGorm{
		users:      NewUserGormRepository(db),
		sellers:    NewSellerGormRepository(db),
		categories: NewCategoryGormRepository(db),
		products:   NewProductGormRepository(db),
		carts:      NewCartGormRepository(db),
		orders:     NewOrderGormRepository(db),
		returns:    NewReturnGormRepository(db),
		reviews:    NewReviewGormRepository(db),
	}
}

func (r *reposGorm) Users() repo.UserRepository           { return r.users }
func (r *reposGorm) Sellers() repo.SellerRepository       { return r.sellers }
func (r *reposGorm) Categories() repo.CategoryRepository { return r.categories }
func (r *reposGorm) Products() repo.ProductRepository     { return r.products }
func (r *reposGorm) Carts() repo.CartRepository           { return r.carts }
func (r *reposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *reposGorm) Returns() repo.ReturnRepository       { return r.returns }
func (r *reposGorm) Reviews() repo.ReviewRepository       { return r.reviews }

// Tx外のrepoとTxManagerをまとめたもの
type GormStore struct {
	*reposGorm
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{reposGorm: newReposGorm(db), db: db}
}

func (s *GormStore) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		return fn(newReposGorm(tx))
	})
}
