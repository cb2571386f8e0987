package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	store repo.Store
	idGen IDGenerator
	clock Clock
}

// DI
func NewProductUsecase(store repo.Store, idGen IDGenerator, clock Clock) *ProductUsecase {
	return &ProductUsecase{store: store, idGen: idGen, clock: clock}
}

// 商品 + 出品者・カテゴリ
type ProductView struct {
	model.Product
	Seller     *SellerRef    `json:"seller,omitempty"`
	Categories []CategoryRef `json:"categories"`
}

type ListProductsInput struct {
	CategoryID string
	SellerID   string
	Status     string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Search     string
	PageInput
}

type CreateProductInput struct {
	Name          string
	Description   string
	Price         *decimal.Decimal
	StockQuantity *int64
	Status        string
	SellerID      string
	CategoryIDs   []string
	ProductImages []model.Attachment
}

// nil は変更なし
type UpdateProductInput struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	StockQuantity *int64
	Status        *string
	CategoryIDs   []string
	ProductImages []model.Attachment
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (Page[ProductView], error) {
	pg, err := in.normalize()
	if err != nil {
		return Page[ProductView]{}, err
	}
	status := model.ProductStatus(in.Status)
	if status != "" && !status.Valid() {
		return Page[ProductView]{}, validationError("invalid status")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return Page[ProductView]{}, validationError("min_price must not exceed max_price")
	}

	products, total, err := u.store.Products().List(ctx, repo.ProductListQuery{
		CategoryID: in.CategoryID,
		SellerID:   in.SellerID,
		Status:     status,
		MinPrice:   in.MinPrice,
		MaxPrice:   in.MaxPrice,
		Search:     in.Search,
		Pagination: pg,
	})
	if err != nil {
		return Page[ProductView]{}, internalError(err)
	}

	views, err := u.attach(ctx, u.store, products)
	if err != nil {
		return Page[ProductView]{}, err
	}
	return newPage(views, total, pg), nil
}

func (u *ProductUsecase) Get(ctx context.Context, id string) (ProductView, error) {
	p, err := u.store.Products().FindByID(ctx, id)
	if err != nil {
		return ProductView{}, fromRepo(err, "Product not found")
	}
	return u.attachOne(ctx, u.store, p)
}

// 作成と出品者の num_products +1 は同じTxで行う
func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (ProductView, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.SellerID = strings.TrimSpace(in.SellerID)
	categoryIDs := uniqueIDs(in.CategoryIDs)

	if in.Name == "" || in.Description == "" || in.Price == nil || in.SellerID == "" || len(categoryIDs) == 0 {
		return ProductView{}, validationError("name, description, price, seller_id and category_id are required")
	}
	if in.Price.IsNegative() {
		return ProductView{}, validationError("price must be >= 0")
	}
	var stock int64
	if in.StockQuantity != nil {
		stock = *in.StockQuantity
	}
	if stock < 0 {
		return ProductView{}, validationError("stock_quantity must be >= 0")
	}
	status := model.ProductStatusActive
	if in.Status != "" {
		status = model.ProductStatus(in.Status)
	}
	if !status.Valid() {
		return ProductView{}, validationError("invalid status")
	}

	var out ProductView
	err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Sellers().FindByID(ctx, in.SellerID); err != nil {
			return fromRepo(err, "Seller not found")
		}
		if err := ensureCategories(ctx, r, categoryIDs); err != nil {
			return err
		}

		now := u.clock.Now()
		p, err := r.Products().Create(ctx, model.Product{
			ID:            u.idGen.NewID(),
			Name:          in.Name,
			Description:   in.Description,
			ProductImages: in.ProductImages,
			Price:         model.RoundMoney(*in.Price),
			StockQuantity: stock,
			Status:        status,
			SellerID:      in.SellerID,
			CategoryIDs:   categoryIDs,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			return internalError(err)
		}

		if err := r.Sellers().AdjustNumProducts(ctx, in.SellerID, 1); err != nil {
			return fromRepo(err, "Seller not found")
		}

		out, err = u.attachOne(ctx, r, p)
		return err
	})
	if err != nil {
		return ProductView{}, err
	}
	return out, nil
}

func (u *ProductUsecase) Update(ctx context.Context, id string, in UpdateProductInput) (ProductView, error) {
	var out ProductView
	err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByIDForUpdate(ctx, id)
		if err != nil {
			return fromRepo(err, "Product not found")
		}

		if in.Name != nil {
			if p.Name = strings.TrimSpace(*in.Name); p.Name == "" {
				return validationError("name cannot be empty")
			}
		}
		if in.Description != nil {
			if p.Description = strings.TrimSpace(*in.Description); p.Description == "" {
				return validationError("description cannot be empty")
			}
		}
		if in.Price != nil {
			if in.Price.IsNegative() {
				return validationError("price must be >= 0")
			}
			p.Price = model.RoundMoney(*in.Price)
		}
		if in.StockQuantity != nil {
			if *in.StockQuantity < 0 {
				return validationError("stock_quantity must be >= 0")
			}
			p.StockQuantity = *in.StockQuantity
		}
		if in.Status != nil {
			st := model.ProductStatus(*in.Status)
			if !st.Valid() {
				return validationError("invalid status")
			}
			p.Status = st
		}
		if in.CategoryIDs != nil {
			ids := uniqueIDs(in.CategoryIDs)
			if len(ids) == 0 {
				return validationError("category_id cannot be empty")
			}
			if err := ensureCategories(ctx, r, ids); err != nil {
				return err
			}
			p.CategoryIDs = ids
		}
		if in.ProductImages != nil {
			p.ProductImages = in.ProductImages
		}
		p.UpdatedAt = u.clock.Now()

		if err := r.Products().Update(ctx, p); err != nil {
			return fromRepo(err, "Product not found")
		}

		out, err = u.attachOne(ctx, r, p)
		return err
	})
	if err != nil {
		return ProductView{}, err
	}
	return out, nil
}

// 削除と出品者の num_products -1（0未満にはしない）は同じTxで行う
func (u *ProductUsecase) Delete(ctx context.Context, id string) error {
	return u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByIDForUpdate(ctx, id)
		if err != nil {
			return fromRepo(err, "Product not found")
		}
		if err := r.Products().Delete(ctx, id); err != nil {
			return fromRepo(err, "Product not found")
		}

		//出品者が先に消えていることはある
		if err := r.Sellers().AdjustNumProducts(ctx, p.SellerID, -1); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return internalError(err)
		}
		return nil
	})
}

// 指定カテゴリが全部存在するか
func ensureCategories(ctx context.Context, r repo.TxRepos, ids []string) error {
	found, err := r.Categories().FindByIDs(ctx, ids)
	if err != nil {
		return internalError(err)
	}
	if len(found) != len(ids) {
		return notFoundError("One or more categories not found")
	}
	return nil
}

func (u *ProductUsecase) attach(ctx context.Context, r repo.TxRepos, products []model.Product) ([]ProductView, error) {
	sellerIDs := make([]string, 0, len(products))
	categoryIDs := []string{}
	for _, p := range products {
		sellerIDs = append(sellerIDs, p.SellerID)
		categoryIDs = append(categoryIDs, p.CategoryIDs...)
	}

	pop := populator{r}
	sellers, err := pop.sellers(ctx, sellerIDs)
	if err != nil {
		return nil, err
	}
	cats, err := pop.categories(ctx, categoryIDs)
	if err != nil {
		return nil, err
	}

	out := make([]ProductView, 0, len(products))
	for _, p := range products {
		v := ProductView{Product: p, Seller: sellers[p.SellerID], Categories: []CategoryRef{}}
		for _, id := range p.CategoryIDs {
			if c, ok := cats[id]; ok {
				v.Categories = append(v.Categories, c)
			}
		}
		out = append(out, v)
	}
	return out, nil
}

func (u *ProductUsecase) attachOne(ctx context.Context, r repo.TxRepos, p model.Product) (ProductView, error) {
	views, err := u.attach(ctx, r, []model.Product{p})
	if err != nil {
		return ProductView{}, err
	}
	return views[0], nil
}
