package usecase

import (
	"context"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// CartUsecase は /carts の業務ロジックです。
// カートは最初の追加時に作り、空になっても消さない。
type CartUsecase struct {
	store repo.Store
	idGen IDGenerator
	clock Clock
}

func NewCartUsecase(store repo.Store, idGen IDGenerator, clock Clock) *CartUsecase {
	return &CartUsecase{store: store, idGen: idGen, clock: clock}
}

type CartItemView struct {
	model.CartItem
	Product *ProductRef `json:"product,omitempty"`
}

type CartView struct {
	model.Cart
	Items []CartItemView `json:"items"`
}

// GetCart はカート取得（無ければ404）。
func (u *CartUsecase) GetCart(ctx context.Context, userID string) (CartView, error) {
	cart, err := u.store.Carts().FindByUserID(ctx, userID)
	if err != nil {
		return CartView{}, fromRepo(err, "Cart not found")
	}
	return u.view(ctx, u.store, cart)
}

// AddToCart はカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID string, productID string, qty int64) (CartView, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return CartView{}, validationError("product_id is required")
	}
	if qty < 1 {
		return CartView{}, validationError("quantity must be at least 1")
	}

	var out CartView
	err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Users().FindByID(ctx, userID); err != nil {
			return fromRepo(err, "User not found")
		}
		p, err := r.Products().FindByID(ctx, productID)
		if err != nil {
			return fromRepo(err, "Product not found")
		}

		now := u.clock.Now()
		cart, err := r.Carts().GetOrCreateForUpdate(ctx, model.Cart{
			ID:        u.idGen.NewID(),
			UserID:    userID,
			Items:     []model.CartItem{},
			UpdatedAt: now,
		})
		if err != nil {
			return internalError(err)
		}

		//既にあれば合計数量で在庫チェック
		idx := cart.IndexOf(productID)
		total := qty
		if idx >= 0 {
			total += cart.Items[idx].Quantity
		}
		if total > p.StockQuantity {
			return insufficientStockError("Insufficient stock")
		}

		if idx >= 0 {
			cart.Items[idx].Quantity = total
		} else {
			cart.Items = append(cart.Items, model.CartItem{ProductID: productID, Quantity: qty})
		}
		cart.UpdatedAt = now

		if err := r.Carts().SaveItems(ctx, cart); err != nil {
			return internalError(err)
		}
		out, err = u.view(ctx, r, cart)
		return err
	})
	if err != nil {
		return CartView{}, err
	}
	return out, nil
}

// 数量を上書き。カートに無い商品は404
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID string, productID string, qty int64) (CartView, error) {
	if qty < 1 {
		return CartView{}, validationError("quantity must be at least 1")
	}

	return u.modify(ctx, userID, func(r repo.TxRepos, cart *model.Cart) error {
		idx := cart.IndexOf(productID)
		if idx < 0 {
			return notFoundError("Item not found in cart")
		}
		p, err := r.Products().FindByID(ctx, productID)
		if err != nil {
			return fromRepo(err, "Product not found")
		}
		if qty > p.StockQuantity {
			return insufficientStockError("Insufficient stock")
		}
		cart.Items[idx].Quantity = qty
		return nil
	})
}

// 無い商品なら何もしない
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID string, productID string) (CartView, error) {
	return u.modify(ctx, userID, func(_ repo.TxRepos, cart *model.Cart) error {
		items := make([]model.CartItem, 0, len(cart.Items))
		for _, it := range cart.Items {
			if it.ProductID != productID {
				items = append(items, it)
			}
		}
		cart.Items = items
		return nil
	})
}

// 明細だけ空にする
func (u *CartUsecase) ClearCart(ctx context.Context, userID string) (CartView, error) {
	return u.modify(ctx, userID, func(_ repo.TxRepos, cart *model.Cart) error {
		cart.Items = []model.CartItem{}
		return nil
	})
}

func (u *CartUsecase) modify(ctx context.Context, userID string, fn func(r repo.TxRepos, cart *model.Cart) error) (CartView, error) {
	var out CartView
	err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByUserIDForUpdate(ctx, userID)
		if err != nil {
			return fromRepo(err, "Cart not found")
		}
		if err := fn(r, &cart); err != nil {
			return err
		}
		cart.UpdatedAt = u.clock.Now()
		if err := r.Carts().SaveItems(ctx, cart); err != nil {
			return internalError(err)
		}
		out, err = u.view(ctx, r, cart)
		return err
	})
	if err != nil {
		return CartView{}, err
	}
	return out, nil
}

func (u *CartUsecase) view(ctx context.Context, r repo.TxRepos, cart model.Cart) (CartView, error) {
	ids := make([]string, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := populator{r}.products(ctx, ids)
	if err != nil {
		return CartView{}, err
	}

	v := CartView{Cart: cart, Items: make([]CartItemView, 0, len(cart.Items))}
	for _, it := range cart.Items {
		v.Items = append(v.Items, CartItemView{CartItem: it, Product: products[it.ProductID]})
	}
	return v, nil
}
