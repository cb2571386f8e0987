package usecase

import (
	"context"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

// 参照先の表示用フィールド
type UserRef struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	ProfileImage string `json:"profile_image"`
}

type ProductRef struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Price         decimal.Decimal     `json:"price"`
	StockQuantity int64               `json:"stock_quantity"`
	Status        model.ProductStatus `json:"status"`
}

type SellerRef struct {
	ID        string `json:"id"`
	StoreName string `json:"store_name"`
	StoreSlug string `json:"store_slug"`
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OrderRef struct {
	ID         string          `json:"id"`
	OrderTotal decimal.Decimal `json:"order_total"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// 一覧のIDを集めて、参照先をまとめて1回ずつ読む
type populator struct {
	r repo.TxRepos
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (p populator) users(ctx context.Context, ids []string) (map[string]*UserRef, error) {
	users, err := p.r.Users().FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, internalError(err)
	}
	out := make(map[string]*UserRef, len(users))
	for _, u := range users {
		out[u.ID] = &UserRef{
			ID:           u.ID,
			Username:     u.Username,
			Email:        u.Email,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			ProfileImage: u.ProfileImage,
		}
	}
	return out, nil
}

func (p populator) products(ctx context.Context, ids []string) (map[string]*ProductRef, error) {
	products, err := p.r.Products().FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, internalError(err)
	}
	out := make(map[string]*ProductRef, len(products))
	for _, pr := range products {
		out[pr.ID] = &ProductRef{
			ID:            pr.ID,
			Name:          pr.Name,
			Price:         pr.Price,
			StockQuantity: pr.StockQuantity,
			Status:        pr.Status,
		}
	}
	return out, nil
}

func (p populator) sellers(ctx context.Context, ids []string) (map[string]*SellerRef, error) {
	sellers, err := p.r.Sellers().FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, internalError(err)
	}
	out := make(map[string]*SellerRef, len(sellers))
	for _, s := range sellers {
		out[s.ID] = &SellerRef{ID: s.ID, StoreName: s.StoreName, StoreSlug: s.StoreSlug}
	}
	return out, nil
}

func (p populator) categories(ctx context.Context, ids []string) (map[string]CategoryRef, error) {
	cats, err := p.r.Categories().FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, internalError(err)
	}
	out := make(map[string]CategoryRef, len(cats))
	for _, c := range cats {
		out[c.ID] = CategoryRef{ID: c.ID, Name: c.Name}
	}
	return out, nil
}

func (p populator) orders(ctx context.Context, ids []string) (map[string]*OrderRef, error) {
	orders, err := p.r.Orders().FindByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, internalError(err)
	}
	out := make(map[string]*OrderRef, len(orders))
	for _, o := range orders {
		out[o.ID] = &OrderRef{ID: o.ID, OrderTotal: o.OrderTotal, Status: o.Status(), CreatedAt: o.CreatedAt}
	}
	return out, nil
}
