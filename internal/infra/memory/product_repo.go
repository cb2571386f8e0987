package memory

import (
	"context"
	"slices"
	"sort"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type productRepo struct{ a *access }

func matchProduct(p model.Product, q repo.ProductListQuery) bool {
	if q.CategoryID != "" && !slices.Contains(p.CategoryIDs, q.CategoryID) {
		return false
	}
	if q.SellerID != "" && p.SellerID != q.SellerID {
		return false
	}
	if q.Status != "" && p.Status != q.Status {
		return false
	}
	if q.MinPrice != nil && p.Price.LessThan(*q.MinPrice) {
		return false
	}
	if q.MaxPrice != nil && p.Price.GreaterThan(*q.MaxPrice) {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(q.Search)); s != "" {
		if !strings.Contains(strings.ToLower(p.Name), s) && !strings.Contains(strings.ToLower(p.Description), s) {
			return false
		}
	}
	return true
}

func (r *productRepo) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	all := []model.Product{}
	err := r.a.read(func(d *dataset) error {
		for _, p := range d.products {
			if matchProduct(p, q) {
				all = append(all, cloneProduct(p))
			}
		}
		return nil
	})
	if err != nil {
		return []model.Product{}, 0, err
	}
	sortNewest(all, func(p model.Product) time.Time { return p.CreatedAt }, func(p model.Product) string { return p.ID })
	return paginate(all, q.Pagination), int64(len(all)), nil
}

func (r *productRepo) ListIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	err := r.a.read(func(d *dataset) error {
		for id := range d.products {
			ids = append(ids, id)
		}
		return nil
	})
	sort.Strings(ids)
	return ids, err
}

func (r *productRepo) FindByID(ctx context.Context, id string) (model.Product, error) {
	var out model.Product
	err := r.a.read(func(d *dataset) error {
		p, ok := d.products[id]
		if !ok {
			return repo.ErrNotFound
		}
		out = cloneProduct(p)
		return nil
	})
	return out, err
}

func (r *productRepo) FindByIDForUpdate(ctx context.Context, id string) (model.Product, error) {
	return r.FindByID(ctx, id)
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	out := []model.Product{}
	err := r.a.read(func(d *dataset) error {
		for id := range idSet(ids) {
			if p, ok := d.products[id]; ok {
				out = append(out, cloneProduct(p))
			}
		}
		return nil
	})
	return out, err
}

func (r *productRepo) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	var n int64
	err := r.a.read(func(d *dataset) error {
		for _, p := range d.products {
			if p.SellerID == sellerID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *productRepo) Create(ctx context.Context, p model.Product) (model.Product, error) {
	err := r.a.write(func(d *dataset) error {
		if _, ok := d.products[p.ID]; ok {
			return &repo.DuplicateError{Field: "id"}
		}
		d.products[p.ID] = cloneProduct(p)
		return nil
	})
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// review_summary と seller_id は保持したまま
func (r *productRepo) Update(ctx context.Context, p model.Product) error {
	return r.a.write(func(d *dataset) error {
		cur, ok := d.products[p.ID]
		if !ok {
			return repo.ErrNotFound
		}
		p.SellerID = cur.SellerID
		p.ReviewSummary = cur.ReviewSummary
		p.CreatedAt = cur.CreatedAt
		d.products[p.ID] = cloneProduct(p)
		return nil
	})
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(func(d *dataset) error {
		if _, ok := d.products[id]; !ok {
			return repo.ErrNotFound
		}
		delete(d.products, id)
		return nil
	})
}

func (r *productRepo) DecreaseStockIfEnough(ctx context.Context, id string, qty int64) (bool, error) {
	ok := false
	err := r.a.write(func(d *dataset) error {
		p, found := d.products[id]
		if !found || p.StockQuantity < qty {
			return nil
		}
		p.StockQuantity -= qty
		d.products[id] = p
		ok = true
		return nil
	})
	return ok, err
}

func (r *productRepo) SetReviewSummary(ctx context.Context, id string, s model.ReviewSummary) error {
	return r.a.write(func(d *dataset) error {
		p, ok := d.products[id]
		if !ok {
			return repo.ErrNotFound
		}
		p.ReviewSummary = s
		d.products[id] = p
		return nil
	})
}
