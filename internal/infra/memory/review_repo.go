package memory

import (
	"context"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type reviewRepo struct{ a *access }

func (r *reviewRepo) Create(ctx context.Context, rv model.Review) (model.Review, error) {
	err := r.a.write(func(d *dataset) error {
		for _, other := range d.reviews {
			if other.ID == rv.ID {
				return &repo.DuplicateError{Field: "id"}
			}
			if other.UserID == rv.UserID && other.ProductID == rv.ProductID {
				return &repo.DuplicateError{Field: "user_product"}
			}
		}
		d.reviews[rv.ID] = cloneReview(rv)
		return nil
	})
	if err != nil {
		return model.Review{}, err
	}
	return rv, nil
}

func (r *reviewRepo) FindByID(ctx context.Context, id string) (model.Review, error) {
	var out model.Review
	err := r.a.read(func(d *dataset) error {
		rv, ok := d.reviews[id]
		if !ok {
			return repo.ErrNotFound
		}
		out = cloneReview(rv)
		return nil
	})
	return out, err
}

func (r *reviewRepo) List(ctx context.Context, f repo.ReviewFilter) ([]model.Review, int64, error) {
	all := []model.Review{}
	err := r.a.read(func(d *dataset) error {
		for _, rv := range d.reviews {
			if f.ProductID != "" && rv.ProductID != f.ProductID {
				continue
			}
			if f.UserID != "" && rv.UserID != f.UserID {
				continue
			}
			all = append(all, cloneReview(rv))
		}
		return nil
	})
	if err != nil {
		return []model.Review{}, 0, err
	}
	sortNewest(all, func(r model.Review) time.Time { return r.CreatedAt }, func(r model.Review) string { return r.ID })
	return paginate(all, f.Pagination), int64(len(all)), nil
}

// user_id / product_id / created_at は保持したまま
func (r *reviewRepo) Update(ctx context.Context, rv model.Review) error {
	return r.a.write(func(d *dataset) error {
		cur, ok := d.reviews[rv.ID]
		if !ok {
			return repo.ErrNotFound
		}
		cur.Rating = rv.Rating
		cur.Comment = rv.Comment
		cur.Images = rv.Images
		d.reviews[rv.ID] = cloneReview(cur)
		return nil
	})
}

func (r *reviewRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(func(d *dataset) error {
		if _, ok := d.reviews[id]; !ok {
			return repo.ErrNotFound
		}
		delete(d.reviews, id)
		return nil
	})
}

func (r *reviewRepo) StatsByProduct(ctx context.Context, productID string) (repo.ReviewStats, error) {
	var s repo.ReviewStats
	err := r.a.read(func(d *dataset) error {
		for _, rv := range d.reviews {
			if rv.ProductID == productID {
				s.Count++
				s.Sum += int64(rv.Rating)
			}
		}
		return nil
	})
	return s, err
}

func (r *reviewRepo) StatsBySeller(ctx context.Context, sellerID string) (repo.ReviewStats, error) {
	var s repo.ReviewStats
	err := r.a.read(func(d *dataset) error {
		for _, rv := range d.reviews {
			p, ok := d.products[rv.ProductID]
			if ok && p.SellerID == sellerID {
				s.Count++
				s.Sum += int64(rv.Rating)
			}
		}
		return nil
	})
	return s, err
}
