package memory

import (
	"context"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type sellerRepo struct{ a *access }

func (r *sellerRepo) Create(ctx context.Context, s model.Seller) (model.Seller, error) {
	err := r.a.write(func(d *dataset) error {
		for _, other := range d.sellers {
			if other.ID == s.ID {
				return &repo.DuplicateError{Field: "id"}
			}
			if other.UserID == s.UserID {
				return &repo.DuplicateError{Field: "user_id"}
			}
		}
		d.sellers[s.ID] = cloneSeller(s)
		return nil
	})
	if err != nil {
		return model.Seller{}, err
	}
	return s, nil
}

func (r *sellerRepo) FindByID(ctx context.Context, id string) (model.Seller, error) {
	return r.first(func(s model.Seller) bool { return s.ID == id })
}

func (r *sellerRepo) FindByUserID(ctx context.Context, userID string) (model.Seller, error) {
	return r.first(func(s model.Seller) bool { return s.UserID == userID })
}

func (r *sellerRepo) FindBySlug(ctx context.Context, slug string) (model.Seller, error) {
	return r.first(func(s model.Seller) bool { return s.StoreSlug == slug })
}

// 条件に合う最も古い出品者
func (r *sellerRepo) first(match func(model.Seller) bool) (model.Seller, error) {
	var out model.Seller
	found := false
	err := r.a.read(func(d *dataset) error {
		for _, s := range d.sellers {
			if !match(s) {
				continue
			}
			if !found || s.CreatedAt.Before(out.CreatedAt) {
				out = cloneSeller(s)
				found = true
			}
		}
		if !found {
			return repo.ErrNotFound
		}
		return nil
	})
	return out, err
}

func (r *sellerRepo) FindByIDs(ctx context.Context, ids []string) ([]model.Seller, error) {
	out := []model.Seller{}
	err := r.a.read(func(d *dataset) error {
		for id := range idSet(ids) {
			if s, ok := d.sellers[id]; ok {
				out = append(out, cloneSeller(s))
			}
		}
		return nil
	})
	return out, err
}

func (r *sellerRepo) List(ctx context.Context) ([]model.Seller, error) {
	out := []model.Seller{}
	err := r.a.read(func(d *dataset) error {
		for _, s := range d.sellers {
			out = append(out, cloneSeller(s))
		}
		return nil
	})
	sortNewest(out, func(s model.Seller) time.Time { return s.CreatedAt }, func(s model.Seller) string { return s.ID })
	return out, err
}

// 集計値は保持したまま
func (r *sellerRepo) Update(ctx context.Context, s model.Seller) error {
	return r.a.write(func(d *dataset) error {
		cur, ok := d.sellers[s.ID]
		if !ok {
			return repo.ErrNotFound
		}
		s.UserID = cur.UserID
		s.RatingSummary = cur.RatingSummary
		s.CreatedAt = cur.CreatedAt
		d.sellers[s.ID] = cloneSeller(s)
		return nil
	})
}

func (r *sellerRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(func(d *dataset) error {
		if _, ok := d.sellers[id]; !ok {
			return repo.ErrNotFound
		}
		delete(d.sellers, id)
		return nil
	})
}

func (r *sellerRepo) modify(id string, fn func(s *model.Seller)) error {
	return r.a.write(func(d *dataset) error {
		s, ok := d.sellers[id]
		if !ok {
			return repo.ErrNotFound
		}
		fn(&s)
		d.sellers[id] = s
		return nil
	})
}

func (r *sellerRepo) AdjustNumProducts(ctx context.Context, id string, delta int64) error {
	return r.modify(id, func(s *model.Seller) {
		s.RatingSummary.NumProducts = max(s.RatingSummary.NumProducts+delta, 0)
	})
}

func (r *sellerRepo) SetNumProducts(ctx context.Context, id string, n int64) error {
	return r.modify(id, func(s *model.Seller) { s.RatingSummary.NumProducts = n })
}

func (r *sellerRepo) SetRating(ctx context.Context, id string, avg float64, count int64) error {
	return r.modify(id, func(s *model.Seller) {
		s.RatingSummary.AvgRating = avg
		s.RatingSummary.RatingCount = count
	})
}
