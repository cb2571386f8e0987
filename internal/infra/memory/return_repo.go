package memory

import (
	"context"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type returnRepo struct{ a *access }

func (r *returnRepo) Create(ctx context.Context, ret model.Return) (model.Return, error) {
	err := r.a.write(func(d *dataset) error {
		for _, other := range d.returns {
			if other.ID == ret.ID {
				return &repo.DuplicateError{Field: "id"}
			}
			if other.OrderID == ret.OrderID && other.UserID == ret.UserID {
				return &repo.DuplicateError{Field: "order_user"}
			}
		}
		d.returns[ret.ID] = ret
		return nil
	})
	if err != nil {
		return model.Return{}, err
	}
	return ret, nil
}

func (r *returnRepo) FindByID(ctx context.Context, id string) (model.Return, error) {
	var out model.Return
	err := r.a.read(func(d *dataset) error {
		ret, ok := d.returns[id]
		if !ok {
			return repo.ErrNotFound
		}
		out = ret
		return nil
	})
	return out, err
}

func (r *returnRepo) List(ctx context.Context, f repo.ReturnFilter) ([]model.Return, error) {
	out := []model.Return{}
	err := r.a.read(func(d *dataset) error {
		for _, ret := range d.returns {
			if f.UserID != "" && ret.UserID != f.UserID {
				continue
			}
			if f.OrderID != "" && ret.OrderID != f.OrderID {
				continue
			}
			if f.Status != "" && ret.Status != f.Status {
				continue
			}
			out = append(out, ret)
		}
		return nil
	})
	sortNewest(out, func(r model.Return) time.Time { return r.CreatedAt }, func(r model.Return) string { return r.ID })
	return out, err
}

func (r *returnRepo) UpdateStatus(ctx context.Context, id string, status model.ReturnStatus) error {
	return r.a.write(func(d *dataset) error {
		ret, ok := d.returns[id]
		if !ok {
			return repo.ErrNotFound
		}
		ret.Status = status
		d.returns[id] = ret
		return nil
	})
}

func (r *returnRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(func(d *dataset) error {
		if _, ok := d.returns[id]; !ok {
			return repo.ErrNotFound
		}
		delete(d.returns, id)
		return nil
	})
}
