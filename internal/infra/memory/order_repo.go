package memory

import (
	"context"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type orderRepo struct{ a *access }

func (r *orderRepo) Create(ctx context.Context, o model.Order) (model.Order, error) {
	err := r.a.write(func(d *dataset) error {
		if _, ok := d.orders[o.ID]; ok {
			return &repo.DuplicateError{Field: "id"}
		}
		d.orders[o.ID] = cloneOrder(o)
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

func (r *orderRepo) FindByID(ctx context.Context, id string) (model.Order, error) {
	var out model.Order
	err := r.a.read(func(d *dataset) error {
		o, ok := d.orders[id]
		if !ok {
			return repo.ErrNotFound
		}
		out = cloneOrder(o)
		return nil
	})
	return out, err
}

func (r *orderRepo) FindByIDForUpdate(ctx context.Context, id string) (model.Order, error) {
	return r.FindByID(ctx, id)
}

func (r *orderRepo) FindByIDs(ctx context.Context, ids []string) ([]model.Order, error) {
	out := []model.Order{}
	err := r.a.read(func(d *dataset) error {
		for id := range idSet(ids) {
			if o, ok := d.orders[id]; ok {
				out = append(out, cloneOrder(o))
			}
		}
		return nil
	})
	return out, err
}

func (r *orderRepo) List(ctx context.Context, f repo.OrderFilter) ([]model.Order, error) {
	out := []model.Order{}
	err := r.a.read(func(d *dataset) error {
		for _, o := range d.orders {
			if f.UserID != "" && o.UserID != f.UserID {
				continue
			}
			out = append(out, cloneOrder(o))
		}
		return nil
	})
	sortNewest(out, func(o model.Order) time.Time { return o.CreatedAt }, func(o model.Order) string { return o.ID })
	return out, err
}

func (r *orderRepo) UpdateTracking(ctx context.Context, o model.Order) error {
	return r.a.write(func(d *dataset) error {
		cur, ok := d.orders[o.ID]
		if !ok {
			return repo.ErrNotFound
		}
		cur.StatusHistory = o.StatusHistory
		cur.ShipmentDetails = o.ShipmentDetails
		d.orders[o.ID] = cloneOrder(cur)
		return nil
	})
}

func (r *orderRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(func(d *dataset) error {
		if _, ok := d.orders[id]; !ok {
			return repo.ErrNotFound
		}
		delete(d.orders, id)
		return nil
	})
}
