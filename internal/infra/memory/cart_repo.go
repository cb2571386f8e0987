package memory

import (
	"context"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type cartRepo struct{ a *access }

func findCart(d *dataset, userID string) (model.Cart, bool) {
	for _, c := range d.carts {
		if c.UserID == userID {
			return c, true
		}
	}
	return model.Cart{}, false
}

func (r *cartRepo) FindByUserID(ctx context.Context, userID string) (model.Cart, error) {
	var out model.Cart
	err := r.a.read(func(d *dataset) error {
		c, ok := findCart(d, userID)
		if !ok {
			return repo.ErrNotFound
		}
		out = cloneCart(c)
		return nil
	})
	return out, err
}

func (r *cartRepo) FindByUserIDForUpdate(ctx context.Context, userID string) (model.Cart, error) {
	return r.FindByUserID(ctx, userID)
}

func (r *cartRepo) GetOrCreateForUpdate(ctx context.Context, c model.Cart) (model.Cart, error) {
	var out model.Cart
	err := r.a.write(func(d *dataset) error {
		if cur, ok := findCart(d, c.UserID); ok {
			out = cloneCart(cur)
			return nil
		}
		d.carts[c.ID] = cloneCart(c)
		out = cloneCart(c)
		return nil
	})
	return out, err
}

func (r *cartRepo) SaveItems(ctx context.Context, c model.Cart) error {
	return r.a.write(func(d *dataset) error {
		cur, ok := d.carts[c.ID]
		if !ok {
			return repo.ErrNotFound
		}
		cur.Items = c.Items
		cur.UpdatedAt = c.UpdatedAt
		d.carts[c.ID] = cloneCart(cur)
		return nil
	})
}
