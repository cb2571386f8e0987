package memory

import (
	"context"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type userRepo struct{ a *access }

func (r *userRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	err := r.a.write(func(d *dataset) error {
		if _, ok := d.users[u.ID]; ok {
			return &repo.DuplicateError{Field: "id"}
		}
		if err := checkUserUnique(d, u); err != nil {
			return err
		}
		d.users[u.ID] = cloneUser(u)
		return nil
	})
	if err != nil {
		return model.User{}, err
	}
	return u, nil
}

func checkUserUnique(d *dataset, u model.User) error {
	for _, other := range d.users {
		if other.ID == u.ID {
			continue
		}
		if other.Username == u.Username {
			return &repo.DuplicateError{Field: "username"}
		}
		if other.Email == u.Email {
			return &repo.DuplicateError{Field: "email"}
		}
	}
	return nil
}

func (r *userRepo) FindByID(ctx context.Context, id string) (model.User, error) {
	var out model.User
	err := r.a.read(func(d *dataset) error {
		u, ok := d.users[id]
		if !ok {
			return repo.ErrNotFound
		}
		out = cloneUser(u)
		return nil
	})
	return out, err
}

func (r *userRepo) FindByIDForUpdate(ctx context.Context, id string) (model.User, error) {
	return r.FindByID(ctx, id)
}

func (r *userRepo) FindByIDs(ctx context.Context, ids []string) ([]model.User, error) {
	out := []model.User{}
	err := r.a.read(func(d *dataset) error {
		for id := range idSet(ids) {
			if u, ok := d.users[id]; ok {
				out = append(out, cloneUser(u))
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	out := []model.User{}
	err := r.a.read(func(d *dataset) error {
		for _, u := range d.users {
			out = append(out, cloneUser(u))
		}
		return nil
	})
	sortNewest(out, func(u model.User) time.Time { return u.CreatedAt }, func(u model.User) string { return u.ID })
	return out, err
}

func (r *userRepo) Update(ctx context.Context, u model.User) error {
	return r.a.write(func(d *dataset) error {
		cur, ok := d.users[u.ID]
		if !ok {
			return repo.ErrNotFound
		}
		if err := checkUserUnique(d, u); err != nil {
			return err
		}
		u.CreatedAt = cur.CreatedAt
		d.users[u.ID] = cloneUser(u)
		return nil
	})
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(func(d *dataset) error {
		if _, ok := d.users[id]; !ok {
			return repo.ErrNotFound
		}
		delete(d.users, id)
		return nil
	})
}
