package memory

import (
	"context"
	"sort"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type categoryRepo struct{ a *access }

func checkCategoryName(d *dataset, c model.Category) error {
	for _, other := range d.categories {
		if other.ID != c.ID && other.Name == c.Name {
			return &repo.DuplicateError{Field: "name"}
		}
	}
	return nil
}

func (r *categoryRepo) Create(ctx context.Context, c model.Category) (model.Category, error) {
	err := r.a.write(func(d *dataset) error {
		if _, ok := d.categories[c.ID]; ok {
			return &repo.DuplicateError{Field: "id"}
		}
		if err := checkCategoryName(d, c); err != nil {
			return err
		}
		d.categories[c.ID] = c
		return nil
	})
	if err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func (r *categoryRepo) FindByID(ctx context.Context, id string) (model.Category, error) {
	var out model.Category
	err := r.a.read(func(d *dataset) error {
		c, ok := d.categories[id]
		if !ok {
			return repo.ErrNotFound
		}
		out = c
		return nil
	})
	return out, err
}

func (r *categoryRepo) FindByIDs(ctx context.Context, ids []string) ([]model.Category, error) {
	out := []model.Category{}
	err := r.a.read(func(d *dataset) error {
		for id := range idSet(ids) {
			if c, ok := d.categories[id]; ok {
				out = append(out, c)
			}
		}
		return nil
	})
	return out, err
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	out := []model.Category{}
	err := r.a.read(func(d *dataset) error {
		for _, c := range d.categories {
			out = append(out, c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *categoryRepo) Update(ctx context.Context, c model.Category) error {
	return r.a.write(func(d *dataset) error {
		cur, ok := d.categories[c.ID]
		if !ok {
			return repo.ErrNotFound
		}
		if err := checkCategoryName(d, c); err != nil {
			return err
		}
		c.CreatedAt = cur.CreatedAt
		d.categories[c.ID] = c
		return nil
	})
}

func (r *categoryRepo) Delete(ctx context.Context, id string) error {
	return r.a.write(func(d *dataset) error {
		if _, ok := d.categories[id]; !ok {
			return repo.ErrNotFound
		}
		delete(d.categories, id)
		return nil
	})
}
