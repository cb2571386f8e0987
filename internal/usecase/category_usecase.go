package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

type CategoryUsecase struct {
	store repo.Store
	idGen IDGenerator
	clock Clock
}

// DI
func NewCategoryUsecase(store repo.Store, idGen IDGenerator, clock Clock) *CategoryUsecase {
	return &CategoryUsecase{store: store, idGen: idGen, clock: clock}
}

type CategoryInput struct {
	Name        *string
	Description *string
}

func (u *CategoryUsecase) List(ctx context.Context) ([]model.Category, error) {
	cats, err := u.store.Categories().List(ctx)
	if err != nil {
		return nil, internalError(err)
	}
	return cats, nil
}

func (u *CategoryUsecase) Get(ctx context.Context, id string) (model.Category, error) {
	c, err := u.store.Categories().FindByID(ctx, id)
	if err != nil {
		return model.Category{}, fromRepo(err, "Category not found")
	}
	return c, nil
}

func (u *CategoryUsecase) Create(ctx context.Context, name string, description string) (model.Category, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" || description == "" {
		return model.Category{}, validationError("Name and description are required")
	}

	now := u.clock.Now()
	c, err := u.store.Categories().Create(ctx, model.Category{
		ID:          u.idGen.NewID(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Category{}, categoryWriteError(err)
	}
	return c, nil
}

func (u *CategoryUsecase) Update(ctx context.Context, id string, in CategoryInput) (model.Category, error) {
	var out model.Category
	err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		c, err := r.Categories().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, "Category not found")
		}
		if in.Name != nil {
			if c.Name = strings.TrimSpace(*in.Name); c.Name == "" {
				return validationError("name cannot be empty")
			}
		}
		if in.Description != nil {
			if c.Description = strings.TrimSpace(*in.Description); c.Description == "" {
				return validationError("description cannot be empty")
			}
		}
		c.UpdatedAt = u.clock.Now()

		if err := r.Categories().Update(ctx, c); err != nil {
			return categoryWriteError(err)
		}
		out = c
		return nil
	})
	if err != nil {
		return model.Category{}, err
	}
	return out, nil
}

func (u *CategoryUsecase) Delete(ctx context.Context, id string) error {
	if err := u.store.Categories().Delete(ctx, id); err != nil {
		return fromRepo(err, "Category not found")
	}
	return nil
}

func categoryWriteError(err error) error {
	if errors.Is(err, repo.ErrDuplicate) {
		return conflictError("Category name already exists")
	}
	return fromRepo(err, "Category not found")
}
