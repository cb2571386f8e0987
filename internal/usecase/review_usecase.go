package usecase

import (
	"context"
	"errors"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// ReviewUsecase は /reviews の業務ロジックです。
// 書き込みのたびに同じTxで商品の review_summary を計算し直す。
type ReviewUsecase struct {
	store repo.Store
	idGen IDGenerator
	clock Clock
}

func NewReviewUsecase(store repo.Store, idGen IDGenerator, clock Clock) *ReviewUsecase {
	return &ReviewUsecase{store: store, idGen: idGen, clock: clock}
}

type ReviewView struct {
	model.Review
	User    *UserRef    `json:"user,omitempty"`
	Product *ProductRef `json:"product,omitempty"`
}

type ListReviewsInput struct {
	ProductID string
	UserID    string
	PageInput
}

type CreateReviewInput struct {
	UserID    string
	ProductID string
	Rating    int
	Comment   string
	Images    []model.Attachment
}

// nil は変更なし
type UpdateReviewInput struct {
	Rating  *int
	Comment *string
	Images  []model.Attachment
}

func validRating(r int) bool {
	return r >= model.MinRating && r <= model.MaxRating
}

func (u *ReviewUsecase) List(ctx context.Context, in ListReviewsInput) (Page[ReviewView], error) {
	pg, err := in.normalize()
	if err != nil {
		return Page[ReviewView]{}, err
	}
	reviews, total, err := u.store.Reviews().List(ctx, repo.ReviewFilter{
		ProductID:  in.ProductID,
		UserID:     in.UserID,
		Pagination: pg,
	})
	if err != nil {
		return Page[ReviewView]{}, internalError(err)
	}
	views, err := u.attach(ctx, u.store, reviews)
	if err != nil {
		return Page[ReviewView]{}, err
	}
	return newPage(views, total, pg), nil
}

func (u *ReviewUsecase) Get(ctx context.Context, id string) (ReviewView, error) {
	rv, err := u.store.Reviews().FindByID(ctx, id)
	if err != nil {
		return ReviewView{}, fromRepo(err, "Review not found")
	}
	return u.attachOne(ctx, u.store, rv)
}

func (u *ReviewUsecase) Create(ctx context.Context, in CreateReviewInput) (ReviewView, error) {
	in.UserID = strings.TrimSpace(in.UserID)
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.Comment = strings.TrimSpace(in.Comment)
	if in.UserID == "" || in.ProductID == "" || in.Comment == "" {
		return ReviewView{}, validationError("user_id, product_id, rating and comment are required")
	}
	if !validRating(in.Rating) {
		return ReviewView{}, validationError("rating must be between 1 and 5")
	}

	var out ReviewView
	err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Users().FindByID(ctx, in.UserID); err != nil {
			return fromRepo(err, "User not found")
		}
		//商品を行ロックして集計の書き込みを直列にする
		if _, err := r.Products().FindByIDForUpdate(ctx, in.ProductID); err != nil {
			return fromRepo(err, "Product not found")
		}

		rv, err := r.Reviews().Create(ctx, model.Review{
			ID:        u.idGen.NewID(),
			UserID:    in.UserID,
			ProductID: in.ProductID,
			Rating:    in.Rating,
			Comment:   in.Comment,
			Images:    in.Images,
			CreatedAt: u.clock.Now(),
		})
		if err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return conflictError("You have already reviewed this product")
			}
			return internalError(err)
		}

		if _, err := recomputeProductSummary(ctx, r, in.ProductID); err != nil {
			return err
		}
		out, err = u.attachOne(ctx, r, rv)
		return err
	})
	if err != nil {
		return ReviewView{}, err
	}
	return out, nil
}

func (u *ReviewUsecase) Update(ctx context.Context, id string, in UpdateReviewInput) (ReviewView, error) {
	if in.Rating != nil && !validRating(*in.Rating) {
		return ReviewView{}, validationError("rating must be between 1 and 5")
	}

	var out ReviewView
	err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		rv, err := r.Reviews().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, "Review not found")
		}
		if _, err := r.Products().FindByIDForUpdate(ctx, rv.ProductID); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return internalError(err)
		}

		if in.Rating != nil {
			rv.Rating = *in.Rating
		}
		if in.Comment != nil {
			rv.Comment = strings.TrimSpace(*in.Comment)
		}
		if in.Images != nil {
			rv.Images = in.Images
		}

		if err := r.Reviews().Update(ctx, rv); err != nil {
			return fromRepo(err, "Review not found")
		}
		if _, err := recomputeProductSummary(ctx, r, rv.ProductID); err != nil {
			return err
		}
		out, err = u.attachOne(ctx, r, rv)
		return err
	})
	if err != nil {
		return ReviewView{}, err
	}
	return out, nil
}

func (u *ReviewUsecase) Delete(ctx context.Context, id string) error {
	return u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		rv, err := r.Reviews().FindByID(ctx, id)
		if err != nil {
			return fromRepo(err, "Review not found")
		}
		if _, err := r.Products().FindByIDForUpdate(ctx, rv.ProductID); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return internalError(err)
		}
		if err := r.Reviews().Delete(ctx, id); err != nil {
			return fromRepo(err, "Review not found")
		}
		_, err = recomputeProductSummary(ctx, r, rv.ProductID)
		return err
	})
}

func (u *ReviewUsecase) attach(ctx context.Context, r repo.TxRepos, reviews []model.Review) ([]ReviewView, error) {
	userIDs := make([]string, 0, len(reviews))
	productIDs := make([]string, 0, len(reviews))
	for _, rv := range reviews {
		userIDs = append(userIDs, rv.UserID)
		productIDs = append(productIDs, rv.ProductID)
	}

	pop := populator{r}
	users, err := pop.users(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	products, err := pop.products(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	out := make([]ReviewView, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, ReviewView{Review: rv, User: users[rv.UserID], Product: products[rv.ProductID]})
	}
	return out, nil
}

func (u *ReviewUsecase) attachOne(ctx context.Context, r repo.TxRepos, rv model.Review) (ReviewView, error) {
	views, err := u.attach(ctx, r, []model.Review{rv})
	if err != nil {
		return ReviewView{}, err
	}
	return views[0], nil
}
