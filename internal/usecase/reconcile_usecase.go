package usecase

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// ReconcileUsecase は非正規化した集計値（num_products / review_summary）を元データから数え直す。
type ReconcileUsecase struct {
	store repo.Store
}

func NewReconcileUsecase(store repo.Store) *ReconcileUsecase {
	return &ReconcileUsecase{store: store}
}

type ReconcileResult struct {
	Sellers  int
	Products int
}

func (u *ReconcileUsecase) Run(ctx context.Context) (ReconcileResult, error) {
	var res ReconcileResult

	sellers, err := u.store.Sellers().List(ctx)
	if err != nil {
		return res, internalError(err)
	}
	for _, s := range sellers {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
			n, err := r.Products().CountBySeller(ctx, s.ID)
			if err != nil {
				return internalError(err)
			}
			if err := r.Sellers().SetNumProducts(ctx, s.ID, n); err != nil {
				return fromRepo(err, "Seller not found")
			}
			return recomputeSellerRating(ctx, r, s.ID)
		})
		if err != nil && !errors.Is(err, ErrNotFound) {
			return res, err
		}
		res.Sellers++
	}

	ids, err := u.store.Products().ListIDs(ctx)
	if err != nil {
		return res, internalError(err)
	}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
			if _, err := r.Products().FindByIDForUpdate(ctx, id); err != nil {
				return fromRepo(err, "Product not found")
			}
			stats, err := r.Reviews().StatsByProduct(ctx, id)
			if err != nil {
				return internalError(err)
			}
			summary := model.ReviewSummary{AvgRating: averageRating(stats), RatingCount: stats.Count}
			if err := r.Products().SetReviewSummary(ctx, id, summary); err != nil {
				return fromRepo(err, "Product not found")
			}
			return nil
		})
		//途中で消えた商品は飛ばす
		if err != nil && !errors.Is(err, ErrNotFound) {
			return res, err
		}
		res.Products++
	}

	return res, nil
}
