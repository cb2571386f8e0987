package usecase

import (
	"context"
	"errors"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

// 平均は小数第1位で四捨五入。0件なら0
func averageRating(s repo.ReviewStats) float64 {
	if s.Count == 0 {
		return 0
	}
	avg := decimal.NewFromInt(s.Sum).Div(decimal.NewFromInt(s.Count)).Round(1)
	return avg.InexactFloat64()
}

// 商品の review_summary を全レビューから計算し直し、出品者の評価も更新する
func recomputeProductSummary(ctx context.Context, r repo.TxRepos, productID string) (model.ReviewSummary, error) {
	stats, err := r.Reviews().StatsByProduct(ctx, productID)
	if err != nil {
		return model.ReviewSummary{}, internalError(err)
	}
	summary := model.ReviewSummary{AvgRating: averageRating(stats), RatingCount: stats.Count}

	//商品が消えていれば集計先がない
	if err := r.Products().SetReviewSummary(ctx, productID, summary); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return summary, nil
		}
		return model.ReviewSummary{}, internalError(err)
	}

	p, err := r.Products().FindByID(ctx, productID)
	if err != nil {
		return model.ReviewSummary{}, fromRepo(err, "Product not found")
	}
	if err := recomputeSellerRating(ctx, r, p.SellerID); err != nil {
		return model.ReviewSummary{}, err
	}
	return summary, nil
}

func recomputeSellerRating(ctx context.Context, r repo.TxRepos, sellerID string) error {
	stats, err := r.Reviews().StatsBySeller(ctx, sellerID)
	if err != nil {
		return internalError(err)
	}
	if err := r.Sellers().SetRating(ctx, sellerID, averageRating(stats), stats.Count); err != nil && !errors.Is(err, repo.ErrNotFound) {
		return internalError(err)
	}
	return nil
}
