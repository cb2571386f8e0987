package usecase

import (
	"context"
	"slices"
	"strings"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"
)

// ウィッシュリストに追加。商品が存在しなければ404、既にあれば重複
func (u *UserUsecase) AddToWishlist(ctx context.Context, userID string, productID string) (model.User, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return model.User{}, validationError("Product ID is required")
	}

	return u.modify(ctx, userID, func(r repo.TxRepos, usr *model.User) error {
		if _, err := r.Products().FindByID(ctx, productID); err != nil {
			return fromRepo(err, "Product not found")
		}
		if slices.Contains(usr.WishlistIDs, productID) {
			return conflictError("Product already in wishlist")
		}
		usr.WishlistIDs = append(usr.WishlistIDs, productID)
		return nil
	})
}

// 無ければ何もしない
func (u *UserUsecase) RemoveFromWishlist(ctx context.Context, userID string, productID string) (model.User, error) {
	return u.modify(ctx, userID, func(_ repo.TxRepos, usr *model.User) error {
		usr.WishlistIDs = removeID(usr.WishlistIDs, productID)
		return nil
	})
}

func (u *UserUsecase) FollowSeller(ctx context.Context, userID string, sellerID string) (model.User, error) {
	sellerID = strings.TrimSpace(sellerID)
	if sellerID == "" {
		return model.User{}, validationError("Seller ID is required")
	}

	return u.modify(ctx, userID, func(r repo.TxRepos, usr *model.User) error {
		if _, err := r.Sellers().FindByID(ctx, sellerID); err != nil {
			return fromRepo(err, "Seller not found")
		}
		if slices.Contains(usr.FollowingSellerIDs, sellerID) {
			return conflictError("Already following this seller")
		}
		usr.FollowingSellerIDs = append(usr.FollowingSellerIDs, sellerID)
		return nil
	})
}

func (u *UserUsecase) UnfollowSeller(ctx context.Context, userID string, sellerID string) (model.User, error) {
	return u.modify(ctx, userID, func(_ repo.TxRepos, usr *model.User) error {
		usr.FollowingSellerIDs = removeID(usr.FollowingSellerIDs, sellerID)
		return nil
	})
}

func removeID[S ~[]string](ids S, id string) S {
	out := make(S, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
