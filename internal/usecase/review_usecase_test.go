package usecase_test

import (
	"context"
	"testing"

	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewInput(userID, productID string, rating int) usecase.CreateReviewInput {
	return usecase.CreateReviewInput{UserID: userID, ProductID: productID, Rating: rating, Comment: "ok"}
}

func TestReviews_SummaryFollowsWrites(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	var third usecase.ReviewView
	for i, rating := range []int{4, 5, 3} {
		u := f.seedUser(t, []string{"ann", "bob", "cat"}[i])
		rv, err := f.reviews.Create(ctx, reviewInput(u.ID, p.ID, rating))
		require.NoError(t, err)
		third = rv
	}

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.ReviewSummary.AvgRating)
	assert.Equal(t, int64(3), got.ReviewSummary.RatingCount)

	require.NoError(t, f.reviews.Delete(ctx, third.ID))

	got, err = f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.ReviewSummary.AvgRating)
	assert.Equal(t, int64(2), got.ReviewSummary.RatingCount)

	seller, err := f.sellers.Get(ctx, s.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.5, seller.RatingSummary.AvgRating)
	assert.Equal(t, int64(2), seller.RatingSummary.RatingCount)
}

func TestReviews_AverageRoundsToOneDecimal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	for i, rating := range []int{5, 5, 4} {
		u := f.seedUser(t, []string{"ann", "bob", "cat"}[i])
		_, err := f.reviews.Create(ctx, reviewInput(u.ID, p.ID, rating))
		require.NoError(t, err)
	}

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.7, got.ReviewSummary.AvgRating)
}

func TestReviews_DuplicateIsConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	_, err := f.reviews.Create(ctx, reviewInput(s.buyer.ID, p.ID, 5))
	require.NoError(t, err)

	_, err = f.reviews.Create(ctx, reviewInput(s.buyer.ID, p.ID, 1))
	assert.ErrorIs(t, err, usecase.ErrConflict)

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ReviewSummary.RatingCount)
	assert.Equal(t, 5.0, got.ReviewSummary.AvgRating)
}

func TestReviews_UpdateRecomputes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	rv, err := f.reviews.Create(ctx, reviewInput(s.buyer.ID, p.ID, 2))
	require.NoError(t, err)

	rating := 5
	comment := "changed my mind"
	updated, err := f.reviews.Update(ctx, rv.ID, usecase.UpdateReviewInput{Rating: &rating, Comment: &comment})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "changed my mind", updated.Comment)

	got, err := f.products.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.ReviewSummary.AvgRating)
	assert.Equal(t, int64(1), got.ReviewSummary.RatingCount)
}

func TestReviews_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	_, err := f.reviews.Create(ctx, reviewInput(s.buyer.ID, p.ID, 0))
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = f.reviews.Create(ctx, reviewInput(s.buyer.ID, p.ID, 6))
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = f.reviews.Create(ctx, usecase.CreateReviewInput{UserID: s.buyer.ID, ProductID: p.ID, Rating: 3})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = f.reviews.Create(ctx, reviewInput(s.buyer.ID, "missing", 3))
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	_, err = f.reviews.Create(ctx, reviewInput("nobody", p.ID, 3))
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestReviews_ListPaginates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	for _, name := range []string{"ann", "bob", "cat"} {
		u := f.seedUser(t, name)
		_, err := f.reviews.Create(ctx, reviewInput(u.ID, p.ID, 4))
		require.NoError(t, err)
	}

	page, err := f.reviews.List(ctx, usecase.ListReviewsInput{ProductID: p.ID, PageInput: usecase.PageInput{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Pages())
	require.Len(t, page.Items, 1)
	require.NotNil(t, page.Items[0].User)
	require.NotNil(t, page.Items[0].Product)
	assert.Equal(t, "Mug", page.Items[0].Product.Name)

	_, err = f.reviews.List(ctx, usecase.ListReviewsInput{PageInput: usecase.PageInput{Limit: 101}})
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestReviews_UpdateAcceptsEmptyComment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	rv, err := f.reviews.Create(ctx, reviewInput(s.buyer.ID, p.ID, 4))
	require.NoError(t, err)

	empty := "  "
	updated, err := f.reviews.Update(ctx, rv.ID, usecase.UpdateReviewInput{Comment: &empty})
	require.NoError(t, err)
	assert.Equal(t, "", updated.Comment)
	assert.Equal(t, 4, updated.Rating)
}
