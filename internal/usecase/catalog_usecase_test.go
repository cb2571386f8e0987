package usecase_test

import (
	"context"
	"testing"

	"marketplace/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeller_OnePerUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.seedUser(t, "ann")
	f.seedSeller(t, u.ID, "Ann's Shop")

	_, err := f.sellers.Create(ctx, usecase.CreateSellerInput{
		UserID: u.ID, StoreName: "Second", StoreDescription: "d", Address: "a", ContactNumber: "c",
	})
	require.ErrorIs(t, err, usecase.ErrConflict)
	e, _ := usecase.AsError(err)
	assert.Equal(t, "Seller profile already exists for this user", e.Message)

	_, err = f.sellers.Create(ctx, usecase.CreateSellerInput{
		UserID: "nobody", StoreName: "X", StoreDescription: "d", Address: "a", ContactNumber: "c",
	})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestSeller_Lookups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.seedUser(t, "ann")
	s := f.seedSeller(t, u.ID, "Ann Fine Goods")

	byName, err := f.sellers.GetByStoreName(ctx, "ann-fine-goods")
	require.NoError(t, err)
	assert.Equal(t, s.ID, byName.ID)

	byName, err = f.sellers.GetByStoreName(ctx, "Ann Fine Goods")
	require.NoError(t, err)
	assert.Equal(t, s.ID, byName.ID)

	byUser, err := f.sellers.GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, byUser.ID)
	require.NotNil(t, byUser.User)
	assert.Equal(t, "ann", byUser.User.Username)

	_, err = f.sellers.GetByStoreName(ctx, "nope")
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestSeller_NumProductsFollowsProducts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)

	p1 := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)
	f.seedProduct(t, s.seller.ID, s.category.ID, "Bowl", 50, 5)

	got, err := f.sellers.Get(ctx, s.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.RatingSummary.NumProducts)

	require.NoError(t, f.products.Delete(ctx, p1.ID))
	got, err = f.sellers.Get(ctx, s.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.RatingSummary.NumProducts)

	page, err := f.sellers.ListProducts(ctx, s.seller.ID, usecase.PageInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 20, page.Limit)
}

func TestSeller_NumProductsNeverNegative(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	//カウンタがずれていても0で止まる
	require.NoError(t, f.store.Sellers().SetNumProducts(ctx, s.seller.ID, 0))
	require.NoError(t, f.products.Delete(ctx, p.ID))

	got, err := f.sellers.Get(ctx, s.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.RatingSummary.NumProducts)
}

func TestCategory_DuplicateName(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedCategory(t, "Kitchen")
	garden := f.seedCategory(t, "Garden")

	_, err := f.categories.Create(ctx, "Kitchen", "again")
	require.ErrorIs(t, err, usecase.ErrConflict)
	e, _ := usecase.AsError(err)
	assert.Equal(t, "Category name already exists", e.Message)

	name := "Kitchen"
	_, err = f.categories.Update(ctx, garden.ID, usecase.CategoryInput{Name: &name})
	assert.ErrorIs(t, err, usecase.ErrConflict)

	_, err = f.categories.Create(ctx, "Tools", "")
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestProduct_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)

	price := decimal.NewFromInt(10)
	negative := decimal.NewFromInt(-1)
	base := func() usecase.CreateProductInput {
		return usecase.CreateProductInput{
			Name: "Mug", Description: "d", Price: &price, SellerID: s.seller.ID, CategoryIDs: []string{s.category.ID},
		}
	}

	noCategory := base()
	noCategory.CategoryIDs = nil
	badPrice := base()
	badPrice.Price = &negative
	badStatus := base()
	badStatus.Status = "archived"
	missingCategory := base()
	missingCategory.CategoryIDs = []string{s.category.ID, "missing"}
	missingSeller := base()
	missingSeller.SellerID = "missing"

	tests := []struct {
		name string
		in   usecase.CreateProductInput
		want error
	}{
		{"no category", noCategory, usecase.ErrValidation},
		{"negative price", badPrice, usecase.ErrValidation},
		{"bad status", badStatus, usecase.ErrValidation},
		{"unknown category", missingCategory, usecase.ErrNotFound},
		{"unknown seller", missingSeller, usecase.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.products.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	//失敗した作成はカウンタに影響しない
	got, err := f.sellers.Get(ctx, s.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.RatingSummary.NumProducts)

	p, err := f.products.Create(ctx, base())
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.StockQuantity)
	assert.Equal(t, "active", string(p.Status))
	require.NotNil(t, p.Seller)
	assert.Equal(t, "Acme Goods", p.Seller.StoreName)
	require.Len(t, p.Categories, 1)
	assert.Equal(t, "Kitchen", p.Categories[0].Name)
}

func TestProduct_ListFilters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	garden := f.seedCategory(t, "Garden")

	f.seedProduct(t, s.seller.ID, s.category.ID, "Blue Mug", 10, 5)
	f.seedProduct(t, s.seller.ID, s.category.ID, "Red Bowl", 30, 5)
	f.seedProduct(t, s.seller.ID, garden.ID, "Garden Hose", 50, 5)

	page, err := f.products.List(ctx, usecase.ListProductsInput{CategoryID: s.category.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	//新しい順
	assert.Equal(t, "Red Bowl", page.Items[0].Name)

	min := decimal.NewFromInt(20)
	max := decimal.NewFromInt(50)
	page, err = f.products.List(ctx, usecase.ListProductsInput{MinPrice: &min, MaxPrice: &max})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = f.products.List(ctx, usecase.ListProductsInput{Search: "MUG"})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Blue Mug", page.Items[0].Name)

	page, err = f.products.List(ctx, usecase.ListProductsInput{PageInput: usecase.PageInput{Page: 2, Limit: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Pages())
	assert.Len(t, page.Items, 1)

	_, err = f.products.List(ctx, usecase.ListProductsInput{MinPrice: &max, MaxPrice: &min})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = f.products.List(ctx, usecase.ListProductsInput{Status: "archived"})
	assert.ErrorIs(t, err, usecase.ErrValidation)
}

func TestProduct_UpdateRevalidatesCategories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 10, 5)

	_, err := f.products.Update(ctx, p.ID, usecase.UpdateProductInput{CategoryIDs: []string{"missing"}})
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	stock := int64(-1)
	_, err = f.products.Update(ctx, p.ID, usecase.UpdateProductInput{StockQuantity: &stock})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = f.products.Update(ctx, "missing", usecase.UpdateProductInput{})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestProduct_PriceRoundedToCents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)

	price := decimal.RequireFromString("19.999")
	created, err := f.products.Create(ctx, usecase.CreateProductInput{
		Name: "Jar", Description: "Glass jar", Price: &price,
		SellerID: s.seller.ID, CategoryIDs: []string{s.category.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "20", created.Price.String())

	got, err := f.products.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "20", got.Price.String())

	next := decimal.RequireFromString("5.005")
	updated, err := f.products.Update(ctx, created.ID, usecase.UpdateProductInput{Price: &next})
	require.NoError(t, err)
	assert.Equal(t, "5.01", updated.Price.String())
}
