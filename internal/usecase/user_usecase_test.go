package usecase_test

import (
	"context"
	"testing"

	"marketplace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_CreateHashesAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	u := f.seedUser(t, "ann")
	assert.Equal(t, "hashed:secret123", u.PasswordHash)
	assert.Empty(t, u.Addresses)

	_, err := f.users.Create(ctx, usecase.CreateUserInput{
		Username: "ann2", FirstName: "A", LastName: "B", Email: "ann@example.com", Password: "secret123",
	})
	require.ErrorIs(t, err, usecase.ErrConflict)
	e, ok := usecase.AsError(err)
	require.True(t, ok)
	assert.Equal(t, "email already exists", e.Message)

	_, err = f.users.Create(ctx, usecase.CreateUserInput{
		Username: "ann", FirstName: "A", LastName: "B", Email: "other@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, usecase.ErrConflict)
}

func TestUser_CreateValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name string
		in   usecase.CreateUserInput
	}{
		{"missing username", usecase.CreateUserInput{FirstName: "A", LastName: "B", Email: "a@example.com", Password: "secret123"}},
		{"bad email", usecase.CreateUserInput{Username: "a", FirstName: "A", LastName: "B", Email: "nope", Password: "secret123"}},
		{"short password", usecase.CreateUserInput{Username: "a", FirstName: "A", LastName: "B", Email: "a@example.com", Password: "123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.users.Create(ctx, tt.in)
			assert.ErrorIs(t, err, usecase.ErrValidation)
		})
	}
}

func TestUser_UpdateDuplicateUsername(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.seedUser(t, "ann")
	bob := f.seedUser(t, "bob")

	name := "ann"
	_, err := f.users.Update(ctx, bob.ID, usecase.UpdateUserInput{Username: &name})
	require.ErrorIs(t, err, usecase.ErrConflict)
	e, _ := usecase.AsError(err)
	assert.Equal(t, "username already exists", e.Message)

	phone := "555-1234"
	got, err := f.users.Update(ctx, bob.ID, usecase.UpdateUserInput{PhoneNumber: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-1234", got.PhoneNumber)
	assert.Equal(t, "bob", got.Username)
}

func TestUser_AddressDefaultIsUnique(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.seedUser(t, "ann")

	addr := func(kind string, def bool) usecase.AddressInput {
		return usecase.AddressInput{AddressType: kind, Street: "1 Main", City: "X", Province: "Y", PostalCode: "Z", IsDefault: def}
	}

	_, err := f.users.AddAddress(ctx, u.ID, addr("home", true))
	require.NoError(t, err)
	got, err := f.users.AddAddress(ctx, u.ID, addr("work", true))
	require.NoError(t, err)
	require.Len(t, got.Addresses, 2)
	assert.False(t, got.Addresses[0].IsDefault)
	assert.True(t, got.Addresses[1].IsDefault)

	yes := true
	got, err = f.users.UpdateAddress(ctx, u.ID, 0, usecase.AddressPatch{IsDefault: &yes})
	require.NoError(t, err)
	assert.True(t, got.Addresses[0].IsDefault)
	assert.False(t, got.Addresses[1].IsDefault)

	no := false
	got, err = f.users.UpdateAddress(ctx, u.ID, 0, usecase.AddressPatch{IsDefault: &no})
	require.NoError(t, err)
	for _, a := range got.Addresses {
		assert.False(t, a.IsDefault)
	}

	_, err = f.users.UpdateAddress(ctx, u.ID, 5, usecase.AddressPatch{})
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	_, err = f.users.AddAddress(ctx, u.ID, usecase.AddressInput{AddressType: "home"})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	got, err = f.users.DeleteAddress(ctx, u.ID, 0)
	require.NoError(t, err)
	require.Len(t, got.Addresses, 1)
	assert.Equal(t, "work", got.Addresses[0].AddressType)
}

func TestUser_WishlistAndFollow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	got, err := f.users.AddToWishlist(ctx, s.buyer.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, []string(got.WishlistIDs))

	_, err = f.users.AddToWishlist(ctx, s.buyer.ID, p.ID)
	assert.ErrorIs(t, err, usecase.ErrConflict)

	_, err = f.users.AddToWishlist(ctx, s.buyer.ID, "missing")
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	got, err = f.users.RemoveFromWishlist(ctx, s.buyer.ID, p.ID)
	require.NoError(t, err)
	assert.Empty(t, got.WishlistIDs)

	got, err = f.users.FollowSeller(ctx, s.buyer.ID, s.seller.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{s.seller.ID}, []string(got.FollowingSellerIDs))

	_, err = f.users.FollowSeller(ctx, s.buyer.ID, s.seller.ID)
	assert.ErrorIs(t, err, usecase.ErrConflict)

	_, err = f.users.FollowSeller(ctx, s.buyer.ID, "missing")
	assert.ErrorIs(t, err, usecase.ErrNotFound)

	got, err = f.users.UnfollowSeller(ctx, s.buyer.ID, "never-followed")
	require.NoError(t, err)
	assert.Len(t, got.FollowingSellerIDs, 1)
}
