package usecase_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/domain/model"
	"marketplace/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder_TotalAndStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	o, err := f.orders.CreateOrder(ctx, orderInput(s.buyer.ID, item(p.ID, 3)))
	require.NoError(t, err)
	assert.True(t, o.OrderTotal.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, model.OrderStatusPending, o.Status)
	require.Len(t, o.StatusHistory, 1)
	assert.Equal(t, int64(2), stockOf(t, f, p.ID))

	_, err = f.orders.CreateOrder(ctx, orderInput(s.buyer.ID, item(p.ID, 3)))
	assert.ErrorIs(t, err, usecase.ErrInsufficientStock)
	assert.Equal(t, int64(2), stockOf(t, f, p.ID))
}

func TestCreateOrder_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p1 := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)
	p2 := f.seedProduct(t, s.seller.ID, s.category.ID, "Bowl", 50, 1)

	_, err := f.orders.CreateOrder(ctx, orderInput(s.buyer.ID, item(p1.ID, 2), item(p2.ID, 2)))
	assert.ErrorIs(t, err, usecase.ErrInsufficientStock)

	assert.Equal(t, int64(5), stockOf(t, f, p1.ID))
	assert.Equal(t, int64(1), stockOf(t, f, p2.ID))

	orders, err := f.orders.List(ctx, s.buyer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCreateOrder_RepeatedLinesShareStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	//1行ずつなら足りるが合計では足りない
	_, err := f.orders.CreateOrder(ctx, orderInput(s.buyer.ID, item(p.ID, 3), item(p.ID, 3)))
	assert.ErrorIs(t, err, usecase.ErrInsufficientStock)
	assert.Equal(t, int64(5), stockOf(t, f, p.ID))
}

func TestCreateOrder_SnapshotSurvivesProductEdit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	o, err := f.orders.CreateOrder(ctx, orderInput(s.buyer.ID, item(p.ID, 1)))
	require.NoError(t, err)

	newName := "Renamed Mug"
	newPrice := decimal.NewFromInt(999)
	_, err = f.products.Update(ctx, p.ID, usecase.UpdateProductInput{Name: &newName, Price: &newPrice})
	require.NoError(t, err)

	got, err := f.orders.Get(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Mug", got.Items[0].ProductSnapshot.Name)
	assert.True(t, got.Items[0].ProductSnapshot.Price.Equal(decimal.NewFromInt(100)))
	assert.True(t, got.OrderTotal.Equal(decimal.NewFromInt(100)))
	require.NotNil(t, got.User)
	assert.Equal(t, "buyer", got.User.Username)
}

func TestCreateOrder_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	noShipping := orderInput(s.buyer.ID, item(p.ID, 1))
	noShipping.ShippingAddress = nil

	badPayment := orderInput(s.buyer.ID, item(p.ID, 1))
	badPayment.Payment.Status = "lost"

	tests := []struct {
		name string
		in   usecase.CreateOrderInput
		want error
	}{
		{"no items", orderInput(s.buyer.ID), usecase.ErrValidation},
		{"zero quantity", orderInput(s.buyer.ID, item(p.ID, 0)), usecase.ErrValidation},
		{"no shipping", noShipping, usecase.ErrValidation},
		{"bad payment status", badPayment, usecase.ErrValidation},
		{"unknown user", orderInput("nobody", item(p.ID, 1)), usecase.ErrNotFound},
		{"unknown product", orderInput(s.buyer.ID, item("missing", 1)), usecase.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.orders.CreateOrder(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Equal(t, int64(5), stockOf(t, f, p.ID))
}

func TestUpdateOrderStatus_HistoryAndShipmentMerge(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	o, err := f.orders.CreateOrder(ctx, orderInput(s.buyer.ID, item(p.ID, 1)))
	require.NoError(t, err)

	tracking := "TRK-1"
	carrier := "UPS"
	_, err = f.orders.UpdateOrderStatus(ctx, o.ID, usecase.UpdateOrderStatusInput{
		Status:   "shipped",
		Notes:    "left warehouse",
		Shipment: &usecase.ShipmentPatch{TrackingNumber: &tracking, Carrier: &carrier},
	})
	require.NoError(t, err)

	shipStatus := string(model.ShipmentStatusOutForDelivery)
	eta := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	got, err := f.orders.UpdateOrderStatus(ctx, o.ID, usecase.UpdateOrderStatusInput{
		Status:   "in transit",
		Shipment: &usecase.ShipmentPatch{Status: &shipStatus, EstimatedDelivery: &eta},
	})
	require.NoError(t, err)

	assert.Equal(t, "in transit", got.Status)
	require.Len(t, got.StatusHistory, 3)
	assert.Equal(t, "shipped", got.StatusHistory[1].Status)
	assert.Equal(t, "left warehouse", got.StatusHistory[1].Notes)

	require.NotNil(t, got.ShipmentDetails)
	assert.Equal(t, "TRK-1", got.ShipmentDetails.TrackingNumber)
	assert.Equal(t, "UPS", got.ShipmentDetails.Carrier)
	assert.Equal(t, model.ShipmentStatusOutForDelivery, got.ShipmentDetails.Status)
	require.NotNil(t, got.ShipmentDetails.EstimatedDelivery)
	assert.True(t, eta.Equal(*got.ShipmentDetails.EstimatedDelivery))
}

func TestUpdateOrderStatus_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.orders.UpdateOrderStatus(ctx, "missing", usecase.UpdateOrderStatusInput{Status: " "})
	assert.ErrorIs(t, err, usecase.ErrValidation)

	_, err = f.orders.UpdateOrderStatus(ctx, "missing", usecase.UpdateOrderStatusInput{Status: "shipped"})
	assert.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestDeleteOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	s := f.seedShop(t)
	p := f.seedProduct(t, s.seller.ID, s.category.ID, "Mug", 100, 5)

	o, err := f.orders.CreateOrder(ctx, orderInput(s.buyer.ID, item(p.ID, 1)))
	require.NoError(t, err)

	require.NoError(t, f.orders.Delete(ctx, o.ID))
	_, err = f.orders.Get(ctx, o.ID)
	assert.ErrorIs(t, err, usecase.ErrNotFound)
	assert.ErrorIs(t, f.orders.Delete(ctx, o.ID), usecase.ErrNotFound)
}
