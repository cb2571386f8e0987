package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"marketplace/internal/domain/model"
	"marketplace/internal/infra/memory"
	"marketplace/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type seqIDs struct{ n int }

func (g *seqIDs) NewID() string {
	g.n++
	return fmt.Sprintf("id-%04d", g.n)
}

// 呼ぶたびに1秒進む（新しい順の並びを安定させる）
type stepClock struct{ t time.Time }

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

type fixture struct {
	store      *memory.Store
	users      *usecase.UserUsecase
	sellers    *usecase.SellerUsecase
	categories *usecase.CategoryUsecase
	products   *usecase.ProductUsecase
	carts      *usecase.CartUsecase
	orders     *usecase.OrderUsecase
	returns    *usecase.ReturnUsecase
	reviews    *usecase.ReviewUsecase
	reconcile  *usecase.ReconcileUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	ids := &seqIDs{}
	clock := &stepClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

	return &fixture{
		store:      store,
		users:      usecase.NewUserUsecase(store, plainHasher{}, ids, clock),
		sellers:    usecase.NewSellerUsecase(store, ids, clock),
		categories: usecase.NewCategoryUsecase(store, ids, clock),
		products:   usecase.NewProductUsecase(store, ids, clock),
		carts:      usecase.NewCartUsecase(store, ids, clock),
		orders:     usecase.NewOrderUsecase(store, ids, clock),
		returns:    usecase.NewReturnUsecase(store, ids, clock),
		reviews:    usecase.NewReviewUsecase(store, ids, clock),
		reconcile:  usecase.NewReconcileUsecase(store),
	}
}

func (f *fixture) seedUser(t *testing.T, name string) model.User {
	t.Helper()
	u, err := f.users.Create(context.Background(), usecase.CreateUserInput{
		Username:  name,
		FirstName: "First",
		LastName:  "Last",
		Email:     name + "@example.com",
		Password:  "secret123",
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) seedSeller(t *testing.T, userID string, storeName string) usecase.SellerView {
	t.Helper()
	s, err := f.sellers.Create(context.Background(), usecase.CreateSellerInput{
		UserID:           userID,
		StoreName:        storeName,
		StoreDescription: "desc",
		Address:          "1 Main St",
		ContactNumber:    "555-0100",
	})
	require.NoError(t, err)
	return s
}

func (f *fixture) seedCategory(t *testing.T, name string) model.Category {
	t.Helper()
	c, err := f.categories.Create(context.Background(), name, name+" things")
	require.NoError(t, err)
	return c
}

func (f *fixture) seedProduct(t *testing.T, sellerID string, categoryID string, name string, price int64, stock int64) usecase.ProductView {
	t.Helper()
	pr := decimal.NewFromInt(price)
	p, err := f.products.Create(context.Background(), usecase.CreateProductInput{
		Name:          name,
		Description:   name + " description",
		Price:         &pr,
		StockQuantity: &stock,
		SellerID:      sellerID,
		CategoryIDs:   []string{categoryID},
	})
	require.NoError(t, err)
	return p
}

// 出品者・カテゴリ・購入者をまとめて用意
type shop struct {
	buyer    model.User
	seller   usecase.SellerView
	category model.Category
}

func (f *fixture) seedShop(t *testing.T) shop {
	t.Helper()
	owner := f.seedUser(t, "owner")
	return shop{
		buyer:    f.seedUser(t, "buyer"),
		seller:   f.seedSeller(t, owner.ID, "Acme Goods"),
		category: f.seedCategory(t, "Kitchen"),
	}
}

func orderInput(userID string, items ...usecase.OrderItemInput) usecase.CreateOrderInput {
	amount := decimal.NewFromInt(0)
	return usecase.CreateOrderInput{
		UserID: userID,
		Items:  items,
		ShippingAddress: &model.ShippingAddressSnapshot{
			Street:     "1 Main St",
			City:       "Springfield",
			Province:   "ON",
			PostalCode: "A1A 1A1",
		},
		Payment: &usecase.PaymentInput{PaymentMethod: "card", Amount: &amount},
	}
}

func item(productID string, qty int64) usecase.OrderItemInput {
	return usecase.OrderItemInput{ProductID: productID, Quantity: qty}
}

func stockOf(t *testing.T, f *fixture, productID string) int64 {
	t.Helper()
	p, err := f.store.Products().FindByID(context.Background(), productID)
	require.NoError(t, err)
	return p.StockQuantity
}
