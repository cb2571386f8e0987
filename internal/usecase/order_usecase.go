package usecase

import (
	"context"
	"strings"
	"time"

	"marketplace/internal/domain/model"
	repo "marketplace/internal/repository"

	"github.com/shopspring/decimal"
)

const orderCreatedNote = "Order created"

type OrderUsecase struct {
	store repo.Store
	idGen IDGenerator
	clock Clock
}

func NewOrderUsecase(store repo.Store, idGen IDGenerator, clock Clock) *OrderUsecase {
	return &OrderUsecase{store: store, idGen: idGen, clock: clock}
}

type OrderItemInput struct {
	ProductID string
	Quantity  int64
}

type PaymentInput struct {
	PaymentMethod string
	Amount        *decimal.Decimal
	TransactionID string
	Status        string
}

type CreateOrderInput struct {
	UserID          string
	Items           []OrderItemInput
	ShippingAddress *model.ShippingAddressSnapshot
	Payment         *PaymentInput
}

// 指定された項目だけ既存の shipment_details に上書きする
type ShipmentPatch struct {
	TrackingNumber    *string
	Carrier           *string
	Status            *string
	EstimatedDelivery *time.Time
}

type UpdateOrderStatusInput struct {
	Status   string
	Notes    string
	Shipment *ShipmentPatch
}

type OrderItemView struct {
	model.OrderItem
	Product *ProductRef `json:"product,omitempty"`
}

type OrderView struct {
	model.Order
	Status string          `json:"status"`
	User   *UserRef        `json:"user,omitempty"`
	Items  []OrderItemView `json:"items"`
}

func (u *OrderUsecase) List(ctx context.Context, userID string) ([]OrderView, error) {
	orders, err := u.store.Orders().List(ctx, repo.OrderFilter{UserID: userID})
	if err != nil {
		return nil, internalError(err)
	}
	return u.attach(ctx, u.store, orders)
}

func (u *OrderUsecase) Get(ctx context.Context, id string) (OrderView, error) {
	o, err := u.store.Orders().FindByID(ctx, id)
	if err != nil {
		return OrderView{}, fromRepo(err, "Order not found")
	}
	return u.attachOne(ctx, u.store, o)
}

// CreateOrder は注文作成。
// 全明細を先に検証し、在庫の減算もまとめて同じTxで行う（途中で失敗したら全部戻る）。
func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (OrderView, error) {
	payment, shipping, err := validateOrderInput(&in)
	if err != nil {
		return OrderView{}, err
	}

	var out OrderView
	err = u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Users().FindByID(ctx, in.UserID); err != nil {
			return fromRepo(err, "User not found")
		}

		//順番に検証してスナップショットを取る
		items := make([]model.OrderItem, 0, len(in.Items))
		total := decimal.Zero
		for _, it := range in.Items {
			p, err := r.Products().FindByID(ctx, it.ProductID)
			if err != nil {
				return fromRepo(err, "Product not found: "+it.ProductID)
			}
			if it.Quantity > p.StockQuantity {
				return insufficientStockError("Insufficient stock for product: " + p.Name)
			}

			item := model.OrderItem{
				ProductID: p.ID,
				Quantity:  it.Quantity,
				ProductSnapshot: model.ProductSnapshot{
					Name:  p.Name,
					Price: p.Price,
				},
			}
			items = append(items, item)
			total = total.Add(item.Subtotal())
		}

		//在庫減算（足りないなら false）。同じ商品が複数行あっても累積で判定される
		for _, it := range items {
			ok, err := r.Products().DecreaseStockIfEnough(ctx, it.ProductID, it.Quantity)
			if err != nil {
				return internalError(err)
			}
			if !ok {
				return insufficientStockError("Insufficient stock for product: " + it.ProductSnapshot.Name)
			}
		}

		now := u.clock.Now()
		o, err := r.Orders().Create(ctx, model.Order{
			ID:                      u.idGen.NewID(),
			UserID:                  in.UserID,
			OrderTotal:              total,
			Items:                   items,
			ShippingAddressSnapshot: shipping,
			PaymentDetails:          payment,
			StatusHistory: []model.StatusHistoryEntry{
				{Status: model.OrderStatusPending, Date: now, Notes: orderCreatedNote},
			},
			CreatedAt: now,
		})
		if err != nil {
			return internalError(err)
		}

		out, err = u.attachOne(ctx, r, o)
		return err
	})
	if err != nil {
		return OrderView{}, err
	}
	return out, nil
}

func validateOrderInput(in *CreateOrderInput) (model.PaymentDetails, model.ShippingAddressSnapshot, error) {
	var (
		payment  model.PaymentDetails
		shipping model.ShippingAddressSnapshot
	)

	in.UserID = strings.TrimSpace(in.UserID)
	if in.UserID == "" || len(in.Items) == 0 || in.ShippingAddress == nil || in.Payment == nil {
		return payment, shipping, validationError("user_id, items, shipping_address_snapshot and payment_details are required")
	}
	for i := range in.Items {
		in.Items[i].ProductID = strings.TrimSpace(in.Items[i].ProductID)
		if in.Items[i].ProductID == "" {
			return payment, shipping, validationError("product_id is required for every item")
		}
		if in.Items[i].Quantity < 1 {
			return payment, shipping, validationError("quantity must be at least 1")
		}
	}

	shipping = model.ShippingAddressSnapshot{
		Street:     strings.TrimSpace(in.ShippingAddress.Street),
		City:       strings.TrimSpace(in.ShippingAddress.City),
		Province:   strings.TrimSpace(in.ShippingAddress.Province),
		PostalCode: strings.TrimSpace(in.ShippingAddress.PostalCode),
	}
	if shipping.Street == "" || shipping.City == "" || shipping.Province == "" || shipping.PostalCode == "" {
		return payment, shipping, validationError("shipping address requires street, city, province and postal_code")
	}

	p := in.Payment
	if strings.TrimSpace(p.PaymentMethod) == "" || p.Amount == nil {
		return payment, shipping, validationError("payment_details requires payment_method and amount")
	}
	if p.Amount.IsNegative() {
		return payment, shipping, validationError("payment amount must be >= 0")
	}
	status := model.PaymentStatusPending
	if p.Status != "" {
		status = model.PaymentStatus(p.Status)
	}
	if !status.Valid() {
		return payment, shipping, validationError("invalid payment status")
	}
	payment = model.PaymentDetails{
		PaymentMethod: strings.TrimSpace(p.PaymentMethod),
		Amount:        model.RoundMoney(*p.Amount),
		TransactionID: p.TransactionID,
		Status:        status,
	}
	return payment, shipping, nil
}

// 履歴に追加し、shipment_details を項目ごとにマージする
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, id string, in UpdateOrderStatusInput) (OrderView, error) {
	status := strings.TrimSpace(in.Status)
	if status == "" {
		return OrderView{}, validationError("Status is required")
	}
	if in.Shipment != nil && in.Shipment.Status != nil {
		if !model.ShipmentStatus(*in.Shipment.Status).Valid() {
			return OrderView{}, validationError("invalid shipment status")
		}
	}

	var out OrderView
	err := u.store.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByIDForUpdate(ctx, id)
		if err != nil {
			return fromRepo(err, "Order not found")
		}

		o.StatusHistory = append(o.StatusHistory, model.StatusHistoryEntry{
			Status: status,
			Date:   u.clock.Now(),
			Notes:  in.Notes,
		})
		if in.Shipment != nil {
			o.ShipmentDetails = mergeShipment(o.ShipmentDetails, *in.Shipment)
		}

		if err := r.Orders().UpdateTracking(ctx, o); err != nil {
			return fromRepo(err, "Order not found")
		}
		out, err = u.attachOne(ctx, r, o)
		return err
	})
	if err != nil {
		return OrderView{}, err
	}
	return out, nil
}

func mergeShipment(cur *model.ShipmentDetails, p ShipmentPatch) *model.ShipmentDetails {
	sd := model.ShipmentDetails{}
	if cur != nil {
		sd = *cur
	}
	if p.TrackingNumber != nil {
		sd.TrackingNumber = *p.TrackingNumber
	}
	if p.Carrier != nil {
		sd.Carrier = *p.Carrier
	}
	if p.Status != nil {
		sd.Status = model.ShipmentStatus(*p.Status)
	}
	if p.EstimatedDelivery != nil {
		t := *p.EstimatedDelivery
		sd.EstimatedDelivery = &t
	}
	return &sd
}

func (u *OrderUsecase) Delete(ctx context.Context, id string) error {
	if err := u.store.Orders().Delete(ctx, id); err != nil {
		return fromRepo(err, "Order not found")
	}
	return nil
}

func (u *OrderUsecase) attach(ctx context.Context, r repo.TxRepos, orders []model.Order) ([]OrderView, error) {
	userIDs := make([]string, 0, len(orders))
	productIDs := []string{}
	for _, o := range orders {
		userIDs = append(userIDs, o.UserID)
		for _, it := range o.Items {
			productIDs = append(productIDs, it.ProductID)
		}
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

	out := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		v := OrderView{
			Order:  o,
			Status: o.Status(),
			User:   users[o.UserID],
			Items:  make([]OrderItemView, 0, len(o.Items)),
		}
		for _, it := range o.Items {
			v.Items = append(v.Items, OrderItemView{OrderItem: it, Product: products[it.ProductID]})
		}
		out = append(out, v)
	}
	return out, nil
}

func (u *OrderUsecase) attachOne(ctx context.Context, r repo.TxRepos, o model.Order) (OrderView, error) {
	views, err := u.attach(ctx, r, []model.Order{o})
	if err != nil {
		return OrderView{}, err
	}
	return views[0], nil
}
