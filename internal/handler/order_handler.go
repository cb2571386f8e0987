package handler

import (
	"net/http"
	"time"

	"marketplace/internal/domain/model"
	"marketplace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// /api/orders のHTTP
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type orderItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,gte=1"`
}

type paymentRequest struct {
	PaymentMethod string           `json:"payment_method" validate:"required"`
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	TransactionID string           `json:"transaction_id"`
	Status        string           `json:"status" validate:"omitempty,oneof=pending paid failed refunded"`
}

type createOrderRequest struct {
	UserID          string                         `json:"user_id" validate:"required"`
	Items           []orderItemRequest             `json:"items" validate:"required,min=1,dive"`
	ShippingAddress *model.ShippingAddressSnapshot `json:"shipping_address_snapshot" validate:"required"`
	Payment         *paymentRequest                `json:"payment_details" validate:"required"`
}

type shipmentRequest struct {
	TrackingNumber    *string    `json:"tracking_number"`
	Carrier           *string    `json:"carrier"`
	Status            *string    `json:"status"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

type updateOrderStatusRequest struct {
	Status   string           `json:"status" validate:"required"`
	Notes    string           `json:"notes"`
	Shipment *shipmentRequest `json:"shipment_details"`
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("", h.create)
	g.PUT("/:id/status", h.updateStatus)
	g.DELETE("/:id", h.delete)
}

func (h *OrderHandler) list(c echo.Context) error {
	orders, err := h.uc.List(c.Request().Context(), c.QueryParam("user_id"))
	if err != nil {
		return writeError(c, err)
	}
	return respondList(c, "orders", orders)
}

func (h *OrderHandler) detail(c echo.Context) error {
	o, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "", envelope{"order": o})
}

func (h *OrderHandler) create(c echo.Context) error {
	var req createOrderRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, usecase.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	o, err := h.uc.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		UserID:          req.UserID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		Payment: &usecase.PaymentInput{
			PaymentMethod: req.Payment.PaymentMethod,
			Amount:        req.Payment.Amount,
			TransactionID: req.Payment.TransactionID,
			Status:        req.Payment.Status,
		},
	})
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusCreated, "Order created successfully", envelope{"order": o})
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	var req updateOrderStatusRequest
	if err := bindRequest(c, &req); err != nil {
		return writeError(c, err)
	}

	in := usecase.UpdateOrderStatusInput{Status: req.Status, Notes: req.Notes}
	if s := req.Shipment; s != nil {
		in.Shipment = &usecase.ShipmentPatch{
			TrackingNumber:    s.TrackingNumber,
			Carrier:           s.Carrier,
			Status:            s.Status,
			EstimatedDelivery: s.EstimatedDelivery,
		}
	}

	o, err := h.uc.UpdateOrderStatus(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Order status updated successfully", envelope{"order": o})
}

func (h *OrderHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return respond(c, http.StatusOK, "Order deleted successfully", nil)
}
