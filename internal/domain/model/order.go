package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const OrderStatusPending = "pending"

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

type ShipmentStatus string

const (
	ShipmentStatusPending        ShipmentStatus = "pending"
	ShipmentStatusShipped        ShipmentStatus = "shipped"
	ShipmentStatusOutForDelivery ShipmentStatus = "out for delivery"
	ShipmentStatusDelivered      ShipmentStatus = "delivered"
	ShipmentStatusReturned       ShipmentStatus = "returned"
)

func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentStatusPending, ShipmentStatusShipped, ShipmentStatusOutForDelivery,
		ShipmentStatusDelivered, ShipmentStatusReturned:
		return true
	}
	return false
}

// 注文時点の配送先住所
type ShippingAddressSnapshot struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
}

type PaymentDetails struct {
	PaymentMethod string          `json:"payment_method"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transaction_id"`
	Status        PaymentStatus   `json:"status"`
}

type ShipmentDetails struct {
	TrackingNumber    string         `json:"tracking_number,omitempty"`
	Carrier           string         `json:"carrier,omitempty"`
	Status            ShipmentStatus `json:"status,omitempty"`
	EstimatedDelivery *time.Time     `json:"estimated_delivery,omitempty"`
}

type StatusHistoryEntry struct {
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
	Notes  string    `json:"notes,omitempty"`
}

type Order struct {
	ID         string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID     string          `gorm:"type:varchar(36);not null;index" json:"user_id"`
	OrderTotal decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"order_total"`
	Items      []OrderItem     `gorm:"type:jsonb;serializer:json;not null" json:"items"`

	ShippingAddressSnapshot ShippingAddressSnapshot `gorm:"type:jsonb;serializer:json;not null" json:"shipping_address_snapshot"`
	PaymentDetails          PaymentDetails          `gorm:"type:jsonb;serializer:json;not null" json:"payment_details"`
	ShipmentDetails         *ShipmentDetails        `gorm:"type:jsonb;serializer:json" json:"shipment_details,omitempty"`

	//末尾が現在のステータス
	StatusHistory []StatusHistoryEntry `gorm:"type:jsonb;serializer:json;not null" json:"status_history"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

// 現在のステータス（履歴の末尾）
func (o Order) Status() string {
	if len(o.StatusHistory) == 0 {
		return ""
	}
	return o.StatusHistory[len(o.StatusHistory)-1].Status
}
