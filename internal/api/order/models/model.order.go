// Package models - Order thuộc domain đơn hàng (orders).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các giá trị hợp lệ của paymentMethod
const (
	PaymentMethodCOD          = "cod"
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
)

// Các giá trị hợp lệ của status
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// OrderItem một dòng hàng trong đơn
type OrderItem struct {
	ProductName string  `json:"productName" bson:"productName"`
	Sku         string  `json:"sku,omitempty" bson:"sku,omitempty"`
	Quantity    int     `json:"quantity" bson:"quantity"`
	UnitPrice   float64 `json:"unitPrice" bson:"unitPrice"`
}

// ShippingAddress địa chỉ giao hàng của đơn
type ShippingAddress struct {
	Line1      string `json:"line1" bson:"line1"`
	Line2      string `json:"line2,omitempty" bson:"line2,omitempty"`
	City       string `json:"city" bson:"city"`
	Country    string `json:"country" bson:"country"`
	PostalCode string `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
}

// Order lưu đơn hàng (orders).
// customerId tham chiếu tới collection customers, tag ref phục vụ populate.
type Order struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	CustomerID      primitive.ObjectID `json:"customerId" bson:"customerId" ref:"customers" index:"single;compound:order_customer_status"`
	Items           []OrderItem        `json:"items" bson:"items"`
	TotalAmount     float64            `json:"totalAmount" bson:"totalAmount"`
	Currency        string             `json:"currency" bson:"currency"` // Mã ISO 4217, ví dụ VND, USD
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod" bson:"paymentMethod"` // cod | card | bank_transfer
	Status          string             `json:"status" bson:"status" index:"single;compound:order_customer_status"` // pending | confirmed | shipped | delivered | cancelled
	Note            string             `json:"note,omitempty" bson:"note,omitempty"`

	// Bookkeeping - server stamp, client không ghi được
	AddedBy   primitive.ObjectID `json:"addedBy,omitempty" bson:"addedBy,omitempty"`
	UpdatedBy primitive.ObjectID `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt" index:"single"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt" index:"single"`
}
