// Package dto - DTO cho domain đơn hàng.
package dto

// OrderItemInput một dòng hàng trong body create/update
type OrderItemInput struct {
	ProductName string  `json:"productName" bson:"productName" validate:"required,no_xss"`
	Sku         string  `json:"sku,omitempty" bson:"sku,omitempty" validate:"omitempty,no_xss"`
	Quantity    int     `json:"quantity" bson:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" bson:"unitPrice" validate:"gte=0"`
}

// ShippingAddressInput địa chỉ giao hàng trong body create/update
type ShippingAddressInput struct {
	Line1      string `json:"line1" bson:"line1" validate:"required,no_xss"`
	Line2      string `json:"line2,omitempty" bson:"line2,omitempty" validate:"omitempty,no_xss"`
	City       string `json:"city" bson:"city" validate:"required,no_xss"`
	Country    string `json:"country" bson:"country" validate:"required,no_xss"`
	PostalCode string `json:"postalCode,omitempty" bson:"postalCode,omitempty" validate:"omitempty,no_xss"`
}

// OrderCreateInput body của POST /orders/create và PUT /orders/update/:id.
// Đây là schema đầy đủ: mọi field nghiệp vụ chính đều bắt buộc.
// CustomerID là chuỗi hex, được kiểm tra tồn tại trong collection customers.
type OrderCreateInput struct {
	CustomerID      string                `json:"customerId" bson:"customerId" validate:"required,mongodb,exists=customers"`
	Items           []OrderItemInput      `json:"items" bson:"items" validate:"required,min=1,dive"`
	TotalAmount     float64               `json:"totalAmount" bson:"totalAmount" validate:"gte=0"`
	Currency        string                `json:"currency" bson:"currency" validate:"required,len=3,alpha"`
	ShippingAddress *ShippingAddressInput `json:"shippingAddress" bson:"shippingAddress" validate:"required"`
	PaymentMethod   string                `json:"paymentMethod" bson:"paymentMethod" validate:"required,oneof=cod card bank_transfer"`
	Status          string                `json:"status" bson:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
	Note            string                `json:"note,omitempty" bson:"note,omitempty" validate:"omitempty,no_xss"`
}

// OrderUpdateInput body của PUT /orders/partial-update/:id.
// Mọi field đều optional, chỉ field có mặt được ghi vào $set.
type OrderUpdateInput struct {
	CustomerID      string                `json:"customerId,omitempty" bson:"customerId,omitempty" validate:"omitempty,mongodb,exists=customers"`
	Items           []OrderItemInput      `json:"items,omitempty" bson:"items,omitempty" validate:"omitempty,min=1,dive"`
	TotalAmount     float64               `json:"totalAmount,omitempty" bson:"totalAmount,omitempty" validate:"omitempty,gte=0"`
	Currency        string                `json:"currency,omitempty" bson:"currency,omitempty" validate:"omitempty,len=3,alpha"`
	ShippingAddress *ShippingAddressInput `json:"shippingAddress,omitempty" bson:"shippingAddress,omitempty" validate:"omitempty"`
	PaymentMethod   string                `json:"paymentMethod,omitempty" bson:"paymentMethod,omitempty" validate:"omitempty,oneof=cod card bank_transfer"`
	Status          string                `json:"status,omitempty" bson:"status,omitempty" validate:"omitempty,oneof=pending confirmed shipped delivered cancelled"`
	Note            string                `json:"note,omitempty" bson:"note,omitempty" validate:"omitempty,no_xss"`
}
