// Package orderhdl - Handler đơn hàng, dựng trên BaseHandler.
package orderhdl

import (
	"fmt"

	basehdl "order_commerce/internal/api/base/handler"
	orderdto "order_commerce/internal/api/order/dto"
	ordermodels "order_commerce/internal/api/order/models"
	ordersvc "order_commerce/internal/api/order/service"
)

// OrderHandler xử lý các request CRUD của đơn hàng
type OrderHandler struct {
	*basehdl.BaseHandler[ordermodels.Order, orderdto.OrderCreateInput, orderdto.OrderUpdateInput]
	OrderService *ordersvc.OrderService
}

// NewOrderHandler tạo OrderHandler mới
func NewOrderHandler() (*OrderHandler, error) {
	svc, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, fmt.Errorf("tạo OrderService: %w", err)
	}
	return &OrderHandler{
		BaseHandler:  basehdl.NewBaseHandler[ordermodels.Order, orderdto.OrderCreateInput, orderdto.OrderUpdateInput]("order", svc),
		OrderService: svc,
	}, nil
}
