// Package router đăng ký các route thuộc domain đơn hàng.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	orderhdl "order_commerce/internal/api/order/handler"
	apirouter "order_commerce/internal/api/router"
)

// Register đăng ký tất cả route đơn hàng lên v1:
// POST /orders/create, /orders/list, /orders/count;
// GET /orders/:id; PUT /orders/update/:id, /orders/partial-update/:id.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	orderHandler, err := orderhdl.NewOrderHandler()
	if err != nil {
		return fmt.Errorf("tạo OrderHandler: %w", err)
	}

	r.RegisterCRUDRoutes(v1, "/orders", orderHandler, apirouter.ReadWriteConfig)
	return nil
}
