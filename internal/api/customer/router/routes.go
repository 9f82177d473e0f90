// Package router đăng ký các route thuộc domain khách hàng.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	customerhdl "order_commerce/internal/api/customer/handler"
	apirouter "order_commerce/internal/api/router"
)

// Register đăng ký tất cả route khách hàng lên v1:
// POST /customers/create, /customers/list, /customers/count;
// GET /customers/:id; PUT /customers/update/:id, /customers/partial-update/:id.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	customerHandler, err := customerhdl.NewCustomerHandler()
	if err != nil {
		return fmt.Errorf("tạo CustomerHandler: %w", err)
	}

	r.RegisterCRUDRoutes(v1, "/customers", customerHandler, apirouter.ReadWriteConfig)
	return nil
}
