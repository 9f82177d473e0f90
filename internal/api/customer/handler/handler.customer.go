// Package customerhdl - Handler khách hàng, dựng trên BaseHandler.
package customerhdl

import (
	"fmt"

	basehdl "order_commerce/internal/api/base/handler"
	customerdto "order_commerce/internal/api/customer/dto"
	customermodels "order_commerce/internal/api/customer/models"
	customersvc "order_commerce/internal/api/customer/service"
)

// CustomerHandler xử lý các request CRUD của khách hàng
type CustomerHandler struct {
	*basehdl.BaseHandler[customermodels.Customer, customerdto.CustomerCreateInput, customerdto.CustomerUpdateInput]
	CustomerService *customersvc.CustomerService
}

// NewCustomerHandler tạo CustomerHandler mới
func NewCustomerHandler() (*CustomerHandler, error) {
	svc, err := customersvc.NewCustomerService()
	if err != nil {
		return nil, fmt.Errorf("tạo CustomerService: %w", err)
	}
	return &CustomerHandler{
		BaseHandler:     basehdl.NewBaseHandler[customermodels.Customer, customerdto.CustomerCreateInput, customerdto.CustomerUpdateInput]("customer", svc),
		CustomerService: svc,
	}, nil
}
