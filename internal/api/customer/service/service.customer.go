// Package customersvc - Service khách hàng (customers).
package customersvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "order_commerce/internal/api/base/service"
	customermodels "order_commerce/internal/api/customer/models"
	"order_commerce/internal/common"
	"order_commerce/internal/global"
)

// CustomerService xử lý CRUD khách hàng.
type CustomerService struct {
	*basesvc.BaseServiceMongoImpl[customermodels.Customer]
}

// NewCustomerService tạo CustomerService mới.
func NewCustomerService() (*CustomerService, error) {
	coll, exist := global.RegistryCollections.Get(global.ColNames.Customers)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.ColNames.Customers, common.ErrNotFound)
	}
	return &CustomerService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[customermodels.Customer](coll),
	}, nil
}

// FindByEmail tìm khách theo email
func (s *CustomerService) FindByEmail(ctx context.Context, email string) (customermodels.Customer, error) {
	return s.FindOne(ctx, bson.M{"email": email}, nil)
}
