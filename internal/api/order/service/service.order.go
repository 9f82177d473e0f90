// Package ordersvc - Service đơn hàng (orders).
package ordersvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	ordermodels "order_commerce/internal/api/order/models"
	basesvc "order_commerce/internal/api/base/service"
	"order_commerce/internal/common"
	"order_commerce/internal/global"
)

// OrderService xử lý CRUD đơn hàng.
type OrderService struct {
	*basesvc.BaseServiceMongoImpl[ordermodels.Order]
}

// NewOrderService tạo OrderService mới.
func NewOrderService() (*OrderService, error) {
	coll, exist := global.RegistryCollections.Get(global.ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.ColNames.Orders, common.ErrNotFound)
	}
	return &OrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[ordermodels.Order](coll),
	}, nil
}

// FindByCustomerId trả về danh sách đơn hàng của một khách
func (s *OrderService) FindByCustomerId(ctx context.Context, customerID primitive.ObjectID) ([]ordermodels.Order, error) {
	return s.Find(ctx, bson.M{"customerId": customerID}, nil)
}

// CountByStatus đếm số đơn hàng theo trạng thái
func (s *OrderService) CountByStatus(ctx context.Context, status string) (int64, error) {
	return s.CountDocuments(ctx, bson.M{"status": status})
}
