// Package models - Customer thuộc domain khách hàng (customers).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer lưu khách hàng (customers).
// Email có unique sparse index: nhiều document không có email vẫn hợp lệ,
// email trùng nhau bị MongoDB từ chối.
type Customer struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Name    string `json:"name" bson:"name" index:"single"`
	Email   string `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`

	// Bookkeeping - server stamp, client không ghi được
	AddedBy   primitive.ObjectID `json:"addedBy,omitempty" bson:"addedBy,omitempty"`
	UpdatedBy primitive.ObjectID `json:"updatedBy,omitempty" bson:"updatedBy,omitempty"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt" index:"single"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt" index:"single"`
}
