// Package dto - DTO cho domain khách hàng.
package dto

// CustomerCreateInput body của POST /customers/create và PUT /customers/update/:id
type CustomerCreateInput struct {
	Name    string `json:"name" bson:"name" validate:"required,min=1,max=200,no_xss"`
	Email   string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,min=8,max=20"`
	Address string `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty,max=500,no_xss"`
}

// CustomerUpdateInput body của PUT /customers/partial-update/:id, mọi field optional
type CustomerUpdateInput struct {
	Name    string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,min=1,max=200,no_xss"`
	Email   string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty" validate:"omitempty,min=8,max=20"`
	Address string `json:"address,omitempty" bson:"address,omitempty" validate:"omitempty,max=500,no_xss"`
}
