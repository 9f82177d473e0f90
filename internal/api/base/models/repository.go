// Package models chứa các kiểu dùng chung cho layer repository/base (kết quả phân trang, đếm).
package models

// PaginateResult đại diện cho kết quả phân trang.
// Data và TotalRecords là phần chính của payload trả về cho client,
// các trường còn lại là metadata phân trang.
type PaginateResult[T any] struct {
	// Danh sách các bản ghi của trang hiện tại
	Data []T `json:"data" bson:"data"`
	// Tổng số bản ghi khớp filter
	TotalRecords int64 `json:"totalRecords" bson:"totalRecords"`
	// Trang hiện tại (đánh số từ 1)
	Page int64 `json:"page" bson:"page"`
	// Số lượng bản ghi trên mỗi trang
	Limit int64 `json:"limit" bson:"limit"`
	// Tổng số trang
	TotalPages int64 `json:"totalPages" bson:"totalPages"`
}

// NewPaginateResult tính metadata phân trang từ tổng số bản ghi và limit.
// Nếu limit <= 0 thì TotalPages = 1 (toàn bộ dữ liệu nằm trên một trang).
func NewPaginateResult[T any](data []T, total, page, limit int64) *PaginateResult[T] {
	totalPages := int64(1)
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return &PaginateResult[T]{
		Data:         data,
		TotalRecords: total,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
	}
}

// CountResult đại diện cho kết quả đếm
type CountResult struct {
	// Tổng số lượng bản ghi khớp filter
	Count int64 `json:"count" bson:"count"`
}
