package utility

import (
	"encoding/json"
	"time"
)

// Contains kiểm tra một phần tử có trong slice hay không
func Contains[T comparable](slice []T, item T) bool {
	for _, v := range slice {
		if v == item {
			return true
		}
	}
	return false
}

// CurrentTimeInMilli lấy thời gian hiện tại tính bằng mili giây.
// Dùng cho các trường createdAt/updatedAt trong tài liệu MongoDB.
func CurrentTimeInMilli() int64 {
	return time.Now().UnixMilli()
}

// ConvertStruct chuyển đổi một struct sang struct khác qua vòng JSON.
// Parameters:
//   - source: Struct nguồn cần chuyển đổi
//   - target: Con trỏ đến struct đích
//
// Returns:
//   - error: Lỗi nếu có
func ConvertStruct(source interface{}, target interface{}) error {
	jsonData, err := json.Marshal(source)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, target)
}
