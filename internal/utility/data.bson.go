package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ToMap chuyển đổi struct thành map thông qua vòng bson Marshal/Unmarshal.
// Cách này đảm bảo tên khóa và kiểu dữ liệu trong map trùng khớp với
// tài liệu thực tế trong MongoDB (theo tag bson của struct).
func ToMap(s interface{}) (map[string]interface{}, error) {
	var result map[string]interface{}
	raw, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("bson marshal failed: %w", err)
	}
	if err := bson.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("bson unmarshal failed: %w", err)
	}
	return result, nil
}

// ToMaps chuyển đổi một slice struct thành slice map, giữ nguyên thứ tự.
func ToMaps[T any](items []T) ([]map[string]interface{}, error) {
	results := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		m, err := ToMap(item)
		if err != nil {
			return nil, err
		}
		results = append(results, m)
	}
	return results, nil
}
