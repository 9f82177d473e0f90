// Package basehdl cung cấp handler CRUD generic cho mọi resource.
// Mỗi resource chỉ cần khai báo model, input DTO và service là có đủ
// các endpoint create / list / count / get / update / partial-update.
package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "order_commerce/internal/api/base/service"
	"order_commerce/internal/common"
	"order_commerce/internal/global"
	"order_commerce/internal/utility"
)

// FilterPolicy giới hạn filter mà client được phép gửi lên qua body của
// các endpoint list/count. Các giá trị mặc định được set trong NewBaseHandler.
type FilterPolicy struct {
	MaxFields        int      // Số field tối đa ở mức ngoài cùng của filter
	AllowedOperators []string // Các operator MongoDB được phép ($eq, $in, ...)
	DeniedFields     []string // Các field nhạy cảm không được phép filter
}

// FilterBody là cấu trúc body của các endpoint list/count.
// Client có thể dùng "query" hoặc "where" (tương đương nhau, "query" ưu tiên).
type FilterBody struct {
	Query       map[string]interface{} `json:"query"`
	Where       map[string]interface{} `json:"where"`
	Options     *FilterBodyOptions     `json:"options"`
	IsCountOnly bool                   `json:"isCountOnly"`
}

// FilterBodyOptions là các tùy chọn phân trang và populate của endpoint list
type FilterBodyOptions struct {
	Page       int64    `json:"page"`       // Trang hiện tại, đánh số từ 1
	Limit      int64    `json:"limit"`      // Số bản ghi mỗi trang
	Pagination *bool    `json:"pagination"` // false: trả về toàn bộ kết quả, mặc định true
	Populate   []string `json:"populate"`   // Danh sách field tham chiếu cần thay bằng document đích
}

// Các key hợp lệ trong body filter
var (
	allowedFilterKeys = []string{"query", "where", "options", "isCountOnly"}
	allowedOptionKeys = []string{"page", "limit", "pagination", "populate"}
)

// BaseHandler xử lý các request CRUD cơ bản cho một resource.
// Type Parameters:
//   - T: Model của resource
//   - CreateInput: DTO cho create và full update (đủ field bắt buộc)
//   - UpdateInput: DTO cho partial update (mọi field đều optional)
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	Resource     string                      // Tên resource, dùng cho audit log
	Service      basesvc.BaseServiceMongo[T] // Service tương tác MongoDB
	FilterPolicy FilterPolicy                // Giới hạn filter của list/count
	refTags      map[string]string           // field bson -> collection đích, parse từ tag ref của T
}

// NewBaseHandler tạo mới một BaseHandler với policy filter mặc định
func NewBaseHandler[T any, CreateInput any, UpdateInput any](resource string, service basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	var model T
	return &BaseHandler[T, CreateInput, UpdateInput]{
		Resource: resource,
		Service:  service,
		FilterPolicy: FilterPolicy{
			MaxFields: 10,
			AllowedOperators: []string{
				"$eq", "$ne", "$gt", "$gte", "$lt", "$lte",
				"$in", "$nin", "$exists", "$regex",
			},
			DeniedFields: []string{"password", "token", "secret", "key", "hash"},
		},
		refTags: basesvc.ParseRefTags(reflect.TypeOf(model)),
	}
}

// ====================================
// PARSE VÀ VALIDATE INPUT
// ====================================

// ParseRequestBody parse JSON body của request vào input.
// Dùng json.Decoder với UseNumber để không mất độ chính xác của số lớn.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return common.NewError(
			common.ErrCodeValidationInput,
			"Body của request không được để trống",
			common.StatusBadRequest,
			nil,
		)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Body JSON không hợp lệ: %v", err),
			common.StatusBadRequest,
			err,
		)
	}

	return nil
}

// ValidateInput kiểm tra input theo các tag validate đã khai báo trên DTO.
// Các rule cần truy vấn database (exists) chạy qua context của request.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(c fiber.Ctx, input interface{}) error {
	if err := global.Validate.StructCtx(c, input); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return common.NewError(common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, err)
		}

		// Gom các field lỗi thành một message duy nhất
		fields := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			fields = append(fields, fmt.Sprintf("%s (%s)", fieldErr.Field(), fieldErr.Tag()))
		}
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Dữ liệu không hợp lệ: %s", strings.Join(fields, ", ")),
			common.StatusBadRequest,
			fields,
		)
	}
	return nil
}

// ====================================
// FILTER CỦA LIST / COUNT
// ====================================

// ParseFilterBody parse và kiểm tra cấu trúc body của các endpoint list/count.
// Body rỗng được coi là filter rỗng (lấy tất cả). Key lạ ở mức ngoài cùng
// hoặc trong options bị từ chối để client phát hiện sớm lỗi chính tả.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseFilterBody(c fiber.Ctx) (*FilterBody, error) {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return &FilterBody{}, nil
	}

	// Kiểm tra key ở mức ngoài cùng trước khi parse vào struct
	var raw map[string]json.RawMessage
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&raw); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Body JSON không hợp lệ: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	for key := range raw {
		if !utility.Contains(allowedFilterKeys, key) {
			return nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Key '%s' không hợp lệ trong body filter (chỉ chấp nhận: %s)", key, strings.Join(allowedFilterKeys, ", ")),
				common.StatusBadRequest,
				nil,
			)
		}
	}

	if optionsRaw, ok := raw["options"]; ok {
		var optionKeys map[string]json.RawMessage
		if err := json.Unmarshal(optionsRaw, &optionKeys); err != nil {
			return nil, common.NewError(
				common.ErrCodeValidationFormat,
				"Trường 'options' phải là một object",
				common.StatusBadRequest,
				err,
			)
		}
		for key := range optionKeys {
			if !utility.Contains(allowedOptionKeys, key) {
				return nil, common.NewError(
					common.ErrCodeValidationInput,
					fmt.Sprintf("Key '%s' không hợp lệ trong options (chỉ chấp nhận: %s)", key, strings.Join(allowedOptionKeys, ", ")),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	var filterBody FilterBody
	decoder = json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(&filterBody); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Body filter không đúng cấu trúc: %v", err),
			common.StatusBadRequest,
			err,
		)
	}

	return &filterBody, nil
}

// EffectiveFilter trả về filter đã chuẩn hóa và kiểm tra từ body.
// "query" được ưu tiên, "where" là alias tương đương.
func (h *BaseHandler[T, CreateInput, UpdateInput]) EffectiveFilter(body *FilterBody) (map[string]interface{}, error) {
	filter := body.Query
	if filter == nil {
		filter = body.Where
	}
	if filter == nil {
		filter = map[string]interface{}{}
	}

	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}

	normalized := normalizeFilter(filter)
	return normalized, nil
}

// validateFilter kiểm tra filter theo policy: số field, field bị cấm, operator được phép
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilter(filter map[string]interface{}) error {
	if len(filter) > h.FilterPolicy.MaxFields {
		return common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Filter có quá nhiều field (%d), tối đa %d", len(filter), h.FilterPolicy.MaxFields),
			common.StatusBadRequest,
			nil,
		)
	}

	return h.validateFilterFields(filter)
}

func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilterFields(filter map[string]interface{}) error {
	for key, value := range filter {
		if strings.HasPrefix(key, "$") {
			if !utility.Contains(h.FilterPolicy.AllowedOperators, key) {
				return common.NewError(
					common.ErrCodeValidationInput,
					fmt.Sprintf("Operator '%s' không được phép trong filter", key),
					common.StatusBadRequest,
					nil,
				)
			}
		} else {
			lowerKey := strings.ToLower(key)
			for _, denied := range h.FilterPolicy.DeniedFields {
				if strings.Contains(lowerKey, denied) {
					return common.NewError(
						common.ErrCodeValidationInput,
						fmt.Sprintf("Field '%s' không được phép dùng trong filter", key),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}

		// Kiểm tra đệ quy các map lồng nhau (field: {"$gte": ...})
		if nested, ok := value.(map[string]interface{}); ok {
			if err := h.validateFilterFields(nested); err != nil {
				return err
			}
		}
	}
	return nil
}

// normalizeFilter chuẩn hóa filter của client trước khi đưa vào MongoDB:
//   - field "_id" hoặc có hậu tố "Id" dạng chuỗi hex 24 ký tự -> ObjectID
//   - {"$oid": "..."} -> ObjectID (extended JSON)
//   - json.Number -> int64 hoặc float64
func normalizeFilter(filter map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(filter))
	for key, value := range filter {
		result[key] = normalizeFilterValue(key, value)
	}
	return result
}

func normalizeFilterValue(key string, value interface{}) interface{} {
	isIDField := key == "_id" || strings.HasSuffix(key, "Id")

	switch v := value.(type) {
	case string:
		if isIDField && primitive.IsValidObjectID(v) {
			objID, err := primitive.ObjectIDFromHex(v)
			if err == nil {
				return objID
			}
		}
		return v

	case json.Number:
		if intVal, err := v.Int64(); err == nil {
			return intVal
		}
		if floatVal, err := v.Float64(); err == nil {
			return floatVal
		}
		return v.String()

	case map[string]interface{}:
		// Extended JSON: {"$oid": "..."}
		if oidStr, ok := v["$oid"].(string); ok && len(v) == 1 {
			if objID, err := primitive.ObjectIDFromHex(oidStr); err == nil {
				return objID
			}
			return v
		}
		// Map operator: {"$in": [...]}, {"$gte": ...}
		nested := make(map[string]interface{}, len(v))
		for opKey, opValue := range v {
			// Giá trị của operator kế thừa tên field cha để nhận diện ID
			nested[opKey] = normalizeFilterValue(key, opValue)
		}
		return nested

	case []interface{}:
		normalized := make([]interface{}, len(v))
		for i, item := range v {
			normalized[i] = normalizeFilterValue(key, item)
		}
		return normalized

	default:
		return value
	}
}

// ====================================
// TRANSFORM INPUT -> MODEL
// ====================================

// TransformToModel chuyển input DTO thành model qua JSON round-trip.
// Tag json của DTO và model trùng nhau nên các field map 1-1, kể cả
// field tham chiếu dạng chuỗi hex (ObjectID tự unmarshal từ chuỗi hex 24 ký tự).
func TransformToModel[T any](input interface{}) (T, error) {
	var model T
	if err := utility.ConvertStruct(input, &model); err != nil {
		var zero T
		return zero, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Không thể chuyển input thành model: %v", err),
			common.StatusBadRequest,
			err,
		)
	}
	return model, nil
}

// normalizeIDFields chuyển các field tham chiếu dạng chuỗi hex trong map update
// sang ObjectID, dựa trên hậu tố "Id" của tên field bson
func normalizeIDFields(data map[string]interface{}) {
	for key, value := range data {
		if key != "_id" && !strings.HasSuffix(key, "Id") {
			continue
		}
		if str, ok := value.(string); ok && primitive.IsValidObjectID(str) {
			if objID, err := primitive.ObjectIDFromHex(str); err == nil {
				data[key] = objID
			}
		}
	}
}
