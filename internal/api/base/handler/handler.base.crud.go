package basehdl

import (
	"fmt"
	"reflect"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basemodels "order_commerce/internal/api/base/models"
	basesvc "order_commerce/internal/api/base/service"
	"order_commerce/internal/common"
	"order_commerce/internal/logger"
	"order_commerce/internal/utility"
)

// ====================================
// HELPER DÙNG CHUNG CHO CÁC OPERATION
// ====================================

// CurrentActorID lấy ObjectID của người dùng đang thao tác từ context.
// Middleware xác thực đã set "user_id" trước khi handler chạy.
func CurrentActorID(c fiber.Ctx) (primitive.ObjectID, error) {
	userID, ok := c.Locals("user_id").(string)
	if !ok || userID == "" {
		return primitive.NilObjectID, common.ErrTokenMissing
	}
	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, common.ErrTokenInvalid
	}
	return objID, nil
}

// parseIDParam kiểm tra và chuyển param :id trên URL thành ObjectID
func parseIDParam(c fiber.Ctx) (primitive.ObjectID, error) {
	id := c.Params("id")
	if id == "" {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeRequestParam,
			"ID không được để trống trong URL params",
			common.StatusBadRequest,
			nil,
		)
	}
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
			common.StatusBadRequest,
			nil,
		)
	}
	return utility.String2ObjectID(id), nil
}

// stampActor set các field AddedBy/UpdatedBy trên model trước khi insert.
// Giá trị do client gửi lên (nếu có) bị ghi đè, server là nguồn duy nhất
// của thông tin người thao tác.
func stampActor[T any](model *T, actorID primitive.ObjectID, isCreate bool) {
	value := reflect.ValueOf(model).Elem()
	if value.Kind() != reflect.Struct {
		return
	}

	objIDType := reflect.TypeOf(primitive.ObjectID{})
	if isCreate {
		if field := value.FieldByName("AddedBy"); field.IsValid() && field.CanSet() && field.Type() == objIDType {
			field.Set(reflect.ValueOf(actorID))
		}
	}
	if field := value.FieldByName("UpdatedBy"); field.IsValid() && field.CanSet() && field.Type() == objIDType {
		field.Set(reflect.ValueOf(actorID))
	}
}

// buildUpdateSet chuyển input DTO thành map $set cho update.
// Các field bookkeeping do server quản lý bị loại bỏ để client không thể
// ghi đè: _id, addedBy, createdAt, updatedAt.
func buildUpdateSet(input interface{}, actorID primitive.ObjectID) (map[string]interface{}, error) {
	dataMap, err := utility.ToMap(input)
	if err != nil {
		return nil, common.ErrInvalidFormat
	}

	delete(dataMap, "_id")
	delete(dataMap, "addedBy")
	delete(dataMap, "createdAt")
	delete(dataMap, "updatedAt")

	// Field rỗng bị loại để không ghi đè giá trị hiện có bằng chuỗi rỗng
	for key, value := range dataMap {
		if strValue, ok := value.(string); ok && strValue == "" {
			delete(dataMap, key)
		}
	}

	normalizeIDFields(dataMap)
	dataMap["updatedBy"] = actorID

	return dataMap, nil
}

// ====================================
// CÁC OPERATION CRUD
// ====================================

// InsertOne xử lý request POST /create: tạo mới một bản ghi.
// Flow: parse body -> validate -> transform -> stamp addedBy/updatedBy -> insert.
func (h *BaseHandler[T, CreateInput, UpdateInput]) InsertOne(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input CreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if err := h.ValidateInput(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		model, err := TransformToModel[T](&input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		actorID, err := CurrentActorID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		stampActor(&model, actorID, true)

		data, err := h.Service.InsertOne(c, model)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogCRUD("create", h.Resource, "", c, nil)
		h.HandleResponse(c, data, nil)
		return nil
	})
}

// Find xử lý request POST /list: tìm bản ghi theo filter trong body.
// Hỗ trợ phân trang (mặc định bật), populate các field tham chiếu,
// và isCountOnly để chỉ lấy số lượng.
//
// Danh sách kết quả rỗng trả về RECORD_NOT_FOUND thay vì mảng rỗng,
// client phân biệt "không có dữ liệu" qua envelope thay vì kiểm tra mảng.
func (h *BaseHandler[T, CreateInput, UpdateInput]) Find(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		body, err := h.ParseFilterBody(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		filter, err := h.EffectiveFilter(body)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		// isCountOnly: chỉ đếm, bỏ qua phân trang và populate
		if body.IsCountOnly {
			count, err := h.Service.CountDocuments(c, filter)
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			h.HandleResponse(c, basemodels.CountResult{Count: count}, nil)
			return nil
		}

		var page, limit int64 = 1, 10
		paginationEnabled := true
		var populate []string
		if body.Options != nil {
			if body.Options.Page > 0 {
				page = body.Options.Page
			}
			if body.Options.Limit > 0 {
				limit = body.Options.Limit
			}
			if body.Options.Pagination != nil {
				paginationEnabled = *body.Options.Pagination
			}
			populate = body.Options.Populate
		}

		var result *basemodels.PaginateResult[T]
		if paginationEnabled {
			result, err = h.Service.FindWithPagination(c, filter, page, limit, nil)
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
		} else {
			items, err := h.Service.Find(c, filter, nil)
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			total := int64(len(items))
			result = basemodels.NewPaginateResult(items, total, 1, total)
		}

		if len(result.Data) == 0 {
			h.HandleResponse(c, nil, common.ErrNotFound)
			return nil
		}

		if len(populate) > 0 {
			items, err := utility.ToMaps(result.Data)
			if err != nil {
				h.HandleResponse(c, nil, common.ErrInvalidFormat)
				return nil
			}
			if err := basesvc.PopulateMaps(c, items, populate, h.refTags); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			h.HandleResponse(c, fiber.Map{
				"data":         items,
				"totalRecords": result.TotalRecords,
				"page":         result.Page,
				"limit":        result.Limit,
				"totalPages":   result.TotalPages,
			}, nil)
			return nil
		}

		h.HandleResponse(c, result, nil)
		return nil
	})
}

// FindOneById xử lý request GET /:id: lấy một bản ghi theo ObjectID
func (h *BaseHandler[T, CreateInput, UpdateInput]) FindOneById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.Service.FindOneById(c, objID)
		h.HandleResponse(c, data, err)
		return nil
	})
}

// Count xử lý request POST /count: đếm số bản ghi khớp filter.
// Count bằng 0 là kết quả hợp lệ, không phải RECORD_NOT_FOUND.
func (h *BaseHandler[T, CreateInput, UpdateInput]) Count(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		body, err := h.ParseFilterBody(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		filter, err := h.EffectiveFilter(body)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		count, err := h.Service.CountDocuments(c, filter)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		h.HandleResponse(c, basemodels.CountResult{Count: count}, nil)
		return nil
	})
}

// UpdateById xử lý request PUT /update/:id: cập nhật toàn bộ bản ghi.
// Body dùng schema đầy đủ như create, mọi field bắt buộc đều phải có mặt.
func (h *BaseHandler[T, CreateInput, UpdateInput]) UpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input CreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if err := h.ValidateInput(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		actorID, err := CurrentActorID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		updateSet, err := buildUpdateSet(&input, actorID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.Service.UpdateById(c, objID, &basesvc.UpdateData{Set: updateSet})
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogCRUD("update", h.Resource, objID.Hex(), c, nil)
		h.HandleResponse(c, data, nil)
		return nil
	})
}

// PartialUpdateById xử lý request PUT /partial-update/:id: cập nhật một phần bản ghi.
// Mọi field trong body đều optional, chỉ các field có mặt được ghi vào $set.
// addedBy do client gửi lên (nếu có) bị loại bỏ trước khi update.
func (h *BaseHandler[T, CreateInput, UpdateInput]) PartialUpdateById(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		objID, err := parseIDParam(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input UpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		if err := h.ValidateInput(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		actorID, err := CurrentActorID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		updateSet, err := buildUpdateSet(&input, actorID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		data, err := h.Service.UpdateById(c, objID, &basesvc.UpdateData{Set: updateSet})
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogCRUD("partial-update", h.Resource, objID.Hex(), c, nil)
		h.HandleResponse(c, data, nil)
		return nil
	})
}
