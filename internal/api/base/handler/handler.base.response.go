package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	"order_commerce/internal/common"
	"order_commerce/internal/logger"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
// Helper function này đảm bảo tất cả JSON responses đều có charset=utf-8 để hỗ trợ UTF-8 encoding đúng cách
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	// Set Content-Type với charset=utf-8 trước khi gọi JSON
	c.Set("Content-Type", "application/json; charset=utf-8")
	// Trả về JSON response
	return c.Status(statusCode).JSON(data)
}

// WriteError ghi response lỗi theo đúng một trong các envelope cố định.
// Mọi response của hệ thống chỉ có 5 dạng:
//   - {"status":"SUCCESS","data":...}                  — HTTP 200
//   - {"status":"VALIDATION_ERROR","message":...}      — HTTP 400
//   - {"status":"BAD_REQUEST","message":...}           — HTTP 4xx
//   - {"status":"RECORD_NOT_FOUND"}                    — HTTP 404
//   - {"status":"INTERNAL_SERVER_ERROR","message":...} — HTTP 5xx
//
// Client đối chiếu theo trường "status" trong body, không theo HTTP status code.
func WriteError(c fiber.Ctx, err error) error {
	var appErr *common.Error
	if !errors.As(err, &appErr) {
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"path":   c.Path(),
			"method": c.Method(),
		}).Error(err.Error())
		return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"status":  common.ResponseStatusInternalError,
			"message": err.Error(),
		})
	}

	switch {
	case appErr.StatusCode == common.StatusNotFound:
		// Không kèm message: client chỉ cần biết bản ghi không tồn tại
		return JSONResponse(c, common.StatusNotFound, fiber.Map{
			"status": common.ResponseStatusRecordNotFound,
		})

	case appErr.Code.Category == "Validation":
		return JSONResponse(c, common.StatusBadRequest, fiber.Map{
			"status":  common.ResponseStatusValidationError,
			"message": appErr.Message,
		})

	case appErr.StatusCode >= common.StatusBadRequest && appErr.StatusCode < common.StatusInternalServerError:
		return JSONResponse(c, appErr.StatusCode, fiber.Map{
			"status":  common.ResponseStatusBadRequest,
			"message": appErr.Message,
		})

	default:
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"path":   c.Path(),
			"method": c.Method(),
			"code":   appErr.Code.Code,
		}).Error(appErr.Message)
		return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"status":  common.ResponseStatusInternalError,
			"message": appErr.Message,
		})
	}
}

// WriteSuccess ghi response thành công kèm data
func WriteSuccess(c fiber.Ctx, data interface{}) error {
	return JSONResponse(c, common.StatusOK, fiber.Map{
		"status": common.ResponseStatusSuccess,
		"data":   data,
	})
}

// SafeHandler bọc các handler với recover để bắt panic và xử lý lỗi an toàn.
// Hàm này đảm bảo rằng server luôn trả về response cho client, kể cả khi có panic xảy ra.
//
// Parameters:
// - c: Fiber context
// - handler: Function xử lý chính của handler
func (h *BaseHandler[T, CreateInput, UpdateInput]) SafeHandler(c fiber.Ctx, handler func() error) error {
	defer func() {
		if r := recover(); r != nil {
			// Log stack trace để debug
			logger.GetErrorLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
				"stack":  string(debug.Stack()),
			}).Errorf("panic: %v", r)

			// Trả về lỗi cho client
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// HandleResponse xử lý và chuẩn hóa response trả về cho client.
// Phương thức này đảm bảo format response thống nhất trong toàn bộ ứng dụng.
//
// Parameters:
// - c: Fiber context
// - data: Dữ liệu trả về cho client (nil nếu chỉ trả về lỗi)
// - err: Lỗi nếu có (nil nếu không có lỗi)
func (h *BaseHandler[T, CreateInput, UpdateInput]) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	if err != nil {
		WriteError(c, err)
		return
	}
	WriteSuccess(c, data)
}
