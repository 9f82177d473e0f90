package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"order_commerce/internal/common"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
// Helper function này đảm bảo tất cả JSON responses đều có charset=utf-8 để hỗ trợ UTF-8 encoding đúng cách
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	// Set Content-Type với charset=utf-8 trước khi gọi JSON
	c.Set("Content-Type", "application/json; charset=utf-8")
	// Trả về JSON response
	return c.Status(statusCode).JSON(data)
}

// HandleErrorResponse xử lý và trả về error response cho client.
// Tách riêng để tránh import cycle với handler package.
// Envelope giống hệt tầng handler: status trong body là một trong
// VALIDATION_ERROR / BAD_REQUEST / RECORD_NOT_FOUND / INTERNAL_SERVER_ERROR.
func HandleErrorResponse(c fiber.Ctx, err error) {
	var customErr *common.Error
	if !errors.As(err, &customErr) {
		JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"status":  common.ResponseStatusInternalError,
			"message": err.Error(),
		})
		return
	}

	switch {
	case customErr.StatusCode == common.StatusNotFound:
		JSONResponse(c, common.StatusNotFound, fiber.Map{
			"status": common.ResponseStatusRecordNotFound,
		})
	case customErr.Code.Category == "Validation":
		JSONResponse(c, common.StatusBadRequest, fiber.Map{
			"status":  common.ResponseStatusValidationError,
			"message": customErr.Message,
		})
	case customErr.StatusCode >= common.StatusBadRequest && customErr.StatusCode < common.StatusInternalServerError:
		JSONResponse(c, customErr.StatusCode, fiber.Map{
			"status":  common.ResponseStatusBadRequest,
			"message": customErr.Message,
		})
	default:
		JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"status":  common.ResponseStatusInternalError,
			"message": customErr.Message,
		})
	}
}
