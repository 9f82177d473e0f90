package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// LogCRUD ghi audit log cho một thao tác CRUD trên tài nguyên.
// Actor identity được lấy từ context (do middleware auth đặt vào).
func LogCRUD(operation string, resourceType string, resourceID string, c fiber.Ctx, details map[string]interface{}) {
	if details == nil {
		details = make(map[string]interface{})
	}

	userID := ""
	if uid := c.Locals("user_id"); uid != nil {
		if s, ok := uid.(string); ok {
			userID = s
		}
	}
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		details["request_id"] = requestID
	}

	GetAuditLogger().WithFields(logrus.Fields{
		"action":        "crud_" + operation,
		"user_id":       userID,
		"resource_id":   resourceID,
		"resource_type": resourceType,
		"ip":            c.IP(),
		"user_agent":    c.Get("User-Agent"),
		"details":       details,
		"timestamp":     time.Now(),
	}).Info("Audit log")
}
