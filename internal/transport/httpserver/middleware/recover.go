package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"ecommerce-search-service/internal/transport/httpserver/dto"
)

// Recover returns a middleware that turns panics into 500 responses.
func Recover(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				fields := []zap.Field{
					zap.Any("error", r),
					zap.String("stack", string(debug.Stack())),
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
				}
				if id, ok := c.Locals(requestid.ConfigDefault.ContextKey).(string); ok && id != "" {
					fields = append(fields, zap.String("request_id", id))
				}
				logger.Error("panic recovered", fields...)

				err = c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
					Error: "internal server error",
					Code:  "PANIC",
				})
			}
		}()

		return c.Next()
	}
}
