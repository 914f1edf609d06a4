package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Recovery ловит панику в обработчике и пишет её в лог вместе со стеком
func Recovery(logger *zap.Logger) fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.Error("Panic recovered",
				zap.String("panic", fmt.Sprint(e)),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Stack("stack"))
		},
	})
}
