package middlewares

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sensa-ai-tech/OATH/internal/adapters/primary/http/response"
	"github.com/sensa-ai-tech/OATH/internal/domain"
)

func RecoveryLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("PANIC CAUGHT",
					"panic", r,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"full_path", c.FullPath(),
					"client_ip", c.ClientIP(),
					"user_agent", c.Request.UserAgent(),
				)

				// Выводим стек трейс отдельно для читаемости
				log.Error("Stack trace:",
					"stack", string(debug.Stack()),
				)

				response.Abort(c, domain.CodeInternal)
			}
		}()
		c.Next()
	}
}
