package healthcheckController

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sensa-ai-tech/OATH/internal/ports/cache"
	"github.com/sensa-ai-tech/OATH/internal/ports/persistence"
)

const readyTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthCheckController struct {
	db    persistence.Database
	cache cache.Cache
	log   *slog.Logger
}

// New cache может быть nil, тогда готовность определяется только БД
func New(db persistence.Database, cache cache.Cache, log *slog.Logger) *HealthCheckController {
	return &HealthCheckController{
		db:    db,
		cache: cache,
		log:   log,
	}
}

func (c *HealthCheckController) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", c.health)
	r.GET("/ready", c.ready)
}

// health базовая проверка (всегда возвращает 200)
func (c *HealthCheckController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "oath",
	})
}

// ready проверка готовности зависимостей
func (c *HealthCheckController) ready(ctx *gin.Context) {
	checks := map[string]pinger{"database": c.db}
	if c.cache != nil {
		checks["cache"] = c.cache
	}

	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), readyTimeout)
	defer cancel()

	for name, p := range checks {
		if err := p.Ping(pingCtx); err != nil {
			c.log.Error("Dependency not ready", "dependency", name, "error", err)
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  name + " unavailable",
			})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}
