package contentController

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/sensa-ai-tech/OATH/internal/adapters/primary/http/middlewares"
	"github.com/sensa-ai-tech/OATH/internal/adapters/primary/http/response"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/usecases/content"
)

const (
	defaultMatchLimit = 3
	maxMatchLimit     = 10
	maxSafetyText     = 4000
)

type Controller struct {
	ContentService *content.Service
	Limiter        *middlewares.RateLimiter
	Log            *slog.Logger
}

func New(contentService *content.Service, limiter *middlewares.RateLimiter, log *slog.Logger) *Controller {
	return &Controller{
		ContentService: contentService,
		Limiter:        limiter,
		Log:            log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/v1", c.Limiter.Limit(middlewares.GroupGeneral))
	{
		v1.POST("/templates/match", c.handleMatchTemplates)
		v1.GET("/templates/:id", c.handleGetTemplate)
		v1.POST("/safety/check", c.handleSafetyCheck)
	}
}

func (c *Controller) handleMatchTemplates(ctx *gin.Context) {
	var req MatchTemplatesReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, c.Log, domain.NewValidationError(domain.CodeInvalidFormat, "", err.Error()))
		return
	}

	tags := make([]domain.Tag, 0, len(req.Tags))
	for _, raw := range req.Tags {
		tag := domain.Tag(raw)
		if !tag.IsValid() {
			response.Fail(ctx, c.Log, domain.NewValidationError(domain.CodeInvalidFormat, "tags", "unknown tag "+raw))
			return
		}
		tags = append(tags, tag)
	}

	limit := req.Limit
	switch {
	case limit <= 0:
		limit = defaultMatchLimit
	case limit > maxMatchLimit:
		limit = maxMatchLimit
	}

	response.OK(ctx, MatchTemplatesResp{
		Templates: c.ContentService.MatchTemplates(tags, limit),
	})
}

func (c *Controller) handleGetTemplate(ctx *gin.Context) {
	tpl, ok := c.ContentService.Catalog().Get(ctx.Param("id"))
	if !ok {
		response.Fail(ctx, c.Log, domain.ErrNotFound)
		return
	}
	response.OK(ctx, tpl)
}

func (c *Controller) handleSafetyCheck(ctx *gin.Context) {
	var req SafetyCheckReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, c.Log, domain.NewValidationError(domain.CodeInvalidFormat, "", err.Error()))
		return
	}
	if len(req.Text) > maxSafetyText {
		response.Fail(ctx, c.Log, domain.NewValidationError(domain.CodeInvalidFormat, "text", "is too long"))
		return
	}

	// ключевое слово в ответ не попадает
	response.OK(ctx, c.ContentService.CheckSafety(req.Text))
}
