package profileController

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/adapters/primary/http/middlewares"
	"github.com/sensa-ai-tech/OATH/internal/adapters/primary/http/response"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
)

const maxNameLength = 100

type Controller struct {
	FortuneService service.IFortuneService
	Limiter        *middlewares.RateLimiter
	Location       *time.Location // часовой пояс для даты прогноза по умолчанию
	Log            *slog.Logger
}

func New(
	fortuneService service.IFortuneService,
	limiter *middlewares.RateLimiter,
	location *time.Location,
	log *slog.Logger,
) *Controller {
	if location == nil {
		location = time.UTC
	}
	return &Controller{
		FortuneService: fortuneService,
		Limiter:        limiter,
		Location:       location,
		Log:            log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/v1")
	{
		v1.POST("/profiles", c.Limiter.Limit(middlewares.GroupCompute), c.handleCreateProfile)
		v1.GET("/profiles/:id/natal-chart", c.Limiter.Limit(middlewares.GroupGeneral), c.handleGetNatalChart)
		v1.POST("/natal-chart", c.Limiter.Limit(middlewares.GroupCompute), c.handleComputeNatalChart)
		v1.GET("/profiles/:id/daily-fortune", c.Limiter.Limit(middlewares.GroupFortune), c.handleDailyFortune)
	}
}

func (c *Controller) handleCreateProfile(ctx *gin.Context) {
	var req CreateProfileReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, c.Log, domain.NewValidationError(domain.CodeInvalidFormat, "", err.Error()))
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		response.Fail(ctx, c.Log, domain.NewValidationError(domain.CodeMissingField, "name", "is required"))
		return
	}
	if len([]rune(name)) > maxNameLength {
		response.Fail(ctx, c.Log, domain.NewValidationError(domain.CodeInvalidFormat, "name", "is too long"))
		return
	}

	locale := domain.Locale(req.Locale)
	if locale == "" {
		locale = domain.LocaleZhTW
	}
	if !locale.IsValid() {
		response.Fail(ctx, c.Log, domain.NewValidationError(domain.CodeInvalidFormat, "locale", "is not supported"))
		return
	}

	birth, err := req.BirthReq.toDomain()
	if err != nil {
		response.Fail(ctx, c.Log, err)
		return
	}

	profile, chart, err := c.FortuneService.CreateProfile(ctx.Request.Context(), service.CreateProfileInput{
		Name:   name,
		Locale: locale,
		Birth:  birth,
	})
	if err != nil {
		response.Fail(ctx, c.Log, err)
		return
	}

	response.Created(ctx, ProfileResp{Profile: profile, NatalChart: chart})
}

func (c *Controller) handleGetNatalChart(ctx *gin.Context) {
	profileID, err := parseProfileID(ctx)
	if err != nil {
		response.Fail(ctx, c.Log, err)
		return
	}

	chart, err := c.FortuneService.GetNatalChart(ctx.Request.Context(), profileID)
	if err != nil {
		response.Fail(ctx, c.Log, err)
		return
	}

	response.OK(ctx, chart)
}

// handleComputeNatalChart разовый расчёт без сохранения профиля
func (c *Controller) handleComputeNatalChart(ctx *gin.Context) {
	var req BirthReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(ctx, c.Log, domain.NewValidationError(domain.CodeInvalidFormat, "", err.Error()))
		return
	}

	birth, err := req.toDomain()
	if err != nil {
		response.Fail(ctx, c.Log, err)
		return
	}

	chart, err := c.FortuneService.ComputeNatalChart(ctx.Request.Context(), birth)
	if err != nil {
		response.Fail(ctx, c.Log, err)
		return
	}

	response.OK(ctx, chart)
}

// parseProfileID uuid из параметра пути :id
func parseProfileID(ctx *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, domain.NewValidationError(domain.CodeInvalidFormat, "id", "must be a UUID")
	}
	return id, nil
}
