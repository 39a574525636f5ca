package profileController

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sensa-ai-tech/OATH/internal/adapters/primary/http/middlewares"
	"github.com/sensa-ai-tech/OATH/internal/adapters/primary/http/response"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
)

const (
	dateLayout = "2006-01-02"

	// HeaderPolishSkipped выставляется, когда шлифовка запрошена, но лимит исчерпан
	HeaderPolishSkipped = "X-Polish-Skipped"
)

// handleDailyFortune GET /v1/profiles/:id/daily-fortune?date=YYYY-MM-DD&polish=true
func (c *Controller) handleDailyFortune(ctx *gin.Context) {
	profileID, err := parseProfileID(ctx)
	if err != nil {
		response.Fail(ctx, c.Log, err)
		return
	}

	date, err := c.fortuneDate(ctx.Query("date"))
	if err != nil {
		response.Fail(ctx, c.Log, err)
		return
	}

	var opts service.DailyFortuneOptions
	if raw := ctx.Query("polish"); raw != "" {
		opts.Polish, err = strconv.ParseBool(raw)
		if err != nil {
			response.Fail(ctx, c.Log, domain.NewValidationError(domain.CodeInvalidFormat, "polish", "must be a boolean"))
			return
		}
	}

	// при исчерпанном лимите шлифовки отдаём шаблонный прогноз, а не 429
	if opts.Polish && !c.Limiter.AllowRequest(ctx, middlewares.GroupPolish) {
		opts.Polish = false
		ctx.Header(HeaderPolishSkipped, "rate_limited")
	}

	fortune, err := c.FortuneService.DailyFortune(ctx.Request.Context(), profileID, date, opts)
	if err != nil {
		response.Fail(ctx, c.Log, err)
		return
	}

	response.OK(ctx, fortune)
}

// fortuneDate пустая строка - сегодня в часовом поясе сервиса; результат всегда полночь UTC
func (c *Controller) fortuneDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().In(c.Location)
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError(domain.CodeInvalidFormat, "date", "must be YYYY-MM-DD")
	}
	return date, nil
}
