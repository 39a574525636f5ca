package middlewares

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sensa-ai-tech/OATH/internal/adapters/primary/http/response"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/pkg/metrics"
	"github.com/sensa-ai-tech/OATH/internal/ports/cache"
)

const (
	HeaderUserID   = "X-User-ID"
	HeaderUserTier = "X-User-Tier"
)

type Group string

const (
	GroupCompute Group = "compute"
	GroupFortune Group = "fortune"
	GroupPolish  Group = "polish"
	GroupShare   Group = "share"
	GroupGeneral Group = "general"
)

type Tier string

const (
	TierFree    Tier = "free"
	TierPremium Tier = "premium"
)

type Limit struct {
	Free    int64
	Premium int64
	Window  time.Duration
}

func (l Limit) For(tier Tier) int64 {
	if tier == TierPremium {
		return l.Premium
	}
	return l.Free
}

// DefaultLimits лимиты по группам эндпоинтов; 0 означает, что группа закрыта для тарифа
func DefaultLimits() map[Group]Limit {
	return map[Group]Limit{
		GroupCompute: {Free: 3, Premium: 10, Window: 24 * time.Hour},
		GroupFortune: {Free: 10, Premium: 60, Window: time.Hour},
		GroupPolish:  {Free: 0, Premium: 30, Window: 24 * time.Hour},
		GroupShare:   {Free: 5, Premium: 30, Window: 24 * time.Hour},
		GroupGeneral: {Free: 60, Premium: 120, Window: time.Minute},
	}
}

// Decision результат проверки лимита
type Decision struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// RateLimiter фиксированное окно на счётчиках кэша.
// Идентификатор и тариф приходят от шлюза в заголовках X-User-ID и X-User-Tier.
type RateLimiter struct {
	cache  cache.Cache
	limits map[Group]Limit
	log    *slog.Logger
	now    func() time.Time
}

func NewRateLimiter(c cache.Cache, limits map[Group]Limit, log *slog.Logger) *RateLimiter {
	if limits == nil {
		limits = DefaultLimits()
	}
	return &RateLimiter{
		cache:  c,
		limits: limits,
		log:    log,
		now:    time.Now,
	}
}

// Allow учитывает запрос; при недоступном кэше запрос пропускается
func (l *RateLimiter) Allow(ctx context.Context, group Group, tier Tier, identity string) Decision {
	limit, ok := l.limits[group]
	if !ok {
		return Decision{Allowed: true}
	}

	now := l.now()
	windowStart := now.Truncate(limit.Window)
	quota := limit.For(tier)
	d := Decision{Limit: quota, ResetAt: windowStart.Add(limit.Window)}

	if quota <= 0 {
		return d
	}

	key := fmt.Sprintf("rl:%s:%s:%s:%d", group, tier, identity, windowStart.Unix())
	count, err := l.cache.Incr(ctx, key, limit.Window)
	if err != nil {
		l.log.Warn("rate limiter unavailable, allowing request",
			"group", group,
			"error", err,
		)
		d.Allowed = true
		d.Remaining = quota
		return d
	}

	d.Allowed = count <= quota
	if remaining := quota - count; remaining > 0 {
		d.Remaining = remaining
	}
	return d
}

// Limit middleware для группы маршрутов; nil-лимитер пропускает всё
func (l *RateLimiter) Limit(group Group) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		d := l.Allow(c.Request.Context(), group, TierOf(c), IdentityOf(c))
		l.writeHeaders(c, d)
		if !d.Allowed {
			metrics.RateLimited.WithLabelValues(string(group)).Inc()
			retryAfter := int64(d.ResetAt.Sub(l.now()).Seconds()) + 1
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Abort(c, domain.CodeRateLimited)
			return
		}
		c.Next()
	}
}

// AllowRequest проверка внутри хендлера, без прерывания запроса
func (l *RateLimiter) AllowRequest(c *gin.Context, group Group) bool {
	if l == nil {
		return true
	}
	d := l.Allow(c.Request.Context(), group, TierOf(c), IdentityOf(c))
	if !d.Allowed {
		metrics.RateLimited.WithLabelValues(string(group)).Inc()
	}
	return d.Allowed
}

func (l *RateLimiter) writeHeaders(c *gin.Context, d Decision) {
	c.Header("X-RateLimit-Limit", strconv.FormatInt(d.Limit, 10))
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(d.Remaining, 10))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(d.ResetAt.Unix(), 10))
}

func TierOf(c *gin.Context) Tier {
	if Tier(c.GetHeader(HeaderUserTier)) == TierPremium {
		return TierPremium
	}
	return TierFree
}

func IdentityOf(c *gin.Context) string {
	if id := c.GetHeader(HeaderUserID); id != "" {
		return "user:" + id
	}
	return "ip:" + c.ClientIP()
}
