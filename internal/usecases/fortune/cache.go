package fortune

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/pkg/metrics"
	"github.com/sensa-ai-tech/OATH/internal/ports/cache"
)

func memoKey(profileID uuid.UUID, date string) string {
	return fmt.Sprintf("fortune:daily:%s:%s", profileID, date)
}

func lastResultKey(profileID uuid.UUID) string {
	return fmt.Sprintf("fortune:last:%s", profileID)
}

// cachedFortune nil при промахе или недоступном кэше
func (s *Service) cachedFortune(ctx context.Context, kind, key string) *domain.DailyFortune {
	if s.Cache == nil {
		return nil
	}

	raw, err := s.Cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			metrics.CacheOps.WithLabelValues(kind, "miss").Inc()
		} else {
			metrics.CacheOps.WithLabelValues(kind, "error").Inc()
			s.Log.Warn("failed to read fortune cache", "key", key, "error", err)
		}
		return nil
	}

	var fortune domain.DailyFortune
	if err := json.Unmarshal([]byte(raw), &fortune); err != nil {
		metrics.CacheOps.WithLabelValues(kind, "error").Inc()
		s.Log.Warn("failed to decode cached fortune", "key", key, "error", err)
		return nil
	}

	metrics.CacheOps.WithLabelValues(kind, "hit").Inc()
	return &fortune
}

func (s *Service) storeCached(ctx context.Context, key string, fortune *domain.DailyFortune, ttl time.Duration) {
	if s.Cache == nil {
		return
	}

	data, err := json.Marshal(fortune)
	if err != nil {
		s.Log.Warn("failed to encode fortune for cache", "key", key, "error", err)
		return
	}

	if err := s.Cache.Set(ctx, key, string(data), ttl); err != nil {
		s.Log.Warn("failed to write fortune cache", "key", key, "error", err)
	}
}
