package fortune

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
)

const batchSize = 200

// PregenerateDaily прогревает прогнозы всех профилей на дату; возвращает число успешных
func (s *Service) PregenerateDaily(ctx context.Context, date time.Time) (int, error) {
	var (
		after  = uuid.Nil
		done   int
		failed int
	)

	for {
		ids, err := s.ProfileRepo.ListIDs(ctx, after, batchSize)
		if err != nil {
			return done, fmt.Errorf("failed to list profiles: %w", err)
		}
		if len(ids) == 0 {
			break
		}

		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return done, err
			}
			if _, err := s.DailyFortune(ctx, id, date, service.DailyFortuneOptions{}); err != nil {
				failed++
				s.Log.Warn("pregeneration failed", "profile_id", id, "error", err)
				continue
			}
			done++
		}
		after = ids[len(ids)-1]
	}

	s.Log.Info("daily fortunes pregenerated",
		"date", date.Format(dateLayout),
		"done", done,
		"failed", failed,
	)

	if failed > 0 && done == 0 {
		return 0, fmt.Errorf("all %d profiles failed", failed)
	}
	return done, nil
}

// RecomputeStale пересчитывает карты, посчитанные другой версией движка
func (s *Service) RecomputeStale(ctx context.Context, limit int) (int, error) {
	ids, err := s.ChartRepo.ListStaleProfileIDs(ctx, domain.EngineVersion, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale charts: %w", err)
	}

	var errs []error
	done := 0
	for _, id := range ids {
		if err := s.RecomputeNatalChart(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("profile %s: %w", id, err))
			continue
		}
		done++
	}

	if len(ids) > 0 {
		s.Log.Info("stale natal charts recomputed",
			"engine_version", domain.EngineVersion,
			"found", len(ids),
			"done", done,
		)
	}
	return done, errors.Join(errs...)
}
