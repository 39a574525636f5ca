package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const staleRecomputeName = "stale-chart-recompute"

type staleRecomputer interface {
	RecomputeStale(ctx context.Context, limit int) (int, error)
}

// StaleRecompute пересчитывает карты, посчитанные прежней версией движка
type StaleRecompute struct {
	fortuneService staleRecomputer
	log            *slog.Logger
	location       *time.Location
	hour           int
	limit          int
}

func NewStaleRecompute(fortuneService staleRecomputer, cfg *Config, location *time.Location, log *slog.Logger) *StaleRecompute {
	return &StaleRecompute{
		fortuneService: fortuneService,
		log:            log,
		location:       location,
		hour:           cfg.RecomputeHour,
		limit:          cfg.RecomputeLimit,
	}
}

func (j *StaleRecompute) Name() string {
	return staleRecomputeName
}

func (j *StaleRecompute) NextRun(now time.Time) time.Time {
	return nextDailyRun(now, j.location, j.hour)
}

func (j *StaleRecompute) Run(ctx context.Context) error {
	count, err := j.fortuneService.RecomputeStale(ctx, j.limit)
	if err != nil {
		return fmt.Errorf("recomputed %d charts before failure: %w", count, err)
	}
	if count > 0 {
		j.log.Info("stale natal charts recomputed", "count", count)
	}
	return nil
}
