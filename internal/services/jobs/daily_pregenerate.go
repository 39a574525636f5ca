package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const dailyPregenerateName = "daily-pregenerate"

type dailyPregenerator interface {
	PregenerateDaily(ctx context.Context, date time.Time) (int, error)
}

// DailyPregenerate прогревает прогнозы на текущий день всех профилей, каждый день в PregenerateHour
type DailyPregenerate struct {
	fortuneService dailyPregenerator
	log            *slog.Logger
	location       *time.Location
	hour           int
	now            func() time.Time
}

func NewDailyPregenerate(fortuneService dailyPregenerator, cfg *Config, location *time.Location, log *slog.Logger) *DailyPregenerate {
	return &DailyPregenerate{
		fortuneService: fortuneService,
		log:            log,
		location:       location,
		hour:           cfg.PregenerateHour,
		now:            time.Now,
	}
}

func (j *DailyPregenerate) Name() string {
	return dailyPregenerateName
}

func (j *DailyPregenerate) NextRun(now time.Time) time.Time {
	return nextDailyRun(now, j.location, j.hour)
}

// Run дата прогноза берётся в часовом поясе расписания
func (j *DailyPregenerate) Run(ctx context.Context) error {
	local := j.now().In(j.location)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	count, err := j.fortuneService.PregenerateDaily(ctx, date)
	if err != nil {
		return fmt.Errorf("pregenerated %d fortunes before failure: %w", count, err)
	}

	j.log.Info("daily fortunes pregenerated", "date", date.Format(time.DateOnly), "count", count)
	return nil
}
