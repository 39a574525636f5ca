package jobs

import (
	"fmt"
	"time"
)

type Config struct {
	Timezone        string `envconfig:"TIMEZONE" default:"Asia/Taipei"`
	PregenerateHour int    `envconfig:"PREGENERATE_HOUR" default:"4"`
	RecomputeHour   int    `envconfig:"RECOMPUTE_HOUR" default:"3"`
	RecomputeLimit  int    `envconfig:"RECOMPUTE_LIMIT" default:"500"`
}

// Location часовой пояс расписания и границы «дня» для прогнозов
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// nextDailyRun ближайшее hour:00 в loc строго после now
func nextDailyRun(now time.Time, loc *time.Location, hour int) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(local.Year(), local.Month(), local.Day()+1, hour, 0, 0, 0, loc)
	}
	return next
}
