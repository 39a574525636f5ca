package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taipei(t *testing.T) *time.Location {
	t.Helper()
	loc, err := (&Config{Timezone: "Asia/Taipei"}).Location()
	require.NoError(t, err)
	return loc
}

func TestNextDailyRun(t *testing.T) {
	loc := taipei(t)

	// 03:00 по Тайбэю - 19:00 UTC предыдущего дня
	before := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 2, 4, 0, 0, 0, loc), nextDailyRun(before, loc, 4))

	exact := time.Date(2026, 3, 2, 4, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 3, 4, 0, 0, 0, loc), nextDailyRun(exact, loc, 4))

	// конец месяца
	late := time.Date(2026, 3, 31, 23, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 4, 1, 4, 0, 0, 0, loc), nextDailyRun(late, loc, 4))
}

func TestConfig_BadTimezone(t *testing.T) {
	_, err := (&Config{Timezone: "Mars/Olympus"}).Location()
	assert.Error(t, err)
}

type stubFortune struct {
	date  time.Time
	limit int
	count int
	err   error
}

func (s *stubFortune) PregenerateDaily(_ context.Context, date time.Time) (int, error) {
	s.date = date
	return s.count, s.err
}

func (s *stubFortune) RecomputeStale(_ context.Context, limit int) (int, error) {
	s.limit = limit
	return s.count, s.err
}

func TestDailyPregenerate_UsesLocalDate(t *testing.T) {
	loc := taipei(t)
	svc := &stubFortune{count: 12}
	job := NewDailyPregenerate(svc, &Config{PregenerateHour: 4}, loc, discardLogger())
	// 20:30 UTC 1 марта - уже 2 марта в Тайбэе
	job.now = func() time.Time { return time.Date(2026, 3, 1, 20, 30, 0, 0, time.UTC) }

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), svc.date)
	assert.Equal(t, dailyPregenerateName, job.Name())
}

func TestDailyPregenerate_Error(t *testing.T) {
	svc := &stubFortune{count: 3, err: errors.New("db down")}
	job := NewDailyPregenerate(svc, &Config{}, time.UTC, discardLogger())

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pregenerated 3")
}

func TestStaleRecompute(t *testing.T) {
	svc := &stubFortune{count: 7}
	job := NewStaleRecompute(svc, &Config{RecomputeHour: 3, RecomputeLimit: 250}, time.UTC, discardLogger())

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 250, svc.limit)
	assert.Equal(t, time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC), job.NextRun(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
}
