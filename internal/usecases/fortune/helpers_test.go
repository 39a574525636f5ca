package fortune

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	ephemerisAdapter "github.com/sensa-ai-tech/OATH/internal/adapters/secondary/ephemeris"
	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/lunar"
	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/storage/inmemory"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/calendar"
	"github.com/sensa-ai-tech/OATH/internal/ports/persistence"
	"github.com/sensa-ai-tech/OATH/internal/usecases/astrology"
	"github.com/sensa-ai-tech/OATH/internal/usecases/bazi"
	"github.com/sensa-ai-tech/OATH/internal/usecases/content"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var errBoom = errors.New("boom")

type brokenEphemeris struct{}

func (brokenEphemeris) Longitude(domain.Planet, time.Time) (float64, error) { return 0, errBoom }
func (brokenEphemeris) SiderealTime(time.Time) float64                      { return 0 }

type brokenCalendar struct{}

func (brokenCalendar) FourPillars(time.Time) (calendar.FourPillars, error) {
	return calendar.FourPillars{}, errBoom
}
func (brokenCalendar) DayPillar(time.Time) (calendar.Pillar, error) { return calendar.Pillar{}, errBoom }
func (brokenCalendar) LuckPillars(time.Time, bool, int) ([]calendar.LuckEntry, error) {
	return nil, errBoom
}

// panickingCalendar имитирует сбой внутри стороннего календаря
type panickingCalendar struct{ brokenCalendar }

func (panickingCalendar) FourPillars(time.Time) (calendar.FourPillars, error) {
	panic("index out of range")
}

type profileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*domain.Profile
	txErr    error
}

func (r *profileRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *profileRepo) ListIDs(_ context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for id := range r.profiles {
		if afterID == uuid.Nil || id.String() > afterID.String() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	if len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (r *profileRepo) WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error {
	if r.txErr != nil {
		return r.txErr
	}
	return fn(ctx, nil)
}

func (r *profileRepo) CreateTx(_ context.Context, _ persistence.Transaction, p *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
	return nil
}

type chartRepo struct {
	mu     sync.Mutex
	charts map[uuid.UUID]*domain.NatalChart
	getErr error
}

func (r *chartRepo) GetByProfileID(_ context.Context, id uuid.UUID) (*domain.NatalChart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	c, ok := r.charts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (r *chartRepo) Upsert(_ context.Context, c *domain.NatalChart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.charts[c.ProfileID] = c
	return nil
}

func (r *chartRepo) UpsertTx(ctx context.Context, _ persistence.Transaction, c *domain.NatalChart) error {
	return r.Upsert(ctx, c)
}

func (r *chartRepo) ListStaleProfileIDs(_ context.Context, version string, limit int) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []uuid.UUID
	for id, c := range r.charts {
		if c.EngineVersion != version && len(ids) < limit {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

type fortuneRepo struct {
	mu    sync.Mutex
	saved []*domain.DailyFortune
}

func (r *fortuneRepo) Save(_ context.Context, f *domain.DailyFortune) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saved = append(r.saved, f)
	return nil
}

func (r *fortuneRepo) GetByDate(_ context.Context, profileID uuid.UUID, date string) (*domain.DailyFortune, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.saved {
		if f.ProfileID == profileID && f.FortuneDate == date {
			return f, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fortuneRepo) GetLatest(_ context.Context, profileID uuid.UUID) (*domain.DailyFortune, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.saved) - 1; i >= 0; i-- {
		if r.saved[i].ProfileID == profileID {
			copied := *r.saved[i]
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubPolisher struct {
	resp  *domain.PolishResponse
	err   error
	calls int
	last  domain.PolishRequest
}

func (p *stubPolisher) Polish(_ context.Context, req domain.PolishRequest) (*domain.PolishResponse, error) {
	p.calls++
	p.last = req
	return p.resp, p.err
}

type recordedEvents struct {
	mu      sync.Mutex
	natal   []*domain.NatalChart
	fortune []*domain.DailyFortune
	safety  []string
	err     error
}

func (e *recordedEvents) NatalComputed(_ context.Context, c *domain.NatalChart) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.natal = append(e.natal, c)
	return e.err
}

func (e *recordedEvents) FortuneGenerated(_ context.Context, f *domain.DailyFortune) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fortune = append(e.fortune, f)
	return e.err
}

func (e *recordedEvents) SafetyTriggered(_ context.Context, _ uuid.UUID, templateID, keyword string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.safety = append(e.safety, templateID+":"+keyword)
	return e.err
}

type fixture struct {
	svc      *Service
	profiles *profileRepo
	charts   *chartRepo
	fortunes *fortuneRepo
	cache    *inmemory.Cache
	polisher *stubPolisher
	events   *recordedEvents
}

type engineOption func(*Engines)

func withBrokenAstrology() engineOption {
	return func(e *Engines) { e.Astrology = astrology.New(brokenEphemeris{}, discardLogger()) }
}

func withBrokenBazi() engineOption {
	return func(e *Engines) { e.Bazi = bazi.New(brokenCalendar{}, discardLogger()) }
}

func withPanickingBazi() engineOption {
	return func(e *Engines) { e.Bazi = bazi.New(panickingCalendar{}, discardLogger()) }
}

func newFixture(t *testing.T, opts ...engineOption) *fixture {
	t.Helper()
	log := discardLogger()

	eph := ephemerisAdapter.New()
	contentSvc, err := content.NewDefault(log)
	require.NoError(t, err)

	engines := Engines{
		Astrology: astrology.New(eph, log),
		Bazi:      bazi.New(lunar.New(), log),
		Content:   contentSvc,
	}
	for _, o := range opts {
		o(&engines)
	}

	f := &fixture{
		profiles: &profileRepo{profiles: make(map[uuid.UUID]*domain.Profile)},
		charts:   &chartRepo{charts: make(map[uuid.UUID]*domain.NatalChart)},
		fortunes: &fortuneRepo{},
		cache:    inmemory.NewCache(),
		polisher: &stubPolisher{},
		events:   &recordedEvents{},
	}
	f.svc = New(f.profiles, f.charts, f.fortunes, engines, f.cache, f.polisher, f.events, nil, log)
	f.svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return f
}

// dropCache сбрасывает мемо и последний результат за fortuneDate
func (f *fixture) dropCache(t *testing.T, profileID uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.cache.Delete(ctx, memoKey(profileID, fortuneDate.Format(dateLayout))))
	require.NoError(t, f.cache.Delete(ctx, lastResultKey(profileID)))
}

func taipeiBirth() domain.BirthInput {
	return domain.BirthInput{
		DateTime:      time.Date(1990, 5, 15, 0, 30, 0, 0, time.UTC),
		Latitude:      25.033,
		Longitude:     121.565,
		Gender:        domain.GenderFemale,
		TimePrecision: domain.PrecisionExact,
	}
}
