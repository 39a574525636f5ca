package astrology

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/sensa-ai-tech/OATH/internal/domain"
)

// fakeEphemeris долготы задаются функцией времени; failing - тела, для которых вернётся ошибка
type fakeEphemeris struct {
	lon     map[domain.Planet]func(time.Time) float64
	failing map[domain.Planet]bool
	gst     float64
}

func (f *fakeEphemeris) Longitude(body domain.Planet, t time.Time) (float64, error) {
	if f.failing[body] {
		return 0, errors.New("ephemeris unavailable")
	}
	if fn, ok := f.lon[body]; ok {
		return fn(t), nil
	}
	return 0, errors.New("unknown body")
}

func (f *fakeEphemeris) SiderealTime(time.Time) float64 {
	return f.gst
}

func fixed(deg float64) func(time.Time) float64 {
	return func(time.Time) float64 { return deg }
}

// moving долгота меняется на rate градусов в сутки от reference
func moving(deg, rate float64, reference time.Time) func(time.Time) float64 {
	return func(t time.Time) float64 {
		return normalize(deg + rate*t.Sub(reference).Hours()/24)
	}
}

func staticSky() *fakeEphemeris {
	return &fakeEphemeris{
		lon: map[domain.Planet]func(time.Time) float64{
			domain.PlanetSun:     fixed(10),
			domain.PlanetMoon:    fixed(100),
			domain.PlanetMercury: fixed(15),
			domain.PlanetVenus:   fixed(70),
			domain.PlanetMars:    fixed(190),
			domain.PlanetJupiter: fixed(250),
			domain.PlanetSaturn:  fixed(130),
			domain.PlanetUranus:  fixed(300),
			domain.PlanetNeptune: fixed(340),
			domain.PlanetPluto:   fixed(280),
		},
		failing: map[domain.Planet]bool{},
		gst:     6,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
