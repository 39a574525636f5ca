package ephemeris

import (
	"time"

	"github.com/sensa-ai-tech/OATH/internal/domain"
)

// Ephemeris источник положений тел
type Ephemeris interface {
	// Longitude геоцентрическая эклиптическая долгота тела в градусах
	Longitude(body domain.Planet, t time.Time) (float64, error)
	// SiderealTime гринвичское среднее звёздное время в часах [0,24)
	SiderealTime(t time.Time) float64
}
