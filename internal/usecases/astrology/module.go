package astrology

import (
	"log/slog"

	"github.com/sensa-ai-tech/OATH/internal/ports/ephemeris"
)

// Service западная астрология: натальная карта и ежедневные транзиты
type Service struct {
	Eph ephemeris.Ephemeris
	Log *slog.Logger
}

func New(eph ephemeris.Ephemeris, log *slog.Logger) *Service {
	return &Service{
		Eph: eph,
		Log: log,
	}
}
