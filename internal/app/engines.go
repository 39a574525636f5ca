package app

import (
	"log/slog"

	ephemerisAdapter "github.com/sensa-ai-tech/OATH/internal/adapters/secondary/ephemeris"
	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/lunar"
	"github.com/sensa-ai-tech/OATH/internal/usecases/astrology"
	"github.com/sensa-ai-tech/OATH/internal/usecases/bazi"
	"github.com/sensa-ai-tech/OATH/internal/usecases/content"
	"github.com/sensa-ai-tech/OATH/internal/usecases/fortune"
)

// NewEngines вычислительное ядро на встроенных эфемеридах и календаре
func NewEngines(contentService *content.Service, log *slog.Logger) fortune.Engines {
	eph := ephemerisAdapter.New()
	return fortune.Engines{
		Astrology: astrology.New(eph, log),
		Bazi:      bazi.New(lunar.New(), log),
		Content:   contentService,
	}
}
