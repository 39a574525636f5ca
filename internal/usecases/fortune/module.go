package fortune

import (
	"log/slog"
	"time"

	"github.com/sensa-ai-tech/OATH/internal/ports/cache"
	"github.com/sensa-ai-tech/OATH/internal/ports/repository"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
	"github.com/sensa-ai-tech/OATH/internal/usecases/astrology"
	"github.com/sensa-ai-tech/OATH/internal/usecases/bazi"
	"github.com/sensa-ai-tech/OATH/internal/usecases/content"
)

type Config struct {
	MemoTTL       time.Duration `envconfig:"MEMO_TTL" default:"36h"`
	LastResultTTL time.Duration `envconfig:"LAST_RESULT_TTL" default:"720h"`
	PolishTimeout time.Duration `envconfig:"POLISH_TIMEOUT" default:"8s"`
}

// Engines вычислительное ядро: чистые функции без ввода-вывода
type Engines struct {
	Astrology *astrology.Service
	Bazi      *bazi.Service
	Content   *content.Service
}

// Service сценарии профиля, натальной карты и ежедневного прогноза
type Service struct {
	ProfileRepo repository.IProfileRepo
	ChartRepo   repository.INatalChartRepo
	FortuneRepo repository.IDailyFortuneRepo
	Engines     Engines
	Cache       cache.Cache             // опционально
	Polisher    service.IPolishService  // опционально, без него L1 не используется
	Events      service.IEventPublisher // опционально
	Cfg         *Config
	Log         *slog.Logger

	now func() time.Time
}

func New(
	profileRepo repository.IProfileRepo,
	chartRepo repository.INatalChartRepo,
	fortuneRepo repository.IDailyFortuneRepo,
	engines Engines,
	cache cache.Cache,
	polisher service.IPolishService,
	events service.IEventPublisher,
	cfg *Config,
	log *slog.Logger,
) *Service {
	if cfg == nil {
		cfg = &Config{
			MemoTTL:       36 * time.Hour,
			LastResultTTL: 30 * 24 * time.Hour,
			PolishTimeout: 8 * time.Second,
		}
	}
	return &Service{
		ProfileRepo: profileRepo,
		ChartRepo:   chartRepo,
		FortuneRepo: fortuneRepo,
		Engines:     engines,
		Cache:       cache,
		Polisher:    polisher,
		Events:      events,
		Cfg:         cfg,
		Log:         log,
		now:         time.Now,
	}
}
