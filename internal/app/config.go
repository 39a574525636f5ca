package app

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	server "github.com/sensa-ai-tech/OATH/internal/adapters/primary/http"
	alerterAdapter "github.com/sensa-ai-tech/OATH/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/sensa-ai-tech/OATH/internal/adapters/secondary/kafka"
	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/llm"
	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/sensa-ai-tech/OATH/internal/adapters/secondary/storage/redis"
	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/storage/s3"
	"github.com/sensa-ai-tech/OATH/internal/pkg/logger"
	jobScheduler "github.com/sensa-ai-tech/OATH/internal/services/jobs"
	"github.com/sensa-ai-tech/OATH/internal/usecases/fortune"
)

// Имена Kafka-подключений в OATH_KAFKA_{i}_NAME
const (
	kafkaEvents         = "events"
	kafkaNatalRecompute = "natal-recompute"
)

type Config struct {
	Postgres *pg.Config                `envconfig:"POSTGRES"`
	Redis    *redisAdapter.Config      `envconfig:"REDIS"`
	Log      *logger.Config            `envconfig:"LOG"`
	Server   *server.Config            `envconfig:"APISERVER"`
	LLM      *llm.Config               `envconfig:"LLM"`
	S3       *s3.Config                `envconfig:"S3"`
	Alerter  *alerterAdapter.Config    `envconfig:"ALERTER"`
	Fortune  *fortune.Config           `envconfig:"FORTUNE"`
	Jobs     *jobScheduler.Config      `envconfig:"JOBS"`
	Kafka    kafkaAdapter.KafkaConfigs `envconfig:"KAFKA"`
	Enabled  EnabledConfig             `envconfig:"ENABLED"`
}

// EnabledConfig переключатели опциональных зависимостей: OATH_ENABLED_REDIS и т.д.
type EnabledConfig struct {
	Redis     bool `envconfig:"REDIS" default:"false"`
	S3        bool `envconfig:"S3" default:"false"`
	Jobs      bool `envconfig:"JOBS" default:"true"`
	RateLimit bool `envconfig:"RATE_LIMIT" default:"true"`
}

func NewEnvConfig(envPrefix string) (*Config, error) {
	cfg := &Config{}

	_ = godotenv.Load("deployments/local/.env")

	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, err
	}

	// Загружаем Kafka конфигурацию вручную (envconfig не умеет автоматически определять размер слайса)
	if err := cfg.Kafka.Load(envPrefix); err != nil {
		return nil, fmt.Errorf("failed to load kafka config: %w", err)
	}

	return cfg, nil
}
