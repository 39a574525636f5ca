package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	server "github.com/sensa-ai-tech/OATH/internal/adapters/primary/http"
	contentController "github.com/sensa-ai-tech/OATH/internal/adapters/primary/http/controllers/content"
	healthcheckController "github.com/sensa-ai-tech/OATH/internal/adapters/primary/http/controllers/healthcheck"
	metricsController "github.com/sensa-ai-tech/OATH/internal/adapters/primary/http/controllers/metrics"
	profileController "github.com/sensa-ai-tech/OATH/internal/adapters/primary/http/controllers/profile"
	"github.com/sensa-ai-tech/OATH/internal/adapters/primary/http/middlewares"
	kafkaConsumerAdapter "github.com/sensa-ai-tech/OATH/internal/adapters/primary/kafka"
	kafkaHandlers "github.com/sensa-ai-tech/OATH/internal/adapters/primary/kafka/handlers"
	alerterAdapter "github.com/sensa-ai-tech/OATH/internal/adapters/secondary/alerter"
	kafkaAdapter "github.com/sensa-ai-tech/OATH/internal/adapters/secondary/kafka"
	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/llm"
	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/storage/inmemory"
	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/storage/pg"
	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/storage/s3"
	"github.com/sensa-ai-tech/OATH/internal/ports/cache"
	"github.com/sensa-ai-tech/OATH/internal/ports/kafka"
	"github.com/sensa-ai-tech/OATH/internal/ports/persistence"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
	dailyFortuneRepo "github.com/sensa-ai-tech/OATH/internal/repository/daily_fortune"
	natalChartRepo "github.com/sensa-ai-tech/OATH/internal/repository/natal_chart"
	profileRepo "github.com/sensa-ai-tech/OATH/internal/repository/profile"
	alerterService "github.com/sensa-ai-tech/OATH/internal/services/alerter"
	eventsService "github.com/sensa-ai-tech/OATH/internal/services/events"
	jobScheduler "github.com/sensa-ai-tech/OATH/internal/services/jobs"
	polishService "github.com/sensa-ai-tech/OATH/internal/services/polish"
	"github.com/sensa-ai-tech/OATH/internal/usecases/content"
	"github.com/sensa-ai-tech/OATH/internal/usecases/fortune"
)

type Dependencies struct {
	DB             *sqlx.DB
	HTTPServer     *http.Server
	KafkaProducers map[string]*kafkaAdapter.Producer
	KafkaConsumers map[string]*kafkaConsumerAdapter.Consumer
	Cache          cache.Cache
	JobScheduler   *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies(ctx context.Context) (*Dependencies, error) {
	location, err := a.Cfg.Jobs.Location()
	if err != nil {
		return nil, err
	}

	db, err := a.initPostgres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}
	persistenceLayer := pg.NewDB(db)

	contentSvc, err := a.initContent(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to init content: %w", err)
	}

	cacheClient := a.initCache(ctx)
	externalServices := a.initExternalServices()
	kafkaProducers := a.initKafkaProducers()

	fortuneSvc := fortune.New(
		profileRepo.New(persistenceLayer, a.Log),
		natalChartRepo.New(persistenceLayer, a.Log),
		dailyFortuneRepo.New(persistenceLayer, a.Log),
		NewEngines(contentSvc, a.Log),
		cacheClient,
		externalServices.Polisher, // может быть nil
		a.initEvents(kafkaProducers),
		a.Cfg.Fortune,
		a.Log,
	)

	kafkaConsumers := a.initKafkaConsumers(fortuneSvc)
	httpServer := a.initHTTP(persistenceLayer, cacheClient, fortuneSvc, contentSvc, location)

	var scheduler *jobScheduler.Scheduler
	if a.Cfg.Enabled.Jobs {
		scheduler = a.initJobScheduler(externalServices.Alerter, fortuneSvc, location)
	}

	return &Dependencies{
		DB:             db,
		HTTPServer:     httpServer,
		KafkaProducers: kafkaProducers,
		KafkaConsumers: kafkaConsumers,
		Cache:          cacheClient,
		JobScheduler:   scheduler,
	}, nil
}

// initPostgres инициализирует подключение к PostgreSQL и запускает миграции
func (a *App) initPostgres(ctx context.Context) (*sqlx.DB, error) {
	db, err := a.Cfg.Postgres.NewConnection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	a.Log.Info("postgres connected successfully")

	if err := pg.RunMigrations(ctx, db, a.Log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// initContent встроенный каталог шаблонов, при включённом S3 - вместе с шаблонами из бакета
func (a *App) initContent(ctx context.Context) (*content.Service, error) {
	if !a.Cfg.Enabled.S3 {
		return content.NewDefault(a.Log)
	}

	minioClient, err := a.Cfg.S3.NewClient(ctx)
	if err != nil {
		a.Log.Warn("failed to init s3, using embedded templates only", "error", err)
		return content.NewDefault(a.Log)
	}

	store := s3.NewClient(minioClient, a.Cfg.S3.Bucket, a.Log)
	return content.NewFromStore(ctx, store, a.Cfg.S3.Prefix, a.Log)
}

// initCache Redis при включённом OATH_ENABLED_REDIS, иначе кэш в памяти процесса
func (a *App) initCache(ctx context.Context) cache.Cache {
	if a.Cfg.Enabled.Redis {
		redisCache, err := a.Cfg.Redis.Open(ctx)
		if err == nil {
			a.Log.Info("redis cache connected successfully", "addr", a.Cfg.Redis.Addr)
			return redisCache
		}
		a.Log.Warn("failed to init redis cache, falling back to in-memory cache", "error", err)
	}
	return inmemory.NewCache()
}

// externalServices содержит внешние сервисы (опциональные)
type externalServices struct {
	Polisher service.IPolishService
	Alerter  service.IAlerterService
}

// initExternalServices инициализирует LLM-шлифовку и алертер
func (a *App) initExternalServices() *externalServices {
	services := &externalServices{}

	// LLM - опциональный, без ключа прогнозы отдаются без шлифовки
	if a.Cfg.LLM.Enabled() {
		services.Polisher = polishService.New(llm.NewClient(a.Cfg.LLM, a.Log), a.Log)
	} else {
		a.Log.Warn("llm api key is not set, polishing disabled")
	}

	// Alerter без webhook только пишет в лог
	services.Alerter = alerterService.New(alerterAdapter.NewClient(a.Cfg.Alerter, a.Log), a.Log)

	return services
}

// initKafkaProducers producer создаётся для конфигураций с topic и без consumer group
func (a *App) initKafkaProducers() map[string]*kafkaAdapter.Producer {
	producers := make(map[string]*kafkaAdapter.Producer)

	for _, kafkaCfg := range a.Cfg.Kafka.List {
		if kafkaCfg.Config == nil || kafkaCfg.Config.Topic == "" || kafkaCfg.Config.ConsumerGroup != "" {
			continue
		}
		prod, err := kafkaAdapter.NewProducer(kafkaCfg.Config, a.Log)
		if err != nil {
			a.Log.Warn("failed to create kafka producer", "error", err, "name", kafkaCfg.Name)
			continue
		}
		producers[kafkaCfg.Name] = prod
	}

	return producers
}

// initEvents nil-интерфейс, если producer событий не настроен
func (a *App) initEvents(producers map[string]*kafkaAdapter.Producer) service.IEventPublisher {
	producer, ok := producers[kafkaEvents]
	if !ok {
		a.Log.Info("kafka events producer is not configured, domain events disabled")
		return nil
	}
	return eventsService.New(producer, a.Log)
}

// initKafkaConsumers consumer создаётся для конфигураций с consumer group
func (a *App) initKafkaConsumers(fortuneSvc service.IFortuneService) map[string]*kafkaConsumerAdapter.Consumer {
	consumers := make(map[string]*kafkaConsumerAdapter.Consumer)

	for _, kafkaCfg := range a.Cfg.Kafka.List {
		if kafkaCfg.Config == nil || kafkaCfg.Config.ConsumerGroup == "" {
			continue
		}

		handler := a.createHandlerForTopic(kafkaCfg.Name, fortuneSvc)
		if handler == nil {
			a.Log.Warn("no handler for kafka topic, skipping consumer", "name", kafkaCfg.Name)
			continue
		}

		consumer, err := kafkaConsumerAdapter.NewConsumer(kafkaCfg.Config, handler, a.Log)
		if err != nil {
			a.Log.Warn("failed to create kafka consumer", "error", err, "name", kafkaCfg.Name)
			continue
		}
		consumers[kafkaCfg.Name] = consumer
	}

	return consumers
}

// createHandlerForTopic создаёт handler для указанного топика Kafka
func (a *App) createHandlerForTopic(name string, fortuneSvc service.IFortuneService) kafka.MessageHandler {
	switch name {
	case kafkaNatalRecompute:
		return kafkaHandlers.NewNatalRecomputeHandler(fortuneSvc, a.Log)
	default:
		a.Log.Warn("unknown kafka topic", "name", name)
		return nil
	}
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	db persistence.Database,
	cacheClient cache.Cache,
	fortuneSvc service.IFortuneService,
	contentSvc *content.Service,
	location *time.Location,
) *http.Server {
	var limiter *middlewares.RateLimiter
	if a.Cfg.Enabled.RateLimit {
		limiter = middlewares.NewRateLimiter(cacheClient, middlewares.DefaultLimits(), a.Log)
	}

	controllers := []server.Controller{
		healthcheckController.New(db, cacheClient, a.Log),
		metricsController.New(),
		profileController.New(fortuneSvc, limiter, location, a.Log),
		contentController.New(contentSvc, limiter, a.Log),
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(
	alerterSvc service.IAlerterService,
	fortuneSvc *fortune.Service,
	location *time.Location,
) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log, alerterSvc)

	scheduler.Register(jobScheduler.NewDailyPregenerate(fortuneSvc, a.Cfg.Jobs, location, a.Log))
	a.Log.Info("daily pregenerate job registered", "hour", a.Cfg.Jobs.PregenerateHour)

	scheduler.Register(jobScheduler.NewStaleRecompute(fortuneSvc, a.Cfg.Jobs, location, a.Log))
	a.Log.Info("stale natal recompute job registered", "hour", a.Cfg.Jobs.RecomputeHour)

	return scheduler
}
