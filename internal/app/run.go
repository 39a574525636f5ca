package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func (a *App) runServices(ctx context.Context, deps *Dependencies) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Log.Info("starting http server",
			"host", a.Cfg.Server.Host,
			"port", a.Cfg.Server.Port)

		err := deps.HTTPServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	// Запускаем все Kafka consumers
	for name, consumer := range deps.KafkaConsumers {
		g.Go(func() error {
			a.Log.Info("starting kafka consumer", "name", name)
			return consumer.Start(gCtx)
		})
	}

	// Запускаем планировщик джоб (запускает горутины внутри, сам не блокирует)
	if deps.JobScheduler != nil {
		a.Log.Info("starting job scheduler")
		if err := deps.JobScheduler.Start(gCtx); err != nil {
			a.Log.Error("failed to start job scheduler", "error", err)
		}
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.Log.Info("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := deps.HTTPServer.Shutdown(shutdownCtx); err != nil {
			a.Log.Error("failed to shutdown http server", "error", err)
		}

		// джобы используют БД и кэш, поэтому ждём их до закрытия
		if deps.JobScheduler != nil {
			deps.JobScheduler.Wait()
		}

		// Закрываем Kafka consumers
		for name, consumer := range deps.KafkaConsumers {
			if err := consumer.Close(); err != nil {
				a.Log.Warn("failed to close kafka consumer", "error", err, "name", name)
			}
		}

		// Закрываем Kafka producers
		for name, producer := range deps.KafkaProducers {
			if err := producer.Close(); err != nil {
				a.Log.Error("failed to close kafka producer", "error", err, "name", name)
			}
		}

		if err := deps.Cache.Close(); err != nil {
			a.Log.Error("failed to close cache", "error", err)
		}

		if err := deps.DB.Close(); err != nil {
			a.Log.Error("failed to close database", "error", err)
		}

		a.Log.Info("application shutdown completed")
		return nil
	})

	if err := g.Wait(); err != nil {
		a.Log.Error("application error", "error", err)
		return err
	}

	return nil
}
