package app

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/pkg/logger"
)

type App struct {
	Name string
	Cfg  *Config
	Log  *slog.Logger
}

func New(name string, cfg *Config) *App {
	return &App{
		Name: name,
		Cfg:  cfg,
		Log:  logger.New(name, domain.EngineVersion, cfg.Log),
	}
}

// Run поднимает все зависимости и блокируется до отмены ctx
func (a *App) Run(ctx context.Context) error {
	a.Log.Info("running oath")

	deps, err := a.initDependencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to init dependencies: %w", err)
	}

	return a.runServices(ctx, deps)
}
