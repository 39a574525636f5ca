package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
)

// IDailyFortuneRepo история выданных прогнозов
type IDailyFortuneRepo interface {
	Save(ctx context.Context, fortune *domain.DailyFortune) error
	GetByDate(ctx context.Context, profileID uuid.UUID, date string) (*domain.DailyFortune, error)
	GetLatest(ctx context.Context, profileID uuid.UUID) (*domain.DailyFortune, error)
}
