package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/persistence"
)

// INatalChartRepo сохранённые натальные карты
type INatalChartRepo interface {
	GetByProfileID(ctx context.Context, profileID uuid.UUID) (*domain.NatalChart, error)
	Upsert(ctx context.Context, chart *domain.NatalChart) error
	UpsertTx(ctx context.Context, tx persistence.Transaction, chart *domain.NatalChart) error
	// ListStaleProfileIDs профили, чьи карты посчитаны другой версией движка
	ListStaleProfileIDs(ctx context.Context, engineVersion string, limit int) ([]uuid.UUID, error)
}
