package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/persistence"
)

// IProfileRepo профили с данными рождения
type IProfileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	// ListIDs постраничный обход по id (keyset), afterID uuid.Nil для первой страницы
	ListIDs(ctx context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error)

	WithTransaction(ctx context.Context, fn func(context.Context, persistence.Transaction) error) error
	CreateTx(ctx context.Context, tx persistence.Transaction, profile *domain.Profile) error
}
