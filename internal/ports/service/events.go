package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
)

// IEventPublisher доменные события во внешнюю шину
type IEventPublisher interface {
	NatalComputed(ctx context.Context, chart *domain.NatalChart) error
	FortuneGenerated(ctx context.Context, fortune *domain.DailyFortune) error
	SafetyTriggered(ctx context.Context, profileID uuid.UUID, templateID, keyword string) error
}
