package service

import (
	"context"

	"github.com/sensa-ai-tech/OATH/internal/domain"
)

// IPolishService LLM-шлифовка текста прогноза
type IPolishService interface {
	Polish(ctx context.Context, req domain.PolishRequest) (*domain.PolishResponse, error)
}
