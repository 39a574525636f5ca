package alerter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/alerter"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
)

// Service реализует IAlerterService для отправки алертов
type Service struct {
	client *alerter.Client
	log    *slog.Logger
}

// New без клиента алерты только пишутся в лог
func New(client *alerter.Client, log *slog.Logger) service.IAlerterService {
	return &Service{
		client: client,
		log:    log,
	}
}

func (s *Service) SendAlert(ctx context.Context, message string) error {
	if s.client == nil {
		s.log.Error("alert", "message", message)
		return nil
	}

	if err := s.client.SendAlert(ctx, message); err != nil {
		return fmt.Errorf("failed to deliver alert: %w", err)
	}
	return nil
}
