package polish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/llm"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
	"github.com/sensa-ai-tech/OATH/internal/usecases/content"
)

var errNoJSON = errors.New("no JSON object in model output")

// polishedText формат ответа, заданный системным промптом
type polishedText struct {
	Message string `json:"message"`
	Action  string `json:"action"`
}

// Service реализует IPolishService поверх LLM-клиента
type Service struct {
	client *llm.Client
	log    *slog.Logger
}

func New(client *llm.Client, log *slog.Logger) service.IPolishService {
	return &Service{
		client: client,
		log:    log,
	}
}

func (s *Service) Polish(ctx context.Context, req domain.PolishRequest) (*domain.PolishResponse, error) {
	resp, err := s.client.CreateMessage(ctx, llm.MessagesRequest{
		Model:     content.PolishModel,
		MaxTokens: content.PolishMaxTokens,
		System:    content.PolishSystemPrompt(),
		Messages: []llm.Message{
			{Role: "user", Content: content.PolishUserPrompt(req)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to polish fortune: %w", err)
	}

	text, err := parsePolished(resp.Text())
	if err != nil {
		s.log.Debug("unparseable polish output", "error", err, "stop_reason", resp.StopReason)
		return nil, fmt.Errorf("failed to parse polish output: %w", err)
	}

	model := resp.Model
	if model == "" {
		model = content.PolishModel
	}

	return &domain.PolishResponse{
		PolishedMessage: strings.TrimSpace(text.Message),
		PolishedAction:  strings.TrimSpace(text.Action),
		TokensInput:     resp.Usage.InputTokens,
		TokensOutput:    resp.Usage.OutputTokens,
		Model:           model,
		CostUSD:         content.PolishCostUSD(resp.Usage.InputTokens, resp.Usage.OutputTokens),
	}, nil
}

// parsePolished вырезает JSON-объект из ответа: модель иногда оборачивает его в markdown
func parsePolished(raw string) (polishedText, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return polishedText{}, errNoJSON
	}

	var out polishedText
	if err := json.Unmarshal([]byte(raw[start:end+1]), &out); err != nil {
		return polishedText{}, err
	}
	return out, nil
}
