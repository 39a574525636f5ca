package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	kafkaPorts "github.com/sensa-ai-tech/OATH/internal/ports/kafka"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
)

// NatalRecomputeHandler пересчитывает натальную карту по команде из топика
type NatalRecomputeHandler struct {
	FortuneService service.IFortuneService
	Log            *slog.Logger
}

func NewNatalRecomputeHandler(fortuneService service.IFortuneService, log *slog.Logger) kafkaPorts.MessageHandler {
	return &NatalRecomputeHandler{
		FortuneService: fortuneService,
		Log:            log,
	}
}

// HandleMessage profile_id берётся из тела, при пустом теле из ключа сообщения
func (h *NatalRecomputeHandler) HandleMessage(ctx context.Context, key string, value []byte, headers map[string]string) error {
	raw := key
	if len(value) > 0 {
		var msg NatalRecomputeMessage
		if err := json.Unmarshal(value, &msg); err != nil {
			h.Log.Warn("malformed natal recompute message", "error", err, "key", key)
			return domain.WrapBusinessError(fmt.Errorf("failed to unmarshal natal recompute message: %w", err))
		}
		if msg.ProfileID != "" {
			raw = msg.ProfileID
		}
	}

	profileID, err := uuid.Parse(raw)
	if err != nil {
		h.Log.Warn("invalid profile_id in natal recompute message", "profile_id", raw)
		return domain.WrapBusinessError(fmt.Errorf("invalid profile_id: %w", err))
	}

	h.Log.Debug("processing natal recompute",
		"profile_id", profileID,
		"reason", headers["reason"],
	)

	if err := h.FortuneService.RecomputeNatalChart(ctx, profileID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.Log.Warn("natal recompute for unknown profile", "profile_id", profileID)
			return domain.WrapBusinessError(err)
		}
		return fmt.Errorf("failed to recompute natal chart: %w", err)
	}

	return nil
}

type NatalRecomputeMessage struct {
	ProfileID string `json:"profile_id"`
}
