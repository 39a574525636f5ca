package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sensa-ai-tech/OATH/internal/domain"
	"github.com/sensa-ai-tech/OATH/internal/pkg/metrics"
	kafkaPorts "github.com/sensa-ai-tech/OATH/internal/ports/kafka"
	"github.com/sensa-ai-tech/OATH/internal/ports/service"
)

const (
	EventNatalComputed    = "natal.computed"
	EventFortuneGenerated = "fortune.generated"
	EventSafetyTriggered  = "safety.triggered"

	headerEventType = "event_type"
	headerEventID   = "event_id"
)

// Envelope общий конверт события; ключ сообщения - profile_id
type Envelope struct {
	EventID    uuid.UUID       `json:"event_id"`
	Type       string          `json:"type"`
	ProfileID  uuid.UUID       `json:"profile_id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type NatalComputedPayload struct {
	EngineVersion string   `json:"engine_version"`
	Partial       bool     `json:"partial"`
	Warnings      []string `json:"warnings,omitempty"`
}

type FortuneGeneratedPayload struct {
	FortuneID   uuid.UUID           `json:"fortune_id"`
	FortuneDate string              `json:"fortune_date"`
	Level       domain.FortuneLevel `json:"level"`
	TemplateID  string              `json:"template_id"`
	Polished    bool                `json:"polished"`
	CostUSD     float64             `json:"cost_usd,omitempty"`
}

// SafetyTriggeredPayload без текста прогноза, только идентификаторы
type SafetyTriggeredPayload struct {
	TemplateID string `json:"template_id"`
	Keyword    string `json:"keyword"`
}

// Publisher реализует IEventPublisher поверх Kafka producer
type Publisher struct {
	producer kafkaPorts.IKafkaProducer
	log      *slog.Logger
	now      func() time.Time
}

func New(producer kafkaPorts.IKafkaProducer, log *slog.Logger) service.IEventPublisher {
	return &Publisher{
		producer: producer,
		log:      log,
		now:      time.Now,
	}
}

func (p *Publisher) NatalComputed(ctx context.Context, chart *domain.NatalChart) error {
	return p.publish(ctx, EventNatalComputed, chart.ProfileID, NatalComputedPayload{
		EngineVersion: chart.EngineVersion,
		Partial:       chart.IsPartial(),
		Warnings:      chart.Warnings,
	})
}

func (p *Publisher) FortuneGenerated(ctx context.Context, fortune *domain.DailyFortune) error {
	payload := FortuneGeneratedPayload{
		FortuneID:   fortune.ID,
		FortuneDate: fortune.FortuneDate,
		Level:       fortune.Fortune.Level,
		TemplateID:  fortune.Fortune.TemplateID,
		Polished:    fortune.Polish != nil,
	}
	if fortune.Polish != nil {
		payload.CostUSD = fortune.Polish.CostUSD
	}
	return p.publish(ctx, EventFortuneGenerated, fortune.ProfileID, payload)
}

func (p *Publisher) SafetyTriggered(ctx context.Context, profileID uuid.UUID, templateID, keyword string) error {
	return p.publish(ctx, EventSafetyTriggered, profileID, SafetyTriggeredPayload{
		TemplateID: templateID,
		Keyword:    keyword,
	})
}

func (p *Publisher) publish(ctx context.Context, eventType string, profileID uuid.UUID, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	env := Envelope{
		EventID:    uuid.New(),
		Type:       eventType,
		ProfileID:  profileID,
		OccurredAt: p.now().UTC(),
		Payload:    raw,
	}
	value, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal %s envelope: %w", eventType, err)
	}

	headers := map[string]string{
		headerEventType: eventType,
		headerEventID:   env.EventID.String(),
	}
	if err := p.producer.Send(ctx, profileID.String(), value, headers); err != nil {
		metrics.EventsPublished.WithLabelValues(eventType, "error").Inc()
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	metrics.EventsPublished.WithLabelValues(eventType, "ok").Inc()
	p.log.Debug("event published", "type", eventType, "event_id", env.EventID, "profile_id", profileID)
	return nil
}
