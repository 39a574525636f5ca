package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/IBM/sarama"
	kafkaPorts "github.com/sensa-ai-tech/OATH/internal/ports/kafka"
)

// Producer реализация Kafka producer
type Producer struct {
	producer sarama.SyncProducer
	cfg      *Config
	log      *slog.Logger
}

var _ kafkaPorts.IKafkaProducer = (*Producer)(nil)

// ProducerConfig настройки синхронного producer с подтверждением от всех реплик
func ProducerConfig(cfg *Config) *sarama.Config {
	config := cfg.SaramaConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	return config
}

func NewProducer(cfg *Config, log *slog.Logger) (*Producer, error) {
	producer, err := sarama.NewSyncProducer(cfg.GetBrokers(), ProducerConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	log.Info("kafka producer created",
		"brokers", cfg.Brokers,
		"topic", cfg.Topic,
	)

	return NewProducerWith(producer, cfg, log), nil
}

// NewProducerWith оборачивает готовый sarama.SyncProducer
func NewProducerWith(producer sarama.SyncProducer, cfg *Config, log *slog.Logger) *Producer {
	return &Producer{
		producer: producer,
		cfg:      cfg,
		log:      log,
	}
}

// Send отправляет сообщение в топик из конфигурации; headers попадают в заголовки записи
func (p *Producer) Send(ctx context.Context, key string, value []byte, headers map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.cfg.Topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(value),
	}
	for k, v := range headers {
		msg.Headers = append(msg.Headers, sarama.RecordHeader{
			Key:   []byte(k),
			Value: []byte(v),
		})
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Debug("kafka send failed",
			"error", err,
			"topic", p.cfg.Topic,
			"key", key,
		)
		return fmt.Errorf("kafka send failed [topic=%s, key=%s]: %w",
			p.cfg.Topic, key, err)
	}

	p.log.Debug("message sent to kafka",
		"topic", p.cfg.Topic,
		"partition", partition,
		"offset", offset,
		"key", key,
	)

	return nil
}

func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	p.log.Info("kafka producer closed")
	return nil
}
