package kafka

import (
	"fmt"
	"strings"

	"github.com/IBM/sarama"
	"github.com/kelseyhightower/envconfig"
)

// Config конфигурация для Kafka producer/consumer
type Config struct {
	Brokers          string `envconfig:"BROKERS"`           // "broker1:9092,broker2:9092"
	Topic            string `envconfig:"TOPIC"`             // название топика
	ConsumerGroup    string `envconfig:"CONSUMER_GROUP"`    // consumer group (только для consumer)
	SecurityProtocol string `envconfig:"SECURITY_PROTOCOL"` // "SASL_SSL", "PLAINTEXT"
	SASLMechanism    string `envconfig:"SASL_MECHANISM"`    // "PLAIN", "SCRAM-SHA-256"
	SASLUsername     string `envconfig:"SASL_USERNAME"`
	SASLPassword     string `envconfig:"SASL_PASSWORD"`
}

// GetBrokers возвращает список брокеров из строки
func (c *Config) GetBrokers() []string {
	if c.Brokers == "" {
		return []string{"localhost:9092"}
	}
	return strings.Split(c.Brokers, ",")
}

// SaramaConfig базовая конфигурация клиента с настройками безопасности
func (c *Config) SaramaConfig() *sarama.Config {
	config := sarama.NewConfig()
	config.ClientID = "oath"

	if c.SecurityProtocol == "SASL_SSL" || c.SecurityProtocol == "SASL_PLAINTEXT" {
		config.Net.SASL.Enable = true
		config.Net.SASL.Mechanism = sarama.SASLTypePlaintext
		if c.SASLMechanism == "SCRAM-SHA-256" {
			config.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA256
		}
		config.Net.SASL.User = c.SASLUsername
		config.Net.SASL.Password = c.SASLPassword
		// TLS только для SASL_SSL
		if c.SecurityProtocol == "SASL_SSL" {
			config.Net.TLS.Enable = true
		}
	}
	return config
}

// KafkaConfigs конфигурация для нескольких Kafka кластеров/топиков
type KafkaConfigs struct {
	Count int           `envconfig:"COUNT" default:"0"`
	List  []KafkaConfig `envconfig:"-"`
}

// KafkaConfig конфигурация одного Kafka подключения
type KafkaConfig struct {
	Name   string  `envconfig:"NAME"` // "events", "recompute"
	Config *Config `envconfig:"CONFIG"`
}

// Load загружает конфигурацию Kafka из переменных окружения
func (kc *KafkaConfigs) Load(envPrefix string) error {
	kc.List = make([]KafkaConfig, kc.Count)
	for i := 0; i < kc.Count; i++ {
		prefix := fmt.Sprintf("%s_KAFKA_%d", envPrefix, i) // OATH_KAFKA_0, OATH_KAFKA_1, ...
		var kafkaCfg KafkaConfig
		if err := envconfig.Process(prefix, &kafkaCfg); err != nil {
			return fmt.Errorf("failed to load kafka config %d: %w", i, err)
		}
		kc.List[i] = kafkaCfg
	}
	return nil
}

// Find конфигурация по имени, nil если не задана
func (kc *KafkaConfigs) Find(name string) *Config {
	for _, kafkaCfg := range kc.List {
		if kafkaCfg.Name == name {
			return kafkaCfg.Config
		}
	}
	return nil
}
