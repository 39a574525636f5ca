package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sensa-ai-tech/OATH/internal/adapters/secondary/storage/inmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T) *App {
	t.Helper()
	cfg, err := NewEnvConfig("OATH_TEST")
	require.NoError(t, err)
	return &App{Name: "oath", Cfg: cfg, Log: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestNewEnvConfig_Defaults(t *testing.T) {
	a := testApp(t)
	cfg := a.Cfg

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 36*time.Hour, cfg.Fortune.MemoTTL)
	assert.Equal(t, "Asia/Taipei", cfg.Jobs.Timezone)
	assert.Equal(t, "oath-content", cfg.S3.Bucket)
	assert.False(t, cfg.Enabled.Redis)
	assert.False(t, cfg.Enabled.S3)
	assert.True(t, cfg.Enabled.Jobs)
	assert.True(t, cfg.Enabled.RateLimit)
	assert.False(t, cfg.LLM.Enabled())
	assert.Empty(t, cfg.Kafka.List)
}

func TestNewEnvConfig_Kafka(t *testing.T) {
	t.Setenv("OATH_TEST_KAFKA_COUNT", "2")
	t.Setenv("OATH_TEST_KAFKA_0_NAME", kafkaEvents)
	t.Setenv("OATH_TEST_KAFKA_0_CONFIG_TOPIC", "oath.events")
	t.Setenv("OATH_TEST_KAFKA_1_NAME", kafkaNatalRecompute)
	t.Setenv("OATH_TEST_KAFKA_1_CONFIG_TOPIC", "oath.natal-recompute")
	t.Setenv("OATH_TEST_KAFKA_1_CONFIG_CONSUMER_GROUP", "oath")
	t.Setenv("OATH_TEST_ENABLED_JOBS", "false")

	a := testApp(t)

	require.Len(t, a.Cfg.Kafka.List, 2)
	assert.Equal(t, "oath.events", a.Cfg.Kafka.Find(kafkaEvents).Topic)
	assert.Equal(t, "oath", a.Cfg.Kafka.Find(kafkaNatalRecompute).ConsumerGroup)
	assert.False(t, a.Cfg.Enabled.Jobs)
}

func TestInitCache_InMemoryByDefault(t *testing.T) {
	a := testApp(t)

	c := a.initCache(context.Background())

	assert.IsType(t, &inmemory.Cache{}, c)
}

func TestInitCache_RedisUnavailableFallsBack(t *testing.T) {
	t.Setenv("OATH_TEST_ENABLED_REDIS", "true")
	t.Setenv("OATH_TEST_REDIS_ADDR", "127.0.0.1:1")
	t.Setenv("OATH_TEST_REDIS_DIAL_TIMEOUT", "200ms")
	a := testApp(t)

	c := a.initCache(context.Background())

	assert.IsType(t, &inmemory.Cache{}, c)
}

func TestInitEvents_NilWithoutProducer(t *testing.T) {
	a := testApp(t)

	events := a.initEvents(a.initKafkaProducers())

	// nil-интерфейс, а не интерфейс с nil-указателем
	assert.True(t, events == nil)
}

func TestInitExternalServices(t *testing.T) {
	a := testApp(t)

	services := a.initExternalServices()
	assert.Nil(t, services.Polisher)
	assert.NotNil(t, services.Alerter)

	a.Cfg.LLM.ApiKey = "sk-test"
	services = a.initExternalServices()
	assert.NotNil(t, services.Polisher)
}

func TestInitContent_EmbeddedCatalog(t *testing.T) {
	a := testApp(t)

	svc, err := a.initContent(context.Background())
	require.NoError(t, err)
	assert.Positive(t, svc.Catalog().Len())
}
