package config

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mockinsight/interview-service/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "ENVIRONMENT", "CACHE_BACKEND", "RESULTS_MODE",
		"SESSION_IDLE_TTL", "TIMER_INTERVAL", "EVENTS_ENABLED", "EVENTS_PUBLISHER", "EVENTS_TOPIC"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, CacheBackendMemory, cfg.CacheBackend)
	assert.Equal(t, ResultsModeFresh, cfg.ResultsMode)
	assert.Equal(t, time.Hour, cfg.SessionIdleTTL)
	assert.Equal(t, time.Second, cfg.TimerInterval)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, PublisherGoChannel, cfg.Events.Publisher)
	assert.Equal(t, "interview_events", cfg.Events.Topic)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("RESULTS_MODE", "stable")
	t.Setenv("TIMER_INTERVAL", "250ms")
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("REPORT_CACHE_TTL", "not-a-duration")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ResultsModeStable, cfg.ResultsMode)
	assert.Equal(t, 250*time.Millisecond, cfg.TimerInterval)
	assert.False(t, cfg.Events.Enabled)
	assert.Equal(t, 30*time.Minute, cfg.ReportCacheTTL)
}

func TestLoadConfig_RejectsUnknownModes(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RESULTS_MODE", "sometimes")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "RESULTS_MODE")

	t.Setenv("RESULTS_MODE", "")
	t.Setenv("CACHE_BACKEND", "memcached")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "CACHE_BACKEND")
}

func TestEventConfig_GetKafkaBrokers(t *testing.T) {
	c := EventConfig{KafkaBrokers: "a:9092, b:9092"}
	assert.Equal(t, []string{"a:9092", "b:9092"}, c.GetKafkaBrokers())
}

func TestEventConfig_CreateEventBus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("disabled", func(t *testing.T) {
		bus, err := (&EventConfig{Enabled: false, Publisher: PublisherGoChannel}).CreateEventBus(logger)
		require.NoError(t, err)
		assert.IsType(t, &events.MockEventPublisher{}, bus.Publisher)
		assert.Nil(t, bus.Subscriber)
	})

	t.Run("gochannel", func(t *testing.T) {
		bus, err := (&EventConfig{Enabled: true, Publisher: PublisherGoChannel, Topic: "t"}).CreateEventBus(logger)
		require.NoError(t, err)
		assert.IsType(t, &events.WatermillEventPublisher{}, bus.Publisher)
		assert.NotNil(t, bus.Subscriber)
		assert.NoError(t, bus.Close())
	})

	t.Run("unknown falls back to mock", func(t *testing.T) {
		bus, err := (&EventConfig{Enabled: true, Publisher: "carrier-pigeon"}).CreateEventBus(logger)
		require.NoError(t, err)
		assert.IsType(t, &events.MockEventPublisher{}, bus.Publisher)
	})
}
