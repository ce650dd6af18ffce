package observability_test

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/statkit/pkg/observability"
)

func TestDefaultConfig_HasSensibleDefaults(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()

	assert.Equal(t, "statkit", cfg.ServiceName)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 5, cfg.ShutdownTimeoutSec)
	assert.Equal(t, os.Stderr, cfg.LogOutput)
	assert.False(t, cfg.Metrics)
	assert.False(t, cfg.LogJSON)
	assert.Empty(t, cfg.ServiceVersion)
	assert.Empty(t, cfg.Command)
}
