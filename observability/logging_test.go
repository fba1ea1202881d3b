package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/platformer/config"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			logger, err := NewLogger(config.LoggingConfig{Level: level, Format: format})
			require.NoError(t, err, "%s/%s", format, level)
			assert.NotNil(t, logger)
		}
	}
}

func TestNewLoggerRejectsBadInput(t *testing.T) {
	_, err := NewLogger(config.LoggingConfig{Level: "trace", Format: "json"})
	assert.Error(t, err)
	_, err = NewLogger(config.LoggingConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
