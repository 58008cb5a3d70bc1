package logging_test

import (
	"bytes"
	"testing"

	"github.com/jrsteele09/go-admin-console/internal/logging"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("json outside DEV", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf, "debug", "PROD")
		logger.Debug().Str("endpoint", "/Categories").Msg("request")
		require.Contains(t, buf.String(), `"endpoint":"/Categories"`)
		require.Contains(t, buf.String(), `"level":"debug"`)
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf, "warn", "PROD")
		logger.Info().Msg("hidden")
		require.Empty(t, buf.String())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.New(&buf, "chatty", "PROD")
		logger.Debug().Msg("hidden")
		logger.Info().Msg("shown")
		require.NotContains(t, buf.String(), "hidden")
		require.Contains(t, buf.String(), "shown")
	})
}
