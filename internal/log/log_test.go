package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/bizsuite/internal/auth"
	"github.com/tuanvumaihuynh/bizsuite/internal/config"
	"github.com/tuanvumaihuynh/bizsuite/pkg/correlationid"
)

func TestEnrichedHandler(t *testing.T) {
	t.Run("Should add correlation id and user id to JSON records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(newHandler(&buf, config.Log{Format: config.LogFormatJSON, Level: slog.LevelInfo}))

		ctx := correlationid.NewContext(context.Background(), "corr-42")
		ctx = auth.NewIdentityContext(ctx, auth.Identity{UserID: 7})
		logger.InfoContext(ctx, "hello")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "corr-42", record["correlation_id"])
		assert.EqualValues(t, 7, record["user_id"])
		assert.NotContains(t, record, "trace_id")
	})

	t.Run("Should respect the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(newHandler(&buf, config.Log{Format: config.LogFormatText, Level: slog.LevelWarn, NoColor: true}))

		logger.Info("dropped")
		logger.Warn("kept")

		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "kept")
	})
}
