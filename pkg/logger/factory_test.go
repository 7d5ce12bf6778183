package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadbox/leadbox/pkg/logger"
)

func logLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	return rec
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json format with static attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithFormat(logger.FormatJSON),
			logger.WithAttr(slog.String("service", "leadbox")),
		)

		log.Info("hello")

		rec := logLine(t, &buf)
		assert.Equal(t, "hello", rec["msg"])
		assert.Equal(t, "leadbox", rec["service"])
	})

	t.Run("level filters records", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithLevel(slog.LevelWarn),
		)

		log.Info("dropped")
		assert.Zero(t, buf.Len())

		log.Warn("kept")
		assert.NotZero(t, buf.Len())
	})

	t.Run("invalid format panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			logger.New(logger.WithFormat(logger.Format("xml")))
		})
	})

	t.Run("context extractor injects attributes", func(t *testing.T) {
		t.Parallel()

		type ctxKey struct{}
		extractor := func(ctx context.Context) (slog.Attr, bool) {
			if v, ok := ctx.Value(ctxKey{}).(string); ok {
				return slog.String("trace_id", v), true
			}
			return slog.Attr{}, false
		}

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithFormat(logger.FormatJSON),
			logger.WithContextExtractors(extractor),
		)

		ctx := context.WithValue(context.Background(), ctxKey{}, "abc-123")
		log.InfoContext(ctx, "traced")

		rec := logLine(t, &buf)
		assert.Equal(t, "abc-123", rec["trace_id"])
	})

	t.Run("extractor yields nothing without value", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithFormat(logger.FormatJSON),
			logger.WithContextExtractors(func(ctx context.Context) (slog.Attr, bool) {
				return slog.Attr{}, false
			}),
		)

		log.InfoContext(context.Background(), "untraced")

		rec := logLine(t, &buf)
		assert.NotContains(t, rec, "trace_id")
	})
}
