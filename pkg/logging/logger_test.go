package logging_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/menuseed/pkg/logging"
)

func TestNewLoggerFromConfig(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(originalLevel) })

	t.Run("defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.Equal(t, "stderr", cfg.Output)
		assert.False(t, cfg.AddCaller)
	})

	t.Run("writes json to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "debug",
			Format: "json",
			Output: path,
			Fields: map[string]any{"run": "test"},
		})
		logger.Info().Str("collection", "categories").Msg("Collection cleared")

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"collection":"categories"`)
		assert.Contains(t, string(content), `"run":"test"`)
		assert.Contains(t, string(content), "Collection cleared")
	})

	t.Run("warning alias and unknown level", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "warning", Output: "discard"})
		assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())

		logger = logging.NewLoggerFromConfig(&logging.Config{Level: "loud", Output: "discard"})
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("nil config", func(t *testing.T) {
		assert.NotPanics(t, func() {
			_ = logging.NewLoggerFromConfig(nil)
		})
	})
}

func TestContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	ctx := logging.WithLogger(context.Background(), &base)
	ctx = logging.WithPhase(ctx, "menu")
	ctx = logging.WithCollection(ctx, "menu")
	ctx = logging.WithItem(ctx, "Margherita")
	logging.Ctx(ctx).Warn().Msg("Category not found")

	out := buf.String()
	assert.Contains(t, out, `"phase":"menu"`)
	assert.Contains(t, out, `"collection":"menu"`)
	assert.Contains(t, out, `"item":"Margherita"`)
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Same(t, logging.Default(), logging.FromContext(nil))
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)
	ctx := logging.WithLogger(context.Background(), &base)
	ctx = logging.WithFields(ctx, map[string]any{"deleted": 3, "strict": true})
	logging.Ctx(ctx).Info().Msg("done")

	assert.Contains(t, buf.String(), `"deleted":3`)
	assert.Contains(t, buf.String(), `"strict":true`)
}

func TestCaptureLoggingForTest(t *testing.T) {
	tl := logging.CaptureLoggingForTest(t)
	logging.Warn().Str("reason", "unknown_category").Msg("Skipping menu item")

	assert.True(t, tl.Contains("unknown_category"))
	assert.Equal(t, 1, tl.CountContaining("Skipping menu item"))
	assert.Len(t, tl.Lines(), 1)
}
