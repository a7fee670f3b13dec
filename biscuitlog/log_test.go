package biscuitlog

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitHonorsLogLevelEnvVar(t *testing.T) {
	t.Setenv("BISCUIT_LOG_LEVEL", "warn")
	Init()

	h := slog.Default().Handler()
	assert.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
}

func TestInitDefaultsToInfoOnUnknownLevel(t *testing.T) {
	t.Setenv("BISCUIT_LOG_LEVEL", "verbose")
	Init()

	h := slog.Default().Handler()
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}

func TestInitNoopWhenEnvVarUnset(t *testing.T) {
	os.Unsetenv("BISCUIT_LOG_LEVEL")
	before := slog.Default()
	Init()
	assert.Same(t, before, slog.Default())
}

func TestWarnfIncludesComponentAttr(t *testing.T) {
	// Warnf should not panic and should route through slog.Warn with the
	// component tagged as the first key/value pair.
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	defer slog.SetDefault(prev)

	assert.NotPanics(t, func() {
		Warnf("bicore", "tombstone threshold exceeded", "count", 42)
	})
	assert.Contains(t, buf.String(), "component=bicore count=42")
}
