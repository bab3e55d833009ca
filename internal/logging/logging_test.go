package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel(" DEBUG "))
	assert.Equal(t, slog.LevelWarn, parseLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("bogus"))
}

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	m := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	}}
	log := slog.New(m).With("component", "test")

	assert.True(t, m.Enabled(context.Background(), slog.LevelDebug))
	log.Debug("details", "rows", 3)
	log.Warn("careful")

	assert.Contains(t, debugBuf.String(), "details")
	assert.Contains(t, debugBuf.String(), "component=test")
	assert.NotContains(t, warnBuf.String(), "details")
	assert.Contains(t, warnBuf.String(), "careful")
}

func TestConfigure_WithoutSeq(t *testing.T) {
	closeFn := Configure(Options{Level: "debug"})
	defer closeFn()
	assert.True(t, L().Enabled(context.Background(), slog.LevelDebug))
	Configure(Options{})
	assert.False(t, L().Enabled(context.Background(), slog.LevelDebug))
}
