package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"loanlink-backend/internal/logger"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	prev := logger.Default()
	t.Cleanup(func() { logger.SetLogger(prev) })

	var buf bytes.Buffer
	logger.SetLogger(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level})))
	return &buf
}

func TestLogger_Info(t *testing.T) {
	buf := capture(t, slog.LevelInfo)

	logger.Info("loan created", slog.String("loan_id", "abc"), slog.Int("count", 42))

	out := buf.String()
	assert.Contains(t, out, "loan created")
	assert.Contains(t, out, "loan_id")
	assert.Contains(t, out, "42")
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := capture(t, slog.LevelWarn)

	logger.Info("hidden")
	logger.Debug("hidden too")
	logger.WarnContext(context.Background(), "webhook unverified")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "webhook unverified")
}

func TestLogger_WithRequestID(t *testing.T) {
	buf := capture(t, slog.LevelInfo)

	logger.WithRequestID("req-123").Info("processing request")

	out := buf.String()
	assert.Contains(t, out, "request_id")
	assert.Contains(t, out, "req-123")
}

func TestLogger_WithFields(t *testing.T) {
	buf := capture(t, slog.LevelInfo)

	logger.WithFields(slog.String("session_id", "cs_1"), slog.Bool("created", true)).Info("materialized")

	out := buf.String()
	assert.Contains(t, out, "cs_1")
	assert.Contains(t, out, `"created":true`)
}
