package logger_test

import (
	"testing"

	"github.com/lexfirm/backoffice-api/internal/config"
	"github.com/lexfirm/backoffice-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewLogger_ParsesLevel(t *testing.T) {
	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "warn", Format: "json"},
		&config.AppConfig{Name: "test", Environment: "development"},
	)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
}

func TestNewLogger_InvalidLevelDefaultsToInfo(t *testing.T) {
	log, err := logger.NewLogger(
		&config.LoggingConfig{Level: "loud"},
		&config.AppConfig{Name: "test", Environment: "development"},
	)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestWithCase_AddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger.WithCase(zap.New(core), "abc", "CASO-2026-0001").Info("liquidated")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "abc", fields["case_id"])
	assert.Equal(t, "CASO-2026-0001", fields["case_number"])
}
