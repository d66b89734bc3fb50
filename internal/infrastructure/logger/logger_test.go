package logger

import (
	"context"
	"testing"

	"github.com/stockroom/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

func TestNew(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		l := New(config.LogConfig{Level: "debug", Format: "json", Output: "stdout"})
		require.NotNil(t, l)
		assert.True(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("unknown level defaults to info", func(t *testing.T) {
		l := New(config.LogConfig{Level: "bogus", Format: "console", Output: "stdout"})
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	})
}

func TestContextHelpers(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		base := zap.NewNop()
		ctx, enriched := WithRequestID(context.Background(), base, "req-123")
		assert.Equal(t, "req-123", GetRequestID(ctx))
		assert.Same(t, enriched, FromContext(ctx))
	})

	t.Run("missing values", func(t *testing.T) {
		ctx := context.Background()
		assert.Empty(t, GetRequestID(ctx))
		assert.Empty(t, GetUserID(ctx))
		assert.NotNil(t, FromContext(ctx))
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("anything"))
}
