package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContext(t *testing.T) {
	logger := zap.NewNop()
	ctx := WithContext(context.Background(), logger)

	got := FromContext(ctx)
	assert.Same(t, logger, got)
}

func TestFromContext_ReturnsNopWhenMissing(t *testing.T) {
	got := FromContext(context.Background())
	assert.NotNil(t, got)
}

func TestWithRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), logger, "req-123")

	assert.Equal(t, "req-123", GetRequestID(ctx))

	enriched.Info("test message")
	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "req-123", logs[0].ContextMap()["request_id"])
}

func TestWithUserID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	ctx, enriched := WithUserID(context.Background(), logger, "user-42")

	assert.Equal(t, "user-42", GetUserID(ctx))

	enriched.Info("test message")
	logs := recorded.All()
	require.Len(t, logs, 1)
	assert.Equal(t, "user-42", logs[0].ContextMap()["user_id"])
}

func TestContextLogger(t *testing.T) {
	t.Run("L extracts logger and context fields", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		logger := zap.New(core)

		ctx := WithContext(context.Background(), logger)
		ctx = context.WithValue(ctx, RequestIDKey, "req-9")
		ctx = context.WithValue(ctx, UserIDKey, "user-7")

		L(ctx).Info("hello")

		logs := recorded.All()
		require.Len(t, logs, 1)
		fields := logs[0].ContextMap()
		assert.Equal(t, "req-9", fields["request_id"])
		assert.Equal(t, "user-7", fields["user_id"])
	})

	t.Run("WithLogger uses provided logger", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		logger := zap.New(core)

		WithLogger(context.Background(), logger).Warn("careful")

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, zapcore.WarnLevel, logs[0].Level)
	})

	t.Run("With adds persistent fields", func(t *testing.T) {
		core, recorded := observer.New(zapcore.DebugLevel)
		logger := zap.New(core)

		cl := WithLogger(context.Background(), logger).With(zap.String("component", "ingest"))
		cl.Debug("processing")

		logs := recorded.All()
		require.Len(t, logs, 1)
		assert.Equal(t, "ingest", logs[0].ContextMap()["component"])
	})
}
