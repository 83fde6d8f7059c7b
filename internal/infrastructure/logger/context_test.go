package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	log := zap.NewExample()
	ctx := WithContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestContextValues(t *testing.T) {
	ctx := WithStoreID(WithRequestID(context.Background(), "req-1"), "store-9")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "store-9", GetStoreID(ctx))
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestL_AddsCorrelationFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02},
		SpanID:     trace.SpanID{0x03},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)
	ctx = WithStoreID(WithRequestID(WithContext(ctx, zap.New(core)), "req-1"), "store-9")

	L(ctx).Info("hello")

	logs := recorded.All()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, sc.TraceID().String(), fields["trace_id"])
	assert.Equal(t, sc.SpanID().String(), fields["span_id"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "store-9", fields["store_id"])
}

func TestEnrich_NoFields(t *testing.T) {
	log := zap.NewExample()
	assert.Same(t, log, Enrich(context.Background(), log))
	assert.NotNil(t, Enrich(context.Background(), nil))
}
