package observability

import (
	"context"
	"errors"
	"testing"

	"bridgeforum/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracing_Disabled(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitTracing_EnabledRecordsSpans(t *testing.T) {
	cfg := TracingConfigFrom(&config.Config{
		Env:                 "test",
		TracingEnabled:      true,
		TracingExporter:     "none",
		TracingSamplerRatio: 1,
	}, "test")
	assert.Equal(t, ServiceName, cfg.ServiceName)

	shutdown, err := InitTracing(cfg)
	require.NoError(t, err)
	defer func() { _ = shutdown(context.Background()) }()

	span, ctx := StartJob(context.Background(), "reminders")
	require.NotNil(t, ctx)
	RecordJobResult(ctx, map[string]int{"sent": 3, "failed": 1})
	span.SetError(errors.New("smtp down"))
	assert.NotEmpty(t, span.TraceID())
	span.End()
}

func TestInitTracing_UnknownExporter(t *testing.T) {
	_, err := InitTracing(TracingConfig{Enabled: true, Exporter: "zipkin"})
	assert.Error(t, err)
}

func TestNewSampler(t *testing.T) {
	assert.Contains(t, newSampler(1).Description(), "AlwaysOn")
	assert.Contains(t, newSampler(0).Description(), "AlwaysOff")
	assert.Contains(t, newSampler(0.5).Description(), "TraceIDRatioBased")
}
