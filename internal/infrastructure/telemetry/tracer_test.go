package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mcpfinanceiro/backend/internal/infrastructure/telemetry"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	cfg := telemetry.Config{
		Enabled:     false,
		ServiceName: "mcpfinanceiro",
	}

	tp, err := telemetry.NewTracerProvider(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())

	// Shutdown on a disabled provider is a no-op.
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestNewTracerProvider_Enabled(t *testing.T) {
	cfg := telemetry.Config{
		Enabled:           true,
		CollectorEndpoint: "localhost:4317",
		SamplingRatio:     1.0,
		ServiceName:       "mcpfinanceiro",
		Insecure:          true,
	}

	// The OTLP gRPC exporter connects lazily, so construction succeeds even
	// without a collector listening.
	tp, err := telemetry.NewTracerProvider(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.True(t, tp.IsEnabled())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = tp.Shutdown(ctx)
}

func TestNewTracerProvider_SamplingRatios(t *testing.T) {
	ratios := []float64{0.0, 0.5, 1.0}

	for _, ratio := range ratios {
		cfg := telemetry.Config{
			Enabled:           true,
			CollectorEndpoint: "localhost:4317",
			SamplingRatio:     ratio,
			ServiceName:       "mcpfinanceiro",
			Insecure:          true,
		}

		tp, err := telemetry.NewTracerProvider(context.Background(), cfg, zap.NewNop())
		require.NoError(t, err, "ratio %v", ratio)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		_ = tp.Shutdown(ctx)
		cancel()
	}
}

func TestTracerProvider_Tracer(t *testing.T) {
	t.Run("disabled provider falls back to global", func(t *testing.T) {
		tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{Enabled: false}, zap.NewNop())
		require.NoError(t, err)

		tracer := tp.Tracer("resolution")
		require.NotNil(t, tracer)

		// Spans from the no-op path must still be usable.
		_, span := tracer.Start(context.Background(), "resolution.resolve")
		span.End()
	})

	t.Run("enabled provider returns its own tracer", func(t *testing.T) {
		cfg := telemetry.Config{
			Enabled:           true,
			CollectorEndpoint: "localhost:4317",
			SamplingRatio:     1.0,
			ServiceName:       "mcpfinanceiro",
			Insecure:          true,
		}
		tp, err := telemetry.NewTracerProvider(context.Background(), cfg, zap.NewNop())
		require.NoError(t, err)

		tracer := tp.Tracer("erp")
		require.NotNil(t, tracer)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	})
}

func TestTracerProvider_ForceFlush_Disabled(t *testing.T) {
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)

	assert.NoError(t, tp.ForceFlush(context.Background()))
}
