// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// ResolutionMetrics tracks the resolution engine and its outbound
// integrations: resolution outcomes, ERP round trips and chat dispatch
// failures. The ERP and dispatch hooks satisfy the observer interfaces of
// the erp and messaging packages.
type ResolutionMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	// Counter metrics (monotonically increasing)
	resolutionTotal      *Counter
	dispatchFailureTotal *Counter

	// Histogram metrics (distributions)
	erpRequestDuration *Histogram
}

// ResolutionMetricsConfig holds configuration for resolution metrics.
type ResolutionMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewResolutionMetrics creates a new ResolutionMetrics instance.
func NewResolutionMetrics(cfg ResolutionMetricsConfig) (*ResolutionMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rm := &ResolutionMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error

	rm.resolutionTotal, err = NewCounter(
		cfg.Meter,
		"resolution_total",
		"Total number of boleto resolutions by channel and reason",
		"{resolution}",
	)
	if err != nil {
		return nil, err
	}

	rm.dispatchFailureTotal, err = NewCounter(
		cfg.Meter,
		"dispatch_failure_total",
		"Total number of failed chat media dispatches by kind",
		"{dispatch}",
	)
	if err != nil {
		return nil, err
	}

	rm.erpRequestDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "erp_request_duration_seconds",
		Description: "Duration of SGA ERP requests by operation",
		Unit:        "s",
		Boundaries:  ERPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return rm, nil
}

// RecordResolution counts one completed resolution.
func (rm *ResolutionMetrics) RecordResolution(ctx context.Context, channel, reason string) {
	rm.resolutionTotal.Inc(ctx,
		AttrChannel.String(channel),
		AttrReason.String(reason),
	)
}

// ObserveERPRequest records the duration of one ERP round trip. Failed
// requests are recorded too so slow failures stay visible.
func (rm *ResolutionMetrics) ObserveERPRequest(ctx context.Context, operation string, elapsed time.Duration, err error) {
	rm.erpRequestDuration.RecordDuration(ctx, elapsed,
		AttrERPOperation.String(operation),
	)
	if err != nil {
		rm.logger.Debug("ERP request failed",
			zap.String("operation", operation),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
	}
}

// ObserveDispatchFailure counts one failed chat dispatch.
func (rm *ResolutionMetrics) ObserveDispatchFailure(ctx context.Context, kind string) {
	rm.dispatchFailureTotal.Inc(ctx,
		AttrDispatchKind.String(kind),
	)
}

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewResolutionMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}
