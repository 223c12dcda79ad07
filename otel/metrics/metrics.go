package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Session lifecycle events.
const (
	EventLogin           = "login"
	EventLogout          = "logout"
	EventRestored        = "restored"
	EventInvalidateError = "invalidate_error"
	EventPersistError    = "persist_error"
)

var (
	apiCallsTotal      metric.Int64Counter
	apiCallDuration    metric.Float64Histogram
	sessionEventsTotal metric.Int64Counter
)

// Init creates the instruments on the global meter provider. Recording
// before Init is a no-op.
func Init(serviceName string) error {
	meter := otel.Meter(serviceName)

	var err error

	apiCallsTotal, err = meter.Int64Counter(
		"api_calls_total",
		metric.WithDescription("Total number of scholarship API calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create api_calls_total counter: %w", err)
	}

	apiCallDuration, err = meter.Float64Histogram(
		"api_call_duration_seconds",
		metric.WithDescription("Scholarship API call duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create api_call_duration_seconds histogram: %w", err)
	}

	sessionEventsTotal, err = meter.Int64Counter(
		"session_events_total",
		metric.WithDescription("Session lifecycle events"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return fmt.Errorf("failed to create session_events_total counter: %w", err)
	}

	return nil
}

// RecordAPICall records one API operation. statusCode is 0 for transport errors.
func RecordAPICall(ctx context.Context, resource, operation string, statusCode int, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("api.resource", resource),
		attribute.String("api.operation", operation),
		attribute.Int("http.status_code", statusCode),
		attribute.Bool("success", err == nil && statusCode > 0 && statusCode < 400),
	)

	if apiCallsTotal != nil {
		apiCallsTotal.Add(ctx, 1, attrs)
	}
	if apiCallDuration != nil {
		apiCallDuration.Record(ctx, duration.Seconds(), attrs)
	}
}

func RecordSessionEvent(ctx context.Context, event string) {
	if sessionEventsTotal != nil {
		sessionEventsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("event", event)))
	}
}
