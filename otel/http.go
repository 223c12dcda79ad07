package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/octabyte/becas-client"

// StartHTTPSpan opens a client span for one API operation. The returned
// finish function records the outcome and ends the span.
func StartHTTPSpan(ctx context.Context, resource, operation, method, url string) (context.Context, func(statusCode int, err error)) {
	ctx, span := otel.Tracer(tracerName).Start(ctx,
		fmt.Sprintf("HTTP.%s.%s", resource, operation),
		trace.WithSpanKind(trace.SpanKindClient),
	)

	span.SetAttributes(
		semconv.HTTPRequestMethodKey.String(method),
		semconv.URLFull(url),
		attribute.String("api.resource", resource),
		attribute.String("api.operation", operation),
	)

	return ctx, func(statusCode int, err error) {
		defer span.End()

		if statusCode > 0 {
			span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(statusCode))
		}

		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case statusCode >= 400:
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", statusCode))
		default:
			span.SetStatus(codes.Ok, "success")
		}
	}
}
