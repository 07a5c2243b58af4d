// Package middleware provides HTTP middleware for the boleto resolution service.
package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// MaxRequestIDLength caps request IDs copied from headers onto spans.
	MaxRequestIDLength = 128
	// MaxClientIDLength caps the X-Client-Id header before UUID validation.
	MaxClientIDLength = 64
)

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// DefaultTracingConfig returns the tracing configuration used when the
// server does not override it.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "mcpfinanceiro",
		Enabled:     true,
	}
}

// Tracing returns the tracing middleware with default configuration.
func Tracing() gin.HandlerFunc {
	return TracingWithConfig(DefaultTracingConfig())
}

// TracingWithConfig wraps otelgin and enriches each server span with the
// request ID and the tenant client ID. Span names follow otelgin's
// "METHOD route" form, e.g. "GET /api/v1/clients/:id", so webhook and
// admin traffic stay separable in the trace backend.
func TracingWithConfig(cfg TracingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	baseMiddleware := otelgin.Middleware(cfg.ServiceName)

	return func(c *gin.Context) {
		baseMiddleware(c)

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		if requestID := spanRequestID(c); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if clientID := getClientID(c); clientID != "" {
			span.SetAttributes(attribute.String("client_id", clientID))
		}
	}
}

// spanRequestID returns the request ID for span attributes, truncated so
// an oversized header cannot bloat exported spans.
func spanRequestID(c *gin.Context) string {
	id := getRequestIDFromContext(c)
	if len(id) > MaxRequestIDLength {
		return id[:MaxRequestIDLength]
	}
	return id
}

// getClientID returns the X-Client-Id header when it is a well-formed
// UUID, and empty otherwise. Chat providers forward the tenant's ID in
// this header; anything else is treated as absent rather than copied
// into span and metric attributes.
func getClientID(c *gin.Context) string {
	headerClientID := c.GetHeader("X-Client-Id")
	if headerClientID != "" && isValidClientID(headerClientID) {
		return headerClientID
	}
	return ""
}

func isValidClientID(clientID string) bool {
	if len(clientID) > MaxClientIDLength {
		return false
	}
	return uuidRegex.MatchString(clientID)
}

// SpanErrorMarker marks the active span as errored for 4xx and 5xx
// responses. Register it after Tracing so the span already exists.
func SpanErrorMarker() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}

		statusCode := c.Writer.Status()
		if statusCode < http.StatusBadRequest {
			return
		}

		message := "Client Error"
		switch {
		case statusCode >= http.StatusInternalServerError:
			message = "Internal Server Error"
		case statusCode == http.StatusNotFound:
			message = "Not Found"
		}

		span.SetStatus(codes.Error, message)
		span.SetAttributes(attribute.Int("http.status_code", statusCode))
	}
}
