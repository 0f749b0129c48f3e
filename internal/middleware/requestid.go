package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"stayprice/pkg/logger"
)

// IDSource mints request-scoped correlation ids.
type IDSource interface {
	RequestID() string
}

// RequestLogger tags every request with a correlation id and writes one
// access-log line when it completes, including the otel trace id when a
// span is active.
func RequestLogger(ids IDSource, log logger.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := ids.RequestID()
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		c.Next()

		fields := []logger.Field{
			{Key: "request_id", Value: requestID},
			{Key: "method", Value: c.Request.Method},
			{Key: "path", Value: c.Request.URL.Path},
			{Key: "status", Value: c.Writer.Status()},
			{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
		}

		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			fields = append(fields, logger.Field{Key: "trace_id", Value: span.SpanContext().TraceID().String()})
		}

		log.Info("request completed", fields...)
	}
}
