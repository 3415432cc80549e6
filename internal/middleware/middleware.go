package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"exam-prep-assistant/pkg/log"
)

// TraceIDHeader carries the request trace id in and out.
const TraceIDHeader = "X-Trace-Id"

// DefaultAllowedOrigin is the local frontend.
const DefaultAllowedOrigin = "http://localhost:3000"

// TraceID reuses the request's trace id (context, then header) or mints one, and
// stores it in the request context.
func (m Middleware) TraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := log.TraceID(c.Request.Context())
		if id == "" {
			id = c.GetHeader(TraceIDHeader)
		}
		if id == "" {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(log.WithTraceID(c.Request.Context(), id))
		c.Header(TraceIDHeader, id)
		c.Next()
	}
}

// CORS allows the configured origins with credentials and any method or header.
func (m Middleware) CORS() gin.HandlerFunc {
	origins := m.allowedOrigins
	if len(origins) == 0 {
		origins = []string{DefaultAllowedOrigin}
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{TraceIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// RequestLog writes one access line per request through the service logger.
// Register it after TraceID so the line carries the trace id.
func (m Middleware) RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ctx := c.Request.Context()
		status := c.Writer.Status()
		switch {
		case status >= 500:
			m.l.Errorf(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		case status >= 400:
			m.l.Warnf(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		default:
			m.l.Infof(ctx, "%s %s %d %s", c.Request.Method, c.Request.URL.Path, status, time.Since(start))
		}
	}
}
