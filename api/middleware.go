package api

import (
	"strconv"
	"time"

	"github.com/Urjashee/response-formatter/api/responses"
	"github.com/Urjashee/response-formatter/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// RequestID propagates the caller's request ID or assigns a new one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Metrics records HTTP request counts, durations and envelope status tags for Prometheus
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		code := c.Writer.Status()

		metrics.HTTPRequestsTotal.WithLabelValues(path, method, strconv.Itoa(code)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(path, method).Observe(time.Since(start).Seconds())

		if v, ok := c.Get(responses.GinStatusKey); ok {
			if status, ok := v.(responses.Status); ok {
				metrics.EnvelopesTotal.WithLabelValues(status.String()).Inc()
			}
		}
	}
}
