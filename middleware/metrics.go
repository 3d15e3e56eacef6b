package middleware

import (
	"context"
	"time"

	awspkg "github.com/EkeneDeProgram/909ineFoods/pkg/aws"
	"github.com/gin-gonic/gin"
)

// LatencyRecorder is the subset of the CloudWatch client used for HTTP metrics.
type LatencyRecorder interface {
	awspkg.CountRecorder
	RecordLatency(ctx context.Context, metricName string, duration time.Duration, dimensions map[string]string) error
	IsEnabled() bool
}

// MetricsMiddleware records request count, latency and error counts per
// route template.
func MetricsMiddleware(metrics LatencyRecorder, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics == nil || !metrics.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		dimensions := map[string]string{
			"Service": serviceName,
			"Method":  c.Request.Method,
			"Path":    path,
			"Status":  statusCodeToRange(statusCode),
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			_ = metrics.RecordCount(ctx, awspkg.MetricHTTPRequests, dimensions)
			_ = metrics.RecordLatency(ctx, awspkg.MetricHTTPLatency, duration, dimensions)

			if statusCode >= 400 {
				_ = metrics.RecordCount(ctx, awspkg.MetricHTTPErrors, dimensions)
				if statusCode >= 500 {
					_ = metrics.RecordCount(ctx, awspkg.MetricHTTP5xx, dimensions)
				} else {
					_ = metrics.RecordCount(ctx, awspkg.MetricHTTP4xx, dimensions)
				}
			}
		}()
	}
}

func statusCodeToRange(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return "2xx"
	case statusCode >= 300 && statusCode < 400:
		return "3xx"
	case statusCode >= 400 && statusCode < 500:
		return "4xx"
	case statusCode >= 500:
		return "5xx"
	default:
		return "unknown"
	}
}
