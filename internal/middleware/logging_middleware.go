package middleware

import (
	"fmt"
	"time"

	"github.com/TRK06/feedback-system/internal/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestLogger logs each request once it completes and records its latency
func RequestLogger(lgr zerolog.Logger, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()

		if m != nil {
			m.RequestDuration.
				WithLabelValues(route, c.Request.Method, fmt.Sprintf("%dxx", status/100)).
				Observe(latency.Seconds())
		}

		var ev *zerolog.Event
		switch {
		case status >= 500:
			ev = lgr.Error()
		case status >= 400:
			ev = lgr.Warn()
		default:
			ev = lgr.Info()
		}
		if id, ok := GetIdentity(c); ok {
			ev = ev.Str("studentID", id.StudentID)
		}
		if admin := AdminUsername(c); admin != "" {
			ev = ev.Str("admin", admin)
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", route).
			Int("status", status).
			Dur("latency", latency).
			Str("clientIP", c.ClientIP()).
			Msg("Request handled")
	}
}
