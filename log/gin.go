package log

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// GinLogger returns a Gin middleware that logs requests using zerolog.
// Successful job-status polls log at debug so a browser polling every few
// seconds does not drown the request log.
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		method := c.Request.Method
		clientIP := c.ClientIP()
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		if raw != "" {
			path = path + "?" + raw
		}

		event := Info()
		switch {
		case status >= 500:
			event = Error()
		case status >= 400:
			event = Warn()
		case isJobPoll(method, path):
			event = Debug()
		}

		event.
			Str("method", method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", clientIP)

		if errorMessage != "" {
			event.Str("error", errorMessage)
		}

		event.Msg("request")
	}
}

func isJobPoll(method, path string) bool {
	return method == "GET" && strings.HasPrefix(path, "/api/jobs/")
}
