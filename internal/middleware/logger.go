package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextKeyRequestID is the gin context key under which the request id is
// stored. Handlers use it to tag log lines emitted mid-request.
const ContextKeyRequestID = "request_id"

// RequestIDHeader is echoed back on every response so clients can correlate.
const RequestIDHeader = "X-Request-ID"

// RequestID accepts a caller-supplied X-Request-ID or mints a fresh UUID,
// stores it in the context, and mirrors it on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// Logger writes one access-log line per request: request id, client IP,
// method, path (with query), status, response size, and latency. Errors
// attached to the context by handlers are appended to the same line.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		requestID := c.GetString(ContextKeyRequestID)
		if msg := c.Errors.ByType(gin.ErrorTypePrivate).String(); msg != "" {
			log.Printf("[%s] %s %s %s %d %dB %s | %s",
				requestID, c.ClientIP(), c.Request.Method, path,
				c.Writer.Status(), c.Writer.Size(), time.Since(start), msg)
			return
		}
		log.Printf("[%s] %s %s %s %d %dB %s",
			requestID, c.ClientIP(), c.Request.Method, path,
			c.Writer.Status(), c.Writer.Size(), time.Since(start))
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery() gin.HandlerFunc {
	return gin.Recovery()
}
