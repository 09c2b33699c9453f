package httpapi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type requestIDKey struct{}

// RequestIDMiddleware generalizes the teacher's request-id middleware:
// reads X-Request-Id if present, otherwise mints one, stores it on both
// the gin.Context and the request's context.Context, echoes it in the
// response header, and logs one line per request. The same id surfaces
// again on any error response this request produces — writeError
// (errors.go) reads it back out of the request context and stamps it into
// the JSON error envelope's requestId field, so a client reporting a 4xx/5xx
// can hand back the exact id this log line carries.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-Id")
		if strings.TrimSpace(rid) == "" {
			rid = newRequestID()
		}
		c.Set("request_id", rid)
		ctx := context.WithValue(c.Request.Context(), requestIDKey{}, rid)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set("X-Request-Id", rid)

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		log.Printf("draftsvc: request_id=%s method=%s path=%s status=%d latency=%s",
			rid, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), latency)
	}
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

func newRequestID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err == nil {
		return hex.EncodeToString(b)
	}
	return time.Now().Format("20060102T150405.000000000")
}

// InternalTokenMiddleware enforces spec §6.1's commit authentication:
// header X-Internal-Token must equal the configured shared secret.
func InternalTokenMiddleware(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Internal-Token")
		if expected == "" || token != expected {
			writeError(c, 401, "Unauthorized", "missing or invalid internal token", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
