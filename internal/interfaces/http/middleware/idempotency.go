package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"brickvest.backend/pkg/redis"
	"github.com/gin-gonic/gin"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time the lock is held while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long the captured response is kept
	RetentionDuration = 24 * time.Hour
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response when a request with
// the same Idempotency-Key is retried. Double-charging an investor on a
// client retry is the case this exists for.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		// Scope the key per user so keys cannot collide across accounts.
		userID, _ := GetUserID(c)
		storageKey := fmt.Sprintf("idempotency:%s:%s", userID, key)
		ctx := c.Request.Context()

		val, err := redisGet(ctx, storageKey)
		if err == nil {
			if val == "processing" {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"success": false,
					"error":   gin.H{"code": "IDEMPOTENCY_CONFLICT", "message": "request already in progress"},
				})
				return
			}

			status, body := splitStoredResponse(val)
			c.Header("Content-Type", "application/json")
			c.Header("X-Idempotency-Hit", "true")
			c.String(status, body)
			c.Abort()
			return
		} else if err.Error() != "redis: nil" {
			// Redis unavailable: process the request rather than block it.
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, "processing", LockDuration)
		if err != nil || !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"success": false,
				"error":   gin.H{"code": "IDEMPOTENCY_CONFLICT", "message": "request already in progress"},
			})
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		// Only successful outcomes are replayable. A failed attempt drops
		// the lock so the client can retry.
		if status := c.Writer.Status(); status >= 200 && status < 300 {
			stored := fmt.Sprintf("%d\n%s", status, w.body.String())
			_ = redisSet(ctx, storageKey, stored, RetentionDuration)
		} else {
			_ = redisDel(ctx, storageKey)
		}
	}
}

// splitStoredResponse unpacks "<status>\n<body>". Values written before the
// status was recorded replay as 200.
func splitStoredResponse(val string) (int, string) {
	if i := strings.IndexByte(val, '\n'); i > 0 {
		if status, err := strconv.Atoi(val[:i]); err == nil {
			return status, val[i+1:]
		}
	}
	return http.StatusOK, val
}
