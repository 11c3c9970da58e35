package middleware

import (
    "context"
    "log"
    "net/http"
    "time"

    "github.com/gin-gonic/gin"
    "github.com/redis/go-redis/v9"

    "github.com/zaqqye/classroom_backend/internal/models"
)

// SendLimiter throttles message sends per user with a fixed one-minute
// window in Redis. A nil limiter allows everything, so the portal runs
// without a Redis in small deployments.
type SendLimiter struct {
    client *redis.Client
    limit  int
}

func NewSendLimiter(addr, password string, limit int) *SendLimiter {
    if addr == "" {
        return nil
    }
    client := redis.NewClient(&redis.Options{
        Addr:         addr,
        Password:     password,
        DialTimeout:  5 * time.Second,
        ReadTimeout:  3 * time.Second,
        WriteTimeout: 3 * time.Second,
    })
    return &SendLimiter{client: client, limit: limit}
}

func (l *SendLimiter) allow(ctx context.Context, userID string) bool {
    key := "sendlimit:" + userID
    n, err := l.client.Incr(ctx, key).Result()
    if err != nil {
        // Redis down must not block the chat.
        log.Printf("ratelimit: %v", err)
        return true
    }
    if n == 1 {
        l.client.Expire(ctx, key, time.Minute)
    }
    return n <= int64(l.limit)
}

func (l *SendLimiter) Handler() gin.HandlerFunc {
    return func(c *gin.Context) {
        if l == nil {
            c.Next()
            return
        }
        uVal, ok := c.Get("user")
        if !ok {
            c.Next()
            return
        }
        user := uVal.(models.User)
        if !l.allow(c.Request.Context(), user.ID) {
            c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many messages, slow down"})
            return
        }
        c.Next()
    }
}
