package ratelimit

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"batch-sender/pkg/errno"
	"batch-sender/pkg/logger"
	"batch-sender/pkg/monitor"
)

// Limiter 限流器接口
type Limiter interface {
	// Allow 判断 key 本次请求是否放行
	Allow(ctx context.Context, key string) (bool, error)
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
// 限流器自身出错时放行 (fail-open)，只记录日志
func Middleware(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("限流器异常，放行请求", zap.String("ip", c.ClientIP()), zap.Error(err))
			c.Next()
			return
		}
		if !ok {
			if monitor.Business != nil {
				monitor.Business.RateLimitedTotal.Inc()
			}
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": errno.ErrTooManyRequests.Message})
			return
		}
		c.Next()
	}
}
