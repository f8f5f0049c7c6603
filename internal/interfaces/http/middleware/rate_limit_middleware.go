package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easayliu/alist-filemanager/internal/infrastructure/metrics"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/ratelimit"
	apperrors "github.com/easayliu/alist-filemanager/internal/shared/errors"
	"github.com/easayliu/alist-filemanager/pkg/logger"
	httputil "github.com/easayliu/alist-filemanager/pkg/utils/http"
)

// RateLimitMiddleware 超过限流时返回 429
func RateLimitMiddleware(limiter *ratelimit.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter.Allow() {
			c.Next()
			return
		}

		path := c.FullPath()
		metrics.RecordRateLimited(path)
		logger.Warn("请求被限流", "path", path, "client_ip", c.ClientIP(), "qps", limiter.QPS())
		httputil.ErrorWithDetails(c, http.StatusTooManyRequests,
			string(apperrors.ErrorCodeRateLimited), "too many requests",
			map[string]interface{}{"qps": limiter.QPS()})
	}
}
