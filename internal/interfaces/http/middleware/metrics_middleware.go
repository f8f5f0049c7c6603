package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/easayliu/alist-filemanager/internal/infrastructure/metrics"
)

// MetricsMiddleware 记录请求数和耗时,path 使用路由模板避免标签爆炸
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
