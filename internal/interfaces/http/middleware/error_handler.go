package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/easayliu/alist-filemanager/internal/shared/errors"
	"github.com/easayliu/alist-filemanager/pkg/logger"
	httputil "github.com/easayliu/alist-filemanager/pkg/utils/http"
)

// ErrorHandlerMiddleware 统一错误处理中间件
// 捕获handler中通过 c.Error 设置的错误,转换为合适的HTTP响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var serviceErr *apperrors.ServiceError
		if errors.As(err, &serviceErr) {
			httputil.ErrorWithDetails(c, mapErrorCodeToHTTPStatus(serviceErr.Code),
				string(serviceErr.Code), serviceErr.Message, serviceErr.Details)
			return
		}

		// 未知错误,不把内部信息暴露给客户端
		logger.Error("未处理的请求错误", "path", c.Request.URL.Path, "error", err)
		httputil.ErrorWithStatus(c, http.StatusInternalServerError,
			string(apperrors.ErrorCodeInternalError), "Internal server error")
	}
}

// mapErrorCodeToHTTPStatus 将业务错误码映射到HTTP状态码
func mapErrorCodeToHTTPStatus(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrorCodeInvalidRequest,
		apperrors.ErrorCodeInvalidPath,
		apperrors.ErrorCodeInvalidFilename:
		return http.StatusBadRequest
	case apperrors.ErrorCodeUnsupportedMediaType:
		return http.StatusUnsupportedMediaType
	case apperrors.ErrorCodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case apperrors.ErrorCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		// 存储失败(包括文件不存在)统一按服务端错误处理
		return http.StatusInternalServerError
	}
}

// RecoverMiddleware 恢复中间件 - 捕获panic并转换为500错误
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("请求处理发生panic",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"panic", r,
					"stack", string(debug.Stack()))
				httputil.ErrorWithStatus(c, http.StatusInternalServerError,
					string(apperrors.ErrorCodeInternalError), "Internal server error")
			}
		}()
		c.Next()
	}
}
