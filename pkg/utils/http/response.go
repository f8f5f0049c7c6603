package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 错误响应体
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Success 成功响应,data 原样序列化
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// ErrorWithStatus 带HTTP状态码的错误响应
func ErrorWithStatus(c *gin.Context, httpStatus int, code, message string) {
	ErrorWithDetails(c, httpStatus, code, message, nil)
}

// ErrorWithDetails 带详情的错误响应,并中止后续处理
func ErrorWithDetails(c *gin.Context, httpStatus int, code, message string, details map[string]interface{}) {
	c.AbortWithStatusJSON(httpStatus, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// Text 纯文本响应,并中止后续处理
func Text(c *gin.Context, httpStatus int, message string) {
	c.Abort()
	c.String(httpStatus, message)
}
