package handlers

import (
	"github.com/gin-gonic/gin"

	httputil "github.com/easayliu/alist-filemanager/pkg/utils/http"
)

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Storage string `json:"storage" example:"local"`
}

// HealthCheck 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态,返回当前存储后端类型
// @Tags 健康检查
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/v1/health [get]
func HealthCheck(c *gin.Context) {
	httputil.Success(c, HealthResponse{
		Status:  "ok",
		Storage: GetContainer(c).StorageType(),
	})
}
