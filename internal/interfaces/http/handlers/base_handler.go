package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/easayliu/alist-filemanager/internal/application/container"
	"github.com/easayliu/alist-filemanager/internal/application/contracts"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/config"
	"github.com/easayliu/alist-filemanager/internal/interfaces/http/middleware"
)

// GetContainer 从gin.Context中获取ServiceContainer
// 这个方法假设Container已经通过中间件注入到Context中
func GetContainer(c *gin.Context) *container.ServiceContainer {
	v, exists := c.Get(middleware.ContainerKey)
	if !exists {
		panic("ServiceContainer not found in context. Did you forget to use ContainerMiddleware?")
	}
	return v.(*container.ServiceContainer)
}

// GetConfig 从gin.Context中获取Config
func GetConfig(c *gin.Context) *config.Config {
	return GetContainer(c).GetConfig()
}

// GetFileService 从gin.Context中获取文件服务
func GetFileService(c *gin.Context) contracts.FileManagerService {
	return GetContainer(c).GetFileService()
}
