package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/easayliu/alist-filemanager/internal/application/container"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/metrics"
	"github.com/easayliu/alist-filemanager/internal/interfaces/http/handlers"
	"github.com/easayliu/alist-filemanager/internal/interfaces/http/middleware"
	"github.com/easayliu/alist-filemanager/web"
)

// RoutesConfig 路由配置
type RoutesConfig struct {
	container *container.ServiceContainer
}

// NewRoutesConfig 创建路由配置
func NewRoutesConfig(c *container.ServiceContainer) *RoutesConfig {
	return &RoutesConfig{
		container: c,
	}
}

// SetupRoutes 注册文件管理页面、API、指标和文档路由
func (rc *RoutesConfig) SetupRoutes(router *gin.Engine) {
	cfg := rc.container.GetConfig()

	// 文件管理页面
	fm := router.Group(cfg.Server.MountPath())
	{
		fm.GET("/", handlers.Browse)
		fm.GET("/detail/", handlers.Detail)
		fm.GET("/upload/", handlers.UploadForm)
		fm.POST("/upload/file/",
			middleware.RateLimitMiddleware(rc.container.GetUploadLimiter()),
			handlers.UploadFile)
	}

	// API 路由组
	api := router.Group("/api/v1")
	{
		// 健康检查
		api.GET("/health", handlers.HealthCheck)
	}

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}

	// Swagger文档路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// SetupRoutesWithContainer 使用ServiceContainer创建完整的路由
func SetupRoutesWithContainer(c *container.ServiceContainer) (*gin.Engine, error) {
	tmpl, err := web.ParseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// 全局中间件
	router.Use(middleware.RecoverMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.ContainerMiddleware(c))
	router.Use(middleware.ErrorHandlerMiddleware())

	NewRoutesConfig(c).SetupRoutes(router)
	return router, nil
}
