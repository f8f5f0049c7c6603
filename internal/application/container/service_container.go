package container

import (
	"context"
	"fmt"

	"github.com/easayliu/alist-filemanager/internal/application/contracts"
	"github.com/easayliu/alist-filemanager/internal/application/services/file"
	"github.com/easayliu/alist-filemanager/internal/application/services/task"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/config"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/ratelimit"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/storage"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/storage/factory"
	"github.com/easayliu/alist-filemanager/pkg/logger"
)

// ServiceContainer 服务容器 - 启动时组装一次,之后只读
type ServiceContainer struct {
	config *config.Config

	storage        storage.Storage
	fileService    contracts.FileManagerService
	cleanupService *task.CleanupService
	uploadLimiter  *ratelimit.RateLimiter
}

// NewServiceContainer 根据配置创建存储后端和所有服务
func NewServiceContainer(ctx context.Context, cfg *config.Config) (*ServiceContainer, error) {
	store, err := factory.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage: %w", err)
	}
	return NewServiceContainerWithStorage(cfg, store)
}

// NewServiceContainerWithStorage 使用已有的存储后端创建容器
func NewServiceContainerWithStorage(cfg *config.Config, store storage.Storage) (*ServiceContainer, error) {
	logger.Info("Initializing service container", "storage", store.Type())

	c := &ServiceContainer{
		config:        cfg,
		storage:       store,
		fileService:   file.NewAppFileService(cfg, store),
		uploadLimiter: ratelimit.NewRateLimiter(cfg.Upload.RateLimitQPS),
	}

	if cfg.Upload.Cleanup.Enabled {
		cleanup, err := task.NewCleanupService(cfg.Upload.Cleanup, store)
		if err != nil {
			return nil, err
		}
		c.cleanupService = cleanup
	}

	logger.Info("Service container initialized successfully")
	return c, nil
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetStorage 获取存储后端
func (c *ServiceContainer) GetStorage() storage.Storage {
	return c.storage
}

// GetFileService 获取文件服务实例
func (c *ServiceContainer) GetFileService() contracts.FileManagerService {
	return c.fileService
}

// GetCleanupService 获取清理服务,后端不支持时为 nil
func (c *ServiceContainer) GetCleanupService() *task.CleanupService {
	return c.cleanupService
}

// GetUploadLimiter 获取上传接口限流器
func (c *ServiceContainer) GetUploadLimiter() *ratelimit.RateLimiter {
	return c.uploadLimiter
}

// StorageType 当前存储后端类型
func (c *ServiceContainer) StorageType() string {
	return c.storage.Type()
}

// Start 启动后台任务
func (c *ServiceContainer) Start() error {
	if c.cleanupService == nil {
		return nil
	}
	return c.cleanupService.Start()
}

// Shutdown 关闭服务容器
func (c *ServiceContainer) Shutdown() {
	logger.Info("Shutting down service container")

	if c.cleanupService != nil {
		c.cleanupService.Stop()
	}

	logger.Info("Service container shutdown completed")
}
