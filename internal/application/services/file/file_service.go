package file

import (
	"errors"

	"github.com/easayliu/alist-filemanager/internal/application/contracts"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/config"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/filesystem"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/storage"
	apperrors "github.com/easayliu/alist-filemanager/internal/shared/errors"
	"github.com/easayliu/alist-filemanager/pkg/logger"
)

// AppFileService 文件管理用例编排:浏览、详情、上传
type AppFileService struct {
	storage        storage.Storage
	resolver       Resolver
	validator      *filesystem.PathValidatorService
	maxUploadBytes int64
}

var _ contracts.FileManagerService = (*AppFileService)(nil)

// NewAppFileService 创建文件服务
func NewAppFileService(cfg *config.Config, store storage.Storage) *AppFileService {
	return &AppFileService{
		storage:        store,
		resolver:       Resolver{MediaRoot: cfg.Media.Root},
		validator:      filesystem.NewPathValidatorService(cfg.Upload),
		maxUploadBytes: cfg.Upload.MaxUploadBytes(),
	}
}

// resolve 解析请求路径,失败时返回 INVALID_PATH
func (s *AppFileService) resolve(raw string) (ResolvedPath, error) {
	resolved, err := s.resolver.Resolve(raw)
	if err != nil {
		logger.Warn("拒绝非法路径", "path", raw, "error", err)
		return ResolvedPath{}, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInvalidPath, err.Error(), err)
	}
	return resolved, nil
}

// storageError 存储失败统一包装为 STORAGE_ERROR
func storageError(op, p string, err error) error {
	logger.Error("存储操作失败", "op", op, "path", p, "error", err)

	details := map[string]interface{}{"op": op, "path": p}
	if errors.Is(err, storage.ErrNotFound) {
		details["reason"] = "not_found"
	} else if errors.Is(err, storage.ErrNotDirectory) {
		details["reason"] = "not_directory"
	} else if errors.Is(err, storage.ErrOutsideRoot) {
		details["reason"] = "outside_root"
	}
	return &apperrors.ServiceError{
		Code:    apperrors.ErrorCodeStorage,
		Message: "storage operation failed",
		Details: details,
		Cause:   err,
	}
}
