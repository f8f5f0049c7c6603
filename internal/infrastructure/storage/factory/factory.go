package factory

import (
	"context"
	"fmt"

	alistclient "github.com/easayliu/alist-filemanager/internal/infrastructure/alist"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/config"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/storage"
	alistbackend "github.com/easayliu/alist-filemanager/internal/infrastructure/storage/alist"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/storage/local"
	s3backend "github.com/easayliu/alist-filemanager/internal/infrastructure/storage/s3"
	"github.com/easayliu/alist-filemanager/pkg/logger"
)

// New 按 storage.type 创建后端,返回的后端已带耗时指标
func New(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	overwrite := cfg.Upload.Overwrite

	var backend storage.Storage
	switch cfg.Storage.Type {
	case "local":
		s, err := local.New(cfg.Media.Root, overwrite)
		if err != nil {
			return nil, err
		}
		backend = s
	case "alist":
		a := cfg.Storage.Alist
		client := alistclient.NewClient(alistclient.Config{
			BaseURL:  a.BaseURL,
			Username: a.Username,
			Password: a.Password,
			Token:    a.Token,
			QPS:      a.QPS,
		})
		backend = alistbackend.New(client, a.RootPath, overwrite)
	case "s3":
		c := cfg.Storage.S3
		s, err := s3backend.New(ctx, s3backend.Config{
			Endpoint:  c.Endpoint,
			Bucket:    c.Bucket,
			Region:    c.Region,
			AccessKey: c.AccessKey,
			SecretKey: c.SecretKey,
			Prefix:    c.Prefix,
			Overwrite: overwrite,
		})
		if err != nil {
			return nil, err
		}
		backend = s
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}

	logger.Info("存储后端已初始化", "type", backend.Type())
	return storage.WithMetrics(backend), nil
}
