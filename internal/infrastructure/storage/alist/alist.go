package alist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	alistclient "github.com/easayliu/alist-filemanager/internal/infrastructure/alist"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/storage"
)

// Storage 通过 AList API 访问挂载的网盘
type Storage struct {
	client    *alistclient.Client
	root      string
	overwrite bool
}

// New 创建 AList 后端,rootPath 为 AList 上对应媒体根目录的路径
func New(client *alistclient.Client, rootPath string, overwrite bool) *Storage {
	return &Storage{
		client:    client,
		root:      path.Join("/", rootPath),
		overwrite: overwrite,
	}
}

func (s *Storage) Type() string {
	return "alist"
}

// remotePath 将相对路径映射到 AList 上,越过根目录时返回 ErrOutsideRoot
func (s *Storage) remotePath(op, p string) (string, error) {
	cleaned, err := storage.CleanPath(p)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return path.Join(s.root, cleaned), nil
}

func mapErr(op, p string, err error) error {
	if errors.Is(err, alistclient.ErrObjectNotFound) {
		return fmt.Errorf("%s %q: %w", op, p, storage.ErrNotFound)
	}
	return fmt.Errorf("%s %q: %w", op, p, err)
}

func (s *Storage) ListDir(ctx context.Context, p string) ([]string, []string, error) {
	remote, err := s.remotePath("list", p)
	if err != nil {
		return nil, nil, err
	}

	info, err := s.client.Get(ctx, remote)
	if err != nil {
		return nil, nil, mapErr("list", p, err)
	}
	if !info.IsDir {
		return nil, nil, fmt.Errorf("list %q: %w", p, storage.ErrNotDirectory)
	}

	items, err := s.client.List(ctx, remote)
	if err != nil {
		return nil, nil, mapErr("list", p, err)
	}

	dirs := make([]string, 0, len(items))
	files := make([]string, 0, len(items))
	for _, item := range items {
		if item.IsDir {
			dirs = append(dirs, item.Name)
		} else {
			files = append(files, item.Name)
		}
	}
	return dirs, files, nil
}

func (s *Storage) Size(ctx context.Context, p string) (int64, error) {
	remote, err := s.remotePath("size", p)
	if err != nil {
		return 0, err
	}
	info, err := s.client.Get(ctx, remote)
	if err != nil {
		return 0, mapErr("size", p, err)
	}
	return info.Size, nil
}

func (s *Storage) ModifiedTime(ctx context.Context, p string) (time.Time, error) {
	remote, err := s.remotePath("modified_time", p)
	if err != nil {
		return time.Time{}, err
	}
	info, err := s.client.Get(ctx, remote)
	if err != nil {
		return time.Time{}, mapErr("modified_time", p, err)
	}
	return info.ModifiedTime(), nil
}

func (s *Storage) exists(ctx context.Context, p string) (bool, error) {
	remote, err := s.remotePath("exists", p)
	if err != nil {
		return false, err
	}
	_, err = s.client.Get(ctx, remote)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, alistclient.ErrObjectNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Save 流式上传,AList 会自动创建缺失的父目录
func (s *Storage) Save(ctx context.Context, p string, content io.Reader) (string, error) {
	if _, err := s.remotePath("save", p); err != nil {
		return "", err
	}
	target := p
	if !s.overwrite {
		var err error
		if target, err = storage.AvailableName(ctx, p, s.exists); err != nil {
			return "", mapErr("save", p, err)
		}
	}

	remote, err := s.remotePath("save", target)
	if err != nil {
		return "", err
	}
	if err := s.client.Put(ctx, remote, content, storage.ReaderSize(content)); err != nil {
		return "", mapErr("save", target, err)
	}
	return path.Base(target), nil
}
