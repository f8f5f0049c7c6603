package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/spf13/afero"

	"github.com/easayliu/alist-filemanager/internal/infrastructure/storage"
	"github.com/easayliu/alist-filemanager/pkg/logger"
)

const (
	tempPattern = storage.TempPrefix + "*" + storage.TempSuffix

	maxClaimAttempts = 100
)

// Storage 本地文件系统后端,所有访问都限制在根目录内
type Storage struct {
	fs        afero.Fs
	overwrite bool
}

// New 以 root 为根目录创建后端,目录不存在时自动创建
func New(root string, overwrite bool) (*Storage, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create media root %s: %w", root, err)
	}
	return NewWithFs(afero.NewBasePathFs(osFs, root), overwrite), nil
}

// NewWithFs 使用已经限定好根目录的文件系统,测试中传入 MemMapFs
func NewWithFs(fsys afero.Fs, overwrite bool) *Storage {
	return &Storage{fs: fsys, overwrite: overwrite}
}

func (s *Storage) Type() string {
	return "local"
}

// fsPath 把已规范化的相对路径转换为 afero 路径
func fsPath(p string) string {
	return "/" + p
}

// clean 拒绝越过根目录的路径
func clean(op, p string) (string, error) {
	cleaned, err := storage.CleanPath(p)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return cleaned, nil
}

func mapErr(op, p string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s %q: %w", op, p, storage.ErrNotFound)
	default:
		return fmt.Errorf("%s %q: %w", op, p, err)
	}
}

func (s *Storage) ListDir(ctx context.Context, p string) ([]string, []string, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	p, err := clean("list", p)
	if err != nil {
		return nil, nil, err
	}

	info, err := s.fs.Stat(fsPath(p))
	if err != nil {
		return nil, nil, mapErr("list", p, err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("list %q: %w", p, storage.ErrNotDirectory)
	}

	dir, err := s.fs.Open(fsPath(p))
	if err != nil {
		return nil, nil, mapErr("list", p, err)
	}
	defer dir.Close()

	entries, err := dir.Readdir(-1)
	if err != nil {
		return nil, nil, mapErr("list", p, err)
	}

	dirs := make([]string, 0, len(entries))
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch {
		case entry.IsDir():
			dirs = append(dirs, entry.Name())
		case storage.IsTempName(entry.Name()):
			// 未完成的上传
		default:
			files = append(files, entry.Name())
		}
	}
	return dirs, files, nil
}

func (s *Storage) Size(ctx context.Context, p string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	p, err := clean("size", p)
	if err != nil {
		return 0, err
	}
	info, err := s.fs.Stat(fsPath(p))
	if err != nil {
		return 0, mapErr("size", p, err)
	}
	return info.Size(), nil
}

func (s *Storage) ModifiedTime(ctx context.Context, p string) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}
	p, err := clean("modified_time", p)
	if err != nil {
		return time.Time{}, err
	}
	info, err := s.fs.Stat(fsPath(p))
	if err != nil {
		return time.Time{}, mapErr("modified_time", p, err)
	}
	return info.ModTime(), nil
}

// claim 以 O_EXCL 创建空文件占住目标名,名称已被占用时换用带后缀的名称
func (s *Storage) claim(p string) (string, error) {
	candidate := p
	for i := 0; i < maxClaimAttempts; i++ {
		f, err := s.fs.OpenFile(fsPath(candidate), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			return candidate, f.Close()
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
		candidate = storage.SuffixedName(p)
	}
	return "", fmt.Errorf("no free name for %s after %d attempts", p, maxClaimAttempts)
}

// Save 先写入同目录下的临时文件再重命名,读者不会看到写了一半的文件
func (s *Storage) Save(ctx context.Context, p string, content io.Reader) (string, error) {
	p, err := clean("save", p)
	if err != nil {
		return "", err
	}
	dir := path.Dir(fsPath(p))
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return "", mapErr("save", p, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, tempPattern)
	if err != nil {
		return "", mapErr("save", p, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		if rmErr := s.fs.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			logger.Warn("删除临时文件失败", "path", tmpName, "error", rmErr)
		}
	}

	written, err := io.Copy(tmp, storage.ContextReader(ctx, content))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		cleanup()
		return "", mapErr("save", p, err)
	}

	target := p
	if !s.overwrite {
		target, err = s.claim(p)
		if err != nil {
			cleanup()
			return "", mapErr("save", p, err)
		}
	}

	// 覆盖占位文件,rename 在同一目录内是原子的
	if err := s.fs.Rename(tmpName, fsPath(target)); err != nil {
		cleanup()
		if !s.overwrite {
			if rmErr := s.fs.Remove(fsPath(target)); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				logger.Warn("删除占位文件失败", "path", target, "error", rmErr)
			}
		}
		return "", mapErr("save", target, err)
	}

	logger.Debug("文件已保存", "path", target, "bytes", written)
	return path.Base(target), nil
}

// SweepTemp 删除早于 maxAge 的临时上传文件
func (s *Storage) SweepTemp(ctx context.Context, maxAge time.Duration) (int, error) {
	cutoff := time.Now().Add(-maxAge)
	removed := 0

	err := afero.Walk(s.fs, "/", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() || !storage.IsTempName(info.Name()) || info.ModTime().After(cutoff) {
			return nil
		}
		if err := s.fs.Remove(p); err != nil {
			logger.Warn("清理临时文件失败", "path", p, "error", err)
			return nil
		}
		removed++
		return nil
	})
	if err != nil {
		return removed, fmt.Errorf("sweep temp files: %w", err)
	}
	return removed, nil
}
