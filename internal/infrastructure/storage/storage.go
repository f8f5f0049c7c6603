package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

var (
	// ErrNotFound 路径不存在
	ErrNotFound = errors.New("storage: path not found")
	// ErrNotDirectory 对文件执行了目录操作
	ErrNotDirectory = errors.New("storage: not a directory")
	// ErrOutsideRoot 路径解析到了根目录之外
	ErrOutsideRoot = errors.New("storage: path outside storage root")
)

// Storage 存储适配器,路径均为相对于后端根目录、以 "/" 分隔的形式
type Storage interface {
	// ListDir 返回目录下的子目录名和文件名,各自保持后端返回的顺序
	ListDir(ctx context.Context, path string) (dirs, files []string, err error)
	// Size 文件字节数
	Size(ctx context.Context, path string) (int64, error)
	// ModifiedTime 最后修改时间
	ModifiedTime(ctx context.Context, path string) (time.Time, error)
	// Save 写入内容,返回实际保存的文件名(重名时可能与请求的不同)
	Save(ctx context.Context, path string, content io.Reader) (string, error)
	// Type 后端类型: local | alist | s3
	Type() string
}

// CleanPath 规范化相对路径,根目录为 "",越过根目录时返回 ErrOutsideRoot
func CleanPath(p string) (string, error) {
	cleaned := path.Clean(strings.Trim(strings.ReplaceAll(p, "\\", "/"), "/"))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%q: %w", p, ErrOutsideRoot)
	}
	if cleaned == "." {
		return "", nil
	}
	return cleaned, nil
}

// TempSweeper 可以清理中断上传遗留的临时文件的后端
type TempSweeper interface {
	SweepTemp(ctx context.Context, maxAge time.Duration) (int, error)
}

// ReaderSize 对可 Seek 的读取器返回剩余字节数,否则返回 -1
func ReaderSize(r io.Reader) int64 {
	seeker, ok := r.(io.Seeker)
	if !ok {
		return -1
	}
	cur, err := seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1
	}
	end, err := seeker.Seek(0, io.SeekEnd)
	if err != nil {
		return -1
	}
	if _, err := seeker.Seek(cur, io.SeekStart); err != nil {
		return -1
	}
	return end - cur
}

// ctxReader 在每次读取前检查 ctx,客户端断开时尽早停止写入
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

// ContextReader 包装读取器,ctx 结束后 Read 返回 ctx.Err()
func ContextReader(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
