package storage

import (
	"context"
	"io"
	"time"

	"github.com/easayliu/alist-filemanager/internal/infrastructure/metrics"
)

// Instrumented 为任意后端记录操作耗时
type Instrumented struct {
	inner Storage
}

// WithMetrics 包装后端;被包装的后端实现 TempSweeper 时包装结果同样实现
func WithMetrics(s Storage) Storage {
	base := &Instrumented{inner: s}
	if sweeper, ok := s.(TempSweeper); ok {
		return &instrumentedSweeper{Instrumented: base, sweeper: sweeper}
	}
	return base
}

func (i *Instrumented) observe(op string, start time.Time, err error) {
	metrics.RecordStorageOperation(i.inner.Type(), op, time.Since(start), err)
}

func (i *Instrumented) ListDir(ctx context.Context, p string) (dirs, files []string, err error) {
	start := time.Now()
	defer func() { i.observe("list_dir", start, err) }()
	dirs, files, err = i.inner.ListDir(ctx, p)
	return dirs, files, err
}

func (i *Instrumented) Size(ctx context.Context, p string) (n int64, err error) {
	start := time.Now()
	defer func() { i.observe("size", start, err) }()
	n, err = i.inner.Size(ctx, p)
	return n, err
}

func (i *Instrumented) ModifiedTime(ctx context.Context, p string) (t time.Time, err error) {
	start := time.Now()
	defer func() { i.observe("modified_time", start, err) }()
	t, err = i.inner.ModifiedTime(ctx, p)
	return t, err
}

func (i *Instrumented) Save(ctx context.Context, p string, content io.Reader) (name string, err error) {
	start := time.Now()
	defer func() { i.observe("save", start, err) }()
	name, err = i.inner.Save(ctx, p, content)
	return name, err
}

func (i *Instrumented) Type() string {
	return i.inner.Type()
}

type instrumentedSweeper struct {
	*Instrumented
	sweeper TempSweeper
}

func (i *instrumentedSweeper) SweepTemp(ctx context.Context, maxAge time.Duration) (n int, err error) {
	start := time.Now()
	defer func() { i.observe("sweep_temp", start, err) }()
	n, err = i.sweeper.SweepTemp(ctx, maxAge)
	return n, err
}
