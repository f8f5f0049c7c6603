package task

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/easayliu/alist-filemanager/internal/infrastructure/config"
)

type sweepingStorage struct {
	sweeps atomic.Int32
	maxAge time.Duration
}

func (s *sweepingStorage) ListDir(context.Context, string) ([]string, []string, error) {
	return nil, nil, nil
}
func (s *sweepingStorage) Size(context.Context, string) (int64, error) { return 0, nil }
func (s *sweepingStorage) ModifiedTime(context.Context, string) (time.Time, error) {
	return time.Time{}, nil
}
func (s *sweepingStorage) Save(context.Context, string, io.Reader) (string, error) { return "", nil }
func (s *sweepingStorage) Type() string                                            { return "sweeping" }

func (s *sweepingStorage) SweepTemp(_ context.Context, maxAge time.Duration) (int, error) {
	s.sweeps.Add(1)
	s.maxAge = maxAge
	return 2, nil
}

func TestNewCleanupService(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.CleanupConfig
		wantNil bool
		wantErr bool
	}{
		{name: "描述符", cfg: config.CleanupConfig{Cron: "@every 1h", MaxAgeHours: 2}},
		{name: "标准格式", cfg: config.CleanupConfig{Cron: "0 * * * *"}},
		{name: "非法表达式", cfg: config.CleanupConfig{Cron: "every hour"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewCleanupService(tt.cfg, &sweepingStorage{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewCleanupService() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && svc == nil {
				t.Fatal("expected a service")
			}
		})
	}
}

// storageOnly 隐藏 SweepTemp 方法
type storageOnly struct{ inner *sweepingStorage }

func (s storageOnly) ListDir(ctx context.Context, p string) ([]string, []string, error) {
	return s.inner.ListDir(ctx, p)
}
func (s storageOnly) Size(ctx context.Context, p string) (int64, error) { return s.inner.Size(ctx, p) }
func (s storageOnly) ModifiedTime(ctx context.Context, p string) (time.Time, error) {
	return s.inner.ModifiedTime(ctx, p)
}
func (s storageOnly) Save(ctx context.Context, p string, r io.Reader) (string, error) {
	return s.inner.Save(ctx, p, r)
}
func (s storageOnly) Type() string { return "plain" }

func TestNewCleanupService_UnsupportedBackend(t *testing.T) {
	svc, err := NewCleanupService(config.CleanupConfig{Cron: "@every 1h"}, storageOnly{&sweepingStorage{}})
	if err != nil || svc != nil {
		t.Fatalf("NewCleanupService() = %v, %v; want nil, nil", svc, err)
	}
}

func TestCleanupService_RunNow(t *testing.T) {
	store := &sweepingStorage{}
	svc, err := NewCleanupService(config.CleanupConfig{Cron: "@every 1h", MaxAgeHours: 6}, store)
	if err != nil {
		t.Fatal(err)
	}

	removed, err := svc.RunNow(context.Background())
	if err != nil || removed != 2 {
		t.Fatalf("RunNow() = %d, %v", removed, err)
	}
	if store.maxAge != 6*time.Hour {
		t.Errorf("maxAge = %v, want 6h", store.maxAge)
	}
	lastRun, total := svc.Stats()
	if lastRun.IsZero() || total != 2 {
		t.Errorf("Stats() = %v, %d", lastRun, total)
	}
}

func TestCleanupService_StartStop(t *testing.T) {
	store := &sweepingStorage{}
	svc, err := NewCleanupService(config.CleanupConfig{Cron: "@every 1s"}, store)
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := svc.Start(); err == nil {
		t.Error("second Start() should fail")
	}

	deadline := time.Now().Add(3 * time.Second)
	for store.sweeps.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	svc.Stop()
	svc.Stop()

	if store.sweeps.Load() == 0 {
		t.Error("scheduled sweep never ran")
	}
}
