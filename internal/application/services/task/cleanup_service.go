package task

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/easayliu/alist-filemanager/internal/infrastructure/config"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/storage"
	"github.com/easayliu/alist-filemanager/pkg/logger"
)

// CleanupService 定时清理中断上传留下的临时文件
type CleanupService struct {
	cron     *cron.Cron
	sweeper  storage.TempSweeper
	schedule string
	maxAge   time.Duration

	mu      sync.Mutex
	entryID cron.EntryID
	running bool
	lastRun time.Time
	removed int
}

// NewCleanupService 创建清理服务;后端不支持清理时返回 nil
func NewCleanupService(cfg config.CleanupConfig, store storage.Storage) (*CleanupService, error) {
	sweeper, ok := store.(storage.TempSweeper)
	if !ok {
		logger.Debug("存储后端不支持临时文件清理", "backend", store.Type())
		return nil, nil
	}

	// 支持 "@every 1h" 等描述符,以及标准5字段格式（分 时 日 月 周）
	if _, err := cron.ParseStandard(cfg.Cron); err != nil {
		return nil, fmt.Errorf("invalid cleanup cron expression %q: %w", cfg.Cron, err)
	}

	maxAge := time.Duration(cfg.MaxAgeHours) * time.Hour
	if maxAge <= 0 {
		maxAge = 24 * time.Hour
	}

	return &CleanupService{
		cron:     cron.New(),
		sweeper:  sweeper,
		schedule: cfg.Cron,
		maxAge:   maxAge,
	}, nil
}

// Start 启动调度器
func (s *CleanupService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("cleanup scheduler already running")
	}

	id, err := s.cron.AddFunc(s.schedule, func() {
		if _, err := s.RunNow(context.Background()); err != nil {
			logger.Error("临时文件清理失败", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule cleanup: %w", err)
	}

	s.entryID = id
	s.cron.Start()
	s.running = true
	logger.Info("临时文件清理任务已启动", "cron", s.schedule, "max_age", s.maxAge.String())
	return nil
}

// Stop 停止调度器并等待正在执行的清理结束
func (s *CleanupService) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cron.Remove(s.entryID)
	s.running = false
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	logger.Info("临时文件清理任务已停止")
}

// RunNow 立即执行一次清理
func (s *CleanupService) RunNow(ctx context.Context) (int, error) {
	removed, err := s.sweeper.SweepTemp(ctx, s.maxAge)

	s.mu.Lock()
	s.lastRun = time.Now()
	s.removed += removed
	s.mu.Unlock()

	if err != nil {
		return removed, err
	}
	if removed > 0 {
		logger.Info("已清理临时文件", "count", removed)
	}
	return removed, nil
}

// Stats 最近一次执行时间和累计清理数量
func (s *CleanupService) Stats() (lastRun time.Time, removed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.removed
}
