package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	_ "github.com/easayliu/alist-filemanager/docs"
	"github.com/easayliu/alist-filemanager/internal/application/container"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/config"
	"github.com/easayliu/alist-filemanager/internal/interfaces/http/routes"
	"github.com/easayliu/alist-filemanager/pkg/logger"
)

// Version 构建时通过 -ldflags "-X main.Version=..." 注入
var Version = "dev"

const shutdownTimeout = 10 * time.Second

// @title Alist Filemanager API
// @version 1.0
// @description 基于Gin框架的文件浏览与上传服务,支持本地、AList和S3存储

// @contact.name API Support

// @license.name MIT

// @BasePath /
// @schemes http https
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "filemanager",
		Short:         "Web file browser with upload support",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := run(configFile); err != nil {
				log.Println("Error:", err)
				return err
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default ./configs/config.yaml or ./config.yaml)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "filemanager", Version)
		},
	})
	return root
}

func run(configFile string) error {
	// 加载配置
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 初始化日志
	if err := logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		Output:     cfg.Log.Output,
		Format:     cfg.Log.Format,
		FilePath:   cfg.Log.FilePath,
		Colorize:   cfg.Log.Colorize,
		AddSource:  cfg.Log.AddSource,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	// 设置Gin模式
	switch cfg.Server.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(cfg.Server.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 初始化服务容器
	c, err := container.NewServiceContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize service container: %w", err)
	}

	router, err := routes.SetupRoutesWithContainer(c)
	if err != nil {
		return err
	}

	if err := c.Start(); err != nil {
		return fmt.Errorf("failed to start background tasks: %w", err)
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server",
			"address", srv.Addr,
			"base_path", cfg.Server.BasePath,
			"storage", c.StorageType(),
			"version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// 等待退出信号或启动失败
	select {
	case err := <-errCh:
		c.Shutdown()
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")

	// 先停止后台清理任务,再关闭HTTP服务
	c.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
