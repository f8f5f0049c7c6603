package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options 日志初始化选项
type Options struct {
	Level     string // debug | info | warn | error
	Output    string // console | file | both
	Format    string // text | json
	FilePath  string
	Colorize  bool
	AddSource bool

	// 文件轮转,0 表示使用 lumberjack 默认值
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
	levelVar      = new(slog.LevelVar)
	closers       []io.Closer
)

// Init 初始化全局日志,可重复调用,旧的文件输出会被关闭
func Init(opts Options) error {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return err
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     levelVar,
		AddSource: opts.AddSource,
	}

	var handlers []slog.Handler
	var newClosers []io.Closer

	output := strings.ToLower(opts.Output)
	if output == "" {
		output = "console"
	}

	switch output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("unknown log output: %s", opts.Output)
	}

	if output == "console" || output == "both" {
		consoleOpts := *handlerOpts
		if opts.Colorize && !isJSON(opts.Format) && isTerminal(os.Stdout) {
			consoleOpts.ReplaceAttr = colorizeLevel
		}
		handlers = append(handlers, newHandler(os.Stdout, opts.Format, &consoleOpts))
	}

	if output == "file" || output == "both" {
		if opts.FilePath == "" {
			return errors.New("log file path is required for file output")
		}
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		fileWriter := &lumberjack.Logger{
			Filename:   opts.FilePath,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		}
		handlers = append(handlers, newHandler(fileWriter, opts.Format, handlerOpts))
		newClosers = append(newClosers, fileWriter)
	}

	var handler slog.Handler
	if len(handlers) == 1 {
		handler = handlers[0]
	} else {
		handler = fanoutHandler(handlers)
	}

	mu.Lock()
	old := closers
	levelVar.Set(level)
	defaultLogger = slog.New(handler)
	closers = newClosers
	mu.Unlock()

	for _, c := range old {
		_ = c.Close()
	}
	return nil
}

// SetLevel 动态调整日志级别
func SetLevel(level string) error {
	l, err := parseLevel(level)
	if err != nil {
		return err
	}
	levelVar.Set(l)
	return nil
}

// Close 关闭文件输出
func Close() error {
	mu.Lock()
	old := closers
	closers = nil
	mu.Unlock()

	var errs []error
	for _, c := range old {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// L 返回底层 slog.Logger,未初始化时使用控制台默认配置
func L() *slog.Logger {
	mu.RLock()
	l := defaultLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	if err := Init(Options{Level: "info", Output: "console", Format: "text"}); err != nil {
		return slog.Default()
	}
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// With 返回附带字段的子 logger
func With(args ...any) *slog.Logger {
	return L().With(SanitizeArgs(args...)...)
}

func Debug(msg string, args ...any) {
	L().Debug(msg, SanitizeArgs(args...)...)
}

func Info(msg string, args ...any) {
	L().Info(msg, SanitizeArgs(args...)...)
}

func Warn(msg string, args ...any) {
	L().Warn(msg, SanitizeArgs(args...)...)
}

func Error(msg string, args ...any) {
	L().Error(msg, SanitizeArgs(args...)...)
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

func isJSON(format string) bool {
	return strings.EqualFold(format, "json")
}

func newHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if isJSON(format) {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[90m"
)

func colorizeLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 || a.Key != slog.LevelKey {
		return a
	}
	level, ok := a.Value.Any().(slog.Level)
	if !ok {
		return a
	}

	color := colorBlue
	switch {
	case level >= slog.LevelError:
		color = colorRed
	case level >= slog.LevelWarn:
		color = colorYellow
	case level < slog.LevelInfo:
		color = colorGray
	}
	return slog.String(a.Key, color+level.String()+colorReset)
}

// fanoutHandler 将同一条记录写到多个 handler
type fanoutHandler []slog.Handler

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, hh := range h {
		if !hh.Enabled(ctx, r.Level) {
			continue
		}
		if err := hh.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make(fanoutHandler, len(h))
	for i, hh := range h {
		next[i] = hh.WithAttrs(attrs)
	}
	return next
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	next := make(fanoutHandler, len(h))
	for i, hh := range h {
		next[i] = hh.WithGroup(name)
	}
	return next
}
