package alist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/easayliu/alist-filemanager/internal/infrastructure/ratelimit"
	"github.com/easayliu/alist-filemanager/pkg/httpclient"
	"github.com/easayliu/alist-filemanager/pkg/logger"
)

var (
	// ErrObjectNotFound AList 报告路径不存在
	ErrObjectNotFound = errors.New("alist: object not found")
	// ErrUnauthorized token 无效且无法重新登录
	ErrUnauthorized = errors.New("alist: unauthorized")
)

// Config Alist客户端配置
type Config struct {
	BaseURL  string
	Username string
	Password string
	Token    string
	QPS      int
	Timeout  time.Duration
}

// Client Alist客户端
type Client struct {
	baseURL  string
	username string
	password string

	mu    sync.RWMutex
	token string

	httpClient  *http.Client
	rateLimiter *ratelimit.RateLimiter
}

// NewClient 创建新的Alist客户端
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		username:    cfg.Username,
		password:    cfg.Password,
		token:       cfg.Token,
		httpClient:  &http.Client{Timeout: timeout},
		rateLimiter: ratelimit.NewRateLimiter(cfg.QPS),
	}
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) canLogin() bool {
	return c.username != ""
}

// Login 调用/api/auth/login获取token
func (c *Client) Login(ctx context.Context) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	opts := httpclient.DefaultOptions().
		WithContext(ctx).
		WithClient(c.httpClient)

	var resp apiResponse[loginData]
	req := loginRequest{Username: c.username, Password: c.password}
	if err := httpclient.PostJSON(c.baseURL+"/api/auth/login", req, &resp, opts); err != nil {
		return fmt.Errorf("failed to login: %w", err)
	}
	if resp.Code != http.StatusOK {
		return &APIError{Op: "login", Code: resp.Code, Message: resp.Message}
	}

	c.mu.Lock()
	c.token = resp.Data.Token
	c.mu.Unlock()
	logger.Debug("AList登录成功", "base_url", c.baseURL)
	return nil
}

func (c *Client) ensureToken(ctx context.Context) error {
	if c.currentToken() != "" {
		return nil
	}
	if !c.canLogin() {
		return ErrUnauthorized
	}
	return c.Login(ctx)
}

// postJSON 发起带认证的请求,token 失效时重新登录并重试一次
func postJSON[T any](ctx context.Context, c *Client, op, endpoint string, reqBody interface{}) (T, error) {
	var zero T
	if err := c.ensureToken(ctx); err != nil {
		return zero, err
	}

	for attempt := 0; ; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return zero, err
		}

		opts := httpclient.DefaultOptions().
			WithContext(ctx).
			WithClient(c.httpClient).
			WithHeader("Authorization", c.currentToken())

		var resp apiResponse[T]
		err := httpclient.PostJSON(c.baseURL+endpoint, reqBody, &resp, opts)
		if err == nil && resp.Code == http.StatusOK {
			return resp.Data, nil
		}

		if isUnauthorized(err, resp.Code) {
			if attempt > 0 || !c.canLogin() {
				return zero, ErrUnauthorized
			}
			logger.Info("AList token失效,重新登录", "op", op)
			if err := c.Login(ctx); err != nil {
				return zero, err
			}
			continue
		}
		if err != nil {
			return zero, fmt.Errorf("alist %s: %w", op, err)
		}
		return zero, classify(op, resp.Code, resp.Message)
	}
}

func isUnauthorized(err error, code int) bool {
	var se *httpclient.StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusUnauthorized
	}
	return err == nil && code == http.StatusUnauthorized
}

func classify(op string, code int, message string) error {
	apiErr := &APIError{Op: op, Code: code, Message: message}
	if strings.Contains(strings.ToLower(message), "not found") {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, apiErr.Error())
	}
	return apiErr
}

// List 列出目录下全部条目
func (c *Client) List(ctx context.Context, dir string) ([]FileItem, error) {
	data, err := postJSON[listData](ctx, c, "list", "/api/fs/list", listRequest{
		Path:    dir,
		Page:    1,
		PerPage: 0,
		Refresh: false,
	})
	if err != nil {
		return nil, err
	}
	return data.Content, nil
}

// Get 获取单个文件或目录的信息
func (c *Client) Get(ctx context.Context, p string) (*FileItem, error) {
	item, err := postJSON[FileItem](ctx, c, "get", "/api/fs/get", getRequest{Path: p})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Put 以流方式上传文件到 p,size 未知时传 -1
func (c *Client) Put(ctx context.Context, p string, body io.Reader, size int64) error {
	if err := c.ensureToken(ctx); err != nil {
		return err
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return err
	}

	opts := httpclient.DefaultOptions().
		WithContext(ctx).
		WithClient(c.httpClient).
		WithHeader("Authorization", c.currentToken()).
		WithHeader("File-Path", url.PathEscape(p)).
		WithHeader("Content-Type", "application/octet-stream").
		WithHeader("As-Task", "false")
	if size > 0 {
		opts = opts.WithContentLength(size)
	}

	// 请求体是一次性的流,401 时不能重放
	var resp apiResponse[struct{}]
	err := httpclient.Do(http.MethodPut, c.baseURL+"/api/fs/put", body, &resp, opts)
	if isUnauthorized(err, resp.Code) {
		c.mu.Lock()
		c.token = ""
		c.mu.Unlock()
		return ErrUnauthorized
	}
	if err != nil {
		return fmt.Errorf("alist put: %w", err)
	}
	if resp.Code != http.StatusOK {
		return classify("put", resp.Code, resp.Message)
	}
	return nil
}

// QPS 当前请求速率限制
func (c *Client) QPS() int {
	return c.rateLimiter.QPS()
}
