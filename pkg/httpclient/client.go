package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Options HTTP请求选项
type Options struct {
	// 超时时间,默认30秒;Client 不为空时忽略
	Timeout time.Duration
	// 请求头
	Headers map[string]string
	// 上下文,用于取消请求
	Context context.Context
	// HTTP客户端,如果为nil则按 Timeout 新建
	Client *http.Client
	// 请求体长度,0 表示由请求体决定
	ContentLength int64
}

// StatusError 非 2xx 响应
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP request failed with status %d: %s", e.StatusCode, e.Body)
}

// DefaultOptions 返回默认选项
func DefaultOptions() *Options {
	return &Options{
		Timeout: 30 * time.Second,
		Headers: make(map[string]string),
		Context: context.Background(),
	}
}

// WithHeader 添加请求头
func (o *Options) WithHeader(key, value string) *Options {
	if o.Headers == nil {
		o.Headers = make(map[string]string)
	}
	o.Headers[key] = value
	return o
}

// WithContext 设置上下文
func (o *Options) WithContext(ctx context.Context) *Options {
	o.Context = ctx
	return o
}

// WithContentLength 设置流式请求体的长度
func (o *Options) WithContentLength(n int64) *Options {
	o.ContentLength = n
	return o
}

// WithClient 设置HTTP客户端
func (o *Options) WithClient(client *http.Client) *Options {
	o.Client = client
	return o
}

func resolve(opts []*Options) (*Options, *http.Client) {
	options := DefaultOptions()
	if len(opts) > 0 && opts[0] != nil {
		options = opts[0]
	}
	if options.Context == nil {
		options.Context = context.Background()
	}
	client := options.Client
	if client == nil {
		client = &http.Client{Timeout: options.Timeout}
	}
	return options, client
}

// Do 发送原始请求体,响应按 JSON 解析到 respBody
func Do(method, url string, body io.Reader, respBody interface{}, opts ...*Options) error {
	options, client := resolve(opts)

	req, err := http.NewRequestWithContext(options.Context, method, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range options.Headers {
		req.Header.Set(key, value)
	}
	if options.ContentLength > 0 {
		req.ContentLength = options.ContentLength
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if respBody != nil {
		if err := json.Unmarshal(data, respBody); err != nil {
			return fmt.Errorf("failed to unmarshal response body: %w", err)
		}
	}
	return nil
}

// DoJSONRequest 执行JSON请求,统一处理JSON编码/解码和HTTP请求
func DoJSONRequest(method, url string, reqBody, respBody interface{}, opts ...*Options) error {
	options, _ := resolve(opts)

	var reqReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqReader = bytes.NewReader(jsonData)
		if _, ok := options.Headers["Content-Type"]; !ok {
			options = options.WithHeader("Content-Type", "application/json")
		}
	}

	return Do(method, url, reqReader, respBody, options)
}

// PostJSON 发送POST JSON请求的便捷方法
func PostJSON(url string, reqBody, respBody interface{}, opts ...*Options) error {
	return DoJSONRequest(http.MethodPost, url, reqBody, respBody, opts...)
}
