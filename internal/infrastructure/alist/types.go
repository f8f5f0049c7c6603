package alist

import (
	"fmt"
	"time"
)

// apiResponse AList 统一响应包装
type apiResponse[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginData struct {
	Token string `json:"token"`
}

type listRequest struct {
	Path     string `json:"path"`
	Password string `json:"password,omitempty"`
	Page     int    `json:"page,omitempty"`
	PerPage  int    `json:"per_page,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`
}

type listData struct {
	Content []FileItem `json:"content"`
	Total   int        `json:"total"`
	Write   bool       `json:"write"`
}

type getRequest struct {
	Path     string `json:"path"`
	Password string `json:"password,omitempty"`
}

// FileItem 目录项或文件信息
type FileItem struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	IsDir    bool   `json:"is_dir"`
	Modified string `json:"modified"`
	Sign     string `json:"sign,omitempty"`
	RawURL   string `json:"raw_url,omitempty"`
}

// ModifiedTime 解析 modified 字段,解析失败返回零值
func (f FileItem) ModifiedTime() time.Time {
	t, err := time.Parse(time.RFC3339Nano, f.Modified)
	if err != nil {
		return time.Time{}
	}
	return t
}

// APIError 业务码非 200 的响应
type APIError struct {
	Op      string
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("alist %s failed: code=%d, message=%s", e.Op, e.Code, e.Message)
}
