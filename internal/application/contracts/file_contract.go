package contracts

import (
	"context"
	"io"
	"time"

	"github.com/easayliu/alist-filemanager/internal/domain/valueobjects"
)

// 条目类型
const (
	FileTypeDirectory = "Directory"
	FileTypeFile      = "File"
)

// FileEntry 目录列表中的一项
type FileEntry struct {
	FilePath string    `json:"filepath"`
	FileType string    `json:"filetype"`
	FileName string    `json:"filename"`
	FileSize string    `json:"filesize"`
	FileDate time.Time `json:"filedate"`
}

// BrowseResult 目录浏览结果
type BrowseResult struct {
	Path        string                    `json:"path"`
	Breadcrumbs []valueobjects.Breadcrumb `json:"breadcrumbs"`
	Files       []FileEntry               `json:"files"`
}

// FileDetail 单个文件信息,FilePath 为带结尾 "/" 的父目录
type FileDetail struct {
	FilePath string    `json:"filepath"`
	FileName string    `json:"filename"`
	FileSize string    `json:"filesize"`
	FileDate time.Time `json:"filedate"`
}

// DetailResult 文件详情结果
type DetailResult struct {
	Path        string                    `json:"path"`
	Breadcrumbs []valueobjects.Breadcrumb `json:"breadcrumbs"`
	File        FileDetail                `json:"file"`
}

// LocationResult 上传表单页面的当前位置
type LocationResult struct {
	Path        string                    `json:"path"`
	Breadcrumbs []valueobjects.Breadcrumb `json:"breadcrumbs"`
}

// UploadRequest 上传请求,Dir 为表单中的 path 字段
type UploadRequest struct {
	Dir      string
	FileName string
	Size     int64
	Content  io.Reader
}

// UploadedFile 上传成功的文件,Name 为客户端提交的原始文件名
type UploadedFile struct {
	Name string `json:"name"`
}

// UploadResult 上传接口响应体
type UploadResult struct {
	Files []UploadedFile `json:"files"`
}

// FileManagerService 文件管理用例
type FileManagerService interface {
	Browse(ctx context.Context, rawPath string) (*BrowseResult, error)
	Detail(ctx context.Context, rawPath string) (*DetailResult, error)
	Location(ctx context.Context, rawPath string) (*LocationResult, error)
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
}
