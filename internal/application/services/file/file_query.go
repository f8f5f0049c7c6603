package file

import (
	"context"

	"github.com/easayliu/alist-filemanager/internal/application/contracts"
	"github.com/easayliu/alist-filemanager/internal/domain/valueobjects"
	apperrors "github.com/easayliu/alist-filemanager/internal/shared/errors"
	"github.com/easayliu/alist-filemanager/pkg/logger"
)

// Browse 列出目录,目录在前文件在后,各自保持存储返回的顺序
func (s *AppFileService) Browse(ctx context.Context, rawPath string) (*contracts.BrowseResult, error) {
	resolved, err := s.resolve(rawPath)
	if err != nil {
		return nil, err
	}
	rel := resolved.Relative
	logger.Debug("浏览目录", "path", rel.String(), "abs", resolved.Absolute)

	dirs, files, err := s.storage.ListDir(ctx, rel.String())
	if err != nil {
		return nil, storageError("list_dir", rel.String(), err)
	}

	entries := make([]contracts.FileEntry, 0, len(dirs)+len(files))
	for _, name := range dirs {
		child := rel.Join(name).String()
		modified, err := s.storage.ModifiedTime(ctx, child)
		if err != nil {
			return nil, storageError("modified_time", child, err)
		}
		entries = append(entries, contracts.FileEntry{
			FilePath: child,
			FileType: contracts.FileTypeDirectory,
			FileName: name,
			FileSize: "-",
			FileDate: modified,
		})
	}

	for _, name := range files {
		child := rel.Join(name).String()
		size, err := s.storage.Size(ctx, child)
		if err != nil {
			return nil, storageError("size", child, err)
		}
		modified, err := s.storage.ModifiedTime(ctx, child)
		if err != nil {
			return nil, storageError("modified_time", child, err)
		}
		entries = append(entries, contracts.FileEntry{
			FilePath: child,
			FileType: contracts.FileTypeFile,
			FileName: name,
			FileSize: valueobjects.NewFileSize(size).Format(),
			FileDate: modified,
		})
	}

	return &contracts.BrowseResult{
		Path:        rel.String(),
		Breadcrumbs: PageBreadcrumbs(rel),
		Files:       entries,
	}, nil
}

// Detail 查询单个文件,"a/b/c.txt" 拆分为 filepath "a/b/" 和 filename "c.txt"
func (s *AppFileService) Detail(ctx context.Context, rawPath string) (*contracts.DetailResult, error) {
	resolved, err := s.resolve(rawPath)
	if err != nil {
		return nil, err
	}
	rel := resolved.Relative
	if rel.IsRoot() {
		return nil, apperrors.NewServiceError(apperrors.ErrorCodeInvalidPath, "a file path is required")
	}

	size, err := s.storage.Size(ctx, rel.String())
	if err != nil {
		return nil, storageError("size", rel.String(), err)
	}
	modified, err := s.storage.ModifiedTime(ctx, rel.String())
	if err != nil {
		return nil, storageError("modified_time", rel.String(), err)
	}

	parent, name := rel.Split()
	return &contracts.DetailResult{
		Path:        rel.String(),
		Breadcrumbs: PageBreadcrumbs(rel),
		File: contracts.FileDetail{
			FilePath: parent,
			FileName: name,
			FileSize: valueobjects.NewFileSize(size).Format(),
			FileDate: modified,
		},
	}, nil
}

// Location 上传表单页面的当前位置
func (s *AppFileService) Location(_ context.Context, rawPath string) (*contracts.LocationResult, error) {
	resolved, err := s.resolve(rawPath)
	if err != nil {
		return nil, err
	}
	return &contracts.LocationResult{
		Path:        resolved.Relative.String(),
		Breadcrumbs: PageBreadcrumbs(resolved.Relative),
	}, nil
}
