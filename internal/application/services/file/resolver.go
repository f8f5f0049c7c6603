package file

import (
	"path/filepath"

	"github.com/easayliu/alist-filemanager/internal/domain/valueobjects"
)

// RootBreadcrumb 所有页面面包屑的第一项
var RootBreadcrumb = valueobjects.Breadcrumb{Label: "Filemanager", URL: ""}

// ResolvedPath 请求路径解析结果
type ResolvedPath struct {
	Relative valueobjects.RelativePath
	Absolute string
}

// Resolver 把请求中的路径解析到媒体根目录下
type Resolver struct {
	MediaRoot string
}

// Resolve 校验并解析路径,".." 段会被拒绝
func (r Resolver) Resolve(raw string) (ResolvedPath, error) {
	rel, err := valueobjects.NewRelativePath(raw)
	if err != nil {
		return ResolvedPath{}, err
	}
	return ResolvedPath{
		Relative: rel,
		Absolute: filepath.Join(r.MediaRoot, filepath.FromSlash(rel.String())),
	}, nil
}

// PageBreadcrumbs 页面使用的面包屑,以 "Filemanager" 根项开头
func PageBreadcrumbs(rel valueobjects.RelativePath) []valueobjects.Breadcrumb {
	crumbs := rel.Breadcrumbs()
	out := make([]valueobjects.Breadcrumb, 0, len(crumbs)+1)
	out = append(out, RootBreadcrumb)
	return append(out, crumbs...)
}
