package valueobjects

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode"
)

// MaxPathLength 相对路径最大字节数
const MaxPathLength = 1024

var (
	// ErrPathTraversal 路径包含 ".." 段
	ErrPathTraversal = errors.New("path contains illegal '..' segment")
	// ErrInvalidPath 路径包含非法字符或超长
	ErrInvalidPath = errors.New("invalid path")
)

// RelativePath 相对于媒体根目录的路径,使用 "/" 分隔
// 零值表示根目录
type RelativePath struct {
	value string
}

// NewRelativePath 校验并规范化请求中的路径
// 空字符串表示根目录;开头的 "/" 会被去掉;任何 ".." 段都会被拒绝
func NewRelativePath(raw string) (RelativePath, error) {
	p := strings.TrimSpace(raw)
	if p == "" {
		return RelativePath{}, nil
	}

	if len(p) > MaxPathLength {
		return RelativePath{}, fmt.Errorf("%w: exceeds maximum length of %d bytes", ErrInvalidPath, MaxPathLength)
	}

	for _, r := range p {
		if unicode.Is(unicode.Cc, r) {
			return RelativePath{}, fmt.Errorf("%w: control character U+%04X", ErrInvalidPath, r)
		}
		if IsZeroWidthChar(r) {
			return RelativePath{}, fmt.Errorf("%w: zero-width character U+%04X", ErrInvalidPath, r)
		}
	}

	p = strings.ReplaceAll(p, "\\", "/")
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return RelativePath{}, ErrPathTraversal
		}
	}

	p = path.Clean(strings.TrimLeft(p, "/"))
	if p == "." || p == "/" {
		return RelativePath{}, nil
	}
	return RelativePath{value: p}, nil
}

// MustNewRelativePath 仅用于测试或常量路径
func MustNewRelativePath(raw string) RelativePath {
	p, err := NewRelativePath(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String 返回路径字符串,根目录为空字符串
func (p RelativePath) String() string {
	return p.value
}

// IsRoot 判断是否为根目录
func (p RelativePath) IsRoot() bool {
	return p.value == ""
}

// Segments 返回各级目录名
func (p RelativePath) Segments() []string {
	if p.IsRoot() {
		return nil
	}
	return strings.Split(p.value, "/")
}

// Join 拼接一个名称,name 必须是单个路径段
func (p RelativePath) Join(name string) RelativePath {
	if p.IsRoot() {
		return RelativePath{value: name}
	}
	return RelativePath{value: p.value + "/" + name}
}

// Split 以最后一个 "/" 切分,返回带结尾 "/" 的父路径和文件名
// "a/b/c.txt" -> ("a/b/", "c.txt"); "c.txt" -> ("", "c.txt")
func (p RelativePath) Split() (parent, name string) {
	i := strings.LastIndex(p.value, "/")
	if i < 0 {
		return "", p.value
	}
	return p.value[:i+1], p.value[i+1:]
}

// Breadcrumbs 返回路径的面包屑
func (p RelativePath) Breadcrumbs() []Breadcrumb {
	return BuildBreadcrumbs(p.value)
}

// IsZeroWidthChar 检查是否为零宽字符
func IsZeroWidthChar(r rune) bool {
	switch r {
	case '\u200B', '\u200C', '\u200D', '\u200E', '\u200F', '\uFEFF':
		return true
	}
	return false
}
