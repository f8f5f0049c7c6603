package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

const maxNameAttempts = 100

// 上传过程中的临时文件名为 TempPrefix + 随机串 + TempSuffix
const (
	TempPrefix = ".upload-"
	TempSuffix = ".tmp"
)

// IsTempName 判断文件名是否属于上传临时文件
func IsTempName(name string) bool {
	return strings.HasPrefix(name, TempPrefix) && strings.HasSuffix(name, TempSuffix)
}

// SuffixedName 在扩展名前插入 "_<7位随机十六进制>"
// "docs/report.pdf" -> "docs/report_1a2b3c4.pdf"
func SuffixedName(p string) string {
	dir, name := path.Split(p)
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" {
		// ".bashrc" 这类隐藏文件整体视为文件名
		stem, ext = name, ""
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:7]
	return dir + stem + "_" + suffix + ext
}

// AvailableName 返回一个尚未被占用的路径,p 本身可用时原样返回
func AvailableName(ctx context.Context, p string, exists func(context.Context, string) (bool, error)) (string, error) {
	candidate := p
	for i := 0; i < maxNameAttempts; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = SuffixedName(p)
	}
	return "", fmt.Errorf("no free name for %s after %d attempts", p, maxNameAttempts)
}
