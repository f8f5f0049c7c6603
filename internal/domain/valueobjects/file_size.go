package valueobjects

import "fmt"

// sizeUnits 1024 进制单位,超出 ZB 的一律用 YB
var sizeUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB", "ZB"}

// FileSize 文件大小值对象
type FileSize int64

// NewFileSize 创建文件大小值对象,负数按0处理
func NewFileSize(bytes int64) FileSize {
	if bytes < 0 {
		return FileSize(0)
	}
	return FileSize(bytes)
}

// Bytes 返回字节数
func (f FileSize) Bytes() int64 {
	return int64(f)
}

// IsZero 判断是否为0
func (f FileSize) IsZero() bool {
	return f == 0
}

// Format 格式化为人类可读的字符串,保留一位小数
// 例如 1023 -> "1023.0 B", 1024 -> "1.0 KB", 1536 -> "1.5 KB"
func (f FileSize) Format() string {
	size := float64(NewFileSize(int64(f)))
	for _, unit := range sizeUnits {
		if size < 1024 {
			return fmt.Sprintf("%3.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f %s", size, "YB")
}

// String 实现 fmt.Stringer
func (f FileSize) String() string {
	return f.Format()
}
