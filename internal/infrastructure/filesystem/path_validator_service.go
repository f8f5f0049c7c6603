package filesystem

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"

	"github.com/easayliu/alist-filemanager/internal/domain/valueobjects"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/config"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/storage"
)

const (
	// MaxFileNameLength 文件名最大字节数
	MaxFileNameLength = 255
	// sniffLength MIME 嗅探读取的字节数
	sniffLength = 3072
)

var (
	// ErrInvalidFileName 文件名不合法
	ErrInvalidFileName = errors.New("invalid file name")
	// ErrExtensionNotAllowed 扩展名被拒绝
	ErrExtensionNotAllowed = errors.New("file extension not allowed")
	// ErrMIMENotAllowed 内容类型不在允许列表中
	ErrMIMENotAllowed = errors.New("file type not allowed")
)

// PathValidatorService 上传文件名和内容校验
type PathValidatorService struct {
	reservedNames map[string]bool
	allowedExt    map[string]bool
	deniedExt     map[string]bool
	allowedMIME   []string
}

// PathValidationError 校验错误
type PathValidationError struct {
	Name   string
	Reason string
	Err    error
}

func (e *PathValidationError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Err, e.Name, e.Reason)
}

func (e *PathValidationError) Unwrap() error {
	return e.Err
}

// NewPathValidatorService 按上传配置创建校验服务
func NewPathValidatorService(cfg config.UploadConfig) *PathValidatorService {
	return &PathValidatorService{
		reservedNames: BuildReservedNamesMap(),
		allowedExt:    extensionSet(cfg.AllowedExtensions),
		deniedExt:     extensionSet(cfg.DeniedExtensions),
		allowedMIME:   normalizeMIMEList(cfg.AllowedMIMETypes),
	}
}

// BuildReservedNamesMap 构建Windows保留名称映射表
func BuildReservedNamesMap() map[string]bool {
	reserved := []string{
		"CON", "PRN", "AUX", "NUL",
		"COM1", "COM2", "COM3", "COM4", "COM5",
		"COM6", "COM7", "COM8", "COM9",
		"LPT1", "LPT2", "LPT3", "LPT4", "LPT5",
		"LPT6", "LPT7", "LPT8", "LPT9",
	}

	reservedMap := make(map[string]bool, len(reserved))
	for _, name := range reserved {
		reservedMap[name] = true
	}
	return reservedMap
}

func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			set[ext] = true
		}
	}
	return set
}

func normalizeMIMEList(types []string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// ValidateFileName 校验上传文件名,必须是单个路径段
func (s *PathValidatorService) ValidateFileName(name string) error {
	invalid := func(reason string) error {
		return &PathValidationError{Name: name, Reason: reason, Err: ErrInvalidFileName}
	}

	if strings.TrimSpace(name) == "" {
		return invalid("name is empty")
	}
	if name == "." || name == ".." {
		return invalid("name is a relative path marker")
	}
	if len(name) > MaxFileNameLength {
		return invalid(fmt.Sprintf("name exceeds %d bytes", MaxFileNameLength))
	}
	if strings.ContainsAny(name, `/\`) {
		return invalid("name contains a path separator")
	}

	for _, r := range name {
		if unicode.Is(unicode.Cc, r) {
			return invalid(fmt.Sprintf("control character U+%04X", r))
		}
		if valueobjects.IsZeroWidthChar(r) {
			return invalid(fmt.Sprintf("zero-width character U+%04X", r))
		}
	}

	stem := strings.ToUpper(strings.TrimSuffix(name, path.Ext(name)))
	if s.reservedNames[stem] {
		return invalid("reserved device name " + stem)
	}
	// 与上传临时文件同名的文件会被列表隐藏并被定时清理
	if storage.IsTempName(name) {
		return invalid("name is reserved for temporary uploads")
	}

	return s.validateExtension(name)
}

func (s *PathValidatorService) validateExtension(name string) error {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))

	if s.deniedExt[ext] {
		return &PathValidationError{Name: name, Reason: "extension ." + ext + " is denied", Err: ErrExtensionNotAllowed}
	}
	if len(s.allowedExt) > 0 && !s.allowedExt[ext] {
		return &PathValidationError{Name: name, Reason: "extension is not in the allow list", Err: ErrExtensionNotAllowed}
	}
	return nil
}

// DetectMIME 嗅探内容类型,返回从原位置开始的完整内容
// 可 Seek 的输入会被倒回并原样返回,其余情况重放已读取的头部
func (s *PathValidatorService) DetectMIME(r io.Reader) (string, io.Reader, error) {
	seeker, seekable := r.(io.Seeker)
	var start int64
	if seekable {
		pos, err := seeker.Seek(0, io.SeekCurrent)
		if err != nil {
			seekable = false
		}
		start = pos
	}

	head := make([]byte, sniffLength)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, fmt.Errorf("failed to read upload header: %w", err)
	}
	head = head[:n]
	detected := mimetype.Detect(head).String()

	if seekable {
		if _, err := seeker.Seek(start, io.SeekStart); err != nil {
			return "", nil, fmt.Errorf("failed to rewind upload: %w", err)
		}
		return detected, r, nil
	}
	return detected, io.MultiReader(bytes.NewReader(head), r), nil
}

// ValidateMIME 检查内容类型是否在允许列表中,以 "/" 结尾的条目按前缀匹配
func (s *PathValidatorService) ValidateMIME(name, detected string) error {
	if len(s.allowedMIME) == 0 {
		return nil
	}

	base, _, err := mime.ParseMediaType(detected)
	if err != nil {
		base = detected
	}
	base = strings.ToLower(base)
	known := mimetype.Lookup(base)

	for _, allowed := range s.allowedMIME {
		if strings.HasSuffix(allowed, "/") {
			if strings.HasPrefix(base, allowed) {
				return nil
			}
			continue
		}
		if base == allowed || (known != nil && known.Is(allowed)) {
			return nil
		}
	}
	return &PathValidationError{Name: name, Reason: "content type " + base + " is not allowed", Err: ErrMIMENotAllowed}
}
