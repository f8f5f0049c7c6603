package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/easayliu/alist-filemanager/internal/application/contracts"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/metrics"
	apperrors "github.com/easayliu/alist-filemanager/internal/shared/errors"
	"github.com/easayliu/alist-filemanager/pkg/logger"
	httputil "github.com/easayliu/alist-filemanager/pkg/utils/http"
)

const (
	// UploadFileField 上传文件的表单字段
	UploadFileField = "files[]"
	// UploadPathField 目标目录的表单字段
	UploadPathField = "path"

	// MsgSingleFile 文件数量不为 1 时的响应
	MsgSingleFile = "Just a single file please."

	// multipartMemory 超出部分写入临时文件
	multipartMemory = 32 << 20
	// multipartOverhead 表单边界和其他字段的额外余量
	multipartOverhead = 1 << 20
)

// UploadFile 上传单个文件
// @Summary 上传文件
// @Description 上传且仅上传一个文件到 path 指定的目录,文件名沿用客户端提交的名称
// @Tags 文件管理
// @Accept multipart/form-data
// @Produce json
// @Param files[] formData file true "要上传的文件"
// @Param path formData string false "目标目录,留空为根目录"
// @Success 200 {object} contracts.UploadResult
// @Failure 400 {string} string "Just a single file please."
// @Failure 413 {object} map[string]interface{} "文件过大"
// @Failure 415 {object} map[string]interface{} "不支持的文件类型"
// @Failure 429 {object} map[string]interface{} "请求过于频繁"
// @Failure 500 {object} map[string]interface{} "存储错误"
// @Router /filemanager/upload/file/ [post]
func UploadFile(c *gin.Context) {
	maxBytes := GetConfig(c).Upload.MaxUploadBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		metrics.RecordUpload(metrics.UploadRejected, 0)
		if errors.Is(err, http.ErrNotMultipart) {
			httputil.Text(c, http.StatusBadRequest, MsgSingleFile)
			return
		}
		_ = c.Error(parseFormError(err, maxBytes))
		return
	}
	form := c.Request.MultipartForm
	defer func() {
		if err := form.RemoveAll(); err != nil {
			logger.Warn("清理上传临时文件失败", "error", err)
		}
	}()

	if countFiles(form) != 1 {
		metrics.RecordUpload(metrics.UploadRejected, 0)
		httputil.Text(c, http.StatusBadRequest, MsgSingleFile)
		return
	}

	headers := form.File[UploadFileField]
	if len(headers) == 0 {
		metrics.RecordUpload(metrics.UploadRejected, 0)
		_ = c.Error(apperrors.NewServiceError(apperrors.ErrorCodeInvalidRequest,
			"the file must be sent in the "+UploadFileField+" field"))
		return
	}
	header := headers[0]

	f, err := header.Open()
	if err != nil {
		metrics.RecordUpload(metrics.UploadError, 0)
		_ = c.Error(apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInternalError, "failed to open uploaded file", err))
		return
	}
	defer f.Close()

	var dir string
	if values := form.Value[UploadPathField]; len(values) > 0 {
		dir = values[0]
	}

	result, err := GetFileService(c).Upload(c.Request.Context(), contracts.UploadRequest{
		Dir:      dir,
		FileName: header.Filename,
		Size:     header.Size,
		Content:  f,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	httputil.Success(c, result)
}

// countFiles 统计所有字段中的文件数量
func countFiles(form *multipart.Form) int {
	n := 0
	for _, files := range form.File {
		n += len(files)
	}
	return n
}

// parseFormError 区分请求体超限和格式错误
func parseFormError(err error, maxBytes int64) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
		return apperrors.NewServiceErrorWithDetails(apperrors.ErrorCodePayloadTooLarge,
			"request body exceeds the upload limit",
			map[string]interface{}{"limit": maxBytes})
	}
	return apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInvalidRequest, "invalid multipart form", err)
}
