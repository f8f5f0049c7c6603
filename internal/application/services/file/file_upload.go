package file

import (
	"context"
	"errors"
	"fmt"

	"github.com/easayliu/alist-filemanager/internal/application/contracts"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/filesystem"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/metrics"
	apperrors "github.com/easayliu/alist-filemanager/internal/shared/errors"
	"github.com/easayliu/alist-filemanager/pkg/logger"
)

// Upload 校验后保存单个文件到 join(Dir, FileName)
func (s *AppFileService) Upload(ctx context.Context, req contracts.UploadRequest) (*contracts.UploadResult, error) {
	result, err := s.upload(ctx, req)
	switch {
	case err == nil:
		metrics.RecordUpload(metrics.UploadSuccess, req.Size)
	case apperrors.CodeOf(err) == apperrors.ErrorCodeStorage:
		metrics.RecordUpload(metrics.UploadError, 0)
	default:
		metrics.RecordUpload(metrics.UploadRejected, 0)
	}
	return result, err
}

func (s *AppFileService) upload(ctx context.Context, req contracts.UploadRequest) (*contracts.UploadResult, error) {
	resolved, err := s.resolve(req.Dir)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateFileName(req.FileName); err != nil {
		logger.Warn("拒绝上传文件名", "filename", req.FileName, "error", err)
		return nil, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInvalidFilename, err.Error(), err)
	}

	if s.maxUploadBytes > 0 && req.Size > s.maxUploadBytes {
		return nil, apperrors.NewServiceErrorWithDetails(apperrors.ErrorCodePayloadTooLarge,
			fmt.Sprintf("file exceeds the %d byte upload limit", s.maxUploadBytes),
			map[string]interface{}{"size": req.Size, "limit": s.maxUploadBytes})
	}

	mimeType, content, err := s.validator.DetectMIME(req.Content)
	if err != nil {
		return nil, apperrors.NewServiceErrorWithCause(apperrors.ErrorCodeInvalidRequest, "failed to read uploaded file", err)
	}
	if err := s.validator.ValidateMIME(req.FileName, mimeType); err != nil {
		logger.Warn("拒绝上传文件类型", "filename", req.FileName, "mime", mimeType)
		code := apperrors.ErrorCodeUnsupportedMediaType
		if !errors.Is(err, filesystem.ErrMIMENotAllowed) {
			code = apperrors.ErrorCodeInvalidRequest
		}
		return nil, apperrors.NewServiceErrorWithCause(code, err.Error(), err)
	}

	target := resolved.Relative.Join(req.FileName).String()
	stored, err := s.storage.Save(ctx, target, content)
	if err != nil {
		return nil, storageError("save", target, err)
	}

	logger.Info("文件上传成功",
		"path", target,
		"stored_name", stored,
		"mime", mimeType,
		"size", req.Size,
		"backend", s.storage.Type())

	return &contracts.UploadResult{
		Files: []contracts.UploadedFile{{Name: req.FileName}},
	}, nil
}
