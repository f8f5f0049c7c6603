package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/easayliu/alist-filemanager/internal/infrastructure/storage"
	"github.com/easayliu/alist-filemanager/pkg/logger"
)

// API 后端用到的 S3 客户端方法,测试中可替换
type API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config S3 后端配置
type Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Prefix    string
	Overwrite bool
}

// Storage S3 兼容对象存储后端,目录由 "/" 分隔的 key 前缀模拟
type Storage struct {
	api       API
	bucket    string
	prefix    string
	overwrite bool
}

// New 按配置创建客户端,Endpoint 非空时使用 path-style 访问(MinIO 等)
func New(ctx context.Context, cfg Config) (*Storage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("S3存储已配置", "bucket", cfg.Bucket, "endpoint", cfg.Endpoint, "prefix", cfg.Prefix)
	return NewWithAPI(client, cfg), nil
}

// NewWithAPI 使用现成的客户端创建后端
func NewWithAPI(api API, cfg Config) *Storage {
	prefix := strings.Trim(cfg.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &Storage{
		api:       api,
		bucket:    cfg.Bucket,
		prefix:    prefix,
		overwrite: cfg.Overwrite,
	}
}

func (s *Storage) Type() string {
	return "s3"
}

func (s *Storage) key(p string) string {
	return s.prefix + strings.Trim(p, "/")
}

// dirKey 目录前缀,根目录为 prefix 本身
func (s *Storage) dirKey(p string) string {
	k := s.key(p)
	if k != "" && !strings.HasSuffix(k, "/") {
		k += "/"
	}
	return k
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	var nf *types.NotFound
	if errors.As(err, &nsk) || errors.As(err, &nf) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NotFound" || apiErr.ErrorCode() == "NoSuchKey")
}

func mapErr(op, p string, err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%s %q: %w", op, p, storage.ErrNotFound)
	}
	return fmt.Errorf("%s %q: %w", op, p, err)
}

// clean 拒绝越过根目录的路径
func clean(op, p string) (string, error) {
	cleaned, err := storage.CleanPath(p)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return cleaned, nil
}

func (s *Storage) ListDir(ctx context.Context, p string) ([]string, []string, error) {
	p, err := clean("list", p)
	if err != nil {
		return nil, nil, err
	}
	prefix := s.dirKey(p)
	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	}

	var dirs, files []string
	marker := false
	for {
		out, err := s.api.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, nil, mapErr("list", p, err)
		}
		for _, cp := range out.CommonPrefixes {
			name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(cp.Prefix), prefix), "/")
			if name != "" {
				dirs = append(dirs, name)
			}
		}
		for _, obj := range out.Contents {
			name := strings.TrimPrefix(aws.ToString(obj.Key), prefix)
			// 目录占位对象
			if name == "" {
				marker = true
				continue
			}
			files = append(files, name)
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}

	// 对象存储没有真正的目录,非根路径下什么都没有即视为不存在
	if len(dirs) == 0 && len(files) == 0 && p != "" && !marker {
		if _, err := s.head(ctx, p); err == nil {
			return nil, nil, fmt.Errorf("list %q: %w", p, storage.ErrNotDirectory)
		}
		return nil, nil, fmt.Errorf("list %q: %w", p, storage.ErrNotFound)
	}
	if dirs == nil {
		dirs = []string{}
	}
	if files == nil {
		files = []string{}
	}
	return dirs, files, nil
}

func (s *Storage) head(ctx context.Context, p string) (*s3.HeadObjectOutput, error) {
	return s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(p)),
	})
}

// isDir key 不是对象但存在以它为前缀的对象
func (s *Storage) isDir(ctx context.Context, p string) bool {
	out, err := s.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.bucket),
		Prefix:  aws.String(s.dirKey(p)),
		MaxKeys: aws.Int32(1),
	})
	return err == nil && aws.ToInt32(out.KeyCount) > 0
}

func (s *Storage) Size(ctx context.Context, p string) (int64, error) {
	p, err := clean("size", p)
	if err != nil {
		return 0, err
	}
	out, err := s.head(ctx, p)
	if err != nil {
		if isNotFound(err) && s.isDir(ctx, p) {
			return 0, nil
		}
		return 0, mapErr("size", p, err)
	}
	return aws.ToInt64(out.ContentLength), nil
}

// ModifiedTime 目录没有修改时间,返回零值
func (s *Storage) ModifiedTime(ctx context.Context, p string) (time.Time, error) {
	p, err := clean("modified_time", p)
	if err != nil {
		return time.Time{}, err
	}
	out, err := s.head(ctx, p)
	if err != nil {
		if isNotFound(err) && s.isDir(ctx, p) {
			return time.Time{}, nil
		}
		return time.Time{}, mapErr("modified_time", p, err)
	}
	return aws.ToTime(out.LastModified), nil
}

func (s *Storage) exists(ctx context.Context, p string) (bool, error) {
	_, err := s.head(ctx, p)
	switch {
	case err == nil:
		return true, nil
	case isNotFound(err):
		return false, nil
	default:
		return false, err
	}
}

func (s *Storage) Save(ctx context.Context, p string, content io.Reader) (string, error) {
	p, err := clean("save", p)
	if err != nil {
		return "", err
	}
	target := p
	if !s.overwrite {
		if target, err = storage.AvailableName(ctx, p, s.exists); err != nil {
			return "", mapErr("save", p, err)
		}
	}

	size := storage.ReaderSize(content)
	if size < 0 {
		// 不可 Seek 的流无法签名,先读入内存
		data, err := io.ReadAll(storage.ContextReader(ctx, content))
		if err != nil {
			return "", mapErr("save", target, err)
		}
		content, size = bytes.NewReader(data), int64(len(data))
	}

	_, err = s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(s.key(target)),
		Body:          content,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", mapErr("save", target, err)
	}

	logger.Debug("S3对象已写入", "key", s.key(target), "size", size)
	return path.Base(target), nil
}
