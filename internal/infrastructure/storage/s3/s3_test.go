package s3

import (
	"context"
	"errors"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/easayliu/alist-filemanager/internal/infrastructure/storage"
)

type object struct {
	data    string
	modTime time.Time
}

// fakeS3 按 key 保存对象,实现分隔符列举
type fakeS3 struct {
	objects map[string]object
	pageMax int
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	prefix := aws.ToString(in.Prefix)
	delim := aws.ToString(in.Delimiter)

	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	// 公共前缀在整个列举中只出现一次
	type entry struct {
		key      string
		isPrefix bool
	}
	var entries []entry
	seen := map[string]bool{}
	for _, k := range keys {
		rest := strings.TrimPrefix(k, prefix)
		if idx := strings.Index(rest, delim); delim != "" && idx >= 0 {
			cp := prefix + rest[:idx+1]
			if !seen[cp] {
				seen[cp] = true
				entries = append(entries, entry{key: cp, isPrefix: true})
			}
			continue
		}
		entries = append(entries, entry{key: k})
	}

	start := 0
	if in.ContinuationToken != nil {
		start, _ = strconv.Atoi(aws.ToString(in.ContinuationToken))
	}
	end := len(entries)
	out := &s3.ListObjectsV2Output{}
	if f.pageMax > 0 && start+f.pageMax < end {
		end = start + f.pageMax
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	}
	for _, e := range entries[start:end] {
		if e.isPrefix {
			out.CommonPrefixes = append(out.CommonPrefixes, types.CommonPrefix{Prefix: aws.String(e.key)})
		} else {
			out.Contents = append(out.Contents, types.Object{Key: aws.String(e.key)})
		}
	}
	out.KeyCount = aws.Int32(int32(end - start))
	return out, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	obj, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{
		ContentLength: aws.Int64(int64(len(obj.data))),
		LastModified:  aws.Time(obj.modTime),
	}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) != aws.ToInt64(in.ContentLength) {
		return nil, errors.New("content length mismatch")
	}
	f.objects[aws.ToString(in.Key)] = object{data: string(data), modTime: time.Now()}
	return &s3.PutObjectOutput{}, nil
}

var modTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestStorage(overwrite bool) (*Storage, *fakeS3) {
	fake := &fakeS3{objects: map[string]object{
		"media/":               {},
		"media/docs/":          {},
		"media/docs/a.txt":     {data: "aaa", modTime: modTime},
		"media/docs/sub/b.txt": {data: "b", modTime: modTime},
		"media/empty/":         {},
		"media/report.pdf":     {data: "report", modTime: modTime},
		"other/secret.txt":     {data: "nope"},
	}}
	return NewWithAPI(fake, Config{Bucket: "bucket", Prefix: "/media/", Overwrite: overwrite}), fake
}

func TestStorage_ListDir(t *testing.T) {
	s, fake := newTestStorage(false)

	tests := []struct {
		name      string
		path      string
		pageMax   int
		wantDirs  string
		wantFiles string
		wantErr   error
	}{
		{name: "根目录", path: "", wantDirs: "docs,empty", wantFiles: "report.pdf"},
		{name: "子目录跳过占位对象", path: "docs", wantDirs: "sub", wantFiles: "a.txt"},
		{name: "只有占位对象的空目录", path: "empty", wantDirs: "", wantFiles: ""},
		{name: "分页", path: "", pageMax: 1, wantDirs: "docs,empty", wantFiles: "report.pdf"},
		{name: "不存在", path: "missing", wantErr: storage.ErrNotFound},
		{name: "对文件列举", path: "report.pdf", wantErr: storage.ErrNotDirectory},
		{name: "越过前缀", path: "../other", wantErr: storage.ErrOutsideRoot},
		{name: "中间的上级目录", path: "docs/../../other", wantErr: storage.ErrOutsideRoot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake.pageMax = tt.pageMax
			dirs, files, err := s.ListDir(context.Background(), tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ListDir(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ListDir(%q) error = %v", tt.path, err)
			}
			if dirs == nil || files == nil {
				t.Fatalf("ListDir(%q) returned nil slices", tt.path)
			}
			if got := strings.Join(dirs, ","); got != tt.wantDirs {
				t.Errorf("dirs = %q, want %q", got, tt.wantDirs)
			}
			if got := strings.Join(files, ","); got != tt.wantFiles {
				t.Errorf("files = %q, want %q", got, tt.wantFiles)
			}
		})
	}
}

func TestStorage_SizeAndModifiedTime(t *testing.T) {
	s, _ := newTestStorage(false)
	ctx := context.Background()

	if size, err := s.Size(ctx, "docs/a.txt"); err != nil || size != 3 {
		t.Errorf("Size() = %d, %v; want 3", size, err)
	}
	if mt, err := s.ModifiedTime(ctx, "docs/a.txt"); err != nil || !mt.Equal(modTime) {
		t.Errorf("ModifiedTime() = %v, %v", mt, err)
	}
	if mt, err := s.ModifiedTime(ctx, "docs/sub"); err != nil || !mt.IsZero() {
		t.Errorf("directory ModifiedTime() = %v, %v; want zero time", mt, err)
	}
	if _, err := s.Size(ctx, "nothing.txt"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing Size() error = %v, want ErrNotFound", err)
	}
	if _, err := s.Size(ctx, "../other/secret.txt"); !errors.Is(err, storage.ErrOutsideRoot) {
		t.Errorf("Size() outside prefix error = %v, want ErrOutsideRoot", err)
	}
	if _, err := s.ModifiedTime(ctx, "../other/secret.txt"); !errors.Is(err, storage.ErrOutsideRoot) {
		t.Errorf("ModifiedTime() outside prefix error = %v, want ErrOutsideRoot", err)
	}
}

func TestStorage_Save(t *testing.T) {
	s, fake := newTestStorage(false)
	ctx := context.Background()

	name, err := s.Save(ctx, "docs/new.txt", strings.NewReader("hello"))
	if err != nil || name != "new.txt" {
		t.Fatalf("Save() = %q, %v", name, err)
	}
	if fake.objects["media/docs/new.txt"].data != "hello" {
		t.Errorf("object not stored under prefixed key")
	}

	// 不可 Seek 的输入会先缓冲
	name, err = s.Save(ctx, "report.pdf", io.MultiReader(strings.NewReader("v2")))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !regexp.MustCompile(`^report_[0-9a-f]{7}\.pdf$`).MatchString(name) {
		t.Errorf("stored name = %q, want suffixed name", name)
	}
	if fake.objects["media/report.pdf"].data != "report" {
		t.Error("existing object must not be overwritten")
	}

	if _, err := s.Save(ctx, "../other/secret.txt", strings.NewReader("x")); !errors.Is(err, storage.ErrOutsideRoot) {
		t.Errorf("Save() outside prefix error = %v, want ErrOutsideRoot", err)
	}
	if fake.objects["other/secret.txt"].data != "nope" {
		t.Error("object outside prefix must not be touched")
	}
}
