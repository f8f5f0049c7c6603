package alist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"regexp"
	"strings"
	"sync"
	"testing"

	alistclient "github.com/easayliu/alist-filemanager/internal/infrastructure/alist"
	"github.com/easayliu/alist-filemanager/internal/infrastructure/storage"
)

type remoteEntry struct {
	size     int64
	isDir    bool
	modified string
}

// fakeAList 按路径保存条目的内存 AList
type fakeAList struct {
	mu      sync.Mutex
	entries map[string]remoteEntry
	puts    []string
}

func newFakeAList() *fakeAList {
	return &fakeAList{entries: map[string]remoteEntry{
		"/media":            {isDir: true},
		"/media/docs":       {isDir: true, modified: "2024-05-06T07:08:09Z"},
		"/media/report.pdf": {size: 4096, modified: "2024-05-06T07:08:09Z"},
		"/media/notes.txt":  {size: 10},
	}}
}

func (f *fakeAList) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	reply := func(code int, msg string, data interface{}) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": code, "message": msg, "data": data})
	}
	if r.Header.Get("Authorization") != "tok" {
		reply(401, "token is invalidated", nil)
		return
	}

	var req struct {
		Path string `json:"path"`
	}
	switch r.URL.Path {
	case "/api/fs/get":
		_ = json.NewDecoder(r.Body).Decode(&req)
		e, ok := f.entries[req.Path]
		if !ok {
			reply(500, "object not found", nil)
			return
		}
		reply(200, "success", map[string]interface{}{
			"name": path.Base(req.Path), "size": e.size, "is_dir": e.isDir, "modified": e.modified,
		})
	case "/api/fs/list":
		_ = json.NewDecoder(r.Body).Decode(&req)
		var content []map[string]interface{}
		// 与 AList 一致,目录和文件混合返回
		for _, name := range []string{"docs", "notes.txt", "report.pdf"} {
			if e, ok := f.entries[path.Join(req.Path, name)]; ok {
				content = append(content, map[string]interface{}{"name": name, "is_dir": e.isDir, "size": e.size})
			}
		}
		reply(200, "success", map[string]interface{}{"content": content, "total": len(content)})
	case "/api/fs/put":
		if r.Method != http.MethodPut {
			reply(405, "method not allowed", nil)
			return
		}
		p, _ := url.PathUnescape(r.Header.Get("File-Path"))
		data, _ := io.ReadAll(r.Body)
		f.entries[p] = remoteEntry{size: int64(len(data))}
		f.puts = append(f.puts, p)
		reply(200, "success", nil)
	default:
		http.NotFound(w, r)
	}
}

func newTestStorage(t *testing.T, overwrite bool) (*Storage, *fakeAList) {
	t.Helper()
	fake := newFakeAList()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	client := alistclient.NewClient(alistclient.Config{BaseURL: srv.URL, Token: "tok"})
	return New(client, "/media/", overwrite), fake
}

func TestStorage_ListDir(t *testing.T) {
	s, _ := newTestStorage(t, false)

	dirs, files, err := s.ListDir(context.Background(), "")
	if err != nil {
		t.Fatalf("ListDir() error = %v", err)
	}
	if strings.Join(dirs, ",") != "docs" {
		t.Errorf("dirs = %v", dirs)
	}
	if strings.Join(files, ",") != "notes.txt,report.pdf" {
		t.Errorf("files = %v", files)
	}

	if _, _, err := s.ListDir(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing dir error = %v, want ErrNotFound", err)
	}
	if _, _, err := s.ListDir(context.Background(), "notes.txt"); !errors.Is(err, storage.ErrNotDirectory) {
		t.Errorf("file list error = %v, want ErrNotDirectory", err)
	}
}

func TestStorage_SizeAndModifiedTime(t *testing.T) {
	s, _ := newTestStorage(t, false)
	ctx := context.Background()

	size, err := s.Size(ctx, "report.pdf")
	if err != nil || size != 4096 {
		t.Fatalf("Size() = %d, %v", size, err)
	}
	mtime, err := s.ModifiedTime(ctx, "report.pdf")
	if err != nil || mtime.Year() != 2024 {
		t.Fatalf("ModifiedTime() = %v, %v", mtime, err)
	}
}

func TestStorage_Save(t *testing.T) {
	suffixed := regexp.MustCompile(`^report_[0-9a-f]{7}\.pdf$`)

	tests := []struct {
		name      string
		overwrite bool
		target    string
		check     func(t *testing.T, stored string)
	}{
		{name: "新文件", target: "docs/new file.txt", check: func(t *testing.T, stored string) {
			if stored != "new file.txt" {
				t.Errorf("stored = %q", stored)
			}
		}},
		{name: "重名追加后缀", target: "report.pdf", check: func(t *testing.T, stored string) {
			if !suffixed.MatchString(stored) {
				t.Errorf("stored = %q, want suffixed name", stored)
			}
		}},
		{name: "覆盖模式保持原名", overwrite: true, target: "report.pdf", check: func(t *testing.T, stored string) {
			if stored != "report.pdf" {
				t.Errorf("stored = %q", stored)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, fake := newTestStorage(t, tt.overwrite)
			stored, err := s.Save(context.Background(), tt.target, strings.NewReader("payload"))
			if err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			tt.check(t, stored)
			if len(fake.puts) != 1 || !strings.HasPrefix(fake.puts[0], "/media/") {
				t.Errorf("puts = %v, want one upload under /media/", fake.puts)
			}
		})
	}
}

func TestStorage_OutsideRoot(t *testing.T) {
	s, fake := newTestStorage(t, false)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{name: "列举上级目录", call: func() error {
			_, _, err := s.ListDir(ctx, "..")
			return err
		}},
		{name: "大小", call: func() error {
			_, err := s.Size(ctx, "docs/../../secret.txt")
			return err
		}},
		{name: "修改时间", call: func() error {
			_, err := s.ModifiedTime(ctx, "../media2/report.pdf")
			return err
		}},
		{name: "保存", call: func() error {
			_, err := s.Save(ctx, "../escaped.txt", strings.NewReader("x"))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, storage.ErrOutsideRoot) {
				t.Errorf("error = %v, want ErrOutsideRoot", err)
			}
		})
	}
	if len(fake.puts) != 0 {
		t.Errorf("puts = %v, want none", fake.puts)
	}
}
