package alist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
)

// fakeServer 模拟 AList 的最小接口集合
type fakeServer struct {
	validToken string
	logins     atomic.Int32
	uploaded   map[string]string
}

func (f *fakeServer) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, code int, msg string, data interface{}) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"code": code, "message": msg, "data": data})
	}
	authed := func(r *http.Request) bool {
		return r.Header.Get("Authorization") == f.validToken
	}

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Username != "admin" || req.Password != "pw" {
			write(w, 400, "password is incorrect", nil)
			return
		}
		f.logins.Add(1)
		write(w, 200, "success", map[string]string{"token": f.validToken})
	})
	mux.HandleFunc("/api/fs/list", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			write(w, 401, "token is invalidated", nil)
			return
		}
		var req listRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Path != "/media" {
			write(w, 500, "object not found", nil)
			return
		}
		write(w, 200, "success", map[string]interface{}{
			"content": []FileItem{
				{Name: "docs", IsDir: true, Modified: "2024-01-02T03:04:05Z"},
				{Name: "a.txt", Size: 12, Modified: "2024-01-02T03:04:05.5+08:00"},
			},
			"total": 2,
		})
	})
	mux.HandleFunc("/api/fs/get", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		write(w, 200, "success", FileItem{Name: "a.txt", Size: 12})
	})
	mux.HandleFunc("/api/fs/put", func(w http.ResponseWriter, r *http.Request) {
		if !authed(r) {
			write(w, 401, "token is invalidated", nil)
			return
		}
		p, err := url.PathUnescape(r.Header.Get("File-Path"))
		if err != nil {
			t.Errorf("bad File-Path header: %v", err)
		}
		body, _ := io.ReadAll(r.Body)
		f.uploaded[p] = string(body)
		write(w, 200, "success", nil)
	})
	return mux
}

func newTestClient(t *testing.T, token string) (*Client, *fakeServer) {
	t.Helper()
	fake := &fakeServer{validToken: "good-token", uploaded: map[string]string{}}
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", Username: "admin", Password: "pw", Token: token}), fake
}

func TestClient_ListLogsInLazily(t *testing.T) {
	client, fake := newTestClient(t, "")

	items, err := client.List(context.Background(), "/media")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(items) != 2 || !items[0].IsDir || items[1].Size != 12 {
		t.Errorf("unexpected items: %+v", items)
	}
	if items[1].ModifiedTime().IsZero() {
		t.Error("expected parsed modified time")
	}
	if fake.logins.Load() != 1 {
		t.Errorf("logins = %d, want 1", fake.logins.Load())
	}
}

func TestClient_RelogsInOnExpiredToken(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Client) error
	}{
		{name: "业务码401", call: func(c *Client) error {
			_, err := c.List(context.Background(), "/media")
			return err
		}},
		{name: "HTTP状态401", call: func(c *Client) error {
			_, err := c.Get(context.Background(), "/media/a.txt")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, fake := newTestClient(t, "expired")
			if err := tt.call(client); err != nil {
				t.Fatalf("call error = %v", err)
			}
			if fake.logins.Load() != 1 {
				t.Errorf("logins = %d, want 1", fake.logins.Load())
			}
		})
	}
}

func TestClient_NotFound(t *testing.T) {
	client, _ := newTestClient(t, "good-token")

	_, err := client.List(context.Background(), "/missing")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestClient_Put(t *testing.T) {
	client, fake := newTestClient(t, "good-token")

	content := "hello alist"
	if err := client.Put(context.Background(), "/media/新 文件.txt", strings.NewReader(content), int64(len(content))); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if got := fake.uploaded["/media/新 文件.txt"]; got != content {
		t.Errorf("uploaded = %q, want %q", got, content)
	}
}

func TestClient_TokenOnlyCannotRelogin(t *testing.T) {
	fake := &fakeServer{validToken: "good-token", uploaded: map[string]string{}}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, Token: "expired"})
	if _, err := client.List(context.Background(), "/media"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
