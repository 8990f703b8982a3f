package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestClient_Get(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte("<rss/>"))
	}))
	defer srv.Close()

	client := NewClient(Options{UserAgent: "archiver-test"})
	body, err := client.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(body) != "<rss/>" {
		t.Errorf("Get() body = %q, want %q", body, "<rss/>")
	}
	if gotAgent != "archiver-test" {
		t.Errorf("User-Agent = %q, want %q", gotAgent, "archiver-test")
	}
}

func TestClient_GetStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewClient(Options{}).Get(context.Background(), srv.URL)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("Get() error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, http.StatusNotFound)
	}
}

func TestClient_DownloadFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("audio-bytes"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "episode.mp3")
	n, err := NewClient(Options{}).DownloadFile(context.Background(), srv.URL, dest)
	if err != nil {
		t.Fatalf("DownloadFile() error = %v", err)
	}
	if n != int64(len("audio-bytes")) {
		t.Errorf("DownloadFile() written = %d, want %d", n, len("audio-bytes"))
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Errorf("file content = %q, want %q", data, "audio-bytes")
	}
	if _, err := os.Stat(dest + ".part"); !os.IsNotExist(err) {
		t.Errorf("part file should be gone, stat err = %v", err)
	}
}

func TestClient_DownloadFileFailureLeavesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "episode.mp3")
	if _, err := NewClient(Options{}).DownloadFile(context.Background(), srv.URL, dest); err == nil {
		t.Fatal("DownloadFile() expected error")
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Errorf("destination should not exist, stat err = %v", err)
	}
}
