package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/podcast-archiver/internal/catalog"
	"github.com/handiism/podcast-archiver/internal/config"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
<channel>
<title>Up First</title>
<itunes:author>NPR</itunes:author>
<item>
<title>Monday Edition</title>
<pubDate>Mon, 02 Jan 2023 05:00:00 -0500</pubDate>
<link>https://www.example.org/monday</link>
<enclosure url="%[1]s/monday.mp3" length="4" type="audio/mpeg"/>
<itunes:image href="%[1]s/missing.jpg"/>
</item>
</channel>
</rss>`

func writeConfig(t *testing.T, feedURL string) (configPath, catalogPath, root string) {
	t.Helper()
	dir := t.TempDir()
	root = filepath.Join(dir, "out")
	catalogPath = filepath.Join(dir, "catalog.json")
	configPath = filepath.Join(dir, "config.yaml")

	content := fmt.Sprintf(`path: %s
catalog: %s
download:
  episode_delay: 0s
  max_attempts: 1
log:
  level: error
podcasts:
  up-first:
    feed: %s
    keep: 5
`, root, catalogPath, feedURL)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return configPath, catalogPath, root
}

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed.xml":
			fmt.Fprintf(w, testFeed, srv.URL)
		case "/monday.mp3":
			w.Write([]byte{0xFF, 0xFB, 0x90, 0x64})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	srv := newFeedServer(t)
	configPath, catalogPath, root := writeConfig(t, srv.URL+"/feed.xml")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--config", configPath}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d, want %d; stderr:\n%s", code, exitOK, stderr.String())
	}

	if !strings.Contains(stdout.String(), "Up First") {
		t.Errorf("summary missing podcast row:\n%s", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(root, "NPR - Up First", "Monday_Edition.mp3")); err != nil {
		t.Errorf("episode not downloaded: %v", err)
	}

	store, err := catalog.Open(catalogPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	cat, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if record := cat.Find("Up First"); record == nil || len(record.Episodes) != 1 {
		t.Errorf("catalog record = %+v", record)
	}
}

func TestRun_DryRun(t *testing.T) {
	srv := newFeedServer(t)
	configPath, catalogPath, _ := writeConfig(t, srv.URL+"/feed.xml")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-c", configPath, "--dry-run"}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d; stderr:\n%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "PLANNED") {
		t.Errorf("dry-run summary should show planned column:\n%s", stdout.String())
	}
	if _, err := os.Stat(catalogPath); !os.IsNotExist(err) {
		t.Errorf("dry run wrote the catalog, stat err = %v", err)
	}
}

func TestRun_OutputFlagSuppliesPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("catalog: %s\npodcasts: {}\n", filepath.Join(dir, "catalog.json"))
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--config", configPath, "-o", filepath.Join(dir, "out")}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d, want %d; stderr:\n%s", code, exitOK, stderr.String())
	}

	code = run(context.Background(), []string{"--config", configPath}, &stdout, &stderr)
	if code != exitFailure {
		t.Errorf("run() without -o = %d, want %d", code, exitFailure)
	}
	if !strings.Contains(stderr.String(), "path: required") {
		t.Errorf("stderr = %q, want missing path reported", stderr.String())
	}
}

func TestRun_FlagValuesAreValidated(t *testing.T) {
	srv := newFeedServer(t)
	configPath, _, _ := writeConfig(t, srv.URL+"/feed.xml")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--config", configPath, "--catalog", " "}, &stdout, &stderr)
	if code != exitFailure {
		t.Errorf("run() = %d, want %d", code, exitFailure)
	}
	if !strings.Contains(stderr.String(), "catalog: required") {
		t.Errorf("stderr = %q, want blank catalog rejected", stderr.String())
	}
}

func TestRun_ExitCodes(t *testing.T) {
	srv := newFeedServer(t)

	t.Run("missing config", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}, &stdout, &stderr)
		if code != exitFailure {
			t.Errorf("run() = %d, want %d", code, exitFailure)
		}
	})

	t.Run("corrupt catalog", func(t *testing.T) {
		configPath, catalogPath, _ := writeConfig(t, srv.URL+"/feed.xml")
		if err := os.WriteFile(catalogPath, []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		var stdout, stderr bytes.Buffer
		if code := run(context.Background(), []string{"--config", configPath}, &stdout, &stderr); code != exitFailure {
			t.Errorf("run() = %d, want %d", code, exitFailure)
		}
	})

	t.Run("catalog locked", func(t *testing.T) {
		configPath, catalogPath, _ := writeConfig(t, srv.URL+"/feed.xml")
		held, err := catalog.Open(catalogPath)
		if err != nil {
			t.Fatal(err)
		}
		defer held.Close()

		var stdout, stderr bytes.Buffer
		if code := run(context.Background(), []string{"--config", configPath}, &stdout, &stderr); code != exitFailure {
			t.Errorf("run() = %d, want %d", code, exitFailure)
		}
	})

	t.Run("interrupted", func(t *testing.T) {
		configPath, _, _ := writeConfig(t, srv.URL+"/feed.xml")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var stdout, stderr bytes.Buffer
		if code := run(ctx, []string{"--config", configPath}, &stdout, &stderr); code != exitInterrupted {
			t.Errorf("run() = %d, want %d", code, exitInterrupted)
		}
	})
}

func TestOptions_Apply(t *testing.T) {
	opts, err := parseOptions([]string{"--output", "/mnt/pods", "--catalog", "/tmp/c.json", "--log-level", "debug", "--no-delay"})
	if err != nil {
		t.Fatalf("parseOptions() error = %v", err)
	}

	settings := config.DefaultSettings()
	settings.Path = "/srv/podcasts"
	opts.apply(settings)

	if settings.Path != "/mnt/pods" || settings.CatalogPath != "/tmp/c.json" {
		t.Errorf("paths = %q, %q", settings.Path, settings.CatalogPath)
	}
	if settings.Log.Level != "debug" || settings.Log.Format != "console" {
		t.Errorf("log = %+v", settings.Log)
	}
	if settings.Download.EpisodeDelay != 0 {
		t.Errorf("EpisodeDelay = %s, want 0", settings.Download.EpisodeDelay)
	}
}

func TestParseOptions_InvalidChoice(t *testing.T) {
	if _, err := parseOptions([]string{"--log-format", "xml"}); err == nil {
		t.Error("parseOptions() expected error for unknown log format")
	}
}
