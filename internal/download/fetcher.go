package download

import (
	"context"
	"fmt"
	"log/slog"
)

// Downloader saves the body of url to destPath.
type Downloader interface {
	DownloadFile(ctx context.Context, url, destPath string) (int64, error)
}

// AssetDownloadError is returned when every attempt to fetch an asset failed.
type AssetDownloadError struct {
	URL      string
	Path     string
	Attempts int
	Err      error
}

func (e *AssetDownloadError) Error() string {
	return fmt.Sprintf("download %s: gave up after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *AssetDownloadError) Unwrap() error {
	return e.Err
}

// Fetcher downloads media with a fixed number of immediate retries.
type Fetcher struct {
	client      Downloader
	maxAttempts int
	logger      *slog.Logger
}

// NewFetcher creates a Fetcher. maxAttempts below 1 is treated as 1.
func NewFetcher(client Downloader, maxAttempts int, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		client:      client,
		maxAttempts: max(maxAttempts, 1),
		logger:      logger,
	}
}

// Fetch downloads url to destPath and returns the number of bytes written.
func (f *Fetcher) Fetch(ctx context.Context, url, destPath string) (int64, error) {
	var err error
	attempts := 0
	for attempts < f.maxAttempts {
		attempts++

		var n int64
		n, err = f.client.DownloadFile(ctx, url, destPath)
		if err == nil {
			return n, nil
		}
		if ctx.Err() != nil {
			break
		}
		f.logger.Debug("download attempt failed",
			"url", url,
			"attempt", attempts,
			"max_attempts", f.maxAttempts,
			"err", err,
		)
	}

	return 0, &AssetDownloadError{URL: url, Path: destPath, Attempts: attempts, Err: err}
}
