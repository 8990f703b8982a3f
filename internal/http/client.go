package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	// DefaultUserAgent is sent when Options.UserAgent is empty.
	DefaultUserAgent = "podcast-archiver"

	// DefaultTimeout bounds a single request when Options.Timeout is zero.
	DefaultTimeout = 60 * time.Second
)

// Options configures a Client.
type Options struct {
	// UserAgent is sent with every request.
	UserAgent string

	// Timeout bounds each request including reading the body.
	Timeout time.Duration
}

// Client wraps HTTP operations with podcast-host friendly configuration.
//
// Example usage:
//
//	client := NewClient(Options{})
//
//	// Fetch feed XML
//	data, err := client.Get(ctx, feedURL)
//
//	// Download audio
//	written, err := client.DownloadFile(ctx, mp3URL, "/path/to/file.mp3")
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client.
//
// Zero-valued options fall back to DefaultUserAgent and DefaultTimeout.
func NewClient(opts Options) *Client {
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		userAgent: opts.UserAgent,
	}
}

// StatusError is returned when the server answers with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: HTTP %d: %s", e.URL, e.StatusCode, e.Status)
}

// Get performs a GET request and returns the response body as bytes.
//
// Returns an error if:
//   - The request fails
//   - The response status is not 200 OK (a *StatusError)
//   - Reading the body fails
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return io.ReadAll(resp.Body)
}

// DownloadFile streams the body at url into destPath and returns the number
// of bytes written.
//
// The body is written to destPath+".part" first and renamed on success, so a
// failed or interrupted download never leaves a truncated file at destPath.
// An existing file at destPath is replaced.
func (c *Client) DownloadFile(ctx context.Context, url, destPath string) (int64, error) {
	resp, err := c.do(ctx, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	partPath := destPath + ".part"
	file, err := os.Create(partPath)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(file, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(partPath)
		return written, err
	}

	if err := os.Rename(partPath, destPath); err != nil {
		os.Remove(partPath)
		return written, err
	}
	return written, nil
}

func (c *Client) do(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}
