// Package http provides the HTTP client used to fetch podcast feeds and
// episode media.
//
// The Client in this package handles:
//   - User-Agent headers (some podcast CDNs reject the Go default)
//   - Timeout handling
//   - Streaming downloads into a temporary ".part" file that is renamed
//     into place only once the body has been fully received
//
// # Basic Usage
//
//	client := http.NewClient(http.Options{UserAgent: "podcast-archiver"})
//
//	// Fetch a feed document
//	body, err := client.Get(ctx, "https://feeds.example.com/show.xml")
//
//	// Download an episode to disk
//	n, err := client.DownloadFile(ctx, mp3URL, "/podcasts/Show/Episode.mp3")
package http
