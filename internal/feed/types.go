package feed

import "fmt"

// Document is a fetched podcast feed.
type Document struct {
	Title      string
	Author     string
	Categories []string
	Subtitle   string
	WebsiteURL string
	ImageURL   string

	// Entries in the order the feed lists them.
	Entries []Entry
}

// Entry is one item of a feed.
type Entry struct {
	Title   string
	Summary string

	// Published is the raw publish timestamp; parsing is left to the caller.
	Published string

	// Links holds the entry's page links followed by its enclosure URLs, so
	// Links[0] is usually the web page and Links[1] the media file.
	Links []string

	ImageURL string
}

// FetchError reports a feed that could not be retrieved or parsed.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch feed %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
