package model

import (
	"maps"

	"github.com/handiism/podcast-archiver/internal/feed"
)

// Podcast is one configured feed as seen on this run.
type Podcast struct {
	// Name is the feed title. It is never overridden by configuration and
	// is the key a podcast is looked up by in the catalog.
	Name string

	Author  string
	FeedURL string

	// Genre is the podcast's tag list.
	Genre []string

	// Keep is the maximum number of feed entries considered per run.
	// Zero means none.
	Keep int

	Description string
	WebsiteURL  string
	ImageURL    string

	// Attributes holds configuration keys the archiver has no field for.
	Attributes map[string]any
}

// Overrides are configuration values that take precedence over the feed.
// A nil pointer means "not configured".
type Overrides struct {
	Author     *string
	Genre      *[]string
	Keep       int
	Attributes map[string]any
}

// Some returns a pointer to v for use as a configured override.
func Some[T any](v T) *T {
	return &v
}

// Resolve returns *override when it is set, otherwise fallback.
func Resolve[T any](override *T, fallback T) T {
	if override != nil {
		return *override
	}
	return fallback
}

// NewPodcast builds a Podcast from a live feed document and overrides.
// The document's entries are not retained.
func NewPodcast(feedURL string, doc *feed.Document, o Overrides) *Podcast {
	genre := Resolve(o.Genre, doc.Categories)
	return &Podcast{
		Name:        doc.Title,
		Author:      Resolve(o.Author, doc.Author),
		FeedURL:     feedURL,
		Genre:       append([]string(nil), genre...),
		Keep:        o.Keep,
		Description: doc.Subtitle,
		WebsiteURL:  doc.WebsiteURL,
		ImageURL:    doc.ImageURL,
		Attributes:  maps.Clone(o.Attributes),
	}
}

// FolderName returns the directory name used for the podcast's files,
// "<author> - <name>".
func (p *Podcast) FolderName() string {
	return p.Author + " - " + p.Name
}
