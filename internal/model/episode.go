package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/handiism/podcast-archiver/internal/feed"
)

// Normalization failures. Each one is fatal for a single entry only.
var (
	ErrDateParse      = errors.New("unparseable publish date")
	ErrMalformedEntry = errors.New("malformed feed entry")
	ErrMissingImage   = errors.New("entry has no image")
)

// ReleaseDateLayout is the ISO calendar date format of Episode.ReleaseDate.
const ReleaseDateLayout = "2006-01-02"

// Episode is a normalized feed entry.
//
// Episode is a value: it is built once by NewEpisode, gets its track number
// through WithTrackNum, and is stored in the catalog as-is. The JSON form is
// the catalog record.
type Episode struct {
	// Title is the cleaned title and the de-duplication key.
	Title string `json:"title"`

	// Artist is the owning podcast's author.
	Artist string `json:"artist"`

	// Album is the owning podcast's name.
	Album string `json:"album"`

	Summary string `json:"summary"`

	// ReleaseDate is the publish date formatted as YYYY-MM-DD.
	ReleaseDate string `json:"release_date"`

	// Genre is the podcast genre list joined with ", ".
	Genre string `json:"genre"`

	// DownloadURL is the media link with its query string removed.
	DownloadURL string `json:"dl_url"`

	ImageURL string `json:"image_url"`
	TrackNum int    `json:"track_num"`

	Filename      string `json:"filename"`
	ImageFilename string `json:"imagename"`
}

// EpisodeOptions tunes NewEpisodeWith.
type EpisodeOptions struct {
	// AllowMissingImage turns ErrMissingImage into an episode without an
	// image URL.
	AllowMissingImage bool
}

// NewEpisode normalizes entry for podcast p. A missing image is an error.
func NewEpisode(p *Podcast, entry feed.Entry) (Episode, error) {
	return NewEpisodeWith(p, entry, EpisodeOptions{})
}

// NewEpisodeWith normalizes entry for podcast p.
//
// The returned error wraps ErrDateParse, ErrMalformedEntry or
// ErrMissingImage.
func NewEpisodeWith(p *Podcast, entry feed.Entry, opts EpisodeOptions) (Episode, error) {
	title := CleanTitle(entry.Title)

	releaseDate, err := ParseReleaseDate(entry.Published)
	if err != nil {
		return Episode{}, fmt.Errorf("episode %q: %w", title, err)
	}

	if len(entry.Links) < 2 {
		return Episode{}, fmt.Errorf("episode %q: %w: want at least 2 links, got %d", title, ErrMalformedEntry, len(entry.Links))
	}

	if entry.ImageURL == "" && !opts.AllowMissingImage {
		return Episode{}, fmt.Errorf("episode %q: %w", title, ErrMissingImage)
	}

	return Episode{
		Title:         title,
		Artist:        p.Author,
		Album:         p.Name,
		Summary:       entry.Summary,
		ReleaseDate:   releaseDate,
		Genre:         JoinGenre(p.Genre),
		DownloadURL:   CanonicalURL(entry.Links[1]),
		ImageURL:      entry.ImageURL,
		Filename:      FileName(title, ".mp3"),
		ImageFilename: FileName(title, ".jpg"),
	}, nil
}

// WithTrackNum returns a copy of e numbered n.
func (e Episode) WithTrackNum(n int) Episode {
	e.TrackNum = n
	return e
}

// HasImage reports whether the episode carries an image URL.
func (e Episode) HasImage() bool {
	return e.ImageURL != ""
}

var listenAgain = regexp.MustCompile(`Listen Again: (.*)`)

// CleanTitle strips a "Listen Again: " rebroadcast prefix.
//
// The pattern is not anchored: anything up to and including the first
// "Listen Again: " is dropped.
//
//	CleanTitle("Listen Again: Foo Bar") // "Foo Bar"
//	CleanTitle("Foo Bar")               // "Foo Bar"
func CleanTitle(raw string) string {
	if m := listenAgain.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// CanonicalURL drops everything from the first '?' on.
func CanonicalURL(raw string) string {
	base, _, _ := strings.Cut(raw, "?")
	return base
}

// ParseReleaseDate parses a free-form timestamp and returns its calendar
// date as YYYY-MM-DD. The time of day and zone are discarded; the date is the
// one written in the timestamp, not the UTC date.
func ParseReleaseDate(value string) (string, error) {
	t, err := dateparse.ParseIn(strings.TrimSpace(value), time.UTC)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrDateParse, value, err)
	}
	return t.Format(ReleaseDateLayout), nil
}

// JoinGenre flattens a tag list to a single "a, b" string.
func JoinGenre(genre []string) string {
	return strings.Join(genre, ", ")
}

// FileName replaces spaces in title with underscores and appends ext.
func FileName(title, ext string) string {
	return strings.ReplaceAll(title, " ", "_") + ext
}
