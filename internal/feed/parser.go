package feed

import (
	"bytes"
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"
)

// Source returns the feed document published at a URL.
type Source interface {
	Fetch(ctx context.Context, url string) (*Document, error)
}

// Getter retrieves raw bytes over HTTP.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Parser is a Source backed by gofeed.
type Parser struct {
	getter       Getter
	gofeedParser *gofeed.Parser
}

// NewParser creates a Parser that downloads feeds with getter.
func NewParser(getter Getter) *Parser {
	return &Parser{
		getter:       getter,
		gofeedParser: gofeed.NewParser(),
	}
}

// Fetch downloads and parses the feed at url.
//
// Every failure is returned as a *FetchError.
func (p *Parser) Fetch(ctx context.Context, url string) (*Document, error) {
	data, err := p.getter.Get(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	doc, err := p.Parse(data)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return doc, nil
}

// Parse converts raw feed bytes into a Document.
func (p *Parser) Parse(data []byte) (*Document, error) {
	parsed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	doc := &Document{
		Title:      parsed.Title,
		Author:     feedAuthor(parsed),
		Categories: feedCategories(parsed),
		Subtitle:   parsed.Description,
		ImageURL:   feedImage(parsed),
	}
	if parsed.ITunesExt != nil && parsed.ITunesExt.Subtitle != "" {
		doc.Subtitle = parsed.ITunesExt.Subtitle
	}
	doc.WebsiteURL = coalesce(parsed.Link, first(parsed.Links))

	doc.Entries = make([]Entry, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		doc.Entries = append(doc.Entries, normalizeItem(item))
	}
	return doc, nil
}

func normalizeItem(item *gofeed.Item) Entry {
	entry := Entry{
		Title:     item.Title,
		Summary:   item.Description,
		Published: item.Published,
	}
	if item.ITunesExt != nil {
		entry.Summary = coalesce(entry.Summary, item.ITunesExt.Summary)
	}

	// Page links first, enclosures after.
	entry.Links = appendUnique(entry.Links, item.Link)
	for _, link := range item.Links {
		entry.Links = appendUnique(entry.Links, link)
	}
	for _, enc := range item.Enclosures {
		if enc != nil {
			entry.Links = appendUnique(entry.Links, enc.URL)
		}
	}

	if item.Image != nil {
		entry.ImageURL = item.Image.URL
	}
	if entry.ImageURL == "" && item.ITunesExt != nil {
		entry.ImageURL = item.ITunesExt.Image
	}
	return entry
}

func feedAuthor(parsed *gofeed.Feed) string {
	for _, person := range parsed.Authors {
		if person != nil && person.Name != "" {
			return person.Name
		}
	}
	if parsed.ITunesExt != nil {
		return parsed.ITunesExt.Author
	}
	return ""
}

func feedCategories(parsed *gofeed.Feed) []string {
	var out []string
	for _, c := range parsed.Categories {
		out = appendUnique(out, c)
	}
	if parsed.ITunesExt != nil {
		for _, c := range parsed.ITunesExt.Categories {
			if c != nil {
				out = appendUnique(out, c.Text)
			}
		}
	}
	return out
}

func feedImage(parsed *gofeed.Feed) string {
	if parsed.Image != nil && parsed.Image.URL != "" {
		return parsed.Image.URL
	}
	if parsed.ITunesExt != nil {
		return parsed.ITunesExt.Image
	}
	return ""
}

func appendUnique(list []string, value string) []string {
	if value == "" {
		return list
	}
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

// coalesce returns the first non-empty string from the provided values
func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
