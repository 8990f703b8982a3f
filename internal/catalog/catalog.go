package catalog

import (
	"github.com/handiism/podcast-archiver/internal/model"
)

// Catalog is the full persisted record.
type Catalog struct {
	Podcasts []*Podcast `json:"podcasts"`
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{Podcasts: []*Podcast{}}
}

// Find returns the podcast record named name, or nil.
func (c *Catalog) Find(name string) *Podcast {
	for _, p := range c.Podcasts {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Add appends p unless a podcast with the same name exists, and returns the
// record stored in the catalog.
func (c *Catalog) Add(p *Podcast) *Podcast {
	if existing := c.Find(p.Name); existing != nil {
		return existing
	}
	c.Podcasts = append(c.Podcasts, p)
	return p
}

// Podcast is the catalog record of one podcast.
type Podcast struct {
	Name        string          `json:"name"`
	Author      string          `json:"author"`
	Description string          `json:"description"`
	Tags        []string        `json:"tags"`
	WebsiteURL  string          `json:"website_url"`
	FeedURL     string          `json:"feed_url"`
	ImageURL    string          `json:"image_url"`
	Episodes    []model.Episode `json:"episodes"`
}

// NewPodcast creates an empty record for p.
func NewPodcast(p *model.Podcast) *Podcast {
	tags := p.Genre
	if tags == nil {
		tags = []string{}
	}
	return &Podcast{
		Name:        p.Name,
		Author:      p.Author,
		Description: p.Description,
		Tags:        tags,
		WebsiteURL:  p.WebsiteURL,
		FeedURL:     p.FeedURL,
		ImageURL:    p.ImageURL,
		Episodes:    []model.Episode{},
	}
}

// HasTitle reports whether an episode titled exactly title is recorded.
func (p *Podcast) HasTitle(title string) bool {
	for _, ep := range p.Episodes {
		if ep.Title == title {
			return true
		}
	}
	return false
}

// Anchor returns the head episode's title and track number.
func (p *Podcast) Anchor() (string, int, bool) {
	if len(p.Episodes) == 0 {
		return "", 0, false
	}
	return p.Episodes[0].Title, p.Episodes[0].TrackNum, true
}

// Insert places ep at index pos, clamped to the list bounds.
func (p *Podcast) Insert(pos int, ep model.Episode) {
	pos = min(max(pos, 0), len(p.Episodes))
	p.Episodes = append(p.Episodes, model.Episode{})
	copy(p.Episodes[pos+1:], p.Episodes[pos:])
	p.Episodes[pos] = ep
}
