package reconcile

import (
	"errors"
	"fmt"
	"slices"

	"github.com/handiism/podcast-archiver/internal/feed"
	"github.com/handiism/podcast-archiver/internal/model"
)

// DefaultRepeatLimit is the number of consecutive known entries after which
// scanning stops.
const DefaultRepeatLimit = 3

// ErrAnchorNotFound means the catalog's head episode is no longer in the live
// feed, so new episodes cannot be numbered safely.
var ErrAnchorNotFound = errors.New("anchor episode not found in feed")

// History is the catalog's record of a podcast.
type History interface {
	// HasTitle reports whether an episode with exactly this title exists.
	HasTitle(title string) bool

	// Anchor returns the title and track number of the head episode.
	// ok is false when there are no episodes.
	Anchor() (title string, trackNum int, ok bool)
}

// Skip is a feed entry that could not be normalized.
type Skip struct {
	// Index is the entry's position in the live feed.
	Index int
	Title string
	Err   error
}

// Plan is the outcome of reconciling one podcast.
type Plan struct {
	// FirstRun is true when there was no usable history.
	FirstRun bool

	// Episodes to download, in processing order, with track numbers.
	Episodes []model.Episode

	// Repeats lists the titles recognised as already downloaded.
	Repeats []string

	Skipped []Skip

	// Scanned is the number of entries examined.
	Scanned int

	// Stopped is true when scanning ended on the repeat limit.
	Stopped bool
}

// Engine reconciles live feeds against catalog history.
type Engine struct {
	// RepeatLimit defaults to DefaultRepeatLimit when zero.
	RepeatLimit int

	// Episode controls entry normalization.
	Episode model.EpisodeOptions
}

// NewEngine creates an Engine with the default repeat limit.
func NewEngine() *Engine {
	return &Engine{RepeatLimit: DefaultRepeatLimit}
}

// Reconcile plans the episodes of p to download from the live entries
// (newest first). history may be nil for a podcast never seen before.
func (e *Engine) Reconcile(p *model.Podcast, entries []feed.Entry, history History) (*Plan, error) {
	limit := e.RepeatLimit
	if limit <= 0 {
		limit = DefaultRepeatLimit
	}

	selected := entries[:min(max(p.Keep, 0), len(entries))]

	anchorTitle, anchorTrack, hasAnchor := "", 0, false
	if history != nil {
		anchorTitle, anchorTrack, hasAnchor = history.Anchor()
	}

	plan := &Plan{FirstRun: !hasAnchor}

	anchorIndex := 0
	if plan.FirstRun {
		selected = slices.Clone(selected)
		slices.Reverse(selected)
	} else {
		anchorIndex = indexOfTitle(entries, anchorTitle)
		if anchorIndex < 0 {
			return nil, fmt.Errorf("%w: %q", ErrAnchorNotFound, anchorTitle)
		}
	}

	planned := make(map[string]bool)
	known := func(title string) bool {
		if planned[title] {
			return true
		}
		return history != nil && history.HasTitle(title)
	}

	repeats := 0
	newEpisodes := 0
	for i, entry := range selected {
		plan.Scanned++

		ep, err := model.NewEpisodeWith(p, entry, e.Episode)
		if err != nil {
			feedIndex := i
			if plan.FirstRun {
				feedIndex = len(selected) - 1 - i
			}
			plan.Skipped = append(plan.Skipped, Skip{Index: feedIndex, Title: model.CleanTitle(entry.Title), Err: err})
			continue
		}

		if known(ep.Title) {
			plan.Repeats = append(plan.Repeats, ep.Title)
			repeats++
			if repeats >= limit {
				plan.Stopped = true
				break
			}
			continue
		}

		repeats = 0
		newEpisodes++

		trackNum := newEpisodes
		if !plan.FirstRun {
			trackNum = anchorTrack + anchorIndex - newEpisodes
		}

		planned[ep.Title] = true
		plan.Episodes = append(plan.Episodes, ep.WithTrackNum(trackNum))
	}

	return plan, nil
}

func indexOfTitle(entries []feed.Entry, title string) int {
	for i, entry := range entries {
		if model.CleanTitle(entry.Title) == title {
			return i
		}
	}
	return -1
}
