package download

import (
	"github.com/handiism/podcast-archiver/internal/model"
)

// PodcastReport summarizes one podcast of a run.
type PodcastReport struct {
	// Key is the podcast's config key; Name is the feed title once known.
	Key  string
	Name string

	New     int
	Repeats int
	Skipped int
	Failed  int

	// Planned holds the reconciled episodes in dry-run mode.
	Planned []model.Episode

	// Err is set when the podcast was aborted.
	Err error
}

// Status is a one-word outcome for summaries.
func (r PodcastReport) Status() string {
	switch {
	case r.Err != nil:
		return "failed"
	case r.Failed > 0 || r.Skipped > 0:
		return "partial"
	case r.New == 0 && len(r.Planned) == 0:
		return "up to date"
	default:
		return "ok"
	}
}

// DisplayName is Name, falling back to Key before the feed was read.
func (r PodcastReport) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Key
}

// Report is the outcome of a whole run.
type Report struct {
	RunID    string
	DryRun   bool
	Podcasts []PodcastReport
}

// Totals sums the per-podcast counters.
func (r *Report) Totals() (added, repeats, skipped, failed int) {
	for _, p := range r.Podcasts {
		added += p.New
		repeats += p.Repeats
		skipped += p.Skipped
		failed += p.Failed
	}
	return added, repeats, skipped, failed
}

// FailedPodcasts counts podcasts that were aborted.
func (r *Report) FailedPodcasts() int {
	n := 0
	for _, p := range r.Podcasts {
		if p.Err != nil {
			n++
		}
	}
	return n
}
