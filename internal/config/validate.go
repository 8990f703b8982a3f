package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/podcast-archiver/internal/audio"
)

// Validate checks settings for values the archiver cannot run with.
func (s *Settings) Validate() error {
	var errs []error

	if strings.TrimSpace(s.Path) == "" {
		errs = append(errs, errors.New("path: required"))
	}
	if strings.TrimSpace(s.CatalogPath) == "" {
		errs = append(errs, errors.New("catalog: required"))
	}
	if s.Download.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("download.max_attempts: must be at least 1, got %d", s.Download.MaxAttempts))
	}
	if s.Download.EpisodeDelay < 0 {
		errs = append(errs, fmt.Errorf("download.episode_delay: must not be negative, got %s", s.Download.EpisodeDelay))
	}
	if v := s.Tagging.ID3Version; v != 3 && v != 4 {
		errs = append(errs, fmt.Errorf("tagging.id3_version: must be 3 or 4, got %d", v))
	}
	if s.Tagging.CoverArtMaxSize < 0 {
		errs = append(errs, fmt.Errorf("tagging.cover_art_max_size: must not be negative, got %d", s.Tagging.CoverArtMaxSize))
	}
	if s.Reconcile.RepeatLimit < 1 {
		errs = append(errs, fmt.Errorf("reconcile.repeat_limit: must be at least 1, got %d", s.Reconcile.RepeatLimit))
	}
	if _, err := audio.ParsePlaylistFormat(s.Playlist.Format); err != nil {
		errs = append(errs, fmt.Errorf("playlist.format: %w", err))
	}

	seen := make(map[string]bool)
	for _, p := range s.Podcasts {
		if seen[p.Key] {
			errs = append(errs, fmt.Errorf("podcasts.%s: duplicate entry", p.Key))
		}
		seen[p.Key] = true

		if strings.TrimSpace(p.Feed) == "" {
			errs = append(errs, fmt.Errorf("podcasts.%s.feed: required", p.Key))
		}
		if p.Keep < 0 {
			errs = append(errs, fmt.Errorf("podcasts.%s.keep: must not be negative, got %d", p.Key, p.Keep))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
