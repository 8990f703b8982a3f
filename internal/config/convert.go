package config

import (
	"github.com/handiism/podcast-archiver/internal/audio"
	"github.com/handiism/podcast-archiver/internal/http"
	"github.com/handiism/podcast-archiver/internal/model"
)

// ToTagConfig converts settings to an audio.TagConfig.
func (s *Settings) ToTagConfig() *audio.TagConfig {
	cfg := audio.DefaultTagConfig()
	cfg.Version = byte(s.Tagging.ID3Version)
	return cfg
}

// ToHTTPOptions converts settings to http.Options.
func (s *Settings) ToHTTPOptions() http.Options {
	return http.Options{
		UserAgent: s.Download.UserAgent,
		Timeout:   s.Download.Timeout,
	}
}

// ToEpisodeOptions converts settings to model.EpisodeOptions.
func (s *Settings) ToEpisodeOptions() model.EpisodeOptions {
	return model.EpisodeOptions{
		AllowMissingImage: !s.Tagging.RequireEpisodeImage,
	}
}

// PlaylistFormat returns the configured playlist format. Validate has
// already rejected unknown names.
func (s *Settings) PlaylistFormat() audio.PlaylistFormat {
	format, _ := audio.ParsePlaylistFormat(s.Playlist.Format)
	return format
}
