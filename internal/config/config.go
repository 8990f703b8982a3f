package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds all configuration options.
type Settings struct {
	// Path is the output root; each podcast gets "<author> - <name>" below it.
	Path string `yaml:"path"`

	// CatalogPath is the JSON file recording downloaded episodes.
	CatalogPath string `yaml:"catalog"`

	Download  DownloadSettings  `yaml:"download"`
	Tagging   TaggingSettings   `yaml:"tagging"`
	Reconcile ReconcileSettings `yaml:"reconcile"`
	Playlist  PlaylistSettings  `yaml:"playlist"`
	Log       LogSettings       `yaml:"log"`

	Podcasts PodcastList `yaml:"podcasts"`
}

// DownloadSettings controls fetching of feeds and media.
type DownloadSettings struct {
	// MaxAttempts per asset. Retries are immediate.
	MaxAttempts int `yaml:"max_attempts"`

	// EpisodeDelay is the pause after each committed episode.
	EpisodeDelay time.Duration `yaml:"episode_delay"`

	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// TaggingSettings controls ID3 output.
type TaggingSettings struct {
	// ID3Version is 3 or 4.
	ID3Version int `yaml:"id3_version"`

	// CoverArtMaxSize bounds the embedded cover; 0 keeps the original size.
	CoverArtMaxSize int `yaml:"cover_art_max_size"`

	// RequireEpisodeImage makes an entry without image fail normalization.
	RequireEpisodeImage bool `yaml:"require_episode_image"`
}

// ReconcileSettings tunes the reconciliation engine.
type ReconcileSettings struct {
	RepeatLimit int `yaml:"repeat_limit"`
}

// PlaylistSettings controls per-podcast playlist files.
type PlaylistSettings struct {
	Create bool   `yaml:"create"`
	Format string `yaml:"format"` // m3u, pls, wpl
}

// LogSettings configures the operator log stream.
type LogSettings struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		CatalogPath: "./downloaded_episodes.json",
		Download: DownloadSettings{
			MaxAttempts:  5,
			EpisodeDelay: 100 * time.Second,
			Timeout:      60 * time.Second,
			UserAgent:    "podcast-archiver",
		},
		Tagging: TaggingSettings{
			ID3Version:          3,
			CoverArtMaxSize:     1000,
			RequireEpisodeImage: true,
		},
		Reconcile: ReconcileSettings{
			RepeatLimit: 3,
		},
		Playlist: PlaylistSettings{
			Create: false,
			Format: "m3u",
		},
		Log: LogSettings{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads settings from a YAML file on top of DefaultSettings and
// validates them.
func Load(path string) (*Settings, error) {
	settings, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Read is Load without validation, for callers that apply overrides first.
func Read(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Decode(data)
}

// Parse decodes YAML settings on top of DefaultSettings and validates them.
func Parse(data []byte) (*Settings, error) {
	settings, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Decode decodes YAML settings on top of DefaultSettings.
func Decode(data []byte) (*Settings, error) {
	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return settings, nil
}
