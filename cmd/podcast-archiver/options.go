package main

import (
	"errors"

	"github.com/jessevdk/go-flags"

	"github.com/handiism/podcast-archiver/internal/config"
)

// errHelp is returned by parseOptions after printing usage.
var errHelp = errors.New("help requested")

// options are the command-line flags. Set flags win over the config file.
type options struct {
	Config    string `short:"c" long:"config" env:"PODCAST_ARCHIVER_CONFIG" default:"config.yaml" description:"Path to the YAML config file"`
	Catalog   string `long:"catalog" env:"PODCAST_ARCHIVER_CATALOG" description:"Catalog file (overrides config)"`
	Output    string `short:"o" long:"output" env:"PODCAST_ARCHIVER_OUTPUT" description:"Output root directory (overrides config)"`
	LogLevel  string `long:"log-level" env:"PODCAST_ARCHIVER_LOG_LEVEL" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"Log level (overrides config)"`
	LogFormat string `long:"log-format" env:"PODCAST_ARCHIVER_LOG_FORMAT" choice:"console" choice:"json" description:"Log format (overrides config)"`
	DryRun    bool   `short:"n" long:"dry-run" description:"Reconcile and log the plan without downloading"`
	NoDelay   bool   `long:"no-delay" description:"Skip the pause between episodes"`
}

func parseOptions(args []string) (*options, error) {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "podcast-archiver"

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, errHelp
		}
		return nil, err
	}
	return &opts, nil
}

// apply copies set flags onto settings.
func (o *options) apply(settings *config.Settings) {
	if o.Catalog != "" {
		settings.CatalogPath = o.Catalog
	}
	if o.Output != "" {
		settings.Path = o.Output
	}
	if o.LogLevel != "" {
		settings.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		settings.Log.Format = o.LogFormat
	}
	if o.NoDelay {
		settings.Download.EpisodeDelay = 0
	}
}
