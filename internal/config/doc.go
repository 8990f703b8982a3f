// Package config loads the archiver's YAML configuration.
//
// This package handles:
//   - Loading settings from a YAML file on top of defaults
//   - Validation
//   - Conversion to model.Overrides and the option structs of other packages
//
// # File Format
//
//	path: /srv/podcasts
//	catalog: ./downloaded_episodes.json
//	podcasts:
//	  up-first:
//	    feed: https://feeds.npr.org/510318/podcast.xml
//	    keep: 10
//	    author: NPR
//	    genre: [News]
//	    station: WAMU        # unknown keys are kept as attributes
//
// Podcasts are processed in the order they appear in the file.
//
// # Loading from File
//
//	settings, err := config.Load("config.yaml")
//	if err != nil {
//	    // missing file, bad YAML or failed validation
//	}
package config
