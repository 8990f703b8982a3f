// Package model defines the Podcast and Episode values the archiver works
// with, and the pure functions that build them from feed data.
//
// # Podcast
//
// A Podcast is rebuilt on every run from the live feed plus configuration
// overrides. Overrides win over feed values when both are present:
//
//	p := model.NewPodcast(feedURL, doc, model.Overrides{
//	    Author: model.Some("NPR"),
//	    Keep:   10,
//	})
//
// # Episode
//
// NewEpisode normalizes a raw feed entry into an immutable Episode:
//
//	ep, err := model.NewEpisode(p, entry)
//	if errors.Is(err, model.ErrDateParse) {
//	    // skip this entry
//	}
//	fmt.Println(ep.Title, ep.ReleaseDate, ep.Filename)
//
// Title cleaning strips a "Listen Again: " rebroadcast prefix wherever it
// matches, even when the phrase is part of a real title. Episode filenames
// only have spaces replaced by underscores; other characters pass through.
package model
