// Package reconcile decides which entries of a live feed are new, in which
// order they are processed and which track number each one gets.
//
// # First run
//
// With no history the newest Keep entries are processed oldest first and
// numbered 1, 2, 3, ...
//
// # Continuing runs
//
// With history, entries are processed newest first. The head of the catalog
// episode list is the anchor: its track number and its index in the live
// feed give
//
//	trackNum = anchorTrack + anchorIndex - newEpisodeCounter
//
// The formula assumes contiguous numbering; feeds with gaps, reordering or
// several releases at once get misnumbered. If the anchor title is not in the
// feed any more, ErrAnchorNotFound is returned and nothing is planned.
//
// # Stopping
//
// An entry whose cleaned title is already known is a repeat. After
// RepeatLimit consecutive repeats scanning stops: feeds are newest first,
// so everything older is assumed known too.
package reconcile
