// Package download drives an archiving run.
//
// # Manager
//
// The Manager processes the configured podcasts one at a time:
//
//  1. Fetch the feed and build the Podcast
//  2. Reconcile the live entries against the catalog
//  3. For every planned episode, download audio and artwork
//  4. Write ID3 tags, then record the episode and persist the catalog
//  5. Regenerate the podcast playlist (optional)
//
// Nothing runs in parallel. A failure inside one episode skips that episode;
// a failure of one podcast is recorded in the Report and the run moves on.
//
// # Basic Usage
//
//	store, err := catalog.Open(settings.CatalogPath)
//	cat, err := store.Load()
//
//	manager := download.NewManager(settings, store, logger)
//	report, err := manager.Run(ctx, cat)
//
// # Retry Logic
//
// Each asset is attempted up to settings.Download.MaxAttempts times with no
// pause between attempts. A failed image leaves the episode without cover
// art; a failed audio download surfaces as a tag write error and the episode
// is not recorded.
package download
