// Package catalog persists the record of every podcast and every episode
// the archiver has downloaded.
//
// The catalog is a single JSON document. It is read once at start (a missing
// file yields an empty catalog) and rewritten in full, atomically, after each
// committed episode, so an interrupted run loses at most the episode in
// flight.
//
//	store, err := catalog.Open("downloaded_episodes.json")
//	if err != nil {
//	    return err // another run holds the lock
//	}
//	defer store.Close()
//
//	cat, err := store.Load()
//	entry := cat.Find("Up First")
//	entry.Insert(0, episode)
//	err = store.Save(cat)
//
// Open takes an exclusive advisory lock on "<path>.lock" so two runs never
// write the same catalog.
package catalog
