// Package feed fetches podcast syndication documents and flattens them into
// the handful of fields the archiver needs.
//
// Parsing is delegated to gofeed, which understands RSS 2.0, Atom and the
// iTunes podcast extensions. The resulting Document keeps entries in feed
// order (newest first for every podcast host seen so far).
//
//	source := feed.NewParser(http.NewClient(http.Options{}))
//	doc, err := source.Fetch(ctx, "https://feeds.example.com/show.xml")
//	if err != nil {
//	    var fetchErr *feed.FetchError
//	    errors.As(err, &fetchErr)
//	}
//	fmt.Println(doc.Title, len(doc.Entries))
package feed
