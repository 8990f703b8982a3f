package audio

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/handiism/podcast-archiver/internal/catalog"
	ioutils "github.com/handiism/podcast-archiver/internal/io"
	"github.com/handiism/podcast-archiver/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// FormatM3U creates extended .m3u files (most compatible).
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL
)

// ParsePlaylistFormat maps "m3u", "pls" or "wpl" to a PlaylistFormat.
func ParsePlaylistFormat(name string) (PlaylistFormat, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "m3u":
		return FormatM3U, nil
	case "pls":
		return FormatPLS, nil
	case "wpl":
		return FormatWPL, nil
	default:
		return FormatM3U, fmt.Errorf("unsupported playlist format %q", name)
	}
}

// Extension returns the file extension for the playlist format, including the dot.
func (pf PlaylistFormat) Extension() string {
	switch pf {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	default:
		return ".m3u"
	}
}

// PlaylistCreator generates a playlist of every recorded episode of a
// podcast, ordered by track number.
//
// Entries are bare filenames; the playlist is written into the podcast's
// folder next to the episodes.
type PlaylistCreator struct {
	format PlaylistFormat
}

// NewPlaylistCreator creates a new PlaylistCreator.
func NewPlaylistCreator(format PlaylistFormat) *PlaylistCreator {
	return &PlaylistCreator{format: format}
}

// FileName returns the playlist filename for a podcast record.
func (p *PlaylistCreator) FileName(record *catalog.Podcast) string {
	return ioutils.SanitizeFileName(record.Name) + p.format.Extension()
}

// CreatePlaylist generates playlist content for a podcast record.
func (p *PlaylistCreator) CreatePlaylist(record *catalog.Podcast) string {
	episodes := slices.Clone(record.Episodes)
	slices.SortStableFunc(episodes, func(a, b model.Episode) int {
		return cmp.Compare(a.TrackNum, b.TrackNum)
	})

	switch p.format {
	case FormatPLS:
		return createPLS(episodes)
	case FormatWPL:
		return createWPL(record.Name, episodes)
	default:
		return createM3U(episodes)
	}
}

// createM3U generates an extended M3U playlist. Durations are unknown and
// written as -1.
//
//	#EXTM3U
//	#EXTINF:-1,Artist - Title
//	Title.mp3
func createM3U(episodes []model.Episode) string {
	var sb strings.Builder
	sb.WriteString("#EXTM3U\n")
	for _, ep := range episodes {
		fmt.Fprintf(&sb, "#EXTINF:-1,%s - %s\n", ep.Artist, ep.Title)
		sb.WriteString(ep.Filename + "\n")
	}
	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=Title.mp3
//	Title1=Title
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func createPLS(episodes []model.Episode) string {
	var sb strings.Builder
	sb.WriteString("[playlist]\n")
	for i, ep := range episodes {
		idx := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", idx, ep.Filename)
		fmt.Fprintf(&sb, "Title%d=%s\n", idx, ep.Title)
		fmt.Fprintf(&sb, "Length%d=-1\n", idx)
	}
	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(episodes))
	sb.WriteString("Version=2\n")
	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func createWPL(title string, episodes []model.Episode) string {
	var sb strings.Builder
	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", xmlEscaper.Replace(title))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")
	for _, ep := range episodes {
		fmt.Fprintf(&sb, "      <media src=\"%s\"/>\n", xmlEscaper.Replace(ep.Filename))
	}
	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")
	return sb.String()
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)
