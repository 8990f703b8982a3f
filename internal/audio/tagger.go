package audio

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bogem/id3v2"
	"github.com/handiism/podcast-archiver/internal/model"
)

// TagWriteError reports a file whose tags could not be written.
type TagWriteError struct {
	Path string
	Err  error
}

func (e *TagWriteError) Error() string {
	return fmt.Sprintf("write tags to %s: %v", e.Path, e.Err)
}

func (e *TagWriteError) Unwrap() error {
	return e.Err
}

// TagConfig holds tagging configuration.
type TagConfig struct {
	// Version is the ID3v2 minor version to save with, 3 or 4.
	Version byte

	// Language is the ISO-639-2 code stored in the comment frame.
	Language string
}

// DefaultTagConfig returns ID3v2.3 with English comments.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		Version:  3,
		Language: "eng",
	}
}

// Tagger writes ID3 tags to MP3 files.
//
// Example:
//
//	tagger := NewTagger(DefaultTagConfig())
//	if err := tagger.WriteTags(path, episode, cover); err != nil {
//	    var tagErr *TagWriteError
//	    errors.As(err, &tagErr)
//	}
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// WriteTags rewrites the ID3 tag of the MP3 at path in place.
//
// cover is embedded as the front cover when non-nil. The file must exist;
// every failure is returned as a *TagWriteError.
func (t *Tagger) WriteTags(path string, ep model.Episode, cover []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return &TagWriteError{Path: path, Err: err}
	}
	defer tag.Close()

	tag.SetVersion(t.config.Version)
	tag.SetDefaultEncoding(t.encoding())

	t.updateTextFrames(tag, ep)
	t.updateComment(tag, ep.Summary)
	if cover != nil {
		t.updateCover(tag, cover)
	}

	if err := tag.Save(); err != nil {
		return &TagWriteError{Path: path, Err: err}
	}
	return nil
}

// encoding returns the text encoding valid for the configured version;
// ID3v2.3 has no UTF-8.
func (t *Tagger) encoding() id3v2.Encoding {
	if t.config.Version == 4 {
		return id3v2.EncodingUTF8
	}
	return id3v2.EncodingUTF16
}

func (t *Tagger) updateTextFrames(tag *id3v2.Tag, ep model.Episode) {
	enc := t.encoding()

	tag.SetTitle(ep.Title)
	tag.SetArtist(ep.Artist)
	tag.SetAlbum(ep.Album)
	tag.SetGenre(ep.Genre)
	tag.AddTextFrame("TRCK", enc, strconv.Itoa(ep.TrackNum))

	for _, id := range []string{"TYER", "TDAT", "TDRC"} {
		tag.DeleteFrames(id)
	}
	released, err := time.Parse(model.ReleaseDateLayout, ep.ReleaseDate)
	if err != nil {
		return
	}
	if t.config.Version == 4 {
		tag.AddTextFrame("TDRC", enc, released.Format("2006-01-02"))
		return
	}
	tag.AddTextFrame("TYER", enc, released.Format("2006"))
	tag.AddTextFrame("TDAT", enc, released.Format("0201"))
}

// updateComment replaces all comments with a single summary comment.
func (t *Tagger) updateComment(tag *id3v2.Tag, summary string) {
	tag.DeleteFrames(tag.CommonID("Comments"))
	tag.AddCommentFrame(id3v2.CommentFrame{
		Encoding:    t.encoding(),
		Language:    t.config.Language,
		Description: "",
		Text:        summary,
	})
}

// updateCover embeds cover art as the front cover picture. The MIME type is
// sniffed from the data; anything that is not an image is left out.
func (t *Tagger) updateCover(tag *id3v2.Tag, cover []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	mimeType := http.DetectContentType(cover)
	if !strings.HasPrefix(mimeType, "image/") {
		return
	}
	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    t.encoding(),
		MimeType:    mimeType,
		PictureType: id3v2.PTFrontCover,
		Description: "cover",
		Picture:     cover,
	})
}
