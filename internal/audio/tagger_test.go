package audio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bogem/id3v2"
	"github.com/handiism/podcast-archiver/internal/model"
)

// fakeAudio stands in for MPEG frames; the tagger only rewrites the tag.
var fakeAudio = bytes.Repeat([]byte{0xFF, 0xFB, 0x90, 0x64}, 64)

func testEpisode() model.Episode {
	return model.Episode{
		Title:       "The Big Story",
		Artist:      "NPR",
		Album:       "Up First",
		Summary:     "What happened today.",
		ReleaseDate: "2023-01-02",
		Genre:       "News, Daily News",
		TrackNum:    7,
		Filename:    "The_Big_Story.mp3",
	}
}

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "episode.mp3")
	if err := os.WriteFile(path, fakeAudio, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTagger_WriteTags(t *testing.T) {
	path := writeAudio(t)
	cover := []byte{0xFF, 0xD8, 0xFF, 0xE0, 'j', 'p', 'g'}

	if err := NewTagger(nil).WriteTags(path, testEpisode(), cover); err != nil {
		t.Fatalf("WriteTags() error = %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("id3v2.Open() error = %v", err)
	}
	defer tag.Close()

	if tag.Version() != 3 {
		t.Errorf("Version() = %d, want 3", tag.Version())
	}

	checks := map[string]string{
		"title":  tag.Title(),
		"artist": tag.Artist(),
		"album":  tag.Album(),
		"genre":  tag.Genre(),
		"TRCK":   tag.GetTextFrame("TRCK").Text,
		"TYER":   tag.GetTextFrame("TYER").Text,
		"TDAT":   tag.GetTextFrame("TDAT").Text,
	}
	want := map[string]string{
		"title":  "The Big Story",
		"artist": "NPR",
		"album":  "Up First",
		"genre":  "News, Daily News",
		"TRCK":   "7",
		"TYER":   "2023",
		"TDAT":   "0201",
	}
	for k, w := range want {
		if checks[k] != w {
			t.Errorf("%s = %q, want %q", k, checks[k], w)
		}
	}

	comments := tag.GetFrames(tag.CommonID("Comments"))
	if len(comments) != 1 {
		t.Fatalf("got %d comment frames, want 1", len(comments))
	}
	if cf, ok := comments[0].(id3v2.CommentFrame); !ok || cf.Text != "What happened today." {
		t.Errorf("comment = %+v", comments[0])
	}

	pictures := tag.GetFrames(tag.CommonID("Attached picture"))
	if len(pictures) != 1 {
		t.Fatalf("got %d pictures, want 1", len(pictures))
	}
	if pf, ok := pictures[0].(id3v2.PictureFrame); !ok || !bytes.Equal(pf.Picture, cover) {
		t.Error("embedded cover does not match")
	}
}

func TestTagger_CoverMimeType(t *testing.T) {
	tests := []struct {
		name     string
		cover    []byte
		wantMime string // empty means no picture frame
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F'}, "image/jpeg"},
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), "image/png"},
		{"not an image", []byte("<html><body>Not Found</body></html>"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeAudio(t)
			if err := NewTagger(nil).WriteTags(path, testEpisode(), tt.cover); err != nil {
				t.Fatalf("WriteTags() error = %v", err)
			}

			tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
			if err != nil {
				t.Fatalf("id3v2.Open() error = %v", err)
			}
			defer tag.Close()

			pictures := tag.GetFrames(tag.CommonID("Attached picture"))
			if tt.wantMime == "" {
				if len(pictures) != 0 {
					t.Errorf("got %d pictures, want none", len(pictures))
				}
				return
			}
			if len(pictures) != 1 {
				t.Fatalf("got %d pictures, want 1", len(pictures))
			}
			if pf := pictures[0].(id3v2.PictureFrame); pf.MimeType != tt.wantMime {
				t.Errorf("MimeType = %q, want %q", pf.MimeType, tt.wantMime)
			}
		})
	}
}

func TestTagger_RewriteReplacesComment(t *testing.T) {
	path := writeAudio(t)
	tagger := NewTagger(nil)

	ep := testEpisode()
	if err := tagger.WriteTags(path, ep, nil); err != nil {
		t.Fatalf("first WriteTags() error = %v", err)
	}
	ep.Summary = "Corrected summary."
	if err := tagger.WriteTags(path, ep, nil); err != nil {
		t.Fatalf("second WriteTags() error = %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("id3v2.Open() error = %v", err)
	}
	defer tag.Close()

	comments := tag.GetFrames(tag.CommonID("Comments"))
	if len(comments) != 1 {
		t.Fatalf("got %d comment frames, want 1", len(comments))
	}
	if cf := comments[0].(id3v2.CommentFrame); cf.Text != "Corrected summary." {
		t.Errorf("comment = %q", cf.Text)
	}
	if n := len(tag.GetFrames(tag.CommonID("Attached picture"))); n != 0 {
		t.Errorf("got %d pictures, want none without cover", n)
	}
}

func TestTagger_Version4(t *testing.T) {
	path := writeAudio(t)
	if err := NewTagger(&TagConfig{Version: 4, Language: "eng"}).WriteTags(path, testEpisode(), nil); err != nil {
		t.Fatalf("WriteTags() error = %v", err)
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		t.Fatalf("id3v2.Open() error = %v", err)
	}
	defer tag.Close()

	if got := tag.GetTextFrame("TDRC").Text; got != "2023-01-02" {
		t.Errorf("TDRC = %q, want 2023-01-02", got)
	}
}

func TestTagger_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.mp3")

	err := NewTagger(nil).WriteTags(path, testEpisode(), nil)
	var tagErr *TagWriteError
	if !errors.As(err, &tagErr) {
		t.Fatalf("WriteTags() error = %v, want *TagWriteError", err)
	}
	if tagErr.Path != path {
		t.Errorf("TagWriteError.Path = %q, want %q", tagErr.Path, path)
	}
}
