// Package audio writes episode metadata into MP3 files and builds
// per-podcast playlists.
//
// # ID3 Tagging
//
// Use the Tagger to write ID3 tags to a downloaded episode:
//
//	tagger := audio.NewTagger(audio.DefaultTagConfig())
//	err := tagger.WriteTags("/podcasts/NPR - Up First/Monday.mp3", episode, coverJPEG)
//
// The tagger writes:
//   - Title, Artist, Album, Genre
//   - Release date (TYER/TDAT for ID3v2.3, TDRC for ID3v2.4)
//   - Track number
//   - One comment holding the episode summary (older comments are removed)
//   - Cover art as the front cover picture, when provided
//
// ID3v2.3 is the default because many car stereos and older players ignore
// v2.4 tags.
//
// # Playlist Generation
//
//	creator := audio.NewPlaylistCreator(audio.FormatM3U)
//	content := creator.CreatePlaylist(record)
//
// Supported formats:
//   - M3U (extended)
//   - PLS
//   - WPL (Windows Media Player)
package audio
