// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Atomic file replacement (the catalog is rewritten after every episode)
//   - Folder name sanitization
//   - Directory creation
//   - Cover art resizing and JPEG conversion
//
// # File Operations
//
//	// Replace a file so readers see either the old or the new content
//	err := ioutils.WriteFileAtomic("/data/catalog.json", data)
//
//	// Ensure directory exists
//	err := ioutils.EnsureDir("/podcasts/NPR - Up First")
//
// # Image Processing
//
// The ImageService prepares cover art for embedding:
//
//	svc := ioutils.NewImageService()
//	cover, err := svc.PrepareCover(imageData, 1000)
package ioutils
