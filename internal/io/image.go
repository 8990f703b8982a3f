package ioutils

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageService prepares cover art for embedding in ID3 tags.
//
// Podcast artwork is often 3000x3000 PNG; embedding that in every episode
// wastes space and some players refuse oversized pictures.
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// PrepareCover returns data as a JPEG no larger than maxSize on either side.
//
// A maxSize of zero only converts. The result is always JPEG-encoded.
func (s *ImageService) PrepareCover(data []byte, maxSize int) ([]byte, error) {
	if maxSize > 0 {
		return s.ResizeImage(data, maxSize, maxSize)
	}
	return s.ConvertToJPEG(data)
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved and images that already fit keep their size.
// The Catmull-Rom kernel is used for scaling. Returns JPEG-encoded bytes.
//
// Example:
//
//	resized, err := svc.ResizeImage(imageData, 1000, 1000)
//	// A 1500x1000 image becomes 1000x666
//	// A 800x600 image remains 800x600 (but re-encoded)
func (s *ImageService) ResizeImage(data []byte, maxWidth, maxHeight int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	if width == bounds.Dx() && height == bounds.Dy() {
		return encodeJPEG(img)
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return encodeJPEG(dst)
}

// ConvertToJPEG re-encodes an image as JPEG at quality 90.
func (s *ImageService) ConvertToJPEG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return encodeJPEG(img)
}

func fitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}
	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		return max(int(float64(maxHeight)*ratio), 1), maxHeight
	}
	return maxWidth, max(int(float64(maxWidth)/ratio), 1)
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
