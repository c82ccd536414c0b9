package storage

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

const (
	MaxPictureSide     = 1024
	pictureJPEGQuality = 85
)

// NormalizePicture decodes an uploaded image, honours its EXIF orientation,
// fits it within MaxPictureSide and re-encodes it as JPEG.
func NormalizePicture(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode picture: %w", err)
	}

	b := img.Bounds()
	var out image.Image = img
	if b.Dx() > MaxPictureSide || b.Dy() > MaxPictureSide {
		out = imaging.Fit(img, MaxPictureSide, MaxPictureSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, out, imaging.JPEG, imaging.JPEGQuality(pictureJPEGQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode picture: %w", err)
	}
	return buf.Bytes(), nil
}
