package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"

	"github.com/nfnt/resize"
)

const (
	ThumbnailWidth  = 320
	thumbnailHeight = 320
)

// Thumbnail renders a JPEG preview that fits in ThumbnailWidth x 320.
// ok is false for content types we do not thumbnail (video, gif, webp...).
func Thumbnail(contentType string, data []byte) (thumb []byte, ok bool, err error) {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg", "image/png":
	default:
		return nil, false, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("thumbnail: decode: %w", err)
	}

	small := resize.Thumbnail(ThumbnailWidth, thumbnailHeight, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, small, &jpeg.Options{Quality: 80}); err != nil {
		return nil, false, fmt.Errorf("thumbnail: encode: %w", err)
	}
	return buf.Bytes(), true, nil
}
