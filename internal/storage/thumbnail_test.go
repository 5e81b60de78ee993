package storage

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestThumbnail_ShrinksLargeImages(t *testing.T) {
	thumb, ok, err := Thumbnail("image/png", pngBytes(t, 1280, 640))
	require.NoError(t, err)
	require.True(t, ok)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.Equal(t, ThumbnailWidth, cfg.Width)
	assert.Equal(t, 160, cfg.Height)
}

func TestThumbnail_SkipsVideo(t *testing.T) {
	thumb, ok, err := Thumbnail("video/mp4", []byte("...."))
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, thumb)
}

func TestThumbnail_BadImage(t *testing.T) {
	_, ok, err := Thumbnail("image/jpeg", []byte("not an image"))
	assert.Error(t, err)
	assert.False(t, ok)
}
