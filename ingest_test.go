package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeImage(t *testing.T) {
	img, err := DecodeImage(pngBytes(t, 3, 2, color.White))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(3, 2), img.Bounds().Size())

	_, err = DecodeImage([]byte("just some text, not pixels"))
	assert.ErrorIs(t, err, ErrNotImage)

	// a valid header with a broken body
	broken := pngBytes(t, 3, 2, color.White)[:40]
	_, err = DecodeImage(broken)
	assert.Error(t, err)
}

func TestLoadImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bg.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t, 4, 4, color.Black), 0o644))

	img, expanded, err := LoadImageFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, expanded)
	assert.Equal(t, 4, img.Bounds().Dx())

	_, _, err = LoadImageFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	notImage := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(notImage, []byte("hello"), 0o644))
	_, _, err = LoadImageFile(notImage)
	assert.ErrorIs(t, err, ErrNotImage)
}
