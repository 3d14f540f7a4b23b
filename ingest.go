package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/h2non/filetype"
	"github.com/mitchellh/go-homedir"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned for files that are not a known image type.
var ErrNotImage = errors.New("not an image")

// LoadImageFile reads and decodes an image selected by the user. It returns
// the expanded path along with the pixels.
func LoadImageFile(path string) (image.Image, string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, path, fmt.Errorf("expand %s: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, expanded, fmt.Errorf("read image: %w", err)
	}
	img, err := DecodeImage(data)
	if err != nil {
		return nil, expanded, fmt.Errorf("%s: %w", expanded, err)
	}
	return img, expanded, nil
}

// DecodeImage sniffs and decodes in-memory image data.
func DecodeImage(data []byte) (image.Image, error) {
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode %s: %w", format, ErrUnsupportedImage)
	}
	return img, nil
}
