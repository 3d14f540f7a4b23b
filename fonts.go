package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// builtinFonts maps every token to a face of the Go font family. Paths in
// the [fonts] config table replace them.
var builtinFonts = map[FontToken][]byte{
	FontDefault: gomedium.TTF,
	FontSans:    goregular.TTF,
	FontSerif:   gosmallcaps.TTF,
	FontMono:    gomono.TTF,
	FontInter:   gomedium.TTF,
	FontPoppins: gobold.TTF,
	FontRoboto:  goregular.TTF,
}

// FontRegistry parses fonts once and hands out faces per size.
type FontRegistry struct {
	mu        sync.Mutex
	overrides map[FontToken]string
	parsed    map[FontToken]*truetype.Font
}

// NewFontRegistry creates a registry. overrides maps token names to TTF files.
func NewFontRegistry(overrides map[string]string) *FontRegistry {
	r := &FontRegistry{
		overrides: map[FontToken]string{},
		parsed:    map[FontToken]*truetype.Font{},
	}
	for name, path := range overrides {
		token, ok := ParseFontToken(name)
		if !ok {
			Logger().Warn("unknown font token in config", "token", name)
			continue
		}
		r.overrides[token] = path
	}
	return r
}

// Font returns the parsed font for a token. A broken override falls back to
// the built-in face.
func (r *FontRegistry) Font(token FontToken) (*truetype.Font, error) {
	if token < 0 || token >= numFonts {
		token = FontDefault
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.parsed[token]; ok {
		return f, nil
	}

	if path, ok := r.overrides[token]; ok {
		f, err := parseFontFile(path)
		if err == nil {
			r.parsed[token] = f
			return f, nil
		}
		Logger().Warn("font override failed, using built-in", "token", token.String(), "err", err)
	}

	f, err := truetype.Parse(builtinFonts[token])
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", token, err)
	}
	r.parsed[token] = f
	return f, nil
}

// Face creates a face at size pixels. Faces are not safe for concurrent use,
// so every caller gets its own.
func (r *FontRegistry) Face(token FontToken, size float64) (font.Face, error) {
	f, err := r.Font(token)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

func parseFontFile(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return f, nil
}
