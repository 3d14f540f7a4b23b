package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/transform"
	"github.com/fogleman/gg"
)

// ErrUnsupportedImage is returned when an image layer has no usable pixels.
var ErrUnsupportedImage = errors.New("unsupported image source")

var outlineColor = color.NRGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff}

// RasterOptions configures a capture. A nil BackgroundColor keeps the alpha
// channel of the composition untouched.
type RasterOptions struct {
	Scale           float64
	BackgroundColor color.Color
}

// Rasterizer turns a rendered surface into a bitmap.
type Rasterizer interface {
	Rasterize(ctx context.Context, src Renderable, opts RasterOptions) (*Bitmap, error)
}

// Bitmap is a captured frame.
type Bitmap struct {
	dc *gg.Context
}

// Image returns the captured pixels.
func (b *Bitmap) Image() image.Image {
	return b.dc.Image()
}

// Size returns the bitmap dimensions in pixels.
func (b *Bitmap) Size() (int, int) {
	return b.dc.Width(), b.dc.Height()
}

// Encode serializes the bitmap as image/png or image/jpeg.
func (b *Bitmap) Encode(mimeType string) ([]byte, error) {
	var buf bytes.Buffer
	switch mimeType {
	case "", "image/png":
		if err := b.dc.EncodePNG(&buf); err != nil {
			return nil, fmt.Errorf("encode png: %w", err)
		}
	case "image/jpeg":
		if err := jpeg.Encode(&buf, b.dc.Image(), &jpeg.Options{Quality: 92}); err != nil {
			return nil, fmt.Errorf("encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported mime type %q", mimeType)
	}
	return buf.Bytes(), nil
}

// DataURL returns the bitmap as a data: URL.
func (b *Bitmap) DataURL(mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/png"
	}
	data, err := b.Encode(mimeType)
	if err != nil {
		return "", err
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// GGRasterizer draws layouts with fogleman/gg.
type GGRasterizer struct {
	Fonts *FontRegistry
}

func NewGGRasterizer(fonts *FontRegistry) *GGRasterizer {
	if fonts == nil {
		fonts = NewFontRegistry(nil)
	}
	return &GGRasterizer{Fonts: fonts}
}

var _ Rasterizer = (*GGRasterizer)(nil)

// Rasterize captures the current frame of src at opts.Scale. The scale is
// applied to the whole layout at once, so relative placement is identical
// to the editing surface.
func (r *GGRasterizer) Rasterize(ctx context.Context, src Renderable, opts RasterOptions) (*Bitmap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	frame, err := src.Frame()
	if err != nil {
		return nil, err
	}
	if frame.Size.Empty() {
		return nil, fmt.Errorf("capture: %w: surface has no area", ErrSurfaceDetached)
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	return r.Draw(ctx, frame.Scaled(scale), opts.BackgroundColor)
}

// Draw paints an already scaled layout.
func (r *GGRasterizer) Draw(ctx context.Context, l Layout, bg color.Color) (*Bitmap, error) {
	w, h := l.Size.Pixels()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("capture: %w: surface has no area", ErrSurfaceDetached)
	}
	dc := gg.NewContext(w, h)
	if bg != nil {
		dc.SetColor(bg)
		dc.Clear()
	}

	if err := r.drawBackground(dc, l); err != nil {
		return nil, err
	}
	for _, t := range l.Texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.drawText(dc, t, l.Scale); err != nil {
			return nil, err
		}
	}
	return &Bitmap{dc: dc}, nil
}

func (r *GGRasterizer) drawBackground(dc *gg.Context, l Layout) error {
	bg := l.Background
	switch bg.Kind {
	case KindGradient:
		if len(bg.Stops) == 0 {
			return nil
		}
		grad := gg.NewLinearGradient(bg.Start.X, bg.Start.Y, bg.End.X, bg.End.Y)
		for _, s := range bg.Stops {
			grad.AddColorStop(s.Offset, s.Color)
		}
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, l.Size.W, l.Size.H)
		dc.Fill()
	case KindSolid:
		if bg.Fill != nil {
			dc.SetColor(*bg.Fill)
			dc.DrawRectangle(0, 0, l.Size.W, l.Size.H)
			dc.Fill()
		}
	case KindImage:
		if bg.Fill != nil {
			dc.SetColor(*bg.Fill)
			dc.DrawRectangle(0, 0, l.Size.W, l.Size.H)
			dc.Fill()
		}
		if bg.Image == nil || bg.Image.Bounds().Empty() {
			return fmt.Errorf("capture background: %w", ErrUnsupportedImage)
		}
		drawTiled(dc, bg.Image, bg.ImageRect, l.Size, bg.Repeat)
	}
	return nil
}

func drawTiled(dc *gg.Context, src image.Image, rect Rect, size Size, repeat bool) {
	tw := int(math.Round(rect.W))
	th := int(math.Round(rect.H))
	if tw < 1 || th < 1 {
		return
	}
	tile := transform.Resize(src, tw, th, transform.Linear)
	if !repeat {
		dc.DrawImage(tile, int(math.Round(rect.X)), int(math.Round(rect.Y)))
		return
	}
	x0 := tileStart(rect.X, float64(tw))
	y0 := tileStart(rect.Y, float64(th))
	for y := y0; y < size.H; y += float64(th) {
		for x := x0; x < size.W; x += float64(tw) {
			dc.DrawImage(tile, int(math.Round(x)), int(math.Round(y)))
		}
	}
}

func (r *GGRasterizer) drawText(dc *gg.Context, t TextLayer, scale float64) error {
	if t.Content == "" || t.FontSize <= 0 {
		return nil
	}
	face, err := r.Fonts.Face(t.Font, t.FontSize)
	if err != nil {
		return fmt.Errorf("text %s: %w", t.ID, err)
	}
	dc.SetFontFace(face)

	lines := dc.WordWrap(t.Content, t.WrapWidth)
	lineHeight := t.FontSize * t.LineHeight
	pos := t.Position()
	top := pos.Y - lineHeight*float64(len(lines))/2

	// 0 2px 4px rgba(0,0,0,0.1), drawn on its own layer so the blur
	// cannot bleed into what is already painted
	shadow := gg.NewContext(dc.Width(), dc.Height())
	shadow.SetFontFace(face)
	shadow.SetColor(color.NRGBA{A: uint8(255 * shadowAlpha * t.Opacity)})
	drawLines(shadow, lines, pos.X, top+shadowOffsetY*scale, lineHeight)
	dc.DrawImage(blur.Gaussian(shadow.Image(), shadowBlurRadius*scale), 0, 0)

	dc.SetColor(withOpacity(t.Color, t.Opacity))
	drawLines(dc, lines, pos.X, top, lineHeight)

	if t.Outline {
		var width float64
		for _, line := range lines {
			lw, _ := dc.MeasureString(line)
			width = math.Max(width, lw)
		}
		pad := 8 * scale
		dc.SetColor(outlineColor)
		dc.SetLineWidth(outlineWidth * scale)
		dc.DrawRectangle(pos.X-width/2-pad, top-pad, width+2*pad, lineHeight*float64(len(lines))+2*pad)
		dc.Stroke()
	}
	return nil
}

func drawLines(dc *gg.Context, lines []string, cx, top, lineHeight float64) {
	for i, line := range lines {
		y := top + lineHeight*float64(i) + lineHeight/2
		dc.DrawStringAnchored(line, cx, y, 0.5, 0.5)
	}
}
