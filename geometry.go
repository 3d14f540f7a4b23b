package main

import (
	"image"
	"math"
)

// Size is a surface size in device pixels.
type Size struct {
	W float64
	H float64
}

// Offset is a displacement in device pixels.
type Offset struct {
	DX float64
	DY float64
}

// Add returns the component-wise sum of two offsets.
func (o Offset) Add(other Offset) Offset {
	return Offset{DX: o.DX + other.DX, DY: o.DY + other.DY}
}

// IsZero reports whether the offset moves nothing.
func (o Offset) IsZero() bool {
	return o.DX == 0 && o.DY == 0
}

// Anchor is an image placement expressed as percentages of the surface.
type Anchor struct {
	X float64
	Y float64
}

// Point is an absolute position in device pixels.
type Point struct {
	X float64
	Y float64
}

// Translate moves the point by an offset.
func (p Point) Translate(o Offset) Point {
	return Point{X: p.X + o.DX, Y: p.Y + o.DY}
}

// Rect is an axis aligned rectangle in device pixels.
type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

// Center returns the middle of the surface, the origin of every text offset.
func (s Size) Center() Point {
	return Point{X: s.W / 2, Y: s.H / 2}
}

// Scale multiplies both dimensions by k.
func (s Size) Scale(k float64) Size {
	return Size{W: s.W * k, H: s.H * k}
}

// Empty reports whether the surface has no drawable area.
func (s Size) Empty() bool {
	return s.W <= 0 || s.H <= 0
}

// Pixels returns the integer bitmap dimensions for the size.
func (s Size) Pixels() (int, int) {
	return int(math.Round(s.W)), int(math.Round(s.H))
}

// ExportSize is the bitmap size produced when the surface is captured at scale.
func ExportSize(surface Size, scale float64) Size {
	return surface.Scale(scale)
}

// Placement mirrors the CSS background-position / background-size pair.
type Placement struct {
	PositionX   float64 // background-position x, percent
	PositionY   float64 // background-position y, percent
	SizePercent float64 // background-size, percent of surface width
}

// PlacementToCSS converts an image anchor and scale into a placement.
// Values are passed through untouched; clamping is the caller's job.
func PlacementToCSS(anchor Anchor, scalePercent int) Placement {
	return Placement{
		PositionX:   anchor.X,
		PositionY:   anchor.Y,
		SizePercent: float64(scalePercent),
	}
}

// ImageRect resolves the placement for an image of the given pixel size.
// The width is SizePercent of the surface width and the height keeps the
// image aspect ratio. The origin follows the percentage rule of CSS
// background-position: (surface - image) * pct / 100.
func (p Placement) ImageRect(surface Size, img image.Point) Rect {
	w := surface.W * p.SizePercent / 100
	h := w
	if img.X > 0 {
		h = w * float64(img.Y) / float64(img.X)
	}
	return Rect{
		X: (surface.W - w) * p.PositionX / 100,
		Y: (surface.H - h) * p.PositionY / 100,
		W: w,
		H: h,
	}
}

// GradientLine returns the start and end points of a CSS linear-gradient
// with the given angle in degrees (0 points up, 90 points right).
func GradientLine(surface Size, angle float64) (Point, Point) {
	rad := angle * math.Pi / 180
	dx, dy := math.Sin(rad), -math.Cos(rad)
	length := math.Abs(surface.W*math.Sin(rad)) + math.Abs(surface.H*math.Cos(rad))
	c := surface.Center()
	half := length / 2
	start := Point{X: c.X - dx*half, Y: c.Y - dy*half}
	end := Point{X: c.X + dx*half, Y: c.Y + dy*half}
	return start, end
}

// tileStart returns the first tile origin at or before zero for a tiled
// axis, so that repeating from it covers [0, extent).
func tileStart(origin, tile float64) float64 {
	if tile <= 0 {
		return origin
	}
	start := math.Mod(origin, tile)
	if start > 0 {
		start -= tile
	}
	return start
}
