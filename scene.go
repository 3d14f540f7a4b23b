package main

import (
	"fmt"
	"image"
)

// BackgroundKind tags the active background variant.
type BackgroundKind int

const (
	KindGradient BackgroundKind = iota
	KindSolid
	KindImage
)

func (k BackgroundKind) String() string {
	switch k {
	case KindGradient:
		return "gradient"
	case KindSolid:
		return "solid"
	case KindImage:
		return "image"
	default:
		return "unknown"
	}
}

// Background is one of Gradient, SolidColor or ImageBackground.
type Background interface {
	Kind() BackgroundKind
	isBackground()
}

// ColorStop is one stop of a gradient. Position is in [0,1].
type ColorStop struct {
	ColorHex string
	Position float64
}

// Gradient is a CSS style linear gradient with two or three stops.
type Gradient struct {
	Angle float64
	Stops []ColorStop
}

// SolidColor fills the surface with one color.
type SolidColor struct {
	ColorHex string
}

// ImageBackground places an image on the surface. Anchor and ScalePercent
// only exist on this variant.
type ImageBackground struct {
	Source       image.Image
	Name         string
	Anchor       Anchor
	ScalePercent int
	BackdropHex  string // painted under the image, empty is transparent
}

func (Gradient) Kind() BackgroundKind        { return KindGradient }
func (SolidColor) Kind() BackgroundKind      { return KindSolid }
func (ImageBackground) Kind() BackgroundKind { return KindImage }

func (Gradient) isBackground()        {}
func (SolidColor) isBackground()      {}
func (ImageBackground) isBackground() {}

// NewGradient spreads the colors evenly from 0 to 1.
func NewGradient(angle float64, colors ...string) Gradient {
	stops := make([]ColorStop, len(colors))
	for i, c := range colors {
		pos := 0.0
		if len(colors) > 1 {
			pos = float64(i) / float64(len(colors)-1)
		}
		stops[i] = ColorStop{ColorHex: c, Position: pos}
	}
	return Gradient{Angle: angle, Stops: stops}
}

// withStop returns a copy of the gradient with stop i recolored.
func (g Gradient) withStop(i int, hex string) Gradient {
	stops := make([]ColorStop, len(g.Stops))
	copy(stops, g.Stops)
	if i >= 0 && i < len(stops) {
		stops[i].ColorHex = hex
	}
	return Gradient{Angle: g.Angle, Stops: stops}
}

// DefaultGradient is the fallback whenever an image background goes away.
func DefaultGradient() Gradient {
	return NewGradient(defaultAngle, defaultGradientStops...)
}

// NewImageBackground wraps decoded pixels with the default placement.
func NewImageBackground(src image.Image, name string) ImageBackground {
	return ImageBackground{
		Source:       src,
		Name:         name,
		Anchor:       defaultAnchor,
		ScalePercent: defaultImageScale,
		BackdropHex:  defaultBackdrop,
	}
}

type TextElement struct {
	ID             string
	Content        string
	ColorHex       string
	OpacityPercent int
	FontSizePx     int
	Font           FontToken
	Position       Offset // accumulated offset from the surface center
}

// TextPatch carries optional field updates. It has no ID field, so an
// update can never rename an element.
type TextPatch struct {
	Content        *string
	ColorHex       *string
	OpacityPercent *int
	FontSizePx     *int
	Font           *FontToken
}

func (p TextPatch) apply(el *TextElement) {
	if p.Content != nil {
		el.Content = *p.Content
	}
	if p.ColorHex != nil {
		el.ColorHex = *p.ColorHex
	}
	if p.OpacityPercent != nil {
		el.OpacityPercent = *p.OpacityPercent
	}
	if p.FontSizePx != nil {
		el.FontSizePx = *p.FontSizePx
	}
	if p.Font != nil {
		el.Font = *p.Font
	}
}

// Scene is the whole composition of one editing session.
type Scene struct {
	Background       Background
	Texts            []TextElement
	SelectedID       string
	TextLayerVisible bool

	nextID int
}

// NewScene creates a scene with one default text element. With an image
// source the background is that image, otherwise the default gradient.
func NewScene(src image.Image, name string) *Scene {
	s := &Scene{TextLayerVisible: true}
	content := defaultGradientText
	if src != nil {
		s.Background = NewImageBackground(src, name)
		content = defaultImageText
	} else {
		s.Background = DefaultGradient()
	}
	s.AddTextElement(&TextPatch{Content: &content})
	return s
}

// SetBackground replaces the active background. A nil background or an
// image without pixels falls back to the default gradient.
func (s *Scene) SetBackground(bg Background) {
	switch b := bg.(type) {
	case nil:
		s.Background = DefaultGradient()
	case ImageBackground:
		if b.Source == nil {
			s.Background = DefaultGradient()
			return
		}
		s.Background = b
	default:
		s.Background = bg
	}
}

// RemoveBackgroundImage drops an image background in favour of the default
// gradient. Other backgrounds are left alone.
func (s *Scene) RemoveBackgroundImage() {
	if s.Background != nil && s.Background.Kind() == KindImage {
		s.Background = DefaultGradient()
	}
}

// AddTextElement appends a new element, selects it and returns its id.
func (s *Scene) AddTextElement(initial *TextPatch) string {
	s.nextID++
	id := fmt.Sprintf("text-%d", s.nextID)
	for s.indexOf(id) >= 0 {
		s.nextID++
		id = fmt.Sprintf("text-%d", s.nextID)
	}
	el := TextElement{
		ID:             id,
		Content:        newTextContent,
		ColorHex:       defaultTextColor,
		OpacityPercent: defaultOpacity,
		FontSizePx:     defaultFontSizePx,
		Font:           FontDefault,
	}
	if initial != nil {
		initial.apply(&el)
	}
	s.Texts = append(s.Texts, el)
	s.SelectedID = id
	return id
}

// RemoveTextElement deletes the element if present.
func (s *Scene) RemoveTextElement(id string) {
	i := s.indexOf(id)
	if i < 0 {
		return
	}
	s.Texts = append(s.Texts[:i], s.Texts[i+1:]...)
	if s.SelectedID == id {
		s.SelectedID = ""
	}
}

// UpdateTextElement merges the patch into the element if present.
func (s *Scene) UpdateTextElement(id string, patch TextPatch) {
	if el := s.Text(id); el != nil {
		patch.apply(el)
	}
}

// MoveTextElement adds the delta to the stored offset.
func (s *Scene) MoveTextElement(id string, dx, dy float64) {
	if el := s.Text(id); el != nil {
		el.Position = el.Position.Add(Offset{DX: dx, DY: dy})
	}
}

// Select changes the selection. An unknown id clears it.
func (s *Scene) Select(id string) {
	if s.indexOf(id) < 0 {
		s.SelectedID = ""
		return
	}
	s.SelectedID = id
}

func (s *Scene) SetTextLayerVisible(visible bool) {
	s.TextLayerVisible = visible
}

// Text returns a pointer to the element with the id, or nil.
func (s *Scene) Text(id string) *TextElement {
	if i := s.indexOf(id); i >= 0 {
		return &s.Texts[i]
	}
	return nil
}

// Selected returns the selected element, or nil.
func (s *Scene) Selected() *TextElement {
	if s.SelectedID == "" {
		return nil
	}
	return s.Text(s.SelectedID)
}

func (s *Scene) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.Texts {
		if s.Texts[i].ID == id {
			return i
		}
	}
	return -1
}

// gradientPresets are the stock to-bottom-right palettes of the panel.
var gradientPresets = []struct {
	Name   string
	Colors []string
}{
	{"sunset", []string{"#f97316", "#ef4444", "#a855f7"}},
	{"ocean", []string{"#60a5fa", "#3b82f6", "#2563eb"}},
	{"forest", []string{"#4ade80", "#22c55e", "#16a34a"}},
	{"lavender", []string{"#c084fc", "#a855f7", "#9333ea"}},
	{"midnight", []string{"#111827", "#1f2937", "#111827"}},
	{"sunrise", []string{"#facc15", "#f97316", "#ef4444"}},
}

const presetAngle = 135

// GradientPreset returns the named preset gradient.
func GradientPreset(name string) (Gradient, bool) {
	for _, p := range gradientPresets {
		if p.Name == name {
			return NewGradient(presetAngle, p.Colors...), true
		}
	}
	return Gradient{}, false
}
