package main

import (
	"image"
	"image/color"
)

// Layout is the layered description of a composed surface. The background
// paints first, then text layers in order.
type Layout struct {
	Size       Size
	Scale      float64 // 1 for the editing surface, the export multiplier otherwise
	Background BackgroundLayer
	Texts      []TextLayer
}

// GradientStop is a resolved gradient color stop.
type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// BackgroundLayer is the full-bleed first layer.
type BackgroundLayer struct {
	Kind      BackgroundKind
	Fill      *color.NRGBA // solid color, or the backdrop under an image
	Start     Point        // gradient line start
	End       Point        // gradient line end
	Stops     []GradientStop
	Image     image.Image
	ImageRect Rect
	Repeat    bool
}

// TextLayer is the resolved style of one text element.
type TextLayer struct {
	ID         string
	Content    string
	Center     Point
	FontSize   float64
	Color      color.NRGBA
	Opacity    float64
	Font       FontToken
	WrapWidth  float64
	LineHeight float64

	// presentation only, never part of an export
	Outline   bool
	Transform Offset
}

// Position is where the layer is painted, including any in-flight transform.
func (t TextLayer) Position() Point {
	return t.Center.Translate(t.Transform)
}

// Compose maps a scene and a surface size to a layout. It has no side
// effects: the same input always yields the same layout.
func Compose(scene *Scene, size Size) Layout {
	l := Layout{Size: size, Scale: 1}
	if scene == nil {
		return l
	}
	l.Background = composeBackground(scene.Background, size)
	if !scene.TextLayerVisible {
		return l
	}
	center := size.Center()
	wrap := size.W - 2*surfacePadding
	if wrap < 0 {
		wrap = 0
	}
	l.Texts = make([]TextLayer, 0, len(scene.Texts))
	for _, el := range scene.Texts {
		l.Texts = append(l.Texts, TextLayer{
			ID:         el.ID,
			Content:    el.Content,
			Center:     center.Translate(el.Position),
			FontSize:   float64(el.FontSizePx),
			Color:      colorOr(el.ColorHex, defaultTextColor),
			Opacity:    float64(el.OpacityPercent) / 100,
			Font:       el.Font,
			WrapWidth:  wrap,
			LineHeight: lineHeightFactor,
			Outline:    el.ID == scene.SelectedID,
		})
	}
	return l
}

func composeBackground(bg Background, size Size) BackgroundLayer {
	switch b := bg.(type) {
	case Gradient:
		start, end := GradientLine(size, b.Angle)
		stops := make([]GradientStop, 0, len(b.Stops))
		for _, s := range b.Stops {
			stops = append(stops, GradientStop{Offset: s.Position, Color: colorOr(s.ColorHex, defaultSolidColor)})
		}
		return BackgroundLayer{Kind: KindGradient, Start: start, End: end, Stops: stops}
	case SolidColor:
		c := colorOr(b.ColorHex, defaultSolidColor)
		return BackgroundLayer{Kind: KindSolid, Fill: &c}
	case ImageBackground:
		layer := BackgroundLayer{Kind: KindImage, Image: b.Source, Repeat: true}
		if b.BackdropHex != "" {
			c := colorOr(b.BackdropHex, defaultBackdrop)
			layer.Fill = &c
		}
		if b.Source != nil {
			layer.ImageRect = PlacementToCSS(b.Anchor, b.ScalePercent).ImageRect(size, b.Source.Bounds().Size())
		}
		return layer
	default:
		return composeBackground(DefaultGradient(), size)
	}
}

func colorOr(hex, fallback string) color.NRGBA {
	c, err := ParseHex(hex)
	if err != nil {
		c, _ = ParseHex(fallback)
	}
	return c
}

// Scaled returns a copy of the layout with every coordinate and size
// multiplied by k. This is the single transform applied for export.
func (l Layout) Scaled(k float64) Layout {
	out := l.Clone()
	out.Size = l.Size.Scale(k)
	out.Scale = l.Scale * k
	bg := &out.Background
	bg.Start = Point{X: bg.Start.X * k, Y: bg.Start.Y * k}
	bg.End = Point{X: bg.End.X * k, Y: bg.End.Y * k}
	bg.ImageRect = Rect{X: bg.ImageRect.X * k, Y: bg.ImageRect.Y * k, W: bg.ImageRect.W * k, H: bg.ImageRect.H * k}
	for i := range out.Texts {
		t := &out.Texts[i]
		t.Center = Point{X: t.Center.X * k, Y: t.Center.Y * k}
		t.FontSize *= k
		t.WrapWidth *= k
		t.Transform = Offset{DX: t.Transform.DX * k, DY: t.Transform.DY * k}
	}
	return out
}

// Clone returns a copy that shares no slices with l. Image pixels are
// shared, they are never written.
func (l Layout) Clone() Layout {
	out := l
	if l.Background.Fill != nil {
		c := *l.Background.Fill
		out.Background.Fill = &c
	}
	if l.Background.Stops != nil {
		out.Background.Stops = append([]GradientStop(nil), l.Background.Stops...)
	}
	if l.Texts != nil {
		out.Texts = append([]TextLayer(nil), l.Texts...)
	}
	return out
}

// WithoutTexts returns the background-only part of the layout.
func (l Layout) WithoutTexts() Layout {
	out := l.Clone()
	out.Texts = nil
	return out
}

// Text returns the layer for an element id.
func (l Layout) Text(id string) (TextLayer, bool) {
	for _, t := range l.Texts {
		if t.ID == id {
			return t, true
		}
	}
	return TextLayer{}, false
}
