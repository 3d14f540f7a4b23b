package main

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var editSize = Size{W: 800, H: 450}

func TestComposeIsPure(t *testing.T) {
	s := NewScene(nil, "")
	s.AddTextElement(nil)
	s.MoveTextElement(s.Texts[0].ID, 20, 30)

	a := Compose(s, editSize)
	b := Compose(s, editSize)
	assert.Equal(t, a, b)

	// the layout does not alias scene state
	a.Texts[0].Content = "changed"
	assert.NotEqual(t, "changed", s.Texts[0].Content)
}

func TestComposeOrderAndPosition(t *testing.T) {
	s := NewScene(nil, "")
	second := s.AddTextElement(nil)
	s.MoveTextElement(second, -100, 50)

	l := Compose(s, editSize)
	require.Len(t, l.Texts, 2)
	assert.Equal(t, s.Texts[0].ID, l.Texts[0].ID)
	assert.Equal(t, second, l.Texts[1].ID)
	assert.Equal(t, Point{X: 400, Y: 225}, l.Texts[0].Center)
	assert.Equal(t, Point{X: 300, Y: 275}, l.Texts[1].Center)
	assert.InDelta(t, 800-2*surfacePadding, l.Texts[0].WrapWidth, tol)
	assert.InDelta(t, lineHeightFactor, l.Texts[0].LineHeight, tol)
}

func TestComposeOutlineOnlyOnSelected(t *testing.T) {
	s := NewScene(nil, "")
	s.AddTextElement(nil)

	l := Compose(s, editSize)
	assert.False(t, l.Texts[0].Outline)
	assert.True(t, l.Texts[1].Outline)

	s.Select("")
	l = Compose(s, editSize)
	for _, tl := range l.Texts {
		assert.False(t, tl.Outline, tl.ID)
	}
}

func TestComposeResolvesStyle(t *testing.T) {
	s := NewScene(nil, "")
	id := s.Texts[0].ID
	hex := "#ff8000"
	opacity := 40
	font := FontMono
	s.UpdateTextElement(id, TextPatch{ColorHex: &hex, OpacityPercent: &opacity, Font: &font})

	tl, ok := Compose(s, editSize).Text(id)
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, tl.Color)
	assert.InDelta(t, 0.4, tl.Opacity, tol)
	assert.Equal(t, FontMono, tl.Font)
	assert.InDelta(t, float64(defaultFontSizePx), tl.FontSize, tol)
}

func TestComposeHiddenTextLayer(t *testing.T) {
	s := NewScene(nil, "")
	s.SetTextLayerVisible(false)
	l := Compose(s, editSize)
	assert.Empty(t, l.Texts)
	assert.Equal(t, KindGradient, l.Background.Kind)
}

func TestComposeBackgrounds(t *testing.T) {
	s := NewScene(nil, "")
	l := Compose(s, editSize)
	require.Len(t, l.Background.Stops, 3)
	assert.Equal(t, 0.0, l.Background.Stops[0].Offset)
	assert.Equal(t, 1.0, l.Background.Stops[2].Offset)

	s.SetBackground(SolidColor{ColorHex: "#102030"})
	l = Compose(s, editSize)
	require.NotNil(t, l.Background.Fill)
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, *l.Background.Fill)

	s.SetBackground(NewImageBackground(testImage(400, 200), "a.png"))
	l = Compose(s, editSize)
	assert.Equal(t, KindImage, l.Background.Kind)
	assert.True(t, l.Background.Repeat)
	assert.InDelta(t, 488, l.Background.ImageRect.W, tol)
	require.NotNil(t, l.Background.Fill)
}

func TestLayoutScaled(t *testing.T) {
	s := NewScene(nil, "")
	s.MoveTextElement(s.Texts[0].ID, 10, -5)
	l := Compose(s, editSize)
	l.Texts[0].Transform = Offset{DX: 4, DY: 2}

	k := l.Scaled(2)
	assert.Equal(t, Size{W: 1600, H: 900}, k.Size)
	assert.InDelta(t, 2, k.Scale, tol)
	assert.Equal(t, Point{X: 820, Y: 440}, k.Texts[0].Center)
	assert.Equal(t, Offset{DX: 8, DY: 4}, k.Texts[0].Transform)
	assert.InDelta(t, 72, k.Texts[0].FontSize, tol)

	// the source layout is untouched
	assert.Equal(t, Point{X: 410, Y: 220}, l.Texts[0].Center)
}

func TestLayoutCloneDoesNotShare(t *testing.T) {
	s := NewScene(nil, "")
	l := Compose(s, editSize)
	c := l.Clone()
	c.Texts[0].Content = "x"
	c.Background.Stops[0].Offset = 0.7
	assert.NotEqual(t, "x", l.Texts[0].Content)
	assert.Equal(t, 0.0, l.Background.Stops[0].Offset)
}
