package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTexts = ModeTexts{Gradient: defaultGradientText, Image: defaultImageText}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	return NewController(NewScene(nil, ""), NewSurface(editSize), testTexts)
}

func surfaceText(t *testing.T, c *Controller, id string) TextLayer {
	t.Helper()
	frame, err := c.Surface.Frame()
	require.NoError(t, err)
	tl, ok := frame.Text(id)
	require.True(t, ok, "layer %s", id)
	return tl
}

func TestSwitchModeRewritesSelectedContent(t *testing.T) {
	c := NewController(NewScene(testImage(8, 8), "a.png"), NewSurface(editSize), testTexts)
	id := c.Scene.Texts[0].ID
	require.Equal(t, id, c.Scene.SelectedID)
	require.Equal(t, BackgroundModeImage, c.Mode())

	c.SwitchMode(BackgroundModeGradient)
	assert.Equal(t, defaultGradientText, c.Scene.Text(id).Content)
	assert.Equal(t, KindGradient, c.Scene.Background.Kind())

	c.SwitchMode(BackgroundModeImage)
	assert.Equal(t, defaultImageText, c.Scene.Text(id).Content)
	assert.Equal(t, KindImage, c.Scene.Background.Kind())
}

func TestSwitchModeWithoutSelectionKeepsContent(t *testing.T) {
	c := newTestController(t)
	id := c.Scene.Texts[0].ID
	c.SetContent("mine")
	c.Select("")

	c.SwitchMode(BackgroundModeImage)
	assert.Equal(t, "mine", c.Scene.Text(id).Content)
	// nothing uploaded, the backdrop color shows
	assert.Equal(t, KindSolid, c.Scene.Background.Kind())
}

func TestSwitchModeToCurrentModeKeepsContent(t *testing.T) {
	c := newTestController(t)
	id := c.Scene.Texts[0].ID
	require.Equal(t, BackgroundModeGradient, c.Mode())
	c.SetContent("my own maxim")

	c.SwitchMode(BackgroundModeGradient)
	assert.Equal(t, "my own maxim", c.Scene.Text(id).Content)
	assert.Equal(t, KindGradient, c.Scene.Background.Kind())
}

func TestRefreshKeepsActiveDrag(t *testing.T) {
	c := newTestController(t)
	id := c.Scene.Texts[0].ID
	require.True(t, c.DragStart(id))
	c.DragUpdate(Offset{DX: 7, DY: 3})

	c.NudgeFontSize(fontSizeStepPx)
	assert.Equal(t, Offset{DX: 7, DY: 3}, surfaceText(t, c, id).Transform)

	c.DragEnd(Offset{DX: 7, DY: 3})
	c.Refresh()
	assert.True(t, surfaceText(t, c, id).Transform.IsZero())
}

func TestDragCommitsOnceOnEnd(t *testing.T) {
	c := newTestController(t)
	id := c.Scene.Texts[0].ID

	require.True(t, c.DragStart(id))
	c.DragUpdate(Offset{DX: 3, DY: 1})
	c.DragUpdate(Offset{DX: 10, DY: -5})
	assert.Equal(t, Offset{}, c.Scene.Text(id).Position, "updates are visual only")
	assert.Equal(t, Offset{DX: 10, DY: -5}, surfaceText(t, c, id).Transform)

	c.DragEnd(Offset{DX: 10, DY: -5})
	assert.Equal(t, Offset{DX: 10, DY: -5}, c.Scene.Text(id).Position)
	tl := surfaceText(t, c, id)
	assert.True(t, tl.Transform.IsZero())
	assert.Equal(t, Point{X: 410, Y: 220}, tl.Position())

	// a second zero drag changes nothing
	require.True(t, c.DragStart(id))
	c.DragEnd(Offset{})
	assert.Equal(t, Offset{DX: 10, DY: -5}, c.Scene.Text(id).Position)

	// ending twice does not commit twice
	c.DragEnd(Offset{DX: 10, DY: -5})
	assert.Equal(t, Offset{DX: 10, DY: -5}, c.Scene.Text(id).Position)
}

func TestDragCancel(t *testing.T) {
	c := newTestController(t)
	id := c.Scene.Texts[0].ID
	require.True(t, c.DragStart(id))
	c.DragUpdate(Offset{DX: 50, DY: 50})
	c.DragCancel()

	_, _, active := c.Dragging()
	assert.False(t, active)
	assert.Equal(t, Offset{}, c.Scene.Text(id).Position)
	assert.True(t, surfaceText(t, c, id).Transform.IsZero())
}

func TestDragRemovedElement(t *testing.T) {
	c := newTestController(t)
	id := c.Scene.Texts[0].ID
	assert.False(t, c.DragStart("text-404"))

	require.True(t, c.DragStart(id))
	c.RemoveText(id)
	c.DragUpdate(Offset{DX: 1, DY: 1})
	c.DragEnd(Offset{DX: 1, DY: 1})
	assert.Empty(t, c.Scene.Texts)
}

func TestTextControlsClamp(t *testing.T) {
	c := newTestController(t)
	id := c.Scene.Texts[0].ID

	c.SetFontSize(500)
	assert.Equal(t, maxFontSizePx, c.Scene.Text(id).FontSizePx)
	c.SetFontSize(1)
	assert.Equal(t, minFontSizePx, c.Scene.Text(id).FontSizePx)
	c.NudgeFontSize(fontSizeStepPx)
	assert.Equal(t, minFontSizePx+fontSizeStepPx, c.Scene.Text(id).FontSizePx)

	c.SetOpacity(150)
	assert.Equal(t, 100, c.Scene.Text(id).OpacityPercent)
	c.NudgeOpacity(-200)
	assert.Equal(t, 0, c.Scene.Text(id).OpacityPercent)

	require.NoError(t, c.SetTextColor("F80"))
	assert.Equal(t, "#ff8800", c.Scene.Text(id).ColorHex)
	assert.Error(t, c.SetTextColor("not a color"))
	assert.Equal(t, "#ff8800", c.Scene.Text(id).ColorHex)

	for i := 0; i < int(numFonts); i++ {
		c.CycleFont()
	}
	assert.Equal(t, FontDefault, c.Scene.Text(id).Font)
}

func TestSelectNextWraps(t *testing.T) {
	c := newTestController(t)
	first := c.Scene.Texts[0].ID
	second := c.AddText()
	assert.Equal(t, second, c.Scene.SelectedID)

	c.SelectNext()
	assert.Equal(t, first, c.Scene.SelectedID)
	c.SelectNext()
	assert.Equal(t, second, c.Scene.SelectedID)

	assert.True(t, surfaceText(t, c, second).Outline)
	assert.False(t, surfaceText(t, c, first).Outline)
}

func TestGradientControls(t *testing.T) {
	c := newTestController(t)

	c.SetGradientAngle(-10)
	assert.InDelta(t, 350, c.Gradient().Angle, tol)
	c.NudgeGradientAngle(20)
	assert.InDelta(t, 10, c.Gradient().Angle, tol)

	require.NoError(t, c.SetGradientStop(2, "#ABCDEF"))
	assert.Equal(t, "#abcdef", c.Gradient().Stops[2].ColorHex)
	assert.Error(t, c.SetGradientStop(7, "#000000"))
	assert.Error(t, c.SetGradientStop(0, "#zzz"))

	g, ok := c.Scene.Background.(Gradient)
	require.True(t, ok)
	assert.Equal(t, "#abcdef", g.Stops[2].ColorHex)

	c.SetUseGradient(false)
	require.NoError(t, c.SetSolidColor("#112233"))
	assert.Equal(t, SolidColor{ColorHex: "#112233"}, c.Scene.Background)

	// back to the remembered gradient
	c.SetUseGradient(true)
	assert.Equal(t, "#abcdef", c.Scene.Background.(Gradient).Stops[2].ColorHex)
}

func TestPresets(t *testing.T) {
	c := newTestController(t)
	assert.False(t, c.ApplyPreset("plaid"))
	assert.True(t, c.ApplyPreset("forest"))
	assert.Equal(t, "#4ade80", c.Gradient().Stops[0].ColorHex)

	assert.Equal(t, "lavender", c.CyclePreset())
	for range gradientPresets {
		c.CyclePreset()
	}
	assert.Equal(t, "lavender", gradientPresets[c.presetIndex].Name)
}

func TestImageControls(t *testing.T) {
	c := newTestController(t)
	c.SetImageScale(120)
	assert.False(t, c.HasImage())

	c.SetImage(testImage(10, 10), "one.png")
	require.True(t, c.HasImage())
	assert.Equal(t, BackgroundModeImage, c.Mode())

	c.SetImageAnchor(120, -5)
	c.SetImageScale(10)
	img, _ := c.Image()
	assert.Equal(t, Anchor{X: 100, Y: 0}, img.Anchor)
	assert.Equal(t, minImageScale, img.ScalePercent)

	c.NudgeImageAnchor(-10, 10)
	c.NudgeImageScale(500)
	img, _ = c.Image()
	assert.Equal(t, Anchor{X: 90, Y: 10}, img.Anchor)
	assert.Equal(t, maxImageScale, img.ScalePercent)

	// a new image keeps the placement
	c.SetImage(testImage(20, 10), "two.png")
	bg, ok := c.Scene.Background.(ImageBackground)
	require.True(t, ok)
	assert.Equal(t, "two.png", bg.Name)
	assert.Equal(t, Anchor{X: 90, Y: 10}, bg.Anchor)

	require.NoError(t, c.SetSolidColor("#445566"))
	bg = c.Scene.Background.(ImageBackground)
	assert.Equal(t, "#445566", bg.BackdropHex)

	c.RemoveImage()
	assert.False(t, c.HasImage())
	assert.Equal(t, BackgroundModeGradient, c.Mode())
	assert.Equal(t, KindGradient, c.Scene.Background.Kind())
}

func TestReloadImageKeepsSettings(t *testing.T) {
	c := newTestController(t)
	c.ReloadImage(testImage(4, 4))
	assert.False(t, c.HasImage())

	c.SetImage(testImage(10, 10), "a.png")
	c.SetImageScale(150)
	c.ReloadImage(testImage(30, 10))
	img, _ := c.Image()
	assert.Equal(t, 150, img.ScalePercent)
	assert.Equal(t, 30, img.Source.Bounds().Dx())
}

func TestToggleTextLayer(t *testing.T) {
	c := newTestController(t)
	c.ToggleTextLayer()
	frame, err := c.Surface.Frame()
	require.NoError(t, err)
	assert.Empty(t, frame.Texts)

	c.ToggleTextLayer()
	frame, _ = c.Surface.Frame()
	assert.Len(t, frame.Texts, 1)
}
