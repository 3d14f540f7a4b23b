package main

import (
	"fmt"
	"image"
	"math"
)

// ModeTexts are the default contents written into the selected element when
// the background mode changes.
type ModeTexts struct {
	Gradient string
	Image    string
}

func (t ModeTexts) forMode(mode BackgroundMode) string {
	if mode == BackgroundModeImage {
		return t.Image
	}
	return t.Gradient
}

type dragState struct {
	active bool
	id     string
	offset Offset
}

// Controller turns user gestures into scene mutations and keeps the surface
// in sync. It also remembers the settings of the background panel that are
// not part of the active background, so switching modes back and forth
// restores them.
type Controller struct {
	Scene   *Scene
	Surface *Surface
	Texts   ModeTexts

	mode        BackgroundMode
	useGradient bool
	gradient    Gradient
	solid       SolidColor
	image       *ImageBackground
	presetIndex int

	drag dragState
}

// NewController wires a scene to a surface and presents the first layout.
func NewController(scene *Scene, surface *Surface, texts ModeTexts) *Controller {
	c := &Controller{
		Scene:       scene,
		Surface:     surface,
		Texts:       texts,
		useGradient: true,
		gradient:    DefaultGradient(),
		solid:       SolidColor{ColorHex: defaultSolidColor},
		presetIndex: -1,
	}
	switch bg := scene.Background.(type) {
	case Gradient:
		c.gradient = bg
	case SolidColor:
		c.solid = bg
		c.useGradient = false
	case ImageBackground:
		img := bg
		c.image = &img
		c.mode = BackgroundModeImage
		if bg.BackdropHex != "" {
			c.solid = SolidColor{ColorHex: bg.BackdropHex}
		}
	}
	c.Refresh()
	return c
}

// Refresh re-composes the scene and presents it on the surface. An active
// drag keeps its offset.
func (c *Controller) Refresh() {
	c.Surface.Present(Compose(c.Scene, c.Surface.Size()))
	if c.drag.active {
		c.Surface.SetTransform(c.drag.id, c.drag.offset)
	}
}

func (c *Controller) Mode() BackgroundMode { return c.mode }
func (c *Controller) UseGradient() bool     { return c.useGradient }
func (c *Controller) HasImage() bool        { return c.image != nil }

// Gradient returns the remembered gradient settings.
func (c *Controller) Gradient() Gradient { return c.gradient }

// SolidColor returns the background color used in solid mode and under images.
func (c *Controller) SolidColor() string { return c.solid.ColorHex }

// Image returns the remembered image background, if any.
func (c *Controller) Image() (ImageBackground, bool) {
	if c.image == nil {
		return ImageBackground{}, false
	}
	return *c.image, true
}

func (c *Controller) applyBackground() {
	switch {
	case c.mode == BackgroundModeImage && c.image != nil:
		img := *c.image
		img.BackdropHex = c.solid.ColorHex
		c.Scene.SetBackground(img)
	case c.mode == BackgroundModeImage:
		// nothing uploaded yet, show the backdrop color alone
		c.Scene.SetBackground(c.solid)
	case c.useGradient:
		c.Scene.SetBackground(c.gradient)
	default:
		c.Scene.SetBackground(c.solid)
	}
	c.Refresh()
}

// SwitchMode changes between gradient and image backgrounds. When an
// element is selected its content is replaced by the mode's default text.
// Picking the current mode again does nothing.
func (c *Controller) SwitchMode(mode BackgroundMode) {
	if mode == c.mode {
		return
	}
	c.mode = mode
	if sel := c.Scene.Selected(); sel != nil {
		content := c.Texts.forMode(mode)
		c.Scene.UpdateTextElement(sel.ID, TextPatch{Content: &content})
	}
	c.applyBackground()
}

// SetUseGradient picks gradient or solid color inside gradient mode.
func (c *Controller) SetUseGradient(use bool) {
	c.useGradient = use
	c.applyBackground()
}

func (c *Controller) SetGradientAngle(angle float64) {
	c.gradient.Angle = normalizeAngle(angle)
	c.applyBackground()
}

func (c *Controller) NudgeGradientAngle(delta float64) {
	c.SetGradientAngle(c.gradient.Angle + delta)
}

// SetGradientStop recolors stop i (0 from, 1 via, 2 to).
func (c *Controller) SetGradientStop(i int, hex string) error {
	norm, err := NormalizeHex(hex)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(c.gradient.Stops) {
		return fmt.Errorf("gradient has no stop %d", i)
	}
	c.gradient = c.gradient.withStop(i, norm)
	c.applyBackground()
	return nil
}

// ApplyPreset replaces the gradient with a stock palette. Unknown names
// leave everything as it was.
func (c *Controller) ApplyPreset(name string) bool {
	g, ok := GradientPreset(name)
	if !ok {
		return false
	}
	for i, p := range gradientPresets {
		if p.Name == name {
			c.presetIndex = i
		}
	}
	c.gradient = g
	c.useGradient = true
	c.applyBackground()
	return true
}

// CyclePreset applies the next stock palette and returns its name.
func (c *Controller) CyclePreset() string {
	name := gradientPresets[(c.presetIndex+1)%len(gradientPresets)].Name
	c.ApplyPreset(name)
	return name
}

// SetSolidColor sets the background color of solid mode and image backdrops.
func (c *Controller) SetSolidColor(hex string) error {
	norm, err := NormalizeHex(hex)
	if err != nil {
		return err
	}
	c.solid = SolidColor{ColorHex: norm}
	c.applyBackground()
	return nil
}

// SetImage installs a newly loaded image and switches to image mode. The
// placement of a previous image is kept.
func (c *Controller) SetImage(src image.Image, name string) {
	if src == nil {
		return
	}
	next := NewImageBackground(src, name)
	if c.image != nil {
		next.Anchor = c.image.Anchor
		next.ScalePercent = c.image.ScalePercent
	}
	c.image = &next
	c.mode = BackgroundModeImage
	c.applyBackground()
}

// ReloadImage swaps the pixels of the current image, keeping everything else.
func (c *Controller) ReloadImage(src image.Image) {
	if c.image == nil || src == nil {
		return
	}
	c.image.Source = src
	c.applyBackground()
}

// RemoveImage forgets the image and falls back to gradient mode.
func (c *Controller) RemoveImage() {
	c.image = nil
	c.mode = BackgroundModeGradient
	c.applyBackground()
}

func (c *Controller) SetImageAnchor(x, y float64) {
	if c.image == nil {
		return
	}
	c.image.Anchor = Anchor{X: clampFloat(x, 0, 100), Y: clampFloat(y, 0, 100)}
	c.applyBackground()
}

func (c *Controller) NudgeImageAnchor(dx, dy float64) {
	if c.image == nil {
		return
	}
	c.SetImageAnchor(c.image.Anchor.X+dx, c.image.Anchor.Y+dy)
}

func (c *Controller) SetImageScale(percent int) {
	if c.image == nil {
		return
	}
	c.image.ScalePercent = clampInt(percent, minImageScale, maxImageScale)
	c.applyBackground()
}

func (c *Controller) NudgeImageScale(delta int) {
	if c.image == nil {
		return
	}
	c.SetImageScale(c.image.ScalePercent + delta)
}

// AddText appends a default element and selects it.
func (c *Controller) AddText() string {
	id := c.Scene.AddTextElement(nil)
	c.Refresh()
	return id
}

func (c *Controller) RemoveText(id string) {
	c.Scene.RemoveTextElement(id)
	c.Refresh()
}

func (c *Controller) Select(id string) {
	c.Scene.Select(id)
	c.Refresh()
}

// SelectNext moves the selection to the next element, wrapping around.
func (c *Controller) SelectNext() {
	texts := c.Scene.Texts
	if len(texts) == 0 {
		return
	}
	next := 0
	for i, t := range texts {
		if t.ID == c.Scene.SelectedID {
			next = (i + 1) % len(texts)
			break
		}
	}
	c.Select(texts[next].ID)
}

func (c *Controller) update(patch TextPatch) {
	sel := c.Scene.Selected()
	if sel == nil {
		return
	}
	c.Scene.UpdateTextElement(sel.ID, patch)
	c.Refresh()
}

func (c *Controller) SetContent(content string) {
	c.update(TextPatch{Content: &content})
}

func (c *Controller) SetTextColor(hex string) error {
	norm, err := NormalizeHex(hex)
	if err != nil {
		return err
	}
	c.update(TextPatch{ColorHex: &norm})
	return nil
}

func (c *Controller) SetOpacity(percent int) {
	v := clampInt(percent, 0, 100)
	c.update(TextPatch{OpacityPercent: &v})
}

func (c *Controller) NudgeOpacity(delta int) {
	if sel := c.Scene.Selected(); sel != nil {
		c.SetOpacity(sel.OpacityPercent + delta)
	}
}

func (c *Controller) SetFontSize(px int) {
	v := clampInt(px, minFontSizePx, maxFontSizePx)
	c.update(TextPatch{FontSizePx: &v})
}

func (c *Controller) NudgeFontSize(delta int) {
	if sel := c.Scene.Selected(); sel != nil {
		c.SetFontSize(sel.FontSizePx + delta)
	}
}

// CycleFont steps the selected element through the font tokens.
func (c *Controller) CycleFont() {
	sel := c.Scene.Selected()
	if sel == nil {
		return
	}
	next := (sel.Font + 1) % numFonts
	c.update(TextPatch{Font: &next})
}

func (c *Controller) ToggleTextLayer() {
	c.Scene.SetTextLayerVisible(!c.Scene.TextLayerVisible)
	c.Refresh()
}

// DragStart begins a drag of an element and selects it. Unknown ids are
// ignored.
func (c *Controller) DragStart(id string) bool {
	if c.Scene.Text(id) == nil {
		return false
	}
	if c.drag.active {
		c.Surface.ClearTransform(c.drag.id)
	}
	c.drag = dragState{active: true, id: id}
	c.Select(id)
	return true
}

// DragUpdate shows the cumulative offset since the drag started. Only the
// surface changes; the scene is untouched until DragEnd.
func (c *Controller) DragUpdate(total Offset) {
	if !c.drag.active {
		return
	}
	c.drag.offset = total
	c.Surface.SetTransform(c.drag.id, total)
}

// DragEnd commits the cumulative offset to the scene exactly once.
func (c *Controller) DragEnd(total Offset) {
	if !c.drag.active {
		return
	}
	id := c.drag.id
	c.drag = dragState{}
	c.Surface.ClearTransform(id)
	c.Scene.MoveTextElement(id, total.DX, total.DY)
	c.Refresh()
}

// DragCancel drops an in-flight drag without touching the scene.
func (c *Controller) DragCancel() {
	if !c.drag.active {
		return
	}
	c.Surface.ClearTransform(c.drag.id)
	c.drag = dragState{}
	c.Refresh()
}

// Dragging reports the element being dragged and its current offset.
func (c *Controller) Dragging() (string, Offset, bool) {
	return c.drag.id, c.drag.offset, c.drag.active
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
