package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func presentedSurface(t *testing.T) (*Scene, *Surface) {
	t.Helper()
	s := NewScene(nil, "")
	s.AddTextElement(nil)
	surface := NewSurface(editSize)
	surface.Present(Compose(s, editSize))
	return s, surface
}

func TestSurfacePresentCarriesTransforms(t *testing.T) {
	s, surface := presentedSurface(t)
	id := s.Texts[0].ID
	surface.SetTransform(id, Offset{DX: 5, DY: 6})

	content := "updated"
	s.UpdateTextElement(id, TextPatch{Content: &content})
	surface.Present(Compose(s, editSize))

	frame, err := surface.Frame()
	require.NoError(t, err)
	tl, ok := frame.Text(id)
	require.True(t, ok)
	assert.Equal(t, "updated", tl.Content)
	assert.Equal(t, Offset{DX: 5, DY: 6}, tl.Transform)
	assert.Equal(t, Point{X: 405, Y: 231}, tl.Position())
}

func TestSurfaceSuspendRestore(t *testing.T) {
	s, surface := presentedSurface(t)
	id := s.Texts[1].ID
	surface.SetTransform(id, Offset{DX: 10, DY: -5})

	snap := surface.Snapshot()
	surface.Suspend()

	frame, err := surface.Frame()
	require.NoError(t, err)
	for _, tl := range frame.Texts {
		assert.False(t, tl.Outline, tl.ID)
		assert.True(t, tl.Transform.IsZero(), tl.ID)
	}

	surface.Restore(snap)
	assert.Equal(t, snap, surface.Snapshot())
	frame, _ = surface.Frame()
	tl, _ := frame.Text(id)
	assert.True(t, tl.Outline)
	assert.Equal(t, Offset{DX: 10, DY: -5}, tl.Transform)
}

func TestSurfaceFrameIsACopy(t *testing.T) {
	_, surface := presentedSurface(t)
	frame, err := surface.Frame()
	require.NoError(t, err)
	frame.Texts[0].Content = "mutated"

	again, _ := surface.Frame()
	assert.NotEqual(t, "mutated", again.Texts[0].Content)
}

func TestSurfaceDetach(t *testing.T) {
	_, surface := presentedSurface(t)
	surface.Detach()
	_, err := surface.Frame()
	assert.ErrorIs(t, err, ErrSurfaceDetached)
}

func TestSurfaceRestoreSkipsChangedLayers(t *testing.T) {
	s, surface := presentedSurface(t)
	moved, other := s.Texts[1].ID, s.Texts[0].ID
	surface.SetTransform(moved, Offset{DX: 10})
	surface.SetTransform(other, Offset{DX: -4})

	snap := surface.Snapshot()
	surface.Suspend()
	surface.ClearTransform(moved)
	surface.Restore(snap)

	frame, err := surface.Frame()
	require.NoError(t, err)
	tl, _ := frame.Text(moved)
	assert.True(t, tl.Transform.IsZero())
	assert.False(t, tl.Outline)
	tl, _ = frame.Text(other)
	assert.Equal(t, Offset{DX: -4}, tl.Transform)
}

func TestSurfaceRestoreAfterPresent(t *testing.T) {
	s, surface := presentedSurface(t)
	id := s.Texts[1].ID
	surface.SetTransform(id, Offset{DX: 10})

	snap := surface.Snapshot()
	surface.Suspend()
	s.Select("")
	surface.Present(Compose(s, editSize))
	surface.Restore(snap)

	frame, err := surface.Frame()
	require.NoError(t, err)
	tl, _ := frame.Text(id)
	assert.False(t, tl.Outline)
	assert.True(t, tl.Transform.IsZero())
}
