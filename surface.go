package main

import (
	"errors"
	"sync"
)

// ErrSurfaceDetached is returned when capturing a surface that is no longer
// attached to an editing session.
var ErrSurfaceDetached = errors.New("surface detached")

// Renderable is anything a rasterizer can read a frame from.
type Renderable interface {
	Frame() (Layout, error)
}

// LayerState is the presentation-only state of one text layer. gen is the
// layer's revision when the state was recorded.
type LayerState struct {
	Outline   bool
	Transform Offset

	gen uint64
}

// Presentation is a snapshot of presentation-only state keyed by element id.
type Presentation map[string]LayerState

// Surface is the rendered composition. It holds the last presented layout
// and the transient state that only exists while editing: drag transforms
// and the selection outline.
type Surface struct {
	mu       sync.Mutex
	layout   Layout
	gens     map[string]uint64
	detached bool
}

// NewSurface returns an attached surface with an empty layout of the given size.
func NewSurface(size Size) *Surface {
	return &Surface{layout: Layout{Size: size, Scale: 1}, gens: map[string]uint64{}}
}

// touch records that a layer's presentation changed. Callers hold mu.
func (s *Surface) touch(id string) {
	s.gens[id]++
}

// Size returns the editing surface size.
func (s *Surface) Size() Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.Size
}

// Present installs a freshly composed layout. Transforms of layers that are
// still being dragged carry over by id. Every presented layer counts as
// changed, so a pending Restore leaves it alone.
func (s *Surface) Present(l Layout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := l.Clone()
	live := make(map[string]uint64, len(next.Texts))
	for i := range next.Texts {
		id := next.Texts[i].ID
		if prev, ok := s.layout.Text(id); ok {
			next.Texts[i].Transform = prev.Transform
		}
		live[id] = s.gens[id] + 1
	}
	s.layout = next
	s.gens = live
}

// SetTransform sets the in-flight drag offset of a layer.
func (s *Surface) SetTransform(id string, o Offset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.layout.Texts {
		if s.layout.Texts[i].ID == id {
			s.layout.Texts[i].Transform = o
			s.touch(id)
		}
	}
}

// ClearTransform drops the drag offset of a layer.
func (s *Surface) ClearTransform(id string) {
	s.SetTransform(id, Offset{})
}

// Snapshot records the presentation state of every text layer.
func (s *Surface) Snapshot() Presentation {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := make(Presentation, len(s.layout.Texts))
	for _, t := range s.layout.Texts {
		p[t.ID] = LayerState{Outline: t.Outline, Transform: t.Transform, gen: s.gens[t.ID]}
	}
	return p
}

// Suspend removes drag transforms and outlines so the surface shows only
// committed scene state.
func (s *Surface) Suspend() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.layout.Texts {
		s.layout.Texts[i].Outline = false
		s.layout.Texts[i].Transform = Offset{}
	}
}

// Restore puts back a snapshot. Layers that disappeared or changed since
// the snapshot keep their current state.
func (s *Surface) Restore(p Presentation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.layout.Texts {
		id := s.layout.Texts[i].ID
		if st, ok := p[id]; ok && st.gen == s.gens[id] {
			s.layout.Texts[i].Outline = st.Outline
			s.layout.Texts[i].Transform = st.Transform
		}
	}
}

// Frame returns a copy of the current layout.
func (s *Surface) Frame() (Layout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detached {
		return Layout{}, ErrSurfaceDetached
	}
	return s.layout.Clone(), nil
}

// Detach marks the surface as gone; later captures fail.
func (s *Surface) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detached = true
}
