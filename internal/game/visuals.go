package game

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

//go:generate go tool mockgen -destination=./mocks/visuals_mock.go -package=mocks . Visuals

// Diagnostics reported by the core. Neither is fatal: the affected entity
// is skipped for the tick and the round continues.
var (
	ErrMissingVisualHandle = errors.New("missing visual handle")
	ErrMissingContainer    = errors.New("missing visual container")
)

// Handle identifies a visual owned by the rendering collaborator.
type Handle uint64

// Layer is the attachment point a visual is created under.
type Layer uint8

const (
	LayerActors Layer = iota
	LayerWeapons
	LayerPickups
)

// String returns the layer name used in diagnostics.
func (l Layer) String() string {
	switch l {
	case LayerActors:
		return "actors"
	case LayerWeapons:
		return "weapons"
	case LayerPickups:
		return "pickups"
	default:
		return "unknown"
	}
}

// Placement says where a new visual goes.
type Placement struct {
	X, Y     float64
	Rotation float64 // degrees
	Layer    Layer
}

// Visuals is the capability the core uses to talk to the renderer: it
// reads position/size for collision, creates visuals for spawned entities
// and releases them on expiry or death.
type Visuals interface {
	Create(sprite Sprite, at Placement) (Handle, error)
	Bounds(h Handle) (Rect, error)
	Move(h Handle, x, y float64) error
	Remove(h Handle) error
}

// VisualState is what MemoryVisuals tracks per handle.
type VisualState struct {
	Handle   Handle
	Sprite   Sprite
	Bounds   Rect
	Rotation float64
	Layer    Layer
}

// MemoryVisuals is a headless Visuals implementation. It is safe for
// concurrent use so renderers can read while the engine ticks.
type MemoryVisuals struct {
	mu       sync.RWMutex
	next     Handle
	visuals  map[Handle]*VisualState
	disabled map[Layer]bool
}

// NewMemoryVisuals creates a registry with every layer attached.
func NewMemoryVisuals() *MemoryVisuals {
	return &MemoryVisuals{
		visuals:  make(map[Handle]*VisualState),
		disabled: make(map[Layer]bool),
	}
}

// DetachLayer simulates a missing container: Create on that layer fails.
func (m *MemoryVisuals) DetachLayer(l Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disabled[l] = true
}

func (m *MemoryVisuals) Create(sprite Sprite, at Placement) (Handle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disabled[at.Layer] {
		return 0, fmt.Errorf("create %s on %s layer: %w", sprite.Name, at.Layer, ErrMissingContainer)
	}

	m.next++
	h := m.next
	m.visuals[h] = &VisualState{
		Handle:   h,
		Sprite:   sprite,
		Bounds:   RectAt(at.X, at.Y, sprite.Width, sprite.Height),
		Rotation: at.Rotation,
		Layer:    at.Layer,
	}
	return h, nil
}

func (m *MemoryVisuals) Bounds(h Handle) (Rect, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.visuals[h]
	if !ok {
		return Rect{}, fmt.Errorf("bounds of visual %d: %w", h, ErrMissingVisualHandle)
	}
	return v.Bounds, nil
}

func (m *MemoryVisuals) Move(h Handle, x, y float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.visuals[h]
	if !ok {
		return fmt.Errorf("move visual %d: %w", h, ErrMissingVisualHandle)
	}
	v.Bounds = RectAt(x, y, v.Bounds.Width(), v.Bounds.Height())
	return nil
}

func (m *MemoryVisuals) Remove(h Handle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.visuals[h]; !ok {
		return fmt.Errorf("remove visual %d: %w", h, ErrMissingVisualHandle)
	}
	delete(m.visuals, h)
	return nil
}

// Len returns the number of live visuals.
func (m *MemoryVisuals) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.visuals)
}

// Get returns a copy of a visual's state.
func (m *MemoryVisuals) Get(h Handle) (VisualState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.visuals[h]
	if !ok {
		return VisualState{}, false
	}
	return *v, true
}

// All returns every live visual ordered by layer then handle, the order
// renderers draw in.
func (m *MemoryVisuals) All() []VisualState {
	m.mu.RLock()
	out := make([]VisualState, 0, len(m.visuals))
	for _, v := range m.visuals {
		out = append(out, *v)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Layer != out[j].Layer {
			return out[i].Layer < out[j].Layer
		}
		return out[i].Handle < out[j].Handle
	})
	return out
}
