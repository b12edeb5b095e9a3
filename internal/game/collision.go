package game

// Rect is an axis-aligned bounding box in screen space (y grows downward).
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// RectAt builds a rect from a top-left corner and a size.
func RectAt(x, y, width, height float64) Rect {
	return Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Center returns the midpoint of the rect.
func (r Rect) Center() (float64, float64) {
	return (r.Left + r.Right) / 2, (r.Top + r.Bottom) / 2
}

// IsColliding reports whether a and b overlap on both axes.
// The test is the negation of the four disjoint cases, each a strict
// comparison, so rects that only share an edge still collide.
func IsColliding(a, b Rect) bool {
	aAboveB := a.Bottom < b.Top
	bAboveA := b.Bottom < a.Top
	aLeftOfB := a.Right < b.Left
	bLeftOfA := b.Right < a.Left

	return !(aAboveB || bAboveA || aLeftOfB || bLeftOfA)
}
