package game

import (
	"testing"

	"pgregory.net/rapid"
)

func TestIsColliding(t *testing.T) {
	base := RectAt(0, 0, 10, 10)

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"identical", RectAt(0, 0, 10, 10), true},
		{"overlapping corner", RectAt(5, 5, 10, 10), true},
		{"contained", RectAt(2, 2, 2, 2), true},
		{"touching right edge", RectAt(10, 0, 10, 10), true},
		{"touching bottom edge", RectAt(0, 10, 10, 10), true},
		{"touching corner", RectAt(10, 10, 5, 5), true},
		{"strictly right", RectAt(10.01, 0, 10, 10), false},
		{"strictly left", RectAt(-20, 0, 10, 10), false},
		{"strictly above", RectAt(0, -10.5, 10, 10), false},
		{"strictly below", RectAt(0, 11, 10, 10), false},
		{"diagonal apart", RectAt(20, 20, 5, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsColliding(base, tt.b); got != tt.want {
				t.Errorf("IsColliding(%v, %v) = %v, want %v", base, tt.b, got, tt.want)
			}
		})
	}
}

func genRect(t *rapid.T, label string) Rect {
	x := rapid.Float64Range(-1000, 1000).Draw(t, label+"x")
	y := rapid.Float64Range(-1000, 1000).Draw(t, label+"y")
	w := rapid.Float64Range(0, 200).Draw(t, label+"w")
	h := rapid.Float64Range(0, 200).Draw(t, label+"h")
	return RectAt(x, y, w, h)
}

func TestIsColliding_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genRect(t, "a")
		b := genRect(t, "b")

		if IsColliding(a, b) != IsColliding(b, a) {
			t.Fatalf("collision not symmetric for %v %v", a, b)
		}
		if !IsColliding(a, a) {
			t.Fatalf("rect %v does not collide with itself", a)
		}

		// Overlap on both axes (edges inclusive) is the definition.
		overlapX := a.Left <= b.Right && b.Left <= a.Right
		overlapY := a.Top <= b.Bottom && b.Top <= a.Bottom
		if IsColliding(a, b) != (overlapX && overlapY) {
			t.Fatalf("IsColliding(%v, %v) disagrees with axis overlap", a, b)
		}
	})
}

func TestRectHelpers(t *testing.T) {
	r := RectAt(10, 20, 30, 40)
	if r.Width() != 30 || r.Height() != 40 {
		t.Errorf("size = %vx%v, want 30x40", r.Width(), r.Height())
	}
	if x, y := r.Center(); x != 25 || y != 40 {
		t.Errorf("center = (%v, %v), want (25, 40)", x, y)
	}
}

func TestBoundedRange(t *testing.T) {
	timer := NewRange(0, 100, 0)
	timer.Advance(60)
	if timer.Reached() {
		t.Error("60/100 should not be reached")
	}
	timer.Advance(60)
	if !timer.Reached() || !timer.Expired() {
		t.Errorf("120/100 should be reached and expired, got %+v", timer)
	}
	timer.Reset()
	if timer.Current != 0 {
		t.Errorf("Reset: current = %v, want min", timer.Current)
	}

	exact := NewRange(0, 100, 100)
	if !exact.Reached() || exact.Expired() {
		t.Error("current == max is reached but not expired")
	}

	hp := NewRange(0, 10, 10)
	hp.Apply(4)
	if hp.Depleted() || hp.Current != 6 {
		t.Errorf("after 4 damage: %+v", hp)
	}
	if got := hp.Fraction(); got != 0.6 {
		t.Errorf("Fraction = %v, want 0.6", got)
	}
	hp.Apply(10)
	if !hp.Depleted() {
		t.Error("overkill should deplete")
	}
	if got := hp.Fraction(); got != 0 {
		t.Errorf("Fraction clamps to 0, got %v", got)
	}
	if got := NewRange(5, 5, 5).Fraction(); got != 0 {
		t.Errorf("empty span Fraction = %v, want 0", got)
	}
}
