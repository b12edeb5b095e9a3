package game

import (
	"errors"
	"testing"
)

func TestMemoryVisuals(t *testing.T) {
	v := NewMemoryVisuals()
	sprite := Sprite{Name: "gem", Width: 20, Height: 10}

	h, err := v.Create(sprite, Placement{X: 5, Y: 6, Rotation: 45, Layer: LayerPickups})
	if err != nil {
		t.Fatal(err)
	}
	if got := mustBounds(t, v, h); got != RectAt(5, 6, 20, 10) {
		t.Errorf("bounds = %v", got)
	}

	if err := v.Move(h, 100, 200); err != nil {
		t.Fatal(err)
	}
	if got := mustBounds(t, v, h); got != RectAt(100, 200, 20, 10) {
		t.Errorf("moved bounds = %v", got)
	}

	if err := v.Remove(h); err != nil {
		t.Fatal(err)
	}
	for name, err := range map[string]error{
		"bounds": func() error { _, err := v.Bounds(h); return err }(),
		"move":   v.Move(h, 0, 0),
		"remove": v.Remove(h),
	} {
		if !errors.Is(err, ErrMissingVisualHandle) {
			t.Errorf("%s after remove: %v", name, err)
		}
	}
	if v.Len() != 0 {
		t.Errorf("Len = %d", v.Len())
	}
}

func TestMemoryVisualsDetachLayer(t *testing.T) {
	v := NewMemoryVisuals()
	v.DetachLayer(LayerWeapons)

	if _, err := v.Create(Sprite{Name: "whip"}, Placement{Layer: LayerWeapons}); !errors.Is(err, ErrMissingContainer) {
		t.Errorf("create on detached layer: %v", err)
	}
	if _, err := v.Create(Sprite{Name: "zombie"}, Placement{Layer: LayerActors}); err != nil {
		t.Errorf("other layers unaffected: %v", err)
	}
}

func TestMemoryVisualsDrawOrder(t *testing.T) {
	v := NewMemoryVisuals()
	create := func(name string, l Layer) {
		if _, err := v.Create(Sprite{Name: name}, Placement{Layer: l}); err != nil {
			t.Fatal(err)
		}
	}
	create("gem", LayerPickups)
	create("player", LayerActors)
	create("whip", LayerWeapons)
	create("zombie", LayerActors)

	var got []string
	for _, s := range v.All() {
		got = append(got, s.Sprite.Name)
	}
	want := []string{"player", "zombie", "whip", "gem"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestLayerString(t *testing.T) {
	if LayerActors.String() != "actors" || LayerWeapons.String() != "weapons" ||
		LayerPickups.String() != "pickups" || Layer(9).String() != "unknown" {
		t.Error("unexpected layer names")
	}
}

func TestSeededIDs(t *testing.T) {
	a, b := SeededIDs(3), SeededIDs(3)
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		x, y := a(), b()
		if x != y {
			t.Fatalf("draw %d: %s != %s", i, x, y)
		}
		if seen[x] {
			t.Fatalf("duplicate id %s", x)
		}
		seen[x] = true
	}
	if RandomIDs()() == RandomIDs()() {
		t.Error("random ids collided")
	}
}
