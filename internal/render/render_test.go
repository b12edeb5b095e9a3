package render

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/saitheninja/svampire-svurvivors/internal/game"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		err  bool
	}{
		{"rgb(30 58 138)", color.RGBA{30, 58, 138, 255}, false},
		{"rgb(239, 68, 68)", color.RGBA{239, 68, 68, 255}, false},
		{"  rgb(0 0 0) ", color.RGBA{0, 0, 0, 255}, false},
		{"#8b5cf6", color.RGBA{0x8b, 0x5c, 0xf6, 255}, false},
		{"rgb(300 0 0)", color.RGBA{}, true},
		{"rgb(1 2)", color.RGBA{}, true},
		{"#zzz000", color.RGBA{}, true},
		{"violet", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.err {
				if !errors.Is(err, ErrBadColor) {
					t.Fatalf("ParseColor(%q) err = %v, want ErrBadColor", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseColor(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func testSnapshot() *game.RoundSnapshot {
	return &game.RoundSnapshot{
		TickNum: 60,
		Timer:   game.NewRange(0, 60000, 1000),
		Outcome: game.OutcomeInProgress.String(),
		Player: game.EntitySnapshot{
			Name:   "player",
			Sprite: game.Sprite{ColorBg: "rgb(30 58 138)", ColorHit: "rgb(147 197 253)", Width: 48, Height: 48},
			X:      1000,
			Y:      1000,
			HP:     100,
			MaxHP:  100,
		},
		Enemies: []game.EntitySnapshot{{
			Name:   "skeleton",
			Sprite: game.Sprite{ColorBg: "rgb(132 204 22)", Width: 48, Height: 48},
			X:      1100,
			Y:      1000,
			HP:     1,
			MaxHP:  1,
		}},
		Pickups: []game.EntitySnapshot{{
			Name:     "experience-gem",
			Sprite:   game.Sprite{ColorBg: "rgb(139 92 246)", Width: 20, Height: 20},
			X:        900,
			Y:        900,
			Rotation: game.PickupRotation,
		}},
	}
}

func TestRender_CentresPlayer(t *testing.T) {
	r := NewRenderer(Config{Width: 320, Height: 240, FontPath: "/nonexistent.ttf"})
	img := r.Render(testSnapshot())

	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Fatalf("frame size = %v, want 320x240", b)
	}

	got := color.RGBAModel.Convert(img.At(160, 120)).(color.RGBA)
	want := color.RGBA{30, 58, 138, 255}
	if got != want {
		t.Errorf("centre pixel = %v, want player color %v", got, want)
	}

	// Enemy is 100px right of the player: its box spans x=236..284.
	got = color.RGBAModel.Convert(img.At(260, 120)).(color.RGBA)
	if got != (color.RGBA{132, 204, 22, 255}) {
		t.Errorf("enemy pixel = %v, want lime", got)
	}
}

func TestRender_HitColor(t *testing.T) {
	snap := testSnapshot()
	snap.Player.Hit = true

	r := NewRenderer(Config{Width: 320, Height: 240, FontPath: "/nonexistent.ttf"})
	img := r.Render(snap)

	got := color.RGBAModel.Convert(img.At(160, 120)).(color.RGBA)
	if got != (color.RGBA{147, 197, 253, 255}) {
		t.Errorf("centre pixel = %v, want hit color", got)
	}
}

func TestFrameWriter_Cadence(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	fw, err := NewFrameWriter(NewRenderer(Config{Width: 64, Height: 64, FontPath: "/nonexistent.ttf"}), dir, 30)
	if err != nil {
		t.Fatal(err)
	}

	snap := testSnapshot()
	for tick := uint64(1); tick <= 90; tick++ {
		snap.TickNum = tick
		if _, err := fw.Maybe(snap); err != nil {
			t.Fatalf("tick %d: %v", tick, err)
		}
	}
	if fw.Written() != 3 {
		t.Errorf("written = %d, want 3", fw.Written())
	}

	// The final frame is always written.
	snap.TickNum = 91
	snap.Outcome = game.OutcomeWon.String()
	if _, err := fw.Maybe(snap); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(dir, "frame_000091.png")); err != nil {
		t.Errorf("final frame missing: %v", err)
	}
}

func TestRenderer_HUDFont(t *testing.T) {
	if r := NewRenderer(Config{Width: 64, Height: 64, FontPath: "/nonexistent.ttf"}); r.hud != nil {
		t.Error("missing font should leave the HUD disabled")
	}

	path := findFont()
	if path == "" {
		t.Skip("no TTF available on this machine")
	}
	r := NewRenderer(Config{Width: 320, Height: 240, FontPath: path})
	if r.hud == nil {
		t.Skipf("%s could not be parsed as a font", path)
	}
	face := r.hud
	snap := testSnapshot()
	snap.Outcome = game.OutcomeWon.String()
	r.Render(snap)
	r.Render(snap)
	if r.hud != face {
		t.Error("HUD face reloaded between frames")
	}
}
