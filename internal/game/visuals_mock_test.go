package game_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/saitheninja/svampire-svurvivors/internal/game"
	"github.com/saitheninja/svampire-svurvivors/internal/game/mocks"
	"go.uber.org/mock/gomock"
)

func sprite(name string) game.Sprite {
	return game.Sprite{Name: name, Width: 48, Height: 48}
}

func mockConfig() game.RoundConfig {
	return game.RoundConfig{
		Map:   "test",
		Timer: game.NewRange(0, 60_000, 0),
		Player: game.Alive{
			GameObject:  game.GameObject{Name: "player", Sprite: sprite("player")},
			Health:      game.NewRange(0, 100, 100),
			HitCooldown: game.NewRange(0, 200, 0),
			Weapons: []game.Weapon{{
				GameObject: game.GameObject{Name: "whip", Sprite: sprite("whip")},
				Damage:     5,
				Active:     game.NewRange(0, 1000, 0),
				Cooldown:   game.NewRange(0, 16, 0),
				MaxSpawns:  1,
			}},
		},
		Pickup: game.PickupTemplate{
			GameObject: game.GameObject{Name: "experience-gem", Sprite: sprite("experience-gem")},
			Value:      1,
		},
		PlayerX: 1000,
		PlayerY: 1000,
	}
}

// passthrough forwards the mock to an in-memory registry so only the calls
// under test need explicit expectations.
func passthrough(m *mocks.MockVisuals, mem *game.MemoryVisuals) {
	m.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(mem.Create).AnyTimes()
	m.EXPECT().Bounds(gomock.Any()).DoAndReturn(mem.Bounds).AnyTimes()
	m.EXPECT().Move(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(mem.Move).AnyTimes()
}

func newMockRound(t *testing.T, v game.Visuals) *game.GameRound {
	t.Helper()
	r, err := game.NewRound(mockConfig(), game.RoundOptions{
		Visuals: v,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestKillSurvivesFailedRelease(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockVisuals(ctrl)
	mem := game.NewMemoryVisuals()
	passthrough(m, mem)

	r := newMockRound(t, m)
	enemy := game.Alive{
		GameObject: game.GameObject{Name: "skeleton", Sprite: sprite("skeleton")},
		Health:     game.NewRange(0, 3, 3),
	}
	added, err := r.AddEnemy(enemy, 1060, 1000)
	if err != nil {
		t.Fatal(err)
	}

	m.EXPECT().Remove(added.Visual).Return(errors.New("renderer detached")).Times(1)

	res := r.Tick(16)
	if res.Kills != 1 || len(r.Enemies) != 0 {
		t.Fatalf("kills = %d, roster = %d", res.Kills, len(r.Enemies))
	}
	if r.Stats.Diagnostics != 1 {
		t.Errorf("diagnostics = %d, want 1", r.Stats.Diagnostics)
	}
	if len(r.Pickups) != 1 {
		t.Error("pickup should still drop")
	}
}

func TestPlayerWithoutBoundsTakesNoDamage(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockVisuals(ctrl)
	mem := game.NewMemoryVisuals()

	var player game.Handle
	m.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(s game.Sprite, at game.Placement) (game.Handle, error) {
			h, err := mem.Create(s, at)
			if s.Name == "player" {
				player = h
			}
			return h, err
		}).AnyTimes()
	m.EXPECT().Bounds(gomock.Any()).DoAndReturn(func(h game.Handle) (game.Rect, error) {
		if h == player {
			return game.Rect{}, game.ErrMissingVisualHandle
		}
		return mem.Bounds(h)
	}).AnyTimes()

	r := newMockRound(t, m)
	if _, err := r.AddEnemy(game.Alive{
		GameObject: game.GameObject{Name: "zombie", Sprite: sprite("zombie")},
		Health:     game.NewRange(0, 10, 10),
	}, 1000, 1000); err != nil {
		t.Fatal(err)
	}

	r.Tick(16)
	if r.Player.Health.Current != 100 {
		t.Errorf("hp = %v, want untouched", r.Player.Health.Current)
	}
	// Weapon spawn and player damage both skipped.
	if r.Stats.Diagnostics != 2 {
		t.Errorf("diagnostics = %d, want 2", r.Stats.Diagnostics)
	}
	if r.Over() {
		t.Error("missing bounds must not end the round")
	}
}
