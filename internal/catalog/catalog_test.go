package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default catalog invalid: %v", err)
	}
}

func TestDefault_Tables(t *testing.T) {
	cat := Default()

	if got := cat.Timer.Max; got != 30*60*1000 {
		t.Errorf("round timer = %v ms, want 1800000", got)
	}

	whip := cat.Weapons["whip"]
	if whip.Damage != 2 || whip.Active.Max != 1000 || whip.Cooldown.Max != 2000 {
		t.Errorf("whip = dmg %v active %v cooldown %v", whip.Damage, whip.Active.Max, whip.Cooldown.Max)
	}
	if whip.Sprite.Width != 120 || whip.Sprite.Height != 24 {
		t.Errorf("whip sprite = %vx%v, want 120x24", whip.Sprite.Width, whip.Sprite.Height)
	}

	goblin := cat.Weapons["goblin-body"]
	if goblin.Name != "skeleton-body" || goblin.Sprite.Name != "goblin-body" || goblin.Sprite.Width != 64 {
		t.Errorf("goblin body = name %q sprite %q width %v", goblin.Name, goblin.Sprite.Name, goblin.Sprite.Width)
	}

	if n := len(cat.Waves); n != 1 {
		t.Fatalf("waves = %d, want 1", n)
	}
	counts := map[string]int{}
	for _, name := range cat.Waves[0] {
		counts[name]++
	}
	if counts["skeleton"] != 7 || counts["zombie"] != 4 || counts["goblin"] != 1 {
		t.Errorf("wave composition = %v", counts)
	}
}

func TestLevels(t *testing.T) {
	levels := Default().Levels()
	if len(levels) != 10 {
		t.Fatalf("levels = %d, want 10", len(levels))
	}
	for i, l := range levels {
		if l.Level != i+1 || l.XPToNext != float64(10*(i+1)) {
			t.Errorf("levels[%d] = %+v", i, l)
		}
	}
}

func TestRoundConfig(t *testing.T) {
	cfg, err := Default().RoundConfig()
	if err != nil {
		t.Fatalf("RoundConfig: %v", err)
	}

	if cfg.Map != "forest" {
		t.Errorf("Map = %q", cfg.Map)
	}
	if len(cfg.Player.Weapons) != 2 || cfg.Player.Weapons[0].Name != "whip" || cfg.Player.Weapons[1].Name != "sword" {
		t.Errorf("player weapons = %+v", cfg.Player.Weapons)
	}
	if len(cfg.Waves) != 1 || len(cfg.Waves[0]) != 12 {
		t.Fatalf("waves shape wrong: %d", len(cfg.Waves))
	}
	sk := cfg.Waves[0][0]
	if sk.Name != "skeleton" || len(sk.Weapons) != 1 || sk.Weapons[0].Name != "skeleton-body" {
		t.Errorf("first enemy = %q with %+v", sk.Name, sk.Weapons)
	}
	if cfg.PlayerX != (8000-48)/2 {
		t.Errorf("PlayerX = %v, want centred", cfg.PlayerX)
	}
}

func TestRoundConfig_DoesNotAliasCatalog(t *testing.T) {
	cat := Default()
	cfg, err := cat.RoundConfig()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Player.Weapons[0].Damage = 99

	if cat.Weapons["whip"].Damage != 2 {
		t.Error("mutating the round config leaked into the catalog")
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Catalog)
		want   error
	}{
		{"unknown enemy in wave", func(c *Catalog) { c.Waves = [][]string{{"ogre"}} }, ErrUnknownEnemy},
		{"unknown player weapon", func(c *Catalog) { c.PlayerLoadout = []string{"axe"} }, ErrUnknownWeapon},
		{"unknown enemy weapon", func(c *Catalog) {
			e := c.Enemies["zombie"]
			e.Loadout = []string{"claw"}
			c.Enemies["zombie"] = e
		}, ErrUnknownWeapon},
		{"empty timer", func(c *Catalog) { c.Timer.Max = 0 }, ErrInvalid},
		{"over capacity", func(c *Catalog) { c.Player.CapacityWeapons = 1 }, ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := Default()
			tt.mutate(&cat)
			if err := cat.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	body := `{
		"durationTimer": {"min": 0, "max": 60000, "current": 0},
		"enemyWaves": [["goblin"], ["skeleton", "skeleton"]],
		"xpStep": 5
	}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cat.Timer.Max != 60000 {
		t.Errorf("timer = %v, want 60000", cat.Timer.Max)
	}
	if len(cat.Waves) != 2 {
		t.Errorf("waves = %d, want 2", len(cat.Waves))
	}
	if cat.Weapons["sword"].Damage != 4 {
		t.Error("untouched tables should keep built-in values")
	}
	if got := cat.Levels()[1].XPToNext; got != 10 {
		t.Errorf("level 2 xpToNext = %v, want 10", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"enemyWaves": [["dragon"]]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrUnknownEnemy) {
		t.Errorf("Load(bad) = %v, want ErrUnknownEnemy", err)
	}

	garbage := filepath.Join(dir, "garbage.json")
	if err := os.WriteFile(garbage, []byte(`{`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(garbage); err == nil {
		t.Error("expected parse error")
	}
}
