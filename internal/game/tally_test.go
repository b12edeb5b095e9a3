package game

import "testing"

func TestTallyKills(t *testing.T) {
	kills := []KillEvent{
		{Enemy: "skeleton", Weapon: "whip"},
		{Enemy: "zombie", Weapon: "whip"},
		{Enemy: "skeleton", Weapon: "sword"},
		{Enemy: "goblin", Weapon: "axe"},
		{Enemy: "skeleton", Weapon: "whip"},
	}

	got := TallyKills(kills)
	if got.Total != 5 {
		t.Errorf("total = %d", got.Total)
	}

	wantWeapons := []TallyEntry{
		{Name: "whip", Kills: 3, Rank: 1},
		{Name: "axe", Kills: 1, Rank: 2},
		{Name: "sword", Kills: 1, Rank: 2},
	}
	if len(got.Weapons) != len(wantWeapons) {
		t.Fatalf("weapons = %+v", got.Weapons)
	}
	for i, w := range wantWeapons {
		if got.Weapons[i] != w {
			t.Errorf("weapons[%d] = %+v, want %+v", i, got.Weapons[i], w)
		}
	}

	if got.Enemies[0] != (TallyEntry{Name: "skeleton", Kills: 3, Rank: 1}) {
		t.Errorf("top enemy = %+v", got.Enemies[0])
	}
}

func TestTallyKillsEmpty(t *testing.T) {
	got := TallyKills(nil)
	if got.Total != 0 || len(got.Weapons) != 0 || len(got.Enemies) != 0 {
		t.Errorf("tally = %+v", got)
	}
}
