package game

import "sort"

// TallyEntry is one ranked row.
type TallyEntry struct {
	Name  string `json:"name"`
	Kills int    `json:"kills"`
	Rank  int    `json:"rank"`
}

// KillTally ranks weapons and enemy kinds by kill count.
type KillTally struct {
	Total   int          `json:"total"`
	Weapons []TallyEntry `json:"weapons"`
	Enemies []TallyEntry `json:"enemies"`
}

// TallyKills builds the end-of-round ranking from the kill log.
// Ties rank equally and list alphabetically.
func TallyKills(kills []KillEvent) KillTally {
	byWeapon := make(map[string]int)
	byEnemy := make(map[string]int)
	for _, k := range kills {
		byWeapon[k.Weapon]++
		byEnemy[k.Enemy]++
	}
	return KillTally{
		Total:   len(kills),
		Weapons: rank(byWeapon),
		Enemies: rank(byEnemy),
	}
}

func rank(counts map[string]int) []TallyEntry {
	out := make([]TallyEntry, 0, len(counts))
	for name, n := range counts {
		out = append(out, TallyEntry{Name: name, Kills: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kills != out[j].Kills {
			return out[i].Kills > out[j].Kills
		}
		return out[i].Name < out[j].Name
	})
	for i := range out {
		if i > 0 && out[i].Kills == out[i-1].Kills {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	return out
}
