package game

// updateWeapons runs every weapon state machine the owner carries.
//
// Live instances are aged first so an instance spawned this tick starts
// counting on the next one; then each template's cooldown advances and a
// template that reaches its threshold spawns a new instance.
func (r *GameRound) updateWeapons(owner *Alive, elapsed float64) {
	n := 0
	for _, inst := range owner.ActiveWeapons {
		inst.Active.Advance(elapsed)
		if inst.Active.Reached() {
			r.release(inst.Visual, inst.Name)
			continue
		}
		owner.ActiveWeapons[n] = inst
		n++
	}
	owner.ActiveWeapons = owner.ActiveWeapons[:n]

	for slot := range owner.Weapons {
		tmpl := &owner.Weapons[slot]
		tmpl.Cooldown.Advance(elapsed)
		if !tmpl.Cooldown.Reached() {
			continue
		}
		// A slot at its cap stays ready and fires once an instance expires.
		if tmpl.MaxSpawns > 0 && owner.activeInSlot(slot) >= tmpl.MaxSpawns {
			continue
		}
		r.spawnWeapon(owner, slot)
	}
}

// spawnWeapon places a new instance touching the owner's right edge.
// On failure the template keeps its ready cooldown and retries next tick.
func (r *GameRound) spawnWeapon(owner *Alive, slot int) {
	tmpl := &owner.Weapons[slot]

	box, err := r.bounds(&owner.GameObject)
	if err != nil {
		r.diagnose(err, "weapon spawn skipped", "owner", owner.Name, "weapon", tmpl.Name)
		return
	}

	h, err := r.visuals.Create(tmpl.Sprite, Placement{X: box.Right, Y: box.Top, Layer: LayerWeapons})
	if err != nil {
		r.diagnose(err, "weapon spawn skipped", "owner", owner.Name, "weapon", tmpl.Name)
		return
	}

	tmpl.Cooldown.Reset()
	owner.ActiveWeapons = append(owner.ActiveWeapons, tmpl.instance(slot, h))
	r.Stats.WeaponsSpawned++

	ev := r.logSpawn(tmpl.Sprite.Name, owner.Name)
	r.logger.Debug("🗡️ weapon spawned", "owner", owner.Name, "weapon", tmpl.Name, "uuid", ev.UUID)
}

func (a *Alive) activeInSlot(slot int) int {
	n := 0
	for i := range a.ActiveWeapons {
		if a.ActiveWeapons[i].Slot == slot {
			n++
		}
	}
	return n
}
