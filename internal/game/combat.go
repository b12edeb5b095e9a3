package game

type weaponBox struct {
	weapon *Weapon
	box    Rect
}

// damageEnemies applies every colliding player weapon to every living
// enemy. Enemies have no invincibility window. An enemy that reaches its
// minimum health dies on the spot and takes no further hits this tick.
func (r *GameRound) damageEnemies() int {
	weapons := r.activeBoxes(r.Player)
	if len(weapons) == 0 {
		return 0
	}

	kills := 0
	for _, enemy := range r.Enemies {
		if !enemy.IsAlive() {
			continue
		}

		box, err := r.bounds(&enemy.GameObject)
		if err != nil {
			r.diagnose(err, "enemy skipped", "enemy", enemy.Name)
			continue
		}

		for _, wb := range weapons {
			if !IsColliding(box, wb.box) {
				continue
			}
			enemy.Health.Apply(wb.weapon.Damage)
			enemy.struck = true
			if enemy.Health.Depleted() {
				r.kill(enemy, wb.weapon, box)
				kills++
				break
			}
		}
	}
	return kills
}

// damagePlayer lands at most one hit on the player per tick.
//
// The hit cooldown advances every tick, invincible or not. Enemy weapon
// instances are checked first (enemy order, then weapon order), then enemy
// bodies; the first collision wins and restarts the cooldown.
func (r *GameRound) damagePlayer(elapsed float64) bool {
	p := r.Player
	p.HitCooldown.Advance(elapsed)
	if p.Invincible() {
		return false
	}

	box, err := r.bounds(&p.GameObject)
	if err != nil {
		r.diagnose(err, "player damage skipped")
		return false
	}

	for _, enemy := range r.Enemies {
		if !enemy.IsAlive() {
			continue
		}
		for i := range enemy.ActiveWeapons {
			w := &enemy.ActiveWeapons[i]
			wbox, err := r.bounds(&w.GameObject)
			if err != nil {
				r.diagnose(err, "enemy weapon skipped", "enemy", enemy.Name, "weapon", w.Name)
				continue
			}
			if IsColliding(box, wbox) {
				r.hitPlayer(w.Damage, enemy.Name, w.Name)
				return true
			}
		}
	}

	for _, enemy := range r.Enemies {
		if !enemy.IsAlive() {
			continue
		}
		ebox, err := r.bounds(&enemy.GameObject)
		if err != nil {
			r.diagnose(err, "enemy body skipped", "enemy", enemy.Name)
			continue
		}
		if IsColliding(box, ebox) {
			r.hitPlayer(BodyDamage, enemy.Name, "body")
			return true
		}
	}
	return false
}

func (r *GameRound) hitPlayer(damage float64, source, weapon string) {
	r.Player.takeHit(damage)
	r.Stats.HitsTaken++
	r.Stats.DamageTaken += damage
	r.logger.Debug("🩸 player hit",
		"source", source,
		"weapon", weapon,
		"damage", damage,
		"hp", r.Player.Health.Current)
}

// activeBoxes resolves the bounds of an owner's live weapons once per tick.
func (r *GameRound) activeBoxes(owner *Alive) []weaponBox {
	if len(owner.ActiveWeapons) == 0 {
		return nil
	}
	out := make([]weaponBox, 0, len(owner.ActiveWeapons))
	for i := range owner.ActiveWeapons {
		w := &owner.ActiveWeapons[i]
		box, err := r.bounds(&w.GameObject)
		if err != nil {
			r.diagnose(err, "weapon skipped", "owner", owner.Name, "weapon", w.Name)
			continue
		}
		out = append(out, weaponBox{weapon: w, box: box})
	}
	return out
}
