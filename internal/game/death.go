package game

// kill handles an enemy the moment its health is depleted: log the kill,
// release its visuals and drop a pickup where it stood.
func (r *GameRound) kill(enemy *Alive, lethal *Weapon, at Rect) {
	r.Stats.Kills++

	ev := KillEvent{
		LogMeta: r.meta("%s killed by %s", enemy.Name, lethal.Name),
		Enemy:   enemy.Name,
		Weapon:  lethal.Name,
		X:       at.Left,
		Y:       at.Top,
	}
	r.Logs.EnemiesKilled = append(r.Logs.EnemiesKilled, ev)
	r.emit(EventTypeKill, enemy.Name, ev)

	r.logger.Info("💀 enemy killed",
		"enemy", enemy.Name,
		"weapon", lethal.Name,
		"kills", r.Stats.Kills)

	for _, w := range enemy.ActiveWeapons {
		r.release(w.Visual, w.Name)
	}
	enemy.ActiveWeapons = nil

	r.release(enemy.Visual, enemy.Name)
	enemy.Visual = 0

	r.spawnPickup(at.Left, at.Top)
}

// spawnPickup drops a copy of the pickup template at (x, y), rotated so it
// reads differently from upright sprites.
func (r *GameRound) spawnPickup(x, y float64) {
	h, err := r.visuals.Create(r.pickup.Sprite, Placement{
		X:        x,
		Y:        y,
		Rotation: PickupRotation,
		Layer:    LayerPickups,
	})
	if err != nil {
		r.diagnose(err, "pickup spawn skipped", "pickup", r.pickup.Name)
		return
	}
	r.Pickups = append(r.Pickups, r.pickup.spawn(x, y, h))
}

// reapEnemies keeps only enemies above their death threshold.
// Zero-allocation in-place filtering.
func (r *GameRound) reapEnemies() {
	n := 0
	for _, e := range r.Enemies {
		if e.IsAlive() {
			r.Enemies[n] = e
			n++
		}
	}
	for i := n; i < len(r.Enemies); i++ {
		r.Enemies[i] = nil
	}
	r.Enemies = r.Enemies[:n]
}
