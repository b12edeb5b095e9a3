package game

import "math"

// SpawnNextWave releases the next queued wave onto a ring around the
// player and returns how many enemies entered the roster. When and how
// often to call it is the driver's policy.
func (r *GameRound) SpawnNextWave() int {
	if len(r.waves) == 0 {
		return 0
	}
	wave := r.waves[0]
	r.waves[0] = nil
	r.waves = r.waves[1:]

	cx, cy := r.originX, r.originY
	if box, err := r.bounds(&r.Player.GameObject); err != nil {
		r.diagnose(err, "wave centred on spawn origin")
	} else {
		cx, cy = box.Center()
	}

	spawned := 0
	for _, tmpl := range wave {
		if r.maxEnemies > 0 && len(r.Enemies) >= r.maxEnemies {
			r.logger.Warn("⚠️ enemy limit reached, wave truncated",
				"limit", r.maxEnemies,
				"dropped", len(wave)-spawned)
			break
		}

		enemy := tmpl.Clone()
		angle := r.rng.Float64() * 2 * math.Pi
		x := cx + math.Cos(angle)*r.spawnRadius - enemy.Sprite.Width/2
		y := cy + math.Sin(angle)*r.spawnRadius - enemy.Sprite.Height/2

		h, err := r.visuals.Create(enemy.Sprite, Placement{X: x, Y: y, Layer: LayerActors})
		if err != nil {
			r.diagnose(err, "enemy spawn skipped", "enemy", enemy.Name)
			continue
		}
		enemy.Visual = h

		r.Enemies = append(r.Enemies, &enemy)
		r.Stats.EnemiesSpawned++
		spawned++
		r.logSpawn(enemy.Sprite.Name, enemy.Name)
	}

	r.logger.Info("🌊 wave released", "enemies", spawned, "waves_left", len(r.waves))
	return spawned
}

// AddEnemy places a clone of tmpl at (x, y). Used by drivers that position
// enemies themselves, and by tests.
func (r *GameRound) AddEnemy(tmpl Alive, x, y float64) (*Alive, error) {
	enemy := tmpl.Clone()
	h, err := r.visuals.Create(enemy.Sprite, Placement{X: x, Y: y, Layer: LayerActors})
	if err != nil {
		return nil, err
	}
	enemy.Visual = h
	r.Enemies = append(r.Enemies, &enemy)
	r.Stats.EnemiesSpawned++
	r.logSpawn(enemy.Sprite.Name, enemy.Name)
	return &enemy, nil
}
