package game

// collectPickups gives the player every pickup it overlaps. A pickup whose
// visual has gone missing is still collectable at its recorded position.
func (r *GameRound) collectPickups() int {
	if len(r.Pickups) == 0 {
		return 0
	}

	box, err := r.bounds(&r.Player.GameObject)
	if err != nil {
		r.diagnose(err, "pickup collection skipped")
		return 0
	}

	collected := 0
	n := 0
	for _, pk := range r.Pickups {
		pbox, err := r.bounds(&pk.GameObject)
		if err != nil {
			r.diagnose(err, "pickup bounds fallback", "pickup", pk.Name)
			pbox = RectAt(pk.X, pk.Y, pk.Sprite.Width, pk.Sprite.Height)
		}
		if !IsColliding(box, pbox) {
			r.Pickups[n] = pk
			n++
			continue
		}

		if pk.Visual != 0 {
			r.release(pk.Visual, pk.Name)
		}
		r.Progress.XP += pk.Value
		r.Stats.XPCollected += pk.Value
		collected++

		ev := PickupEvent{
			LogMeta: r.meta("%s collected %s", r.Player.Name, pk.Name),
			Pickup:  pk.Name,
			Value:   pk.Value,
			XP:      r.Progress.XP,
		}
		r.Logs.Pickups = append(r.Logs.Pickups, ev)
		r.emit(EventTypePickup, r.Player.Name, ev)

		r.levelUp()
	}
	r.Pickups = r.Pickups[:n]
	return collected
}

// levelUp climbs the level table while XP covers the current threshold.
// Surplus XP carries into the next level; past the table's end XP just
// accumulates.
func (r *GameRound) levelUp() {
	for {
		need, ok := r.xpToNext(r.Progress.Level)
		if !ok || need <= 0 || r.Progress.XP < need {
			return
		}
		r.Progress.XP -= need
		r.Progress.Level++

		ev := LevelUpEvent{
			LogMeta: r.meta("%s reached level %d", r.Player.Name, r.Progress.Level),
			Level:   r.Progress.Level,
		}
		r.Logs.LevelUps = append(r.Logs.LevelUps, ev)
		r.emit(EventTypeLevelUp, r.Player.Name, ev)
		r.logger.Info("⭐ level up", "level", r.Progress.Level)
	}
}

func (r *GameRound) xpToNext(level int) (float64, bool) {
	for _, l := range r.levels {
		if l.Level == level {
			return l.XPToNext, true
		}
	}
	return 0, false
}
