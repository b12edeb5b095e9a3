package game

// Sprite is the visual descriptor of an entity. The simulation only reads
// Width and Height; the rest is passed through to the renderer.
type Sprite struct {
	Name     string  `json:"name"`
	ColorBg  string  `json:"colorBg"`
	ColorHit string  `json:"colorHit"`
	Emoji    string  `json:"emoji"`
	FontSize float64 `json:"fontSize"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// GameObject is the identity shared by every simulated entity.
// Visual is a key into the Visuals registry; zero means no visual.
type GameObject struct {
	Name   string `json:"name"`
	Sprite Sprite `json:"sprite"`
	Visual Handle `json:"-"`
}

// Weapon is both the equipped template (Cooldown progresses) and, once
// spawned, a live instance (Active progresses). Instances are value copies,
// so their timers never leak back into the template.
type Weapon struct {
	GameObject
	Damage    float64      `json:"damage"`
	Active    BoundedRange `json:"durationActive"`
	Cooldown  BoundedRange `json:"durationCooldown"`
	Level     int          `json:"level"`
	MaxSpawns int          `json:"maxSpawns"` // concurrent instances per slot, 0 = unlimited

	// Slot is the index of the template an instance was spawned from.
	Slot int `json:"-"`
}

// instance creates the runtime copy of a template bound to a fresh visual.
func (w Weapon) instance(slot int, visual Handle) Weapon {
	inst := Weapon{
		GameObject: GameObject{
			Name:   w.Name,
			Sprite: w.Sprite,
			Visual: visual,
		},
		Damage:    w.Damage,
		Active:    w.Active,
		Cooldown:  w.Cooldown,
		Level:     w.Level,
		MaxSpawns: w.MaxSpawns,
		Slot:      slot,
	}
	inst.Active.Reset()
	return inst
}

// Alive is the player or an enemy.
type Alive struct {
	GameObject
	Health              BoundedRange `json:"health"`
	Speed               float64      `json:"speed"`
	HitCooldown         BoundedRange `json:"durationHitCooldown"`
	Weapons             []Weapon     `json:"equippedWeapons"`
	ActiveWeapons       []Weapon     `json:"-"`
	CapacityWeapons     int          `json:"capacityWeapons"`
	CapacityAccessories int          `json:"capacityAccessories"`

	// hitLanded arms the invincibility window; it stays false until the
	// first hit so a fresh entity is vulnerable on tick one.
	hitLanded bool
	// struck is set for the tick an entity took damage; renderers flash it.
	struck bool
}

// Clone deep-copies a template so runtime mutation never reaches it.
func (a Alive) Clone() Alive {
	c := a
	c.Visual = 0
	c.hitLanded = false
	c.struck = false
	c.Weapons = append([]Weapon(nil), a.Weapons...)
	c.ActiveWeapons = nil
	return c
}

// Struck reports whether the entity took damage on the latest tick.
func (a *Alive) Struck() bool {
	return a.struck
}

// IsAlive reports whether health is above the death threshold.
func (a *Alive) IsAlive() bool {
	return !a.Health.Depleted()
}

// Invincible reports whether the post-hit window is still open.
//
// The window only exists after a hit has landed: a fresh entity is
// vulnerable on its first tick even though HitCooldown.Current starts
// at or below Max.
func (a *Alive) Invincible() bool {
	return a.hitLanded && a.HitCooldown.Current <= a.HitCooldown.Max
}

// takeHit applies damage and restarts the invincibility window.
func (a *Alive) takeHit(damage float64) {
	a.Health.Apply(damage)
	a.HitCooldown.Reset()
	a.hitLanded = true
	a.struck = true
}

// Pickup is a collectible dropped where an enemy died.
type Pickup struct {
	GameObject
	Value    float64 `json:"value"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// PickupTemplate is the configured drop; Spawn positions a copy.
type PickupTemplate struct {
	GameObject
	Value float64 `json:"value"`
}

// PickupRotation distinguishes dropped pickups from upright sprites.
const PickupRotation = 45.0

func (t PickupTemplate) spawn(x, y float64, visual Handle) Pickup {
	return Pickup{
		GameObject: GameObject{Name: t.Name, Sprite: t.Sprite, Visual: visual},
		Value:      t.Value,
		X:          x,
		Y:          y,
		Rotation:   PickupRotation,
	}
}

// PlayerLevel is one rung of the experience ladder.
type PlayerLevel struct {
	Level    int     `json:"level"`
	XPToNext float64 `json:"xpToNext"`
}
