package catalog

import "github.com/saitheninja/svampire-svurvivors/internal/game"

// Tailwind palette entries used by the sprites.
const (
	blue900   = "rgb(30 58 138)"
	blue300   = "rgb(147 197 253)"
	lime500   = "rgb(132 204 22)"
	lime300   = "rgb(190 242 100)"
	red500    = "rgb(239 68 68)"
	red300    = "rgb(252 165 165)"
	violet500 = "rgb(139 92 246)"
	violet300 = "rgb(196 181 253)"
)

// RoundMinutes is the length of the default round.
const RoundMinutes = 30

// Default returns the built-in tables: one forest map, whip and sword for
// the player, three enemy kinds with body weapons and a single wave.
func Default() Catalog {
	return Catalog{
		Map: WorldMap{
			Name:       "forest",
			Terrain:    Asset{Path: "./terrain-forest.svg", Width: 8000, Height: 8000},
			Background: Asset{Path: "./tree.svg", Width: 50, Height: 150},
		},
		Timer: game.NewRange(0, RoundMinutes*60*1000, 0),

		Weapons: map[string]game.Weapon{
			"whip":          playerWeapon("whip", "🔗🔗🔗🔗", 24, 24*5, 24, 2, 1000, 2000),
			"sword":         playerWeapon("sword", "🗡️", 48, 48, 48, 4, 2000, 5000),
			"skeleton-body": bodyWeapon("skeleton-body", "skeleton-body", 48),
			"zombie-body":   bodyWeapon("zombie-body", "zombie-body", 48),
			// The goblin swings a skeleton body drawn at goblin size.
			"goblin-body": bodyWeapon("skeleton-body", "goblin-body", 64),
		},

		Player: game.Alive{
			GameObject:          object("player", blue900, blue300, "🧔🏾", 48),
			Health:              game.NewRange(0, 100, 100),
			Speed:               0.5,
			HitCooldown:         game.NewRange(0, 200, 0),
			CapacityWeapons:     6,
			CapacityAccessories: 6,
		},
		PlayerLoadout: []string{"whip", "sword"},

		Enemies: map[string]EnemyEntry{
			"skeleton": enemy(object("skeleton", lime500, lime300, "💀", 48), 1, 0.1, "skeleton-body"),
			"zombie":   enemy(object("zombie", lime500, lime300, "🧟", 48), 1, 0.1, "zombie-body"),
			"goblin":   enemy(object("goblin", red500, red300, "👺", 64), 100, 0.05, "goblin-body"),
		},
		Waves: [][]string{{
			"skeleton", "skeleton", "skeleton", "skeleton", "skeleton", "skeleton", "skeleton",
			"zombie", "zombie",
			"goblin",
			"zombie", "zombie",
		}},

		Pickup: game.PickupTemplate{
			GameObject: object("experience-gem", violet500, violet300, "🟪", 20),
			Value:      1,
		},
		XPStep:   10,
		MaxLevel: 10,
	}
}

func object(name, bg, hit, emoji string, size float64) game.GameObject {
	return game.GameObject{
		Name: name,
		Sprite: game.Sprite{
			Name:     name,
			ColorBg:  bg,
			ColorHit: hit,
			Emoji:    emoji,
			FontSize: size,
			Width:    size,
			Height:   size,
		},
	}
}

func playerWeapon(name, emoji string, font, w, h, damage, active, cooldown float64) game.Weapon {
	return game.Weapon{
		GameObject: game.GameObject{
			Name: name,
			Sprite: game.Sprite{
				Name:     name,
				ColorBg:  blue900,
				ColorHit: blue300,
				Emoji:    emoji,
				FontSize: font,
				Width:    w,
				Height:   h,
			},
		},
		Damage:    damage,
		Active:    game.NewRange(0, active, 0),
		Cooldown:  game.NewRange(0, cooldown, 0),
		Level:     1,
		MaxSpawns: 1,
	}
}

// bodyWeapon is an invisible hitbox that lives five seconds and respawns
// as soon as the previous one expires.
func bodyWeapon(name, sprite string, size float64) game.Weapon {
	w := game.Weapon{
		GameObject: object(sprite, blue900, blue300, "", size),
		Damage:     1,
		Active:     game.NewRange(0, 5000, 0),
		Cooldown:   game.NewRange(0, 1, 0),
		Level:      1,
		MaxSpawns:  1,
	}
	w.Name = name
	return w
}

func enemy(obj game.GameObject, hp, speed float64, loadout ...string) EnemyEntry {
	return EnemyEntry{
		Alive: game.Alive{
			GameObject:          obj,
			Health:              game.NewRange(0, hp, hp),
			Speed:               speed,
			HitCooldown:         game.NewRange(0, 0, 0),
			CapacityWeapons:     6,
			CapacityAccessories: 6,
		},
		Loadout: loadout,
	}
}
