// Package render draws round snapshots to images with gg. It is headless:
// frames go to PNG files, nothing is displayed.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/saitheninja/svampire-svurvivors/internal/game"
)

// Config controls the viewport.
type Config struct {
	Width    int
	Height   int
	GridSize float64 // spacing of the terrain grid in world pixels
	FontPath string  // TTF for the HUD; empty searches common locations
}

// DefaultConfig returns a 720p viewport.
func DefaultConfig() Config {
	return Config{Width: 1280, Height: 720, GridSize: 100}
}

var (
	bgColor      = color.RGBA{20, 28, 20, 255}
	gridColor    = color.RGBA{34, 48, 34, 255}
	fallbackBody = color.RGBA{200, 200, 200, 255}
	hudColor     = color.RGBA{240, 240, 240, 255}
)

// Renderer draws snapshots centred on the player. Not safe for concurrent
// use; it reuses one drawing context.
type Renderer struct {
	cfg Config
	dc  *gg.Context
	hud font.Face // nil when no font could be loaded; the HUD is skipped
}

// NewRenderer allocates the drawing context and parses the HUD font once.
func NewRenderer(cfg Config) *Renderer {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		d := DefaultConfig()
		cfg.Width, cfg.Height = d.Width, d.Height
	}
	if cfg.GridSize <= 0 {
		cfg.GridSize = DefaultConfig().GridSize
	}
	fp := cfg.FontPath
	if fp == "" {
		fp = findFont()
	}
	r := &Renderer{
		cfg: cfg,
		dc:  gg.NewContext(cfg.Width, cfg.Height),
	}
	if fp != "" {
		if face, err := gg.LoadFontFace(fp, 20); err == nil {
			r.hud = face
			r.dc.SetFontFace(face)
		}
	}
	return r
}

// Render draws snap and returns the frame. The image is owned by the
// renderer and overwritten by the next call.
func (r *Renderer) Render(snap *game.RoundSnapshot) image.Image {
	dc := r.dc
	w, h := float64(r.cfg.Width), float64(r.cfg.Height)

	// Camera: world origin shifted so the player's centre is mid-screen.
	camX := snap.Player.X + snap.Player.Sprite.Width/2 - w/2
	camY := snap.Player.Y + snap.Player.Sprite.Height/2 - h/2

	dc.SetColor(bgColor)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
	r.drawGrid(camX, camY)

	for _, p := range snap.Pickups {
		r.drawEntity(p, camX, camY, 0.9)
	}
	for _, e := range snap.Enemies {
		r.drawEntity(e, camX, camY, 1)
	}
	for _, wpn := range snap.Weapons {
		r.drawEntity(wpn, camX, camY, 0.5)
	}
	r.drawEntity(snap.Player, camX, camY, 1)
	r.drawHUD(snap)

	return dc.Image()
}

// SavePNG renders snap and writes it to path.
func (r *Renderer) SavePNG(snap *game.RoundSnapshot, path string) error {
	r.Render(snap)
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("render: save %s: %w", path, err)
	}
	return nil
}

func (r *Renderer) drawGrid(camX, camY float64) {
	dc := r.dc
	w, h := float64(r.cfg.Width), float64(r.cfg.Height)
	g := r.cfg.GridSize

	dc.SetColor(gridColor)
	dc.SetLineWidth(1)
	for x := -math.Mod(camX, g); x < w; x += g {
		dc.DrawLine(x, 0, x, h)
		dc.Stroke()
	}
	for y := -math.Mod(camY, g); y < h; y += g {
		dc.DrawLine(0, y, w, y)
		dc.Stroke()
	}
}

// drawEntity fills the sprite box, switching to the hit color inside the
// hit window, and stamps a health bar on anything with max HP.
func (r *Renderer) drawEntity(e game.EntitySnapshot, camX, camY, alpha float64) {
	dc := r.dc
	x, y := e.X-camX, e.Y-camY
	sw, sh := e.Sprite.Width, e.Sprite.Height
	if x+sw < 0 || y+sh < 0 || x > float64(r.cfg.Width) || y > float64(r.cfg.Height) {
		return
	}

	c := colorOr(e.Sprite.ColorBg, fallbackBody)
	if e.Hit {
		c = colorOr(e.Sprite.ColorHit, c)
	}
	c.A = uint8(255 * alpha)

	dc.Push()
	if e.Rotation != 0 {
		dc.RotateAbout(gg.Radians(e.Rotation), x+sw/2, y+sh/2)
	}
	dc.SetColor(c)
	dc.DrawRectangle(x, y, sw, sh)
	dc.Fill()
	dc.Pop()

	if e.MaxHP > 0 {
		frac := math.Max(0, math.Min(1, e.HP/e.MaxHP))
		dc.SetColor(color.RGBA{51, 51, 51, 255})
		dc.DrawRectangle(x, y-8, sw, 4)
		dc.Fill()
		switch {
		case frac > 0.5:
			dc.SetColor(color.RGBA{83, 255, 69, 255})
		case frac > 0.25:
			dc.SetColor(color.RGBA{255, 149, 0, 255})
		default:
			dc.SetColor(color.RGBA{255, 62, 62, 255})
		}
		dc.DrawRectangle(x, y-8, sw*frac, 4)
		dc.Fill()
	}
}

func (r *Renderer) drawHUD(snap *game.RoundSnapshot) {
	if r.hud == nil {
		return
	}
	dc := r.dc
	left := time.Duration(math.Max(0, snap.Timer.Max-snap.Timer.Current)) * time.Millisecond
	dc.SetColor(hudColor)
	dc.DrawString(fmt.Sprintf("%02d:%02d", int(left.Minutes()), int(left.Seconds())%60), 20, 30)
	dc.DrawString(fmt.Sprintf("LV %d  XP %.0f", snap.Progress.Level, snap.Progress.XP), 20, 56)
	dc.DrawString(fmt.Sprintf("KILLS %d", snap.Stats.Kills), 20, 82)
	if snap.Outcome != game.OutcomeInProgress.String() {
		dc.DrawStringAnchored(snap.Outcome, float64(r.cfg.Width)/2, float64(r.cfg.Height)/2, 0.5, 0.5)
	}
}

func findFont() string {
	paths := []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/System/Library/Fonts/Helvetica.ttc",
		"C:\\Windows\\Fonts\\arial.ttf",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if matches, _ := filepath.Glob("*.ttf"); len(matches) > 0 {
		return matches[0]
	}
	return ""
}
