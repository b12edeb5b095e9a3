package render

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/saitheninja/svampire-svurvivors/internal/game"
)

// FrameWriter saves every Nth snapshot as a numbered PNG.
type FrameWriter struct {
	renderer *Renderer
	dir      string
	every    uint64
	written  int
}

// NewFrameWriter creates dir if needed. every < 1 is treated as 1.
func NewFrameWriter(r *Renderer, dir string, every int) (*FrameWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("render: frame dir: %w", err)
	}
	if every < 1 {
		every = 1
	}
	return &FrameWriter{renderer: r, dir: dir, every: uint64(every)}, nil
}

// Maybe writes snap when its tick falls on the cadence, or when the round
// is over. It returns the time spent, zero when skipped.
func (f *FrameWriter) Maybe(snap *game.RoundSnapshot) (time.Duration, error) {
	if snap == nil {
		return 0, nil
	}
	final := snap.Outcome != game.OutcomeInProgress.String()
	if snap.TickNum%f.every != 0 && !final {
		return 0, nil
	}
	start := time.Now()
	path := filepath.Join(f.dir, fmt.Sprintf("frame_%06d.png", snap.TickNum))
	if err := f.renderer.SavePNG(snap, path); err != nil {
		return 0, err
	}
	f.written++
	return time.Since(start), nil
}

// Written is the number of frames saved.
func (f *FrameWriter) Written() int { return f.written }
