package sapling

import (
	"fmt"
	"image/color"
	"time"
)

// globalDebug enables internal assertions. Set through Engine.SetDebugMode.
var globalDebug bool

// debugAssert panics with a descriptive message when cond is false and debug
// mode is on. In release mode it does nothing.
func debugAssert(cond bool, format string, args ...any) {
	if globalDebug && !cond {
		panic("sapling debug: " + fmt.Sprintf(format, args...))
	}
}

// DebugOverlay is a list of rectangles outlined on top of each frame. Use it
// to visualize hitboxes and trigger areas.
type DebugOverlay struct {
	rects []Rect

	// WorldSpace draws the rectangles through the camera. When false they
	// are in screen coordinates.
	WorldSpace bool
	// Color of the outlines.
	Color color.RGBA
	// StrokeWidth of the outlines, in pixels.
	StrokeWidth float64
}

// NewDebugOverlay returns an empty overlay drawing red one-pixel outlines.
func NewDebugOverlay() *DebugOverlay {
	return &DebugOverlay{
		Color:       color.RGBA{R: 230, G: 41, B: 55, A: 255},
		StrokeWidth: 1,
	}
}

// AddRect appends r to the overlay.
func (d *DebugOverlay) AddRect(r Rect) {
	d.rects = append(d.rects, r)
}

// RemoveRect removes the first rectangle equal to r and reports whether one
// was found.
func (d *DebugOverlay) RemoveRect(r Rect) bool {
	for i, have := range d.rects {
		if have == r {
			d.rects = append(d.rects[:i], d.rects[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every rectangle.
func (d *DebugOverlay) Clear() {
	d.rects = d.rects[:0]
}

// Rects returns the rectangles in insertion order. The returned slice MUST
// NOT be mutated.
func (d *DebugOverlay) Rects() []Rect {
	return d.rects
}

// record validates every rectangle and appends an outline command for each.
// A rectangle with a NaN or infinite field is rejected before anything is
// recorded.
func (d *DebugOverlay) record(buf *commandBuffer) error {
	for i, r := range d.rects {
		if !r.finite() {
			return &TypeError{
				Op:    "debug",
				Field: fmt.Sprintf("rect %d", i),
				Want:  "finite sapling.Rect",
				Got:   r.String(),
			}
		}
	}
	dc := &DrawContext{buf: buf, world: d.WorldSpace}
	for _, r := range d.rects {
		dc.StrokeRect(r, d.StrokeWidth, d.Color)
	}
	return nil
}

// debugStats holds per-frame timings and counts. Only populated in debug
// mode.
type debugStats struct {
	updateTime   time.Duration
	drawTime     time.Duration
	submitTime   time.Duration
	objectCount  int
	commandCount int
}

// logDebugStats writes the frame's stats at debug level.
func logDebugStats(frame uint64, stats debugStats) {
	if !globalDebug {
		return
	}
	logger.Debug("frame",
		"n", frame,
		"update", stats.updateTime,
		"draw", stats.drawTime,
		"submit", stats.submitTime,
		"total", stats.updateTime+stats.drawTime+stats.submitTime,
		"objects", stats.objectCount,
		"commands", stats.commandCount,
	)
}
