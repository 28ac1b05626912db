package sapling

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// FPSCounter is a screen-space Drawer showing the current FPS and TPS. The
// text refreshes about every 0.5 seconds.
type FPSCounter struct {
	X, Y float64

	elapsed float64
	text    string

	// rates reports (fps, tps). Defaults to ebiten's measurements.
	rates func() (float64, float64)
}

// NewFPSCounter returns a counter at the top-left of the screen.
func NewFPSCounter() *FPSCounter {
	return &FPSCounter{
		X: 4, Y: 4,
		rates: func() (float64, float64) { return ebiten.ActualFPS(), ebiten.ActualTPS() },
	}
}

// Update refreshes the text when due.
func (f *FPSCounter) Update(ctx *Context) error {
	dt := 1.0 / TargetTPS
	if ctx != nil && ctx.DT > 0 {
		dt = ctx.DT
	}
	f.elapsed += dt
	if f.text != "" && f.elapsed < 0.5 {
		return nil
	}
	f.elapsed = 0
	fps, tps := f.rates()
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps)
	return nil
}

// Text returns the current text.
func (f *FPSCounter) Text() string { return f.text }

// Draw records a translucent backing box and the text in screen space.
func (f *FPSCounter) Draw(dc *DrawContext) {
	sc := dc.Screen()
	sc.FillRect(Rect{f.X, f.Y, 100, 32}, color.RGBA{0, 0, 0, 128})
	sc.DebugText(f.text, f.X, f.Y)
}
