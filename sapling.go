package sapling

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// TargetTPS is the fixed logic rate of the frame loop.
const TargetTPS = 60

// DefaultZoom is the zoom a new Camera starts with.
const DefaultZoom = 2.0

// BackgroundColor is the color the framebuffer is cleared to every frame.
var BackgroundColor = color.RGBA{R: 245, G: 245, B: 245, A: 255}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) String() string {
	return fmt.Sprintf("Vec2(x: %g, y: %g)", v.X, v.Y)
}

// Rect is an axis-aligned rectangle with its origin at the top-left and Y
// increasing downward. Width and Height may be negative; a negative extent in
// a source rectangle mirrors the sampled texels.
type Rect struct {
	X, Y, Width, Height float64
}

// Left returns the x coordinate of the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the y coordinate of the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Size returns (Width, Height).
func (r Rect) Size() Vec2 { return Vec2{r.Width, r.Height} }

// Moved returns a copy of r with its top-left corner at p.
func (r Rect) Moved(p Vec2) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// Centered returns a copy of r whose center is at p.
func (r Rect) Centered(p Vec2) Rect {
	r.X = p.X - r.Width/2
	r.Y = p.Y - r.Height/2
	return r
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Overlaps reports whether r and other share any interior area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

func (r Rect) finite() bool {
	for _, f := range [4]float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(x: %g, y: %g, w: %g, h: %g)", r.X, r.Y, r.Width, r.Height)
}

// whitePixel backs solid-color fills. Created on first use.
var whitePixel *ebiten.Image

func whitePixelImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}
