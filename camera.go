package sapling

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// pairAnim holds a pair of running tweens, one per axis.
type pairAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

func (a *pairAnim) update(dt float32, x, y *float64) bool {
	if !a.doneX {
		val, done := a.tweenX.Update(dt)
		*x = float64(val)
		a.doneX = done
	}
	if !a.doneY {
		val, done := a.tweenY.Update(dt)
		*y = float64(val)
		a.doneY = done
	}
	return a.doneX && a.doneY
}

// Camera is the 2D view applied to world-space draws. The world point
// (X, Y) appears at Offset on screen, rotated by Rotation degrees and scaled
// by Zoom around that point.
type Camera struct {
	// X and Y are the world-space target.
	X, Y float64
	// Offset is the screen position of the target.
	Offset Vec2
	// Zoom is the scale factor (1 = no zoom, >1 = zoom in).
	Zoom float64
	// Rotation is in degrees, clockwise.
	Rotation float64

	followTarget Sprite
	followLerp   float64

	scroll   *pairAnim
	zoomAnim *gween.Tween
}

// NewCamera returns a camera at the world origin with DefaultZoom.
func NewCamera() *Camera {
	return &Camera{Zoom: DefaultZoom}
}

// GeoM returns the world-to-screen transform.
func (c *Camera) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-c.X, -c.Y)
	m.Rotate(c.Rotation * math.Pi / 180)
	m.Scale(c.Zoom, c.Zoom)
	m.Translate(c.Offset.X, c.Offset.Y)
	return m
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	m := c.GeoM()
	return m.Apply(wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	m := c.GeoM()
	if !m.IsInvertible() {
		return c.X, c.Y
	}
	m.Invert()
	return m.Apply(sx, sy)
}

// VisibleBounds returns the world-space bounding rect of a w by h screen.
func (c *Camera) VisibleBounds(w, h float64) Rect {
	x0, y0 := c.ScreenToWorld(0, 0)
	x1, y1 := c.ScreenToWorld(w, 0)
	x2, y2 := c.ScreenToWorld(w, h)
	x3, y3 := c.ScreenToWorld(0, h)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Follow makes the camera track the center of a sprite's destination
// rectangle. A lerp of 1 snaps immediately; lower values trail behind.
func (c *Camera) Follow(s Sprite, lerp float64) {
	c.followTarget = s
	c.followLerp = lerp
}

// Unfollow stops tracking.
func (c *Camera) Unfollow() {
	c.followTarget = nil
}

// ScrollTo animates the target to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scroll = &pairAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// ZoomTo animates the zoom to z over duration seconds.
func (c *Camera) ZoomTo(z float64, duration float32, easeFn ease.TweenFunc) {
	c.zoomAnim = gween.New(float32(c.Zoom), float32(z), duration, easeFn)
}

// Animating reports whether a scroll or zoom tween is running.
func (c *Camera) Animating() bool {
	return c.scroll != nil || c.zoomAnim != nil
}

// update advances follow, scroll and zoom. Called once per frame after the
// update pass.
func (c *Camera) update(dt float32) {
	if c.followTarget != nil {
		if p := c.followTarget.RenderProps(); p != nil {
			center := p.Dest().Center()
			c.X += (center.X - c.X) * c.followLerp
			c.Y += (center.Y - c.Y) * c.followLerp
		}
	}

	if c.scroll != nil && c.scroll.update(dt, &c.X, &c.Y) {
		c.scroll = nil
	}

	if c.zoomAnim != nil {
		val, done := c.zoomAnim.Update(dt)
		c.Zoom = float64(val)
		if done {
			c.zoomAnim = nil
		}
	}
}
