package sapling

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to two fields of a RenderProps together. Create one
// with TweenPosition, TweenSize or TweenAngle and call Update(dt) each frame,
// typically from the owning object's Update.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	Done   bool
}

// Update advances every tween by dt seconds and writes the values back.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenPosition animates p's x and y to (toX, toY).
func TweenPosition(p *RenderProps, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(p.x), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(p.y), float32(toY), duration, fn)
	g.fields[0] = &p.x
	g.fields[1] = &p.y
	return g
}

// TweenSize animates p's width and height to (toW, toH).
func TweenSize(p *RenderProps, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(float32(p.width), float32(toW), duration, fn)
	g.tweens[1] = gween.New(float32(p.height), float32(toH), duration, fn)
	g.fields[0] = &p.width
	g.fields[1] = &p.height
	return g
}

// TweenAngle animates p's angle, in degrees.
func TweenAngle(p *RenderProps, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(p.angle), float32(to), duration, fn)
	g.fields[0] = &p.angle
	return g
}
