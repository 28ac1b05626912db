package sapling

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// CommandType identifies the kind of draw command.
type CommandType uint8

const (
	CommandTexture    CommandType = iota // textured quad (DrawImage)
	CommandFillRect                      // solid quad (DrawTriangles)
	CommandStrokeRect                    // rectangle outline
	CommandText                          // debug font text
)

func (t CommandType) String() string {
	switch t {
	case CommandTexture:
		return "texture"
	case CommandFillRect:
		return "fill-rect"
	case CommandStrokeRect:
		return "stroke-rect"
	case CommandText:
		return "text"
	default:
		return "unknown"
	}
}

// DrawCommand is a single draw instruction recorded during the draw pass and
// submitted to the framebuffer at the end of the frame.
//
// Texture commands follow the source/destination convention of RenderProps:
// a negative Src extent mirrors the sampled texels, Dst is never mirrored,
// Origin is the pivot measured from Dst's top-left and Angle is in degrees,
// clockwise.
type DrawCommand struct {
	Type    CommandType
	Texture *Texture
	Src     Rect
	Dst     Rect
	Origin  Vec2
	Angle   float64
	Color   color.RGBA
	Stroke  float64
	Text    string

	// World commands are drawn through the camera; others in screen space.
	World bool
}

type commandBuffer struct {
	list []DrawCommand
}

// DrawContext records draw commands for one object. Commands recorded
// through it are world-space unless obtained via Screen.
type DrawContext struct {
	buf   *commandBuffer
	world bool
}

func newDrawContext(buf *commandBuffer) *DrawContext {
	return &DrawContext{buf: buf, world: true}
}

// Screen returns a context that records screen-space commands into the same
// frame.
func (dc *DrawContext) Screen() *DrawContext {
	return &DrawContext{buf: dc.buf, world: false}
}

// World reports whether commands are recorded in world space.
func (dc *DrawContext) World() bool { return dc.world }

// DrawTexture records a textured quad.
func (dc *DrawContext) DrawTexture(tex *Texture, src, dst Rect, origin Vec2, angle float64) {
	if tex == nil {
		return
	}
	dc.push(DrawCommand{
		Type:    CommandTexture,
		Texture: tex,
		Src:     src,
		Dst:     dst,
		Origin:  origin,
		Angle:   angle,
		Color:   color.RGBA{255, 255, 255, 255},
	})
}

// DrawProps records tex drawn with the given render properties.
func (dc *DrawContext) DrawProps(tex *Texture, p *RenderProps) {
	dc.DrawTexture(tex, p.Source(), p.Dest(), p.origin, p.angle)
}

// FillRect records a solid rectangle.
func (dc *DrawContext) FillRect(r Rect, clr color.RGBA) {
	dc.push(DrawCommand{Type: CommandFillRect, Dst: r, Color: clr})
}

// StrokeRect records a rectangle outline of the given line width.
func (dc *DrawContext) StrokeRect(r Rect, width float64, clr color.RGBA) {
	dc.push(DrawCommand{Type: CommandStrokeRect, Dst: r, Stroke: width, Color: clr})
}

// DebugText records text in ebiten's debug font with its top-left at (x, y).
func (dc *DrawContext) DebugText(text string, x, y float64) {
	dc.push(DrawCommand{Type: CommandText, Text: text, Dst: Rect{X: x, Y: y}})
}

func (dc *DrawContext) push(cmd DrawCommand) {
	cmd.World = dc.world
	dc.buf.list = append(dc.buf.list, cmd)
}

// composeSprite turns a sprite's texture and render properties into a draw
// command. obj is the scene member, used to name it in errors.
func composeSprite(obj Object, s Sprite) (DrawCommand, error) {
	tex := s.Texture()
	if tex == nil {
		return DrawCommand{}, &TypeError{Op: "draw", Field: "texture", Want: "*sapling.Texture", Got: kindOf(obj)}
	}
	p := s.RenderProps()
	if p == nil {
		return DrawCommand{}, &TypeError{Op: "draw", Field: "render props", Want: "*sapling.RenderProps", Got: kindOf(obj)}
	}
	return DrawCommand{
		Type:    CommandTexture,
		Texture: tex,
		Src:     p.Source(),
		Dst:     p.Dest(),
		Origin:  p.origin,
		Angle:   p.angle,
		Color:   color.RGBA{255, 255, 255, 255},
		World:   true,
	}, nil
}

// sourceBounds returns the texel rectangle sampled by src. Mirroring keeps
// the rectangle's origin; only the extent's sign changes.
func sourceBounds(src Rect) image.Rectangle {
	x0 := int(math.Floor(src.X))
	y0 := int(math.Floor(src.Y))
	x1 := int(math.Floor(src.X + math.Abs(src.Width)))
	y1 := int(math.Floor(src.Y + math.Abs(src.Height)))
	return image.Rect(x0, y0, x1, y1)
}

// clipSource trims src to the texture bounds. SubImage clips the sampled
// region the same way, so dst is shrunk and origin moved to keep every
// visible texel where the untrimmed src would have put it.
func clipSource(src, dst Rect, origin Vec2, bounds Rect) (Rect, Rect, Vec2) {
	sw, sh := math.Abs(src.Width), math.Abs(src.Height)
	if sw == 0 || sh == 0 {
		return src, dst, origin
	}
	x0, x1 := math.Max(src.X, bounds.Left()), math.Min(src.X+sw, bounds.Right())
	y0, y1 := math.Max(src.Y, bounds.Top()), math.Min(src.Y+sh, bounds.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, Rect{X: dst.X, Y: dst.Y}, origin
	}
	kx, ky := dst.Width/sw, dst.Height/sh

	// offset of the kept region inside the untrimmed destination
	offX, offY := (x0-src.X)*kx, (y0-src.Y)*ky
	if src.Width < 0 {
		offX = (src.X + sw - x1) * kx
	}
	if src.Height < 0 {
		offY = (src.Y + sh - y1) * ky
	}

	clipped := Rect{x0, y0, x1 - x0, y1 - y0}
	dst.Width, dst.Height = clipped.Width*kx, clipped.Height*ky
	if src.Width < 0 {
		clipped.Width = -clipped.Width
	}
	if src.Height < 0 {
		clipped.Height = -clipped.Height
	}
	origin.X -= offX
	origin.Y -= offY
	return clipped, dst, origin
}

// textureGeoM maps the sampled source region onto the destination:
// mirror, scale to size, shift by -origin, rotate, then move to (x, y).
func textureGeoM(src, dst Rect, origin Vec2, angle float64) ebiten.GeoM {
	var m ebiten.GeoM
	sw, sh := math.Abs(src.Width), math.Abs(src.Height)
	if src.Width < 0 {
		m.Scale(-1, 1)
		m.Translate(sw, 0)
	}
	if src.Height < 0 {
		m.Scale(1, -1)
		m.Translate(0, sh)
	}
	if sw > 0 && sh > 0 {
		m.Scale(dst.Width/sw, dst.Height/sh)
	}
	m.Translate(-origin.X, -origin.Y)
	m.Rotate(angle * math.Pi / 180)
	m.Translate(dst.X, dst.Y)
	return m
}

// rectGeoM places a unit square at the destination rectangle.
func rectGeoM(r Rect) ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(r.Width, r.Height)
	m.Translate(r.X, r.Y)
	return m
}

// submitCommands draws cmds onto screen in order. World commands are
// additionally transformed by view.
func submitCommands(screen *ebiten.Image, cmds []DrawCommand, view ebiten.GeoM) {
	for i := range cmds {
		cmd := &cmds[i]
		var base ebiten.GeoM
		if cmd.World {
			base = view
		}
		switch cmd.Type {
		case CommandTexture:
			submitTexture(screen, cmd, base)
		case CommandFillRect:
			submitFill(screen, cmd, base)
		case CommandStrokeRect:
			submitStroke(screen, cmd, base)
		case CommandText:
			x, y := base.Apply(cmd.Dst.X, cmd.Dst.Y)
			ebitenutil.DebugPrintAt(screen, cmd.Text, int(x), int(y))
		}
	}
}

func submitTexture(screen *ebiten.Image, cmd *DrawCommand, base ebiten.GeoM) {
	tex := cmd.Texture
	if tex == nil || tex.released || tex.image == nil {
		return
	}
	ib := tex.image.Bounds()
	bounds := Rect{float64(ib.Min.X), float64(ib.Min.Y), float64(ib.Dx()), float64(ib.Dy())}
	src, dst, origin := clipSource(cmd.Src, cmd.Dst, cmd.Origin, bounds)
	b := sourceBounds(src)
	if b.Empty() {
		return
	}
	sub, ok := tex.image.SubImage(b).(*ebiten.Image)
	if !ok {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM = textureGeoM(src, dst, origin, cmd.Angle)
	op.GeoM.Concat(base)
	op.ColorScale.ScaleWithColor(cmd.Color)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(sub, &op)
}

func submitFill(screen *ebiten.Image, cmd *DrawCommand, base ebiten.GeoM) {
	m := rectGeoM(cmd.Dst)
	m.Concat(base)
	r := float32(cmd.Color.R) / 255
	g := float32(cmd.Color.G) / 255
	bl := float32(cmd.Color.B) / 255
	a := float32(cmd.Color.A) / 255

	var verts [4]ebiten.Vertex
	corners := [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i, c := range corners {
		x, y := m.Apply(c[0], c[1])
		verts[i] = ebiten.Vertex{
			DstX: float32(x), DstY: float32(y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: r, ColorG: g, ColorB: bl, ColorA: a,
		}
	}
	screen.DrawTriangles(verts[:], []uint16{0, 1, 2, 0, 2, 3}, whitePixelImage(), nil)
}

func submitStroke(screen *ebiten.Image, cmd *DrawCommand, base ebiten.GeoM) {
	r := cmd.Dst
	pts := [4][2]float64{
		{r.Left(), r.Top()},
		{r.Right(), r.Top()},
		{r.Right(), r.Bottom()},
		{r.Left(), r.Bottom()},
	}
	width := float32(cmd.Stroke)
	if width <= 0 {
		width = 1
	}
	for i := range pts {
		j := (i + 1) % len(pts)
		x0, y0 := base.Apply(pts[i][0], pts[i][1])
		x1, y1 := base.Apply(pts[j][0], pts[j][1])
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), width, cmd.Color, false)
	}
}
