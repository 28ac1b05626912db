package sapling

// Object is anything that can live in a scene. Update is called once per
// frame, in scene order, before anything is drawn. An error aborts the frame.
//
// The draw pass only looks at members that are a Drawer or a Sprite. Any
// other Object is logic only: it is updated every frame and never drawn.
type Object interface {
	Update(ctx *Context) error
}

// Sprite is an Object drawn from a texture through its RenderProps.
type Sprite interface {
	Object
	Texture() *Texture
	RenderProps() *RenderProps
}

// Drawer is an Object that records its own draw commands. When an object is
// both a Drawer and a Sprite, Draw wins.
type Drawer interface {
	Object
	Draw(dc *DrawContext)
}

// Context is handed to every Update call. It exposes the engine's
// collaborators for the current frame.
type Context struct {
	Engine  *Engine
	Scene   *Scene
	Input   *Input
	Assets  *Assets
	Audio   *Jukebox
	Camera  *Camera
	Debug   *DebugOverlay
	Tickers *Tickers

	// Frame counts completed frames since the engine started.
	Frame uint64
	// DT is the duration of one tick in seconds.
	DT float64
}

// SpriteBase is an embeddable Sprite implementation with named event
// handlers. Embedders provide Update.
type SpriteBase struct {
	tex      *Texture
	props    *RenderProps
	handlers map[string][]func(args ...any)
}

// NewSpriteBase returns a base whose RenderProps are sized to tex.
func NewSpriteBase(tex *Texture) SpriteBase {
	return SpriteBase{tex: tex, props: NewRenderProps(tex)}
}

// Texture returns the backing texture.
func (b *SpriteBase) Texture() *Texture { return b.tex }

// RenderProps returns the draw parameters.
func (b *SpriteBase) RenderProps() *RenderProps {
	if b.props == nil {
		b.props = NewRenderProps(b.tex)
	}
	return b.props
}

// SetTexture swaps the backing texture. The RenderProps are kept, so frame
// and size stay as they were.
func (b *SpriteBase) SetTexture(tex *Texture) {
	b.tex = tex
}

// On registers fn for the named event.
func (b *SpriteBase) On(event string, fn func(args ...any)) {
	if b.handlers == nil {
		b.handlers = make(map[string][]func(args ...any))
	}
	b.handlers[event] = append(b.handlers[event], fn)
}

// Emit calls every handler registered for event, in registration order.
func (b *SpriteBase) Emit(event string, args ...any) {
	for _, fn := range b.handlers[event] {
		fn(args...)
	}
}
