package sapling

import "fmt"

func init() {
	RegisterKind("sprite", newStaticSprite)
	RegisterKind("fps", func(*Context, map[string]any) (any, error) {
		return NewFPSCounter(), nil
	})
}

// StaticSprite is a texture drawn through its RenderProps with no behavior
// of its own.
type StaticSprite struct {
	SpriteBase
}

// NewStaticSprite returns a sprite showing tex at its native size.
func NewStaticSprite(tex *Texture) *StaticSprite {
	return &StaticSprite{SpriteBase: NewSpriteBase(tex)}
}

// Update does nothing.
func (s *StaticSprite) Update(*Context) error { return nil }

// newStaticSprite loads args["texture"] through the context's asset cache.
func newStaticSprite(ctx *Context, args map[string]any) (any, error) {
	path, ok := args["texture"].(string)
	if !ok {
		return nil, &TypeError{Op: "spawn", Field: "texture", Want: "string", Got: kindOf(args["texture"])}
	}
	if ctx == nil || ctx.Assets == nil {
		return nil, fmt.Errorf("sprite %q: no asset cache", path)
	}
	tex, err := ctx.Assets.LoadTexture(path)
	if err != nil {
		return nil, err
	}
	return NewStaticSprite(tex), nil
}
