package sapling

import (
	"fmt"
	"sort"
)

// Render property names accepted by RenderProps.Set and RenderProps.Apply.
const (
	PropX      = "x"
	PropY      = "y"
	PropWidth  = "width"
	PropHeight = "height"
	PropAngle  = "angle"
	PropFrame  = "frame"
	PropHFlip  = "hflip"
	PropVFlip  = "vflip"
	PropOrigin = "origin"
)

// RenderProps is the per-object snapshot of draw parameters, kept apart from
// the object's game state.
//
// The destination rectangle is (x, y, width, height). Frame selects the
// source region of the texture. Flips mirror the sampled texels only; they
// never move or resize the destination. Origin is the rotation pivot,
// measured from the destination's top-left corner, and angle is in degrees,
// clockwise.
type RenderProps struct {
	x, y          float64
	width, height float64
	angle         float64
	frame         Rect
	hflip, vflip  bool
	origin        Vec2
}

// NewRenderProps returns props sized to tex: width and height are the
// texture's native size and the frame covers the whole texture. A nil
// texture yields zero sizes.
func NewRenderProps(tex *Texture) *RenderProps {
	p := &RenderProps{}
	if tex != nil {
		p.width = float64(tex.width)
		p.height = float64(tex.height)
		p.frame = tex.Rect()
	}
	return p
}

// X returns the destination x position.
func (p *RenderProps) X() float64 { return p.x }

// Y returns the destination y position.
func (p *RenderProps) Y() float64 { return p.y }

// Position returns (x, y).
func (p *RenderProps) Position() Vec2 { return Vec2{p.x, p.y} }

// Width returns the destination width.
func (p *RenderProps) Width() float64 { return p.width }

// Height returns the destination height.
func (p *RenderProps) Height() float64 { return p.height }

// Size returns (width, height).
func (p *RenderProps) Size() Vec2 { return Vec2{p.width, p.height} }

// Angle returns the rotation in degrees, clockwise.
func (p *RenderProps) Angle() float64 { return p.angle }

// Frame returns the source region of the texture.
func (p *RenderProps) Frame() Rect { return p.frame }

// HFlip reports whether the sampled image is mirrored horizontally.
func (p *RenderProps) HFlip() bool { return p.hflip }

// VFlip reports whether the sampled image is mirrored vertically.
func (p *RenderProps) VFlip() bool { return p.vflip }

// Origin returns the rotation pivot relative to the destination's top-left.
func (p *RenderProps) Origin() Vec2 { return p.origin }

// SetX sets the destination x position.
func (p *RenderProps) SetX(x float64) { p.x = x }

// SetY sets the destination y position.
func (p *RenderProps) SetY(y float64) { p.y = y }

// SetAngle sets the rotation in degrees, clockwise.
func (p *RenderProps) SetAngle(a float64) { p.angle = a }

// SetFrame selects the source region of the texture.
func (p *RenderProps) SetFrame(r Rect) { p.frame = r }

// SetHFlip mirrors the sampled image horizontally.
func (p *RenderProps) SetHFlip(f bool) { p.hflip = f }

// SetVFlip mirrors the sampled image vertically.
func (p *RenderProps) SetVFlip(f bool) { p.vflip = f }

// SetOrigin sets the rotation pivot relative to the destination's top-left.
func (p *RenderProps) SetOrigin(o Vec2) { p.origin = o }

// SetPosition moves the destination rectangle.
func (p *RenderProps) SetPosition(x, y float64) {
	p.x, p.y = x, y
}

// SetSize sets the destination size.
func (p *RenderProps) SetSize(w, h float64) {
	p.width, p.height = w, h
}

// SetWidth sets the destination width.
func (p *RenderProps) SetWidth(w float64) { p.width = w }

// SetHeight sets the destination height.
func (p *RenderProps) SetHeight(h float64) { p.height = h }

// Source returns the rectangle sampled from the texture: the frame with its
// width negated when hflip is set and its height negated when vflip is set.
func (p *RenderProps) Source() Rect {
	src := p.frame
	if p.hflip {
		src.Width = -src.Width
	}
	if p.vflip {
		src.Height = -src.Height
	}
	return src
}

// Dest returns the destination rectangle. Flips never affect it.
func (p *RenderProps) Dest() Rect {
	return Rect{p.x, p.y, p.width, p.height}
}

// Set assigns one property by name. The value must be of the property's
// kind: any Go number for x, y, width, height and angle, a bool for hflip
// and vflip, a Rect for frame and a Vec2 for origin. On error p is unchanged.
func (p *RenderProps) Set(field string, value any) error {
	assign, err := p.prepare(field, value)
	if err != nil {
		return err
	}
	assign()
	return nil
}

// Apply assigns several properties at once. Every entry is validated before
// any is applied, so on error p is unchanged.
func (p *RenderProps) Apply(values map[string]any) error {
	fields := make([]string, 0, len(values))
	for f := range values {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	assigns := make([]func(), 0, len(fields))
	for _, f := range fields {
		assign, err := p.prepare(f, values[f])
		if err != nil {
			return err
		}
		assigns = append(assigns, assign)
	}
	for _, assign := range assigns {
		assign()
	}
	return nil
}

// prepare validates value for field and returns the deferred assignment.
func (p *RenderProps) prepare(field string, value any) (func(), error) {
	switch field {
	case PropX, PropY, PropWidth, PropHeight, PropAngle:
		f, ok := toFloat(value)
		if !ok {
			return nil, &TypeError{Op: "set", Field: field, Want: "number", Got: kindOf(value)}
		}
		dst := p.scalar(field)
		return func() { *dst = f }, nil
	case PropHFlip, PropVFlip:
		b, ok := value.(bool)
		if !ok {
			return nil, &TypeError{Op: "set", Field: field, Want: "bool", Got: kindOf(value)}
		}
		dst := &p.hflip
		if field == PropVFlip {
			dst = &p.vflip
		}
		return func() { *dst = b }, nil
	case PropFrame:
		var r Rect
		switch v := value.(type) {
		case Rect:
			r = v
		case *Rect:
			if v == nil {
				return nil, &TypeError{Op: "set", Field: field, Want: "sapling.Rect", Got: "nil *sapling.Rect"}
			}
			r = *v
		default:
			return nil, &TypeError{Op: "set", Field: field, Want: "sapling.Rect", Got: kindOf(value)}
		}
		return func() { p.frame = r }, nil
	case PropOrigin:
		var o Vec2
		switch v := value.(type) {
		case Vec2:
			o = v
		case *Vec2:
			if v == nil {
				return nil, &TypeError{Op: "set", Field: field, Want: "sapling.Vec2", Got: "nil *sapling.Vec2"}
			}
			o = *v
		default:
			return nil, &TypeError{Op: "set", Field: field, Want: "sapling.Vec2", Got: kindOf(value)}
		}
		return func() { p.origin = o }, nil
	default:
		return nil, fmt.Errorf("sapling: set %q: %w", field, ErrUnknownField)
	}
}

func (p *RenderProps) scalar(field string) *float64 {
	switch field {
	case PropX:
		return &p.x
	case PropY:
		return &p.y
	case PropWidth:
		return &p.width
	case PropHeight:
		return &p.height
	default:
		return &p.angle
	}
}

// toFloat converts any Go numeric kind to float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
