package sapling

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds an object of a registered kind. args holds the spec's
// props that are not render properties; render properties are applied by
// Spawn once the object exists. The result must implement Object.
type Factory func(ctx *Context, args map[string]any) (any, error)

var (
	kinds   = make(map[string]Factory)
	kindsMu sync.RWMutex
)

// RegisterKind adds a factory under name.
// Typically called from an init function.
// Panics if name is already registered.
func RegisterKind(name string, f Factory) {
	kindsMu.Lock()
	defer kindsMu.Unlock()

	if _, exists := kinds[name]; exists {
		panic(fmt.Sprintf("sapling: kind %q already registered", name))
	}
	kinds[name] = f
}

// KindRegistered reports whether name has a factory.
func KindRegistered(name string) bool {
	kindsMu.RLock()
	defer kindsMu.RUnlock()

	_, ok := kinds[name]
	return ok
}

// Kinds returns the registered kind names, sorted.
func Kinds() []string {
	kindsMu.RLock()
	defer kindsMu.RUnlock()

	names := make([]string, 0, len(kinds))
	for name := range kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupKind(name string) (Factory, bool) {
	kindsMu.RLock()
	defer kindsMu.RUnlock()

	f, ok := kinds[name]
	return f, ok
}

var renderPropNames = map[string]bool{
	PropX: true, PropY: true, PropWidth: true, PropHeight: true, PropAngle: true,
	PropFrame: true, PropHFlip: true, PropVFlip: true, PropOrigin: true,
}

// Spawn builds an object from spec. Render properties in spec.Props are
// applied all-or-nothing after construction and require a Sprite; the rest
// are passed to the factory.
func Spawn(ctx *Context, spec ObjectSpec) (Object, error) {
	f, ok := lookupKind(spec.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, spec.Kind)
	}

	props, err := normalizeProps(spec.Props)
	if err != nil {
		return nil, err
	}
	render := make(map[string]any)
	args := make(map[string]any)
	for k, v := range props {
		if renderPropNames[k] {
			render[k] = v
		} else {
			args[k] = v
		}
	}

	v, err := f(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", spec.Kind, err)
	}
	obj, ok := v.(Object)
	if !ok || obj == nil {
		return nil, &TypeError{Op: "spawn", Field: spec.Kind, Want: "sapling.Object", Got: kindOf(v)}
	}
	if len(render) == 0 {
		return obj, nil
	}

	s, ok := obj.(Sprite)
	if !ok || s.RenderProps() == nil {
		return nil, &TypeError{Op: "spawn", Field: spec.Kind, Want: "sapling.Sprite", Got: kindOf(obj)}
	}
	if err := s.RenderProps().Apply(render); err != nil {
		return nil, err
	}
	return obj, nil
}
