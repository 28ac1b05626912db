package sapling

// Scene is an ordered collection of objects. Order is both update order and
// draw order (back to front). Objects may add or remove scene members, and
// themselves, while the scene is being walked.
type Scene struct {
	name    string
	objects []Object

	// cursor is the index being visited by walk, or -1 outside a walk.
	cursor int

	sink  EventSink
	frame *uint64
}

// NewScene creates an empty scene.
func NewScene(name string) *Scene {
	return &Scene{name: name, cursor: -1}
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// Len returns the current number of objects.
func (s *Scene) Len() int { return len(s.objects) }

// At returns the object at position i.
func (s *Scene) At(i int) Object { return s.objects[i] }

// Objects returns the object sequence. The returned slice MUST NOT be mutated.
func (s *Scene) Objects() []Object { return s.objects }

// Add appends obj. Objects added during a walk are visited by that walk.
func (s *Scene) Add(obj Object) error {
	if obj == nil {
		return &TypeError{Op: "add", Want: "sapling.Object", Got: "<nil>"}
	}
	s.objects = append(s.objects, obj)
	s.emit(EventObjectAdded, obj)
	return nil
}

// Remove deletes the first occurrence of obj and reports whether it was
// present. Removing the object being visited, or one before it, keeps the
// walk on the next unvisited object.
func (s *Scene) Remove(obj Object) bool {
	i := s.Index(obj)
	if i < 0 {
		return false
	}
	copy(s.objects[i:], s.objects[i+1:])
	s.objects[len(s.objects)-1] = nil
	s.objects = s.objects[:len(s.objects)-1]
	if s.cursor >= 0 && i <= s.cursor {
		s.cursor--
	}
	s.emit(EventObjectRemoved, obj)
	return true
}

// Index returns the position of obj, or -1.
func (s *Scene) Index(obj Object) int {
	for i, o := range s.objects {
		if o == obj {
			return i
		}
	}
	return -1
}

// Contains reports whether obj is in the scene.
func (s *Scene) Contains(obj Object) bool {
	return s.Index(obj) >= 0
}

// Clear removes every object.
func (s *Scene) Clear() {
	for len(s.objects) > 0 {
		s.Remove(s.objects[len(s.objects)-1])
	}
}

// walk visits every object by position. The length is re-read on every
// step, so the walk follows the sequence as fn grows or shrinks it.
func (s *Scene) walk(fn func(Object) error) error {
	debugAssert(s.cursor < 0, "scene %q walked re-entrantly", s.name)
	defer func() { s.cursor = -1 }()
	for s.cursor = 0; s.cursor < len(s.objects); s.cursor++ {
		if err := fn(s.objects[s.cursor]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Scene) emit(t EventType, obj Object) {
	if s.sink == nil {
		return
	}
	ev := Event{Type: t, Scene: s.name, Object: obj}
	if s.frame != nil {
		ev.Frame = *s.frame
	}
	s.sink.EmitEvent(ev)
}

// Find returns the first object of type T in s.
func Find[T Object](s *Scene) (T, bool) {
	for _, o := range s.objects {
		if t, ok := o.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// FindAll returns every object of type T in s, in scene order.
func FindAll[T Object](s *Scene) []T {
	var out []T
	for _, o := range s.objects {
		if t, ok := o.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// SceneDef describes how to build a scene. Setup runs after the scene is
// created and its music applied.
type SceneDef struct {
	Name string
	// Music selects the track when the scene starts: nil keeps the current
	// track, an empty string stops it, a path loads and plays it.
	Music *string
	Setup func(s *Scene, ctx *Context) error
}

// Director holds the registered scene definitions and the active scene.
type Director struct {
	defs    map[string]SceneDef
	current *Scene
}

// NewDirector returns a director with no scenes.
func NewDirector() *Director {
	return &Director{defs: make(map[string]SceneDef)}
}

// Register adds a scene definition. Names must be unique.
func (d *Director) Register(def SceneDef) error {
	if def.Name == "" {
		return &ConfigError{Source: "director", Err: errSceneNameRequired}
	}
	if _, ok := d.defs[def.Name]; ok {
		return &ConfigError{Source: "director", Value: def.Name, Err: errDuplicateScene}
	}
	d.defs[def.Name] = def
	return nil
}

// Def returns the definition registered under name.
func (d *Director) Def(name string) (SceneDef, bool) {
	def, ok := d.defs[name]
	return def, ok
}

// Current returns the active scene, or nil before the first switch.
func (d *Director) Current() *Scene {
	return d.current
}

// SetCurrent makes s the active scene directly, bypassing definitions.
func (d *Director) SetCurrent(s *Scene) {
	d.current = s
}
