package sapling

import "sort"

// KeyState is the per-frame status of one binding: held down, newly pressed
// this frame, newly released this frame.
type KeyState [3]bool

// Down reports whether the key is held.
func (k KeyState) Down() bool { return k[0] }

// Pressed reports whether the key went down this frame.
func (k KeyState) Pressed() bool { return k[1] }

// Released reports whether the key went up this frame.
func (k KeyState) Released() bool { return k[2] }

// Input is the action table: each action maps binding names to the binding's
// KeyState for the current frame. Define and Undefine change the structure;
// Translate only rewrites the states.
type Input struct {
	actions map[string]map[string]KeyState
}

// NewInput returns an empty action table.
func NewInput() *Input {
	return &Input{actions: make(map[string]map[string]KeyState)}
}

// Define binds action to the given key names, replacing any previous
// definition. Names are resolved when the table is translated.
func (in *Input) Define(action string, keys ...string) {
	bindings := make(map[string]KeyState, len(keys))
	for _, k := range keys {
		bindings[k] = KeyState{}
	}
	in.actions[action] = bindings
}

// Undefine removes action.
func (in *Input) Undefine(action string) {
	delete(in.actions, action)
}

// Actions returns the defined action names, sorted.
func (in *Input) Actions() []string {
	names := make([]string, 0, len(in.actions))
	for name := range in.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bindings returns a copy of the binding states of action.
func (in *Input) Bindings(action string) map[string]KeyState {
	b := in.actions[action]
	if b == nil {
		return nil
	}
	out := make(map[string]KeyState, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Down reports whether any key bound to action is held.
func (in *Input) Down(action string) bool {
	return in.any(action, 0)
}

// Pressed reports whether any key bound to action went down this frame.
func (in *Input) Pressed(action string) bool {
	return in.any(action, 1)
}

// Released reports whether any key bound to action went up this frame.
func (in *Input) Released(action string) bool {
	return in.any(action, 2)
}

func (in *Input) any(action string, i int) bool {
	for _, st := range in.actions[action] {
		if st[i] {
			return true
		}
	}
	return false
}

// Validate resolves every binding name without polling.
func (in *Input) Validate() error {
	for _, action := range in.Actions() {
		for _, name := range sortedBindings(in.actions[action]) {
			if _, err := KeyCode(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// Translate recomputes every binding's state from p. Every binding is
// rewritten on every call, whatever it held before. An unrecognized binding
// name aborts the translation with a *ConfigError.
func (in *Input) Translate(p KeyPoller) error {
	for _, action := range in.Actions() {
		bindings := in.actions[action]
		for _, name := range sortedBindings(bindings) {
			code, err := KeyCode(name)
			if err != nil {
				return err
			}
			bindings[name] = KeyState{
				p.IsKeyDown(code),
				p.IsKeyJustPressed(code),
				p.IsKeyJustReleased(code),
			}
		}
	}
	return nil
}

func sortedBindings(b map[string]KeyState) []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
