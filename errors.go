package sapling

import (
	"errors"
	"fmt"
)

var (
	// ErrNoActiveScene is reported when a frame starts without a scene.
	ErrNoActiveScene = errors.New("no active scene")
	// ErrUnknownKey is reported for a binding name missing from the key table.
	ErrUnknownKey = errors.New("unrecognized key name")
	// ErrUnknownField is reported by RenderProps.Set for an unknown field name.
	ErrUnknownField = errors.New("unknown render property")
	// ErrUnknownKind is reported by Spawn for an unregistered object kind.
	ErrUnknownKind = errors.New("unknown object kind")
	// ErrUnknownScene is reported when switching to an unregistered scene.
	ErrUnknownScene = errors.New("unknown scene")
	// ErrUnknownTicker is reported for operations on an undefined ticker.
	ErrUnknownTicker = errors.New("unknown ticker")
	// ErrAssetsClosed is reported for loads after Assets.Close.
	ErrAssetsClosed = errors.New("assets closed")

	errDuplicateScene    = errors.New("scene already registered")
	errSceneNameRequired = errors.New("scene name required")
)

// ConfigError reports a fatal configuration problem: a collaborator handed
// the engine something it cannot run with.
type ConfigError struct {
	Source string // misconfigured collaborator, e.g. "input" or "director"
	Value  string // offending value, may be empty
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("sapling: %s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("sapling: %s: %v: %q", e.Source, e.Err, e.Value)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// TypeError reports a value of the wrong kind: a scene member missing a
// capability, or a render property assigned a value of the wrong type.
type TypeError struct {
	Op    string // operation attempted, e.g. "set", "draw", "spawn"
	Field string // field or capability involved
	Want  string
	Got   string // concrete kind of the offending value
}

func (e *TypeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("sapling: %s: want %s, got %s", e.Op, e.Want, e.Got)
	}
	return fmt.Sprintf("sapling: %s %s: want %s, got %s", e.Op, e.Field, e.Want, e.Got)
}

// LoadError reports a native resource that failed to load.
type LoadError struct {
	Kind string // "texture", "sound" or "music"
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("sapling: load %s %q: %v", e.Kind, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// kindOf names the concrete type of v for error messages.
func kindOf(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}
