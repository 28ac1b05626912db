package sapling

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// scriptStep is a single action in a script.
type scriptStep struct {
	Action string `yaml:"action"`
	Key    string `yaml:"key,omitempty"`
	Label  string `yaml:"label,omitempty"`
	Scene  string `yaml:"scene,omitempty"`
	Frames int    `yaml:"frames,omitempty"`
}

// script is the top-level structure of a script file.
type script struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner sequences scripted key presses, scene switches and
// screenshots across frames for automated runs. Attach to an Engine via
// SetScript.
//
// Actions: press, release, tap (key), wait (frames), screenshot (label),
// switch (scene).
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a YAML (or JSON) script and returns a runner ready to be
// attached to an Engine.
func LoadScript(data []byte) (*ScriptRunner, error) {
	var s script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "press", "release", "tap":
			if _, err := KeyCode(st.Key); err != nil {
				return nil, fmt.Errorf("parse script: step %d: %w", i, err)
			}
		case "switch":
			if st.Scene == "" {
				return nil, fmt.Errorf("parse script: step %d: switch needs a scene", i)
			}
		case "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// Done reports whether every step has been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Engine.Step.
func (r *ScriptRunner) step(e *Engine, keys *ScriptedKeys) error {
	if r.done {
		return nil
	}
	// Wait for queued key frames to drain before advancing.
	if keys.Pending() > 0 {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press", "release", "tap":
		code, err := KeyCode(st.Key)
		if err != nil {
			return err
		}
		switch st.Action {
		case "press":
			keys.Press(code)
		case "release":
			keys.Release(code)
		default:
			keys.Tap(code)
		}
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		e.Screenshot(st.Label)
	case "switch":
		if err := e.SwitchScene(st.Scene); err != nil {
			return err
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && keys.Pending() == 0 {
		r.done = true
	}
	return nil
}
