package sapling

import "github.com/hajimehoshi/ebiten/v2"

// keyEvent is one queued key transition.
type keyEvent struct {
	key  ebiten.Key
	down bool
}

// ScriptedKeys is a KeyPoller driven by queued key transitions instead of
// the keyboard. Each Advance applies one batch of transitions, so a press
// and its release land on different frames. Attach it to an Engine with
// Options.Keys for automated runs.
type ScriptedKeys struct {
	queue [][]keyEvent
	prev  map[ebiten.Key]bool
	down  map[ebiten.Key]bool
}

// NewScriptedKeys returns a poller with every key up.
func NewScriptedKeys() *ScriptedKeys {
	return &ScriptedKeys{
		prev: make(map[ebiten.Key]bool),
		down: make(map[ebiten.Key]bool),
	}
}

// Press queues key going down on its own frame.
func (s *ScriptedKeys) Press(key ebiten.Key) {
	s.queue = append(s.queue, []keyEvent{{key: key, down: true}})
}

// Release queues key going up on its own frame.
func (s *ScriptedKeys) Release(key ebiten.Key) {
	s.queue = append(s.queue, []keyEvent{{key: key, down: false}})
}

// Tap queues a press followed by a release. Consumes two frames.
func (s *ScriptedKeys) Tap(key ebiten.Key) {
	s.Press(key)
	s.Release(key)
}

// Pending returns the number of queued frames.
func (s *ScriptedKeys) Pending() int { return len(s.queue) }

// Advance starts a new frame: the previous state is remembered and the next
// queued batch, if any, is applied.
func (s *ScriptedKeys) Advance() {
	for k, v := range s.down {
		s.prev[k] = v
	}
	for k := range s.prev {
		if !s.down[k] {
			s.prev[k] = false
		}
	}
	if len(s.queue) == 0 {
		return
	}
	batch := s.queue[0]
	copy(s.queue, s.queue[1:])
	s.queue[len(s.queue)-1] = nil
	s.queue = s.queue[:len(s.queue)-1]
	for _, ev := range batch {
		s.down[ev.key] = ev.down
	}
}

func (s *ScriptedKeys) IsKeyDown(key ebiten.Key) bool { return s.down[key] }

func (s *ScriptedKeys) IsKeyJustPressed(key ebiten.Key) bool {
	return s.down[key] && !s.prev[key]
}

func (s *ScriptedKeys) IsKeyJustReleased(key ebiten.Key) bool {
	return !s.down[key] && s.prev[key]
}
