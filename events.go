package sapling

// EventType identifies an engine lifecycle event.
type EventType uint8

const (
	EventObjectAdded   EventType = iota // an object joined a scene
	EventObjectRemoved                  // an object left a scene
	EventSceneSwitched                  // the director made a new scene current
	EventEngineStopped                  // the frame loop reached Stopped
)

func (t EventType) String() string {
	switch t {
	case EventObjectAdded:
		return "object-added"
	case EventObjectRemoved:
		return "object-removed"
	case EventSceneSwitched:
		return "scene-switched"
	case EventEngineStopped:
		return "engine-stopped"
	default:
		return "unknown"
	}
}

// Event carries lifecycle data to an EventSink.
type Event struct {
	Type   EventType
	Scene  string
	Object Object // set for object events
	Frame  uint64
}

// EventSink receives lifecycle events. The ecs sub-package forwards them
// into a donburi world.
type EventSink interface {
	EmitEvent(event Event)
}
