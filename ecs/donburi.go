package ecs

import (
	"github.com/phanxgames/sapling"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for sapling lifecycle events.
var SceneEventType = events.NewEventType[sapling.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to SceneEventType and can be consumed with events.Subscribe and
// ProcessEvents.
func NewDonburiSink(world donburi.World) sapling.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event sapling.Event) {
	SceneEventType.Publish(s.world, event)
}

// OnEvent subscribes fn to the lifecycle events of type t. Like any Donburi
// subscriber, fn runs from SceneEventType.ProcessEvents.
func OnEvent(world donburi.World, t sapling.EventType, fn func(w donburi.World, e sapling.Event)) {
	SceneEventType.Subscribe(world, func(w donburi.World, e sapling.Event) {
		if e.Type == t {
			fn(w, e)
		}
	})
}

// OnObjectRemoved subscribes fn to scene removals. By the time fn runs the
// object has already left its scene, so fn is the place to drop any
// entities that mirror it.
func OnObjectRemoved(world donburi.World, fn func(w donburi.World, scene string, obj sapling.Object)) {
	OnEvent(world, sapling.EventObjectRemoved, func(w donburi.World, e sapling.Event) {
		fn(w, e.Scene, e.Object)
	})
}
