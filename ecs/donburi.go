package ecs

import (
	"github.com/phanxgames/turtleizer"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for every turtleizer scene event.
var SceneEventType = events.NewEventType[turtleizer.Event]()

// MeasureEventType only carries measuring events. Use it when a system does
// not care about render damage.
var MeasureEventType = events.NewEventType[turtleizer.Measurement]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to SceneEventType, and measuring events also to
// MeasureEventType. Consume them with Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) turtleizer.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event turtleizer.Event) {
	SceneEventType.Publish(s.world, event)
	switch event.Type {
	case turtleizer.EventMeasureStart, turtleizer.EventMeasure, turtleizer.EventMeasureEnd:
		MeasureEventType.Publish(s.world, event.Measurement)
	}
}
