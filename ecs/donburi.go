package ecs

import (
	"github.com/phanxgames/lumen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EngineEventType carries lumen engine lifecycle and content events
// (started, stopped, failed, text and word changes, count finished, field
// reset) into a Donburi world. Each event names the engine that raised it.
var EngineEventType = events.NewEventType[lumen.EngineEvent]()

// donburiSink queues every host event on its world until the next
// ProcessEvents.
type donburiSink struct {
	world donburi.World
}

// NewDonburiSink returns a sink to pass to Host.SetEventSink. Engine events
// raised during Host.Update are queued on world and delivered to
// EngineEventType subscribers when the ECS runs ProcessEvents, so systems
// can react to a word rotator advancing or a field respawning.
func NewDonburiSink(world donburi.World) lumen.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event lumen.EngineEvent) {
	EngineEventType.Publish(s.world, event)
}
