package lumen

// EngineEventType identifies a kind of engine notification.
type EngineEventType uint8

const (
	EngineStarted     EngineEventType = iota // engine registered its listeners and scheduled work
	EngineStopped                            // engine released everything it held
	EngineFailed                             // a scheduled callback panicked; the engine stopped itself
	EngineFieldReset                         // particle field respawned its population
	EngineTextChanged                        // typewriter visible text changed
	EngineWordChanged                        // word rotator advanced
	EngineCountChanged                       // count-up display value changed
	EngineCountFinished                      // count-up reached its target
)

// String returns a short lower-case name for the event type.
func (t EngineEventType) String() string {
	switch t {
	case EngineStarted:
		return "started"
	case EngineStopped:
		return "stopped"
	case EngineFailed:
		return "failed"
	case EngineFieldReset:
		return "field-reset"
	case EngineTextChanged:
		return "text-changed"
	case EngineWordChanged:
		return "word-changed"
	case EngineCountChanged:
		return "count-changed"
	case EngineCountFinished:
		return "count-finished"
	default:
		return "unknown"
	}
}

// EngineEvent is published to the host's EventSink when an engine changes
// state. Only the fields relevant to Type are set.
type EngineEvent struct {
	Type   EngineEventType
	Engine string
	// Index is the active candidate/word index, or the population size for
	// EngineFieldReset.
	Index int
	Text  string
	Value int64
	Err   error
}

// EventSink receives engine events. Hosts plug in an ECS bridge or a test
// recorder; nil disables publishing.
type EventSink interface {
	EmitEvent(event EngineEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(EngineEvent)

// EmitEvent calls f(event).
func (f EventSinkFunc) EmitEvent(event EngineEvent) { f(event) }
