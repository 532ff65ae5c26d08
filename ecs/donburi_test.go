package ecs

import (
	"testing"
	"time"

	"github.com/phanxgames/lumen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []lumen.EngineEvent
	EngineEventType.Subscribe(world, func(w donburi.World, e lumen.EngineEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(lumen.EngineEvent{
		Type:   lumen.EngineWordChanged,
		Engine: "hero",
		Index:  2,
		Text:   "faster",
	})
	sink.EmitEvent(lumen.EngineEvent{
		Type:   lumen.EngineCountFinished,
		Engine: "users",
		Value:  12500,
	})

	// Events are queued — process them.
	EngineEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != lumen.EngineWordChanged || e0.Engine != "hero" || e0.Index != 2 || e0.Text != "faster" {
		t.Errorf("event 0: %+v", e0)
	}
	e1 := received[1]
	if e1.Type != lumen.EngineCountFinished || e1.Value != 12500 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink lumen.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	EngineEventType.Subscribe(world, func(w donburi.World, e lumen.EngineEvent) {
		count1++
	})
	EngineEventType.Subscribe(world, func(w donburi.World, e lumen.EngineEvent) {
		count2++
	})

	sink.EmitEvent(lumen.EngineEvent{Type: lumen.EngineStarted, Engine: "x"})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}

func TestDonburiSink_FromHost(t *testing.T) {
	world := donburi.NewWorld()
	h := lumen.NewHost()
	h.SetEventSink(NewDonburiSink(world))

	var words []string
	EngineEventType.Subscribe(world, func(w donburi.World, e lumen.EngineEvent) {
		if e.Type == lumen.EngineWordChanged {
			words = append(words, e.Text)
		}
	})

	cfg := lumen.DefaultWordRotatorConfig()
	cfg.Words = []string{"fast", "calm", "bright"}
	r, err := lumen.NewWordRotator("hero", cfg)
	if err != nil {
		t.Fatal(err)
	}
	r.Start(h)
	h.Update(6 * time.Second)
	r.Stop()

	EngineEventType.ProcessEvents(world)

	if len(words) != 2 || words[0] != "calm" || words[1] != "bright" {
		t.Errorf("words = %v, want [calm bright]", words)
	}
}
