package lumen

import (
	"errors"
	"testing"
	"time"
)

func newTestTypewriter(t *testing.T, texts ...string) *Typewriter {
	t.Helper()
	cfg := DefaultTypewriterConfig()
	cfg.Texts = texts
	tw, err := NewTypewriter("tw", cfg)
	if err != nil {
		t.Fatal(err)
	}
	return tw
}

func TestTypewriterRejectsEmpty(t *testing.T) {
	_, err := NewTypewriter("tw", DefaultTypewriterConfig())
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("err = %v, want ErrNoCandidates", err)
	}
}

func TestTypewriterConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TypewriterConfig)
	}{
		{"zero type speed", func(c *TypewriterConfig) { c.TypeSpeed = 0 }},
		{"zero delete speed", func(c *TypewriterConfig) { c.DeleteSpeed = 0 }},
		{"negative pause", func(c *TypewriterConfig) { c.Pause = -time.Second }},
		{"negative cursor", func(c *TypewriterConfig) { c.CursorPeriod = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTypewriterConfig()
			cfg.Texts = []string{"x"}
			tt.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestTypewriterSequence(t *testing.T) {
	h := NewHost()
	tw := newTestTypewriter(t, "AI", "ML")
	tw.Start(h)

	steps := []struct {
		advance time.Duration
		text    string
		phase   TypewriterPhase
		index   int
	}{
		{100 * time.Millisecond, "A", Typing, 0},
		{100 * time.Millisecond, "AI", PausedFull, 0},
		{1999 * time.Millisecond, "AI", PausedFull, 0},
		{1 * time.Millisecond, "AI", Deleting, 0},
		{50 * time.Millisecond, "A", Deleting, 0},
		{50 * time.Millisecond, "", Typing, 1},
		{100 * time.Millisecond, "M", Typing, 1},
		{100 * time.Millisecond, "ML", PausedFull, 1},
	}
	for i, st := range steps {
		h.Update(st.advance)
		if got := tw.Text(); got != st.text {
			t.Errorf("step %d (t=%v): text = %q, want %q", i, h.Now(), got, st.text)
		}
		if tw.Phase() != st.phase {
			t.Errorf("step %d: phase = %v, want %v", i, tw.Phase(), st.phase)
		}
		if tw.Index() != st.index {
			t.Errorf("step %d: index = %d, want %d", i, tw.Index(), st.index)
		}
	}
	tw.Stop()
}

func TestTypewriterWrapsToFirst(t *testing.T) {
	h := NewHost()
	tw := newTestTypewriter(t, "A")
	tw.Start(h)
	// type (100ms) + pause (2s) + delete (50ms)
	h.Update(2150 * time.Millisecond)
	if tw.Index() != 0 || tw.Text() != "" || tw.Phase() != Typing {
		t.Errorf("index=%d text=%q phase=%v", tw.Index(), tw.Text(), tw.Phase())
	}
	h.Update(100 * time.Millisecond)
	if tw.Text() != "A" {
		t.Errorf("text = %q after wrap", tw.Text())
	}
	tw.Stop()
}

func TestTypewriterRunes(t *testing.T) {
	h := NewHost()
	tw := newTestTypewriter(t, "héllo✓")
	tw.Start(h)
	h.Update(200 * time.Millisecond)
	if tw.Text() != "hé" {
		t.Errorf("text = %q, want %q", tw.Text(), "hé")
	}
	h.Update(400 * time.Millisecond)
	if tw.Text() != "héllo✓" {
		t.Errorf("text = %q", tw.Text())
	}
	tw.Stop()
}

func TestTypewriterEvents(t *testing.T) {
	h := NewHost()
	rec := &eventRecorder{}
	h.SetEventSink(rec)
	tw := newTestTypewriter(t, "AI")
	tw.Start(h)
	h.Update(2300 * time.Millisecond)
	tw.Stop()

	var texts []string
	for _, e := range rec.ofType(EngineTextChanged) {
		texts = append(texts, e.Text)
	}
	want := []string{"A", "AI", "A", ""}
	if len(texts) != len(want) {
		t.Fatalf("texts = %q, want %q", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("texts[%d] = %q, want %q", i, texts[i], want[i])
		}
	}
	if len(rec.ofType(EngineStarted)) != 1 || len(rec.ofType(EngineStopped)) != 1 {
		t.Errorf("lifecycle events = %+v", rec.events)
	}
}

func TestTypewriterStopAndResume(t *testing.T) {
	h := NewHost()
	tw := newTestTypewriter(t, "Hello")
	tw.Start(h)
	h.Update(200 * time.Millisecond)
	tw.Stop()
	if h.Clock().PendingTimers() != 0 {
		t.Errorf("PendingTimers = %d after stop", h.Clock().PendingTimers())
	}
	h.Update(time.Second)
	if tw.Text() != "He" {
		t.Errorf("text changed while stopped: %q", tw.Text())
	}
	tw.Start(h)
	h.Update(100 * time.Millisecond)
	if tw.Text() != "Hel" {
		t.Errorf("text = %q after resume", tw.Text())
	}
	tw.Stop()
}

func TestTypewriterCursorOpacity(t *testing.T) {
	h := NewHost()
	tw := newTestTypewriter(t, "A")
	if tw.CursorOpacity() != 1 {
		t.Error("unmounted cursor should be solid")
	}
	tw.Start(h)
	assertNearEps(t, "t=0", tw.CursorOpacity(), 1, tweenEps)
	h.Update(500 * time.Millisecond)
	assertNearEps(t, "t=500ms", tw.CursorOpacity(), 0, tweenEps)
	h.Update(500 * time.Millisecond)
	assertNearEps(t, "t=1s", tw.CursorOpacity(), 1, tweenEps)
	tw.Stop()
}

func TestTypewriterPhaseString(t *testing.T) {
	if Typing.String() != "typing" || PausedFull.String() != "paused" || Deleting.String() != "deleting" {
		t.Error("phase names")
	}
}
