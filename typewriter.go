package lumen

import (
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
)

// TypewriterPhase is the typewriter's state machine phase.
type TypewriterPhase uint8

const (
	Typing     TypewriterPhase = iota // appending one rune per tick
	PausedFull                        // full text shown, waiting to delete
	Deleting                          // removing one rune per tick
)

// String returns the phase name.
func (p TypewriterPhase) String() string {
	switch p {
	case Typing:
		return "typing"
	case PausedFull:
		return "paused"
	case Deleting:
		return "deleting"
	default:
		return "unknown"
	}
}

// TypewriterConfig configures a Typewriter.
type TypewriterConfig struct {
	// Texts are the candidate strings, typed and deleted in order, forever.
	Texts       []string      `yaml:"texts"`
	TypeSpeed   time.Duration `yaml:"type_speed"`
	DeleteSpeed time.Duration `yaml:"delete_speed"`
	// Pause is how long the full text stays up before deleting starts.
	Pause time.Duration `yaml:"pause"`
	// CursorPeriod is one full blink of the cursor. Zero keeps it solid.
	CursorPeriod time.Duration `yaml:"cursor_period"`
}

// DefaultTypewriterConfig returns the stock timings with no texts.
func DefaultTypewriterConfig() TypewriterConfig {
	return TypewriterConfig{
		TypeSpeed:    100 * time.Millisecond,
		DeleteSpeed:  50 * time.Millisecond,
		Pause:        2 * time.Second,
		CursorPeriod: time.Second,
	}
}

// Validate reports the first illegal setting.
func (c TypewriterConfig) Validate() error {
	switch {
	case len(c.Texts) == 0:
		return ErrNoCandidates
	case c.TypeSpeed <= 0:
		return fmt.Errorf("%w: type speed %v must be positive", ErrInvalidConfig, c.TypeSpeed)
	case c.DeleteSpeed <= 0:
		return fmt.Errorf("%w: delete speed %v must be positive", ErrInvalidConfig, c.DeleteSpeed)
	case c.Pause < 0:
		return fmt.Errorf("%w: pause %v < 0", ErrInvalidConfig, c.Pause)
	case c.CursorPeriod < 0:
		return fmt.Errorf("%w: cursor period %v < 0", ErrInvalidConfig, c.CursorPeriod)
	}
	return nil
}

// Typewriter types each candidate out one rune at a time, holds it, deletes
// it, and moves on to the next. It is driven by a single re-armed timer.
type Typewriter struct {
	name  string
	cfg   TypewriterConfig
	texts [][]rune
	res   resources

	phase   TypewriterPhase
	index   int
	visible int
	cursor  Keyframes
}

// NewTypewriter validates cfg and returns a stopped typewriter showing
// nothing.
func NewTypewriter(name string, cfg TypewriterConfig) (*Typewriter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("lumen: typewriter %q: %w", name, err)
	}
	t := &Typewriter{
		name:  name,
		cfg:   cfg,
		texts: make([][]rune, len(cfg.Texts)),
		cursor: Keyframes{
			Values: []float64{1, 0, 1},
			Period: cfg.CursorPeriod,
			Ease:   ease.InOutSine,
		},
	}
	for i, s := range cfg.Texts {
		t.texts[i] = []rune(s)
	}
	return t, nil
}

// Start arms the first typing tick. The machine resumes from wherever it was
// stopped. Start on a running typewriter is a no-op.
func (t *Typewriter) Start(h *Host) {
	if t.res.running {
		return
	}
	t.res.start(h, t.name)
	t.arm()
}

// Stop clears the pending timer. Safe to call repeatedly.
func (t *Typewriter) Stop() {
	t.res.release()
}

// Running reports whether the typewriter is mounted.
func (t *Typewriter) Running() bool {
	return t.res.running
}

// Text returns the visible prefix of the active candidate.
func (t *Typewriter) Text() string {
	return string(t.texts[t.index][:t.visible])
}

// Phase returns the current phase.
func (t *Typewriter) Phase() TypewriterPhase {
	return t.phase
}

// Index returns the active candidate index.
func (t *Typewriter) Index() int {
	return t.index
}

// CursorOpacity returns the blinking cursor's opacity at the host's current
// time, fading 1 to 0 and back once per CursorPeriod.
func (t *Typewriter) CursorOpacity() float64 {
	if t.cfg.CursorPeriod == 0 || t.res.host == nil {
		return 1
	}
	return t.cursor.At(t.res.host.Now())
}

// arm schedules the next tick for the current phase.
func (t *Typewriter) arm() {
	d := t.cfg.TypeSpeed
	switch t.phase {
	case PausedFull:
		d = t.cfg.Pause
	case Deleting:
		d = t.cfg.DeleteSpeed
	}
	t.res.setTimeout(d, t.tick)
}

func (t *Typewriter) tick() {
	full := len(t.texts[t.index])
	switch t.phase {
	case Typing:
		if t.visible < full {
			t.visible++
			t.changed()
		}
		if t.visible == full {
			t.phase = PausedFull
		}
	case PausedFull:
		t.phase = Deleting
	case Deleting:
		if t.visible > 0 {
			t.visible--
			t.changed()
		}
		if t.visible == 0 {
			t.index = (t.index + 1) % len(t.texts)
			t.phase = Typing
		}
	}
	t.arm()
}

func (t *Typewriter) changed() {
	t.res.host.emit(EngineEvent{
		Type:   EngineTextChanged,
		Engine: t.name,
		Index:  t.index,
		Text:   t.Text(),
	})
}
