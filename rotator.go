package lumen

import (
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
)

// WordRotatorConfig configures a WordRotator.
type WordRotatorConfig struct {
	Words    []string      `yaml:"words"`
	Interval time.Duration `yaml:"interval"`
	// Tags are optional per-word presentation hints (a style class, a color
	// name), matched to Words by index. Missing entries are empty.
	Tags []string `yaml:"tags"`
	// Transition is the enter animation length: the new word slides up by
	// TransitionOffset while fading in.
	Transition       time.Duration `yaml:"transition"`
	TransitionOffset float64       `yaml:"transition_offset"`
}

// DefaultWordRotatorConfig returns a three-second rotation with a 300ms
// slide-in of 20 units.
func DefaultWordRotatorConfig() WordRotatorConfig {
	return WordRotatorConfig{
		Interval:         3 * time.Second,
		Transition:       300 * time.Millisecond,
		TransitionOffset: 20,
	}
}

// Validate reports the first illegal setting.
func (c WordRotatorConfig) Validate() error {
	switch {
	case len(c.Words) == 0:
		return ErrNoCandidates
	case c.Interval <= 0:
		return fmt.Errorf("%w: interval %v must be positive", ErrInvalidConfig, c.Interval)
	case c.Transition < 0:
		return fmt.Errorf("%w: transition %v < 0", ErrInvalidConfig, c.Transition)
	}
	return nil
}

// RotatorFrame is what a WordRotator shows at a point in time.
type RotatorFrame struct {
	Word string
	Tag  string
	// OffsetY and Opacity animate the enter transition; they settle at 0
	// and 1.
	OffsetY float64
	Opacity float64
}

// WordRotator advances through a list of words on a fixed interval.
type WordRotator struct {
	name  string
	cfg   WordRotatorConfig
	res   resources
	enter tweenSet

	index      int
	switchedAt time.Duration
	vals       [2]float64
}

// NewWordRotator validates cfg and returns a stopped rotator on the first
// word.
func NewWordRotator(name string, cfg WordRotatorConfig) (*WordRotator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("lumen: word rotator %q: %w", name, err)
	}
	return &WordRotator{
		name: name,
		cfg:  cfg,
		enter: newTweenSet(cfg.Transition, ease.OutCubic,
			Range{Min: cfg.TransitionOffset, Max: 0},
			Range{Min: 0, Max: 1},
		),
	}, nil
}

// Start arms the rotation interval. Start on a running rotator is a no-op.
func (r *WordRotator) Start(h *Host) {
	if r.res.running {
		return
	}
	r.res.start(h, r.name)
	r.switchedAt = h.Now()
	r.res.setInterval(r.cfg.Interval, r.advance)
}

// Stop clears the interval. Safe to call repeatedly.
func (r *WordRotator) Stop() {
	r.res.release()
}

// Running reports whether the rotator is mounted.
func (r *WordRotator) Running() bool {
	return r.res.running
}

// Index returns the active word index.
func (r *WordRotator) Index() int {
	return r.index
}

// Word returns the active word.
func (r *WordRotator) Word() string {
	return r.cfg.Words[r.index]
}

// Tag returns the active word's tag, or "" when none was configured.
func (r *WordRotator) Tag() string {
	if r.index < len(r.cfg.Tags) {
		return r.cfg.Tags[r.index]
	}
	return ""
}

// Frame returns the active word with its enter transition sampled at the
// host's current time.
func (r *WordRotator) Frame() RotatorFrame {
	f := RotatorFrame{Word: r.Word(), Tag: r.Tag(), Opacity: 1}
	if r.res.host == nil {
		return f
	}
	r.enter.at(r.res.host.Now()-r.switchedAt, r.vals[:])
	f.OffsetY, f.Opacity = r.vals[0], r.vals[1]
	return f
}

func (r *WordRotator) advance() {
	r.index = (r.index + 1) % len(r.cfg.Words)
	r.switchedAt = r.res.host.Now()
	r.res.host.emit(EngineEvent{
		Type:   EngineWordChanged,
		Engine: r.name,
		Index:  r.index,
		Text:   r.cfg.Words[r.index],
	})
}
