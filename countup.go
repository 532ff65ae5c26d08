package lumen

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CountUpConfig configures a CountUp.
type CountUpConfig struct {
	Start    int64         `yaml:"start"`
	Target   int64         `yaml:"target"`
	Duration time.Duration `yaml:"duration"`
	Prefix   string        `yaml:"prefix"`
	Suffix   string        `yaml:"suffix"`
	// Grouping inserts locale digit separators ("12,500").
	Grouping bool `yaml:"grouping"`
	// Locale selects the separator style. Empty is English.
	Locale string `yaml:"locale"`
}

// DefaultCountUpConfig returns a two-second count from 0 to 0 with digit
// grouping; set Target.
func DefaultCountUpConfig() CountUpConfig {
	return CountUpConfig{
		Duration: 2 * time.Second,
		Grouping: true,
	}
}

// Validate reports the first illegal setting.
func (c CountUpConfig) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("%w: duration %v < 0", ErrInvalidConfig, c.Duration)
	}
	if c.Locale != "" {
		if _, err := language.Parse(c.Locale); err != nil {
			return fmt.Errorf("%w: locale %q: %v", ErrInvalidConfig, c.Locale, err)
		}
	}
	return nil
}

// CountValue returns the count-up display value after elapsed of duration:
// start + easeOutCubic(elapsed/duration)*(target-start), floored. Elapsed at
// or past duration, or a non-positive duration, yields target exactly.
//
// The curve is evaluated in float64 so counts spanning more than float32's
// 24-bit mantissa still advance smoothly.
func CountValue(start, target int64, elapsed, duration time.Duration) int64 {
	if duration <= 0 || elapsed >= duration {
		return target
	}
	if elapsed <= 0 {
		return start
	}
	p := float64(elapsed) / float64(duration)
	inv := 1 - p
	eased := 1 - inv*inv*inv
	return int64(math.Floor(float64(start) + eased*float64(target-start)))
}

// CountUp animates a number from Start to Target once, on the frame
// scheduler, then stops requesting frames.
type CountUp struct {
	name    string
	cfg     CountUpConfig
	res     resources
	printer *message.Printer

	value   int64
	began   bool
	startAt time.Duration
	done    bool
}

// NewCountUp validates cfg and returns a stopped count-up showing Start.
func NewCountUp(name string, cfg CountUpConfig) (*CountUp, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("lumen: count-up %q: %w", name, err)
	}
	tag := language.English
	if cfg.Locale != "" {
		tag = language.MustParse(cfg.Locale)
	}
	return &CountUp{
		name:    name,
		cfg:     cfg,
		printer: message.NewPrinter(tag),
		value:   cfg.Start,
	}, nil
}

// Start begins the count from Start. The start timestamp is taken from the
// first frame, not from the call. Start on a running count-up is a no-op.
func (c *CountUp) Start(h *Host) {
	if c.res.running {
		return
	}
	c.res.start(h, c.name)
	c.value = c.cfg.Start
	c.began = false
	c.done = false
	c.res.requestFrame(c.frame)
}

// Stop cancels the pending frame. Safe to call repeatedly.
func (c *CountUp) Stop() {
	c.res.release()
}

// Running reports whether the count-up is mounted.
func (c *CountUp) Running() bool {
	return c.res.running
}

// Done reports whether the target has been reached.
func (c *CountUp) Done() bool {
	return c.done
}

// Value returns the current display value.
func (c *CountUp) Value() int64 {
	return c.value
}

// Text returns the display value with prefix, suffix, and digit grouping
// applied.
func (c *CountUp) Text() string {
	if c.cfg.Grouping {
		return c.cfg.Prefix + c.printer.Sprintf("%d", c.value) + c.cfg.Suffix
	}
	return fmt.Sprintf("%s%d%s", c.cfg.Prefix, c.value, c.cfg.Suffix)
}

func (c *CountUp) frame(now time.Duration) {
	if !c.began {
		c.began = true
		c.startAt = now
	}
	elapsed := now - c.startAt
	if v := CountValue(c.cfg.Start, c.cfg.Target, elapsed, c.cfg.Duration); v != c.value {
		c.value = v
		c.res.host.emit(EngineEvent{Type: EngineCountChanged, Engine: c.name, Value: v, Text: c.Text()})
	}
	if c.cfg.Duration <= 0 || elapsed >= c.cfg.Duration {
		c.done = true
		c.res.host.emit(EngineEvent{Type: EngineCountFinished, Engine: c.name, Value: c.value, Text: c.Text()})
		return
	}
	c.res.requestFrame(c.frame)
}
