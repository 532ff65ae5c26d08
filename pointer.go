package lumen

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Element is anything with on-screen bounds a pointer engine can track.
type Element interface {
	Bounds() Rect
}

// RectElement is a fixed-bounds Element.
type RectElement Rect

// Bounds returns the rectangle.
func (r RectElement) Bounds() Rect { return Rect(r) }

// NormalizedOffset maps (x, y) to the element-relative offset in which the
// element's top-left corner is (-0.5, -0.5) and its centre is (0, 0). ok is
// false for zero-size bounds, where no offset exists.
func NormalizedOffset(bounds Rect, x, y float64) (offset Vec2, ok bool) {
	if bounds.Empty() {
		return Vec2{}, false
	}
	return Vec2{
		X: (x-bounds.X)/bounds.Width - 0.5,
		Y: (y-bounds.Y)/bounds.Height - 0.5,
	}, true
}

// settleEpsilon is how close position and velocity must be to rest before a
// spring axis snaps to its target.
const settleEpsilon = 1e-3

// defaultFrameStep is assumed for the first frame after the loop wakes.
const defaultFrameStep = time.Second / 60

// springField smooths a fixed set of axes toward their targets with one
// shared damped spring.
type springField struct {
	spring    harmonica.Spring
	frequency float64
	damping   float64
	step      time.Duration
	pos       []float64
	vel       []float64
	target    []float64
}

func newSpringField(axes int, frequency, damping float64) springField {
	s := springField{
		frequency: frequency,
		damping:   damping,
		pos:       make([]float64, axes),
		vel:       make([]float64, axes),
		target:    make([]float64, axes),
	}
	s.retime(defaultFrameStep)
	return s
}

// retime rebuilds the spring coefficients when the frame step changes.
func (s *springField) retime(dt time.Duration) {
	if dt == s.step {
		return
	}
	s.step = dt
	s.spring = harmonica.NewSpring(dt.Seconds(), s.frequency, s.damping)
}

// set places an axis at rest on v.
func (s *springField) set(i int, v float64) {
	s.pos[i], s.vel[i], s.target[i] = v, 0, v
}

// advance steps every axis and reports whether all of them are settled.
func (s *springField) advance(dt time.Duration) bool {
	s.retime(dt)
	settled := true
	for i := range s.pos {
		p, v := s.spring.Update(s.pos[i], s.vel[i], s.target[i])
		if math.Abs(p-s.target[i]) < settleEpsilon && math.Abs(v) < settleEpsilon {
			p, v = s.target[i], 0
		} else {
			settled = false
		}
		s.pos[i], s.vel[i] = p, v
	}
	return settled
}

func (s *springField) settled() bool {
	for i := range s.pos {
		if s.pos[i] != s.target[i] || s.vel[i] != 0 {
			return false
		}
	}
	return true
}

// pointerTracker is the shared plumbing of Tilt and Magnet: element binding,
// pointer listeners, enter/leave detection, and a frame loop that runs only
// while the springs are moving.
type pointerTracker struct {
	res       resources
	element   Element
	springs   springField
	inside    bool
	lastFrame time.Duration
	looping   bool

	// aim sets spring targets for a pointer over the element.
	aim func(bounds Rect, x, y float64)
	// rest sets spring targets for the neutral pose.
	rest func()
}

func (p *pointerTracker) start(h *Host, name string) {
	p.res.onRelease = p.released
	p.res.start(h, name)
	p.res.track(h.OnPointerMove(func(ctx PointerContext) {
		p.res.guard(func() { p.onMove(ctx.X, ctx.Y) })
	}))
	p.res.track(h.OnPointerLeave(func(PointerContext) {
		p.res.guard(p.onLeave)
	}))
}

func (p *pointerTracker) onMove(x, y float64) {
	if p.element == nil {
		return
	}
	b := p.element.Bounds()
	if b.Empty() {
		return
	}
	if !b.Contains(x, y) {
		if p.inside {
			p.onLeave()
		}
		return
	}
	p.inside = true
	p.aim(b, x, y)
	p.wake()
}

func (p *pointerTracker) onLeave() {
	if !p.inside {
		return
	}
	p.inside = false
	p.rest()
	p.wake()
}

// wake starts the frame loop if it is idle and there is motion to play.
func (p *pointerTracker) wake() {
	if p.looping || p.springs.settled() {
		return
	}
	p.looping = true
	p.lastFrame = -1
	p.res.requestFrame(p.frame)
}

func (p *pointerTracker) frame(now time.Duration) {
	dt := defaultFrameStep
	if p.lastFrame >= 0 && now > p.lastFrame {
		dt = now - p.lastFrame
	}
	p.lastFrame = now
	if p.springs.advance(dt) {
		p.looping = false
		return
	}
	p.res.requestFrame(p.frame)
}

func (p *pointerTracker) stop() {
	p.res.release()
}

// released runs from resources.release, including a release forced by a
// failed callback, so a restart begins from an idle tracker.
func (p *pointerTracker) released() {
	p.looping = false
	p.inside = false
}

// --- Tilt ---

// TiltConfig configures a Tilt.
type TiltConfig struct {
	// MaxAngle is the rotation, in degrees, at the element's edges.
	MaxAngle   float64 `yaml:"max_angle"`
	HoverScale float64 `yaml:"hover_scale"`
	// Frequency and Damping shape the smoothing spring (angular frequency
	// in rad/s, damping ratio).
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
	GlowColor Color   `yaml:"glow_color"`
}

// DefaultTiltConfig returns a 7.5° tilt with a 5% hover zoom on a critically
// damped spring.
func DefaultTiltConfig() TiltConfig {
	return TiltConfig{
		MaxAngle:   7.5,
		HoverScale: 1.05,
		Frequency:  10,
		Damping:    1,
		GlowColor:  Color{R: 59.0 / 255, G: 130.0 / 255, B: 246.0 / 255, A: 0.5},
	}
}

// Validate reports the first illegal setting.
func (c TiltConfig) Validate() error {
	switch {
	case c.MaxAngle < 0 || c.MaxAngle > 90:
		return fmt.Errorf("%w: max angle %v outside [0, 90]", ErrInvalidConfig, c.MaxAngle)
	case c.HoverScale <= 0:
		return fmt.Errorf("%w: hover scale %v must be positive", ErrInvalidConfig, c.HoverScale)
	case c.Frequency <= 0:
		return fmt.Errorf("%w: frequency %v must be positive", ErrInvalidConfig, c.Frequency)
	case c.Damping < 0:
		return fmt.Errorf("%w: damping %v < 0", ErrInvalidConfig, c.Damping)
	}
	return nil
}

// TiltState is a Tilt's presentation at the current frame.
type TiltState struct {
	ElementTransform
	// Glow is the highlight centre as a fraction of the element size,
	// following the raw pointer.
	GlowX, GlowY float64
	GlowOpacity  float64
	GlowColor    Color
	Hovered      bool
}

// Tilt rotates an element in 3D toward the pointer while it hovers.
type Tilt struct {
	name string
	cfg  TiltConfig
	pt   pointerTracker
	glow Vec2
}

const (
	tiltAxisX = iota
	tiltAxisY
	tiltAxisScale
	tiltAxisGlow
	tiltAxes
)

// NewTilt validates cfg and returns a stopped tilt in the neutral pose.
func NewTilt(name string, cfg TiltConfig) (*Tilt, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("lumen: tilt %q: %w", name, err)
	}
	t := &Tilt{name: name, cfg: cfg, glow: Vec2{X: 0.5, Y: 0.5}}
	t.pt.springs = newSpringField(tiltAxes, cfg.Frequency, cfg.Damping)
	t.pt.springs.set(tiltAxisScale, 1)
	t.pt.aim = t.aim
	t.pt.rest = t.rest
	return t, nil
}

// Start registers pointer listeners. element may be nil until layout is
// known; see SetElement. Start on a running tilt is a no-op.
func (t *Tilt) Start(h *Host, element Element) {
	if t.pt.res.running {
		return
	}
	t.pt.element = element
	t.pt.start(h, t.name)
}

// SetElement binds or replaces the tracked element.
func (t *Tilt) SetElement(element Element) {
	t.pt.element = element
}

// Stop removes the listeners and cancels smoothing. Safe to call repeatedly.
func (t *Tilt) Stop() {
	t.pt.stop()
}

// Running reports whether the tilt is mounted.
func (t *Tilt) Running() bool {
	return t.pt.res.running
}

// Settled reports whether the pose has stopped moving.
func (t *Tilt) Settled() bool {
	return !t.pt.looping
}

func (t *Tilt) aim(b Rect, x, y float64) {
	off, _ := NormalizedOffset(b, x, y)
	s := &t.pt.springs
	s.target[tiltAxisX] = off.X
	s.target[tiltAxisY] = off.Y
	s.target[tiltAxisScale] = t.cfg.HoverScale
	s.target[tiltAxisGlow] = 1
	t.glow = Vec2{X: off.X + 0.5, Y: off.Y + 0.5}
}

func (t *Tilt) rest() {
	s := &t.pt.springs
	s.target[tiltAxisX] = 0
	s.target[tiltAxisY] = 0
	s.target[tiltAxisScale] = 1
	s.target[tiltAxisGlow] = 0
}

// State returns the smoothed pose.
func (t *Tilt) State() TiltState {
	pos := t.pt.springs.pos
	return TiltState{
		ElementTransform: ElementTransform{
			RotateX: -2 * t.cfg.MaxAngle * pos[tiltAxisY],
			RotateY: 2 * t.cfg.MaxAngle * pos[tiltAxisX],
			Scale:   pos[tiltAxisScale],
		},
		GlowX:       t.glow.X,
		GlowY:       t.glow.Y,
		GlowOpacity: clamp01(pos[tiltAxisGlow]),
		GlowColor:   t.cfg.GlowColor,
		Hovered:     t.pt.inside,
	}
}

// Matrix returns the pose as a 2D affine about the element centre. Without
// an element it is the identity.
func (t *Tilt) Matrix() Affine {
	if t.pt.element == nil {
		return IdentityAffine
	}
	return t.State().Matrix(t.pt.element.Bounds().Center())
}

// --- Magnet ---

// MagnetConfig configures a Magnet.
type MagnetConfig struct {
	// Strength is the fraction of the pointer's distance from the element
	// centre that the element follows.
	Strength  float64 `yaml:"strength"`
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

// DefaultMagnetConfig returns a 10% follow on a slightly underdamped spring
// (stiffness 200, damping 20, unit mass).
func DefaultMagnetConfig() MagnetConfig {
	return MagnetConfig{
		Strength:  0.1,
		Frequency: math.Sqrt(200),
		Damping:   20 / (2 * math.Sqrt(200)),
	}
}

// Validate reports the first illegal setting.
func (c MagnetConfig) Validate() error {
	switch {
	case c.Frequency <= 0:
		return fmt.Errorf("%w: frequency %v must be positive", ErrInvalidConfig, c.Frequency)
	case c.Damping < 0:
		return fmt.Errorf("%w: damping %v < 0", ErrInvalidConfig, c.Damping)
	}
	return nil
}

// Magnet pulls an element a fraction of the way toward the pointer while it
// hovers and springs it back on leave.
type Magnet struct {
	name string
	cfg  MagnetConfig
	pt   pointerTracker
}

// NewMagnet validates cfg and returns a stopped magnet at rest.
func NewMagnet(name string, cfg MagnetConfig) (*Magnet, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("lumen: magnet %q: %w", name, err)
	}
	m := &Magnet{name: name, cfg: cfg}
	m.pt.springs = newSpringField(2, cfg.Frequency, cfg.Damping)
	m.pt.aim = m.aim
	m.pt.rest = m.rest
	return m, nil
}

// Start registers pointer listeners. element may be nil until layout is
// known; see SetElement. Start on a running magnet is a no-op.
func (m *Magnet) Start(h *Host, element Element) {
	if m.pt.res.running {
		return
	}
	m.pt.element = element
	m.pt.start(h, m.name)
}

// SetElement binds or replaces the tracked element.
func (m *Magnet) SetElement(element Element) {
	m.pt.element = element
}

// Stop removes the listeners and cancels smoothing. Safe to call repeatedly.
func (m *Magnet) Stop() {
	m.pt.stop()
}

// Running reports whether the magnet is mounted.
func (m *Magnet) Running() bool {
	return m.pt.res.running
}

// Settled reports whether the element has stopped moving.
func (m *Magnet) Settled() bool {
	return !m.pt.looping
}

func (m *Magnet) aim(b Rect, x, y float64) {
	c := b.Center()
	m.pt.springs.target[0] = (x - c.X) * m.cfg.Strength
	m.pt.springs.target[1] = (y - c.Y) * m.cfg.Strength
}

func (m *Magnet) rest() {
	m.pt.springs.target[0] = 0
	m.pt.springs.target[1] = 0
}

// Offset returns the smoothed translation.
func (m *Magnet) Offset() Vec2 {
	return Vec2{X: m.pt.springs.pos[0], Y: m.pt.springs.pos[1]}
}

// Target returns the translation the element is springing toward.
func (m *Magnet) Target() Vec2 {
	return Vec2{X: m.pt.springs.target[0], Y: m.pt.springs.target[1]}
}

// Matrix returns the translation as a 2D affine.
func (m *Magnet) Matrix() Affine {
	o := m.Offset()
	return ElementTransform{Scale: 1, TranslateX: o.X, TranslateY: o.Y}.Matrix(Vec2{})
}
