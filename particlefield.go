package lumen

import (
	"fmt"
	"math"
	"time"
)

// Particle is one point mass of a ParticleField. Values returned by
// ParticleField.Particles are copies.
type Particle struct {
	X, Y    float64
	VX, VY  float64
	Size    float64
	Opacity float64
	Hue     float64
}

// FieldConfig controls how a ParticleField spawns, moves, and paints its
// population. Start from DefaultFieldConfig; the zero value describes an
// empty, invisible field.
type FieldConfig struct {
	// Population is the number of particles spawned on every reset. Zero is
	// legal and renders an empty surface.
	Population int `yaml:"population"`
	// ConnectDistance is the exclusive upper bound on the distance between
	// two particles that get a connecting line.
	ConnectDistance float64 `yaml:"connect_distance"`
	// HueStep is added to every particle's hue each tick, modulo 360.
	HueStep float64 `yaml:"hue_step"`
	// Size, Speed, and Opacity are the spawn ranges. Speed applies to each
	// velocity axis independently.
	Size    Range `yaml:"size"`
	Speed   Range `yaml:"speed"`
	Opacity Range `yaml:"opacity"`
	// Saturation and Lightness are the HSL components shared by every
	// particle and line, in [0, 1].
	Saturation float64 `yaml:"saturation"`
	Lightness  float64 `yaml:"lightness"`
	// GlowRadius and GlowAlpha describe the halo painted around particles.
	GlowRadius float64 `yaml:"glow_radius"`
	GlowAlpha  float64 `yaml:"glow_alpha"`
	// LineWidth and LineAlpha describe connections. LineAlpha is the alpha
	// of a zero-length connection; it decays linearly to 0 at ConnectDistance.
	LineWidth float64 `yaml:"line_width"`
	LineAlpha float64 `yaml:"line_alpha"`
	// Rand is the spawn source. Nil uses DefaultRand.
	Rand Rand `yaml:"-"`
}

// DefaultFieldConfig returns the stock field: 50 particles joined within 100
// units, hue cycling by half a degree per frame.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Population:      50,
		ConnectDistance: 100,
		HueStep:         0.5,
		Size:            Range{Min: 1, Max: 4},
		Speed:           Range{Min: -0.25, Max: 0.25},
		Opacity:         Range{Min: 0.2, Max: 0.7},
		Saturation:      0.7,
		Lightness:       0.6,
		GlowRadius:      10,
		GlowAlpha:       0.5,
		LineWidth:       1,
		LineAlpha:       0.1,
	}
}

// Validate reports the first out-of-range setting, wrapping ErrInvalidConfig.
func (c FieldConfig) Validate() error {
	switch {
	case c.Population < 0:
		return fmt.Errorf("%w: population %d < 0", ErrInvalidConfig, c.Population)
	case c.ConnectDistance < 0:
		return fmt.Errorf("%w: connect distance %v < 0", ErrInvalidConfig, c.ConnectDistance)
	case !c.Size.valid() || c.Size.Min < 0:
		return fmt.Errorf("%w: size range %v", ErrInvalidConfig, c.Size)
	case !c.Speed.valid():
		return fmt.Errorf("%w: speed range %v", ErrInvalidConfig, c.Speed)
	case !c.Opacity.valid():
		return fmt.Errorf("%w: opacity range %v", ErrInvalidConfig, c.Opacity)
	case c.GlowRadius < 0 || c.LineWidth < 0:
		return fmt.Errorf("%w: negative glow radius or line width", ErrInvalidConfig)
	}
	return nil
}

// FieldStats describes the most recent frame. Populated on every frame; the
// host logs it when debug mode is on.
type FieldStats struct {
	Particles  int
	PairChecks int
	Lines      int
	StepTime   time.Duration
	RenderTime time.Duration
}

// ParticleField simulates a population of drifting particles and paints them,
// plus proximity connections, onto a Surface every frame.
//
// The connection pass checks every unordered pair, N(N-1)/2 per frame
// (1225 at the default population). It dominates the frame cost and is the
// field's scaling limit: populations in the thousands need a spatial
// partition this type does not provide.
type ParticleField struct {
	name      string
	cfg       FieldConfig
	rng       Rand
	res       resources
	surface   Surface
	particles []Particle
	stats     FieldStats
}

// NewParticleField validates cfg and returns a stopped field.
func NewParticleField(name string, cfg FieldConfig) (*ParticleField, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("lumen: particle field %q: %w", name, err)
	}
	rng := cfg.Rand
	if rng == nil {
		rng = DefaultRand
	}
	f := &ParticleField{
		name:      name,
		cfg:       cfg,
		rng:       rng,
		particles: make([]Particle, 0, cfg.Population),
	}
	f.res.onRelease = f.detach
	return f, nil
}

// Start mounts the field on h. surface may be nil when the drawing target
// does not exist yet; the field then idles until Attach supplies one. Start
// on a running field is a no-op.
func (f *ParticleField) Start(h *Host, surface Surface) error {
	if f.res.running {
		return nil
	}
	if surface != nil {
		if err := claimSurface(surface, f); err != nil {
			return fmt.Errorf("lumen: particle field %q: %w", f.name, err)
		}
	}
	f.res.start(h, f.name)
	f.surface = surface
	f.res.track(h.OnResize(func(ctx ResizeContext) {
		f.res.guard(func() { f.onResize(ctx) })
	}))
	f.reset()
	f.res.requestFrame(f.frame)
	return nil
}

// Attach binds a surface to a running field that started without one, or
// swaps the current surface. The population is respawned against the new
// bounds.
func (f *ParticleField) Attach(surface Surface) error {
	if !f.res.running {
		return fmt.Errorf("lumen: particle field %q: attach while stopped", f.name)
	}
	if surface != nil {
		if err := checkSurface(surface); err != nil {
			return fmt.Errorf("lumen: particle field %q: %w", f.name, err)
		}
	}
	if surface == f.surface {
		return nil
	}
	if surface != nil {
		if err := claimSurface(surface, f); err != nil {
			return fmt.Errorf("lumen: particle field %q: %w", f.name, err)
		}
	}
	if f.surface != nil {
		releaseSurface(f.surface, f)
	}
	f.surface = surface
	f.reset()
	return nil
}

// Stop cancels the frame loop, removes the resize listener, and releases the
// surface. Safe to call repeatedly.
func (f *ParticleField) Stop() {
	f.res.release()
}

// detach runs from resources.release.
func (f *ParticleField) detach() {
	if f.surface != nil {
		releaseSurface(f.surface, f)
		f.surface = nil
	}
}

// Running reports whether the field is mounted.
func (f *ParticleField) Running() bool {
	return f.res.running
}

// Name returns the field's name.
func (f *ParticleField) Name() string {
	return f.name
}

// Config returns a pointer to the field's config for live tuning. Population
// changes take effect on the next reset.
func (f *ParticleField) Config() *FieldConfig {
	return &f.cfg
}

// Particles returns a copy of the current population.
func (f *ParticleField) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Stats returns the statistics of the most recent frame.
func (f *ParticleField) Stats() FieldStats {
	return f.stats
}

func (f *ParticleField) onResize(ctx ResizeContext) {
	if f.surface == nil {
		return
	}
	if r, ok := f.surface.(Resizer); ok {
		r.Resize(ctx.Width, ctx.Height)
	}
	f.reset()
}

// reset discards the population and spawns a fresh one against the current
// surface bounds. Without a surface the population stays empty.
func (f *ParticleField) reset() {
	f.particles = f.particles[:0]
	if f.surface == nil {
		return
	}
	w, h := f.surface.Width(), f.surface.Height()
	for i := 0; i < f.cfg.Population; i++ {
		f.particles = append(f.particles, f.spawn(w, h))
	}
	if h := f.res.host; h != nil {
		if h.debug {
			f.debugCheckPopulation()
		}
		h.emit(EngineEvent{Type: EngineFieldReset, Engine: f.name, Index: len(f.particles)})
	}
}

// spawn draws one particle uniformly inside [0,w)×[0,h).
func (f *ParticleField) spawn(w, h float64) Particle {
	return Particle{
		X:       f.rng.Float64() * w,
		Y:       f.rng.Float64() * h,
		Size:    f.cfg.Size.Sample(f.rng),
		VX:      f.cfg.Speed.Sample(f.rng),
		VY:      f.cfg.Speed.Sample(f.rng),
		Opacity: f.cfg.Opacity.Sample(f.rng),
		Hue:     f.rng.Float64() * 360,
	}
}

func (f *ParticleField) frame(now time.Duration) {
	if f.surface != nil {
		t0 := time.Now()
		f.step()
		t1 := time.Now()
		f.render()
		f.stats.StepTime = t1.Sub(t0)
		f.stats.RenderTime = time.Since(t1)
		if f.res.host.debug {
			f.debugLog()
		}
	}
	f.res.requestFrame(f.frame)
}

// step advances every particle by one tick. A zero-width or zero-height
// surface freezes the field until a real size arrives.
func (f *ParticleField) step() {
	w, h := f.surface.Width(), f.surface.Height()
	if w <= 0 || h <= 0 {
		return
	}
	for i := range f.particles {
		p := &f.particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.X, p.VX = reflectAxis(p.X, p.VX, w)
		p.Y, p.VY = reflectAxis(p.Y, p.VY, h)
		p.Hue = wrapHue(p.Hue + f.cfg.HueStep)
	}
}

// reflectAxis clamps pos into [0, bound] and, when it had left that interval,
// points the velocity back inside.
func reflectAxis(pos, vel, bound float64) (float64, float64) {
	switch {
	case pos < 0:
		return 0, math.Abs(vel)
	case pos > bound:
		return bound, -math.Abs(vel)
	}
	return pos, vel
}

// render clears the surface, paints every particle, then every connection.
func (f *ParticleField) render() {
	s := f.surface
	s.Clear()
	sat, light := f.cfg.Saturation, f.cfg.Lightness
	for i := range f.particles {
		p := &f.particles[i]
		s.DrawCircle(Circle{
			X: p.X, Y: p.Y,
			Radius:     p.Size,
			Fill:       HSLA(p.Hue, sat, light, p.Opacity),
			Glow:       HSLA(p.Hue, sat, light, f.cfg.GlowAlpha),
			GlowRadius: f.cfg.GlowRadius,
		})
	}

	cut := f.cfg.ConnectDistance
	cut2 := cut * cut
	n := len(f.particles)
	lines := 0
	for i := 0; i < n; i++ {
		a := &f.particles[i]
		for j := i + 1; j < n; j++ {
			b := &f.particles[j]
			dx, dy := a.X-b.X, a.Y-b.Y
			d2 := dx*dx + dy*dy
			if d2 >= cut2 {
				continue
			}
			alpha, _ := ConnectionAlpha(math.Sqrt(d2), cut, f.cfg.LineAlpha)
			s.DrawLine(Line{
				X0: a.X, Y0: a.Y, X1: b.X, Y1: b.Y,
				Width:  f.cfg.LineWidth,
				Stroke: HSLA((a.Hue+b.Hue)/2, sat, light, alpha),
			})
			lines++
		}
	}
	f.stats.Particles = n
	f.stats.PairChecks = n * (n - 1) / 2
	f.stats.Lines = lines
}

// ConnectionAlpha returns the line alpha for two particles distance apart:
// maxAlpha at distance 0, falling linearly to 0 at cutoff. ok is false when
// distance >= cutoff, in which case no line is drawn.
func ConnectionAlpha(distance, cutoff, maxAlpha float64) (alpha float64, ok bool) {
	if distance >= cutoff || cutoff <= 0 {
		return 0, false
	}
	return maxAlpha * (1 - distance/cutoff), true
}
