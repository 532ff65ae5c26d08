package lumen

import (
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// Gradient is a two-stop linear gradient. Angle is in degrees, measured
// clockwise from "towards the top", so 90 runs left to right.
type Gradient struct {
	Angle    float64
	From, To Color
	// Spread stretches the gradient line about the surface centre. Zero
	// means 1.
	Spread float64
}

// Param returns the gradient position in [0, 1] of point (x, y) on a w×h
// surface. The gradient line passes through the centre and is just long
// enough that the corners land on 0 and 1.
func (g Gradient) Param(x, y, w, h float64) float64 {
	sin, cos := math.Sincos(g.Angle * math.Pi / 180)
	length := math.Abs(w*sin) + math.Abs(h*cos)
	if g.Spread > 0 {
		length *= g.Spread
	}
	if length == 0 {
		return 0
	}
	return clamp01(((x-w/2)*sin-(y-h/2)*cos)/length + 0.5)
}

// At returns the gradient's color at t in [0, 1] along its axis.
func (g Gradient) At(t float64) Color {
	return g.From.Lerp(g.To, clamp01(t))
}

// GradientFiller is implemented by surfaces that can paint a full-surface
// linear gradient. Backdrops use it when available.
type GradientFiller interface {
	FillGradient(g Gradient)
}

// GradientWash cycles a full-surface gradient through a list of color pairs.
// Consecutive pairs are blended linearly; the cycle restarts after Period.
type GradientWash struct {
	Angle   float64
	Stops   [][2]Color
	Period  time.Duration
	Opacity float64
}

// DefaultGradientWash returns the stock five-stop wash: indigo, pink, sky,
// and green, returning to indigo, over ten seconds at 30% opacity.
func DefaultGradientWash() GradientWash {
	return GradientWash{
		Angle: 45,
		Stops: [][2]Color{
			{MustHex("#667eea"), MustHex("#764ba2")},
			{MustHex("#f093fb"), MustHex("#f5576c")},
			{MustHex("#4facfe"), MustHex("#00f2fe")},
			{MustHex("#43e97b"), MustHex("#38f9d7")},
			{MustHex("#667eea"), MustHex("#764ba2")},
		},
		Period:  10 * time.Second,
		Opacity: 0.3,
	}
}

// At returns the gradient shown at time t.
func (w GradientWash) At(t time.Duration) Gradient {
	switch len(w.Stops) {
	case 0:
		return Gradient{Angle: w.Angle}
	case 1:
		return Gradient{Angle: w.Angle, From: w.Stops[0][0].WithAlpha(w.Opacity), To: w.Stops[0][1].WithAlpha(w.Opacity)}
	}
	i, local := segment(t, w.Period, len(w.Stops)-1)
	a, b := w.Stops[i], w.Stops[i+1]
	return Gradient{
		Angle: w.Angle,
		From:  a[0].Lerp(b[0], local).WithAlpha(w.Opacity),
		To:    a[1].Lerp(b[1], local).WithAlpha(w.Opacity),
	}
}

// WaveLayer is one layer of a Waves backdrop at a point in time. Hosts draw
// Gradient over the full surface, rotated by Rotation degrees and scaled by
// Scale about the surface centre.
type WaveLayer struct {
	Rotation float64
	Scale    float64
	Gradient Gradient
}

// Flatten folds the layer's rotation and scale into its gradient, for
// surfaces that paint gradients over their full area.
func (l WaveLayer) Flatten() Gradient {
	g := l.Gradient
	g.Angle += l.Rotation
	g.Spread = l.Scale
	return g
}

// Waves stacks translucent rotating gradient layers. Layer i loops over
// BasePeriod + i*PeriodStep, so the layers drift out of phase.
type Waves struct {
	Layers     int
	BasePeriod time.Duration
	PeriodStep time.Duration
	// Layer i's gradient runs at BaseAngle + i*AngleStep degrees, from hue
	// BaseHue + i*HueStep to that plus HueSpan.
	BaseAngle, AngleStep float64
	BaseHue, HueStep     float64
	HueSpan              float64
	Saturation           float64
	Lightness            float64
	Alpha                float64
	// MaxScale is the scale reached at the middle of each loop.
	MaxScale float64
}

// DefaultWaves returns the stock three-layer backdrop.
func DefaultWaves() Waves {
	return Waves{
		Layers:     3,
		BasePeriod: 20 * time.Second,
		PeriodStep: 5 * time.Second,
		BaseAngle:  45,
		AngleStep:  30,
		BaseHue:    200,
		HueStep:    60,
		HueSpan:    60,
		Saturation: 0.7,
		Lightness:  0.6,
		Alpha:      0.1,
		MaxScale:   1.2,
	}
}

// At fills dst with the layers at time t, reusing its backing array, and
// returns it.
func (w Waves) At(t time.Duration, dst []WaveLayer) []WaveLayer {
	dst = dst[:0]
	for i := 0; i < w.Layers; i++ {
		period := w.BasePeriod + time.Duration(i)*w.PeriodStep
		scale := Keyframes{Values: []float64{1, w.MaxScale, 1}, Period: period}
		hue := w.BaseHue + float64(i)*w.HueStep
		dst = append(dst, WaveLayer{
			Rotation: 360 * loopPhase(t, period),
			Scale:    scale.At(t),
			Gradient: Gradient{
				Angle: w.BaseAngle + float64(i)*w.AngleStep,
				From:  HSLA(hue, w.Saturation, w.Lightness, w.Alpha),
				To:    HSLA(hue+w.HueSpan, w.Saturation, w.Lightness, w.Alpha),
			},
		})
	}
	return dst
}

// PulseState is a Pulse sampled at a point in time.
type PulseState struct {
	Scale   float64
	Opacity float64
}

// Pulse breathes a glow: scale and opacity rise to their peak at mid-period
// and fall back, eased in and out.
type Pulse struct {
	Period  time.Duration
	Scale   Range // resting and peak scale
	Opacity Range // resting and peak opacity
}

// DefaultPulse returns a four-second pulse from 1.0 to 1.2 scale and from 0.3
// to 0.6 opacity.
func DefaultPulse() Pulse {
	return Pulse{
		Period:  4 * time.Second,
		Scale:   Range{Min: 1, Max: 1.2},
		Opacity: Range{Min: 0.3, Max: 0.6},
	}
}

// At returns the pulse state at time t.
func (p Pulse) At(t time.Duration) PulseState {
	scale := Keyframes{Values: []float64{p.Scale.Min, p.Scale.Max, p.Scale.Min}, Period: p.Period, Ease: ease.InOutSine}
	alpha := Keyframes{Values: []float64{p.Opacity.Min, p.Opacity.Max, p.Opacity.Min}, Period: p.Period, Ease: ease.InOutSine}
	return PulseState{Scale: scale.At(t), Opacity: alpha.At(t)}
}
