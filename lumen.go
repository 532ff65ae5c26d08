package lumen

import (
	"errors"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// Sentinel errors returned (wrapped) by engine constructors and Host methods.
var (
	// ErrInvalidConfig reports a configuration value outside its legal range.
	ErrInvalidConfig = errors.New("lumen: invalid config")
	// ErrNoCandidates reports a text engine configured with an empty list.
	ErrNoCandidates = errors.New("lumen: no candidate strings")
	// ErrSurfaceInUse reports an attempt to bind a surface that another
	// particle field already owns.
	ErrSurfaceInUse = errors.New("lumen: surface already owned by another field")
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint.
var ColorWhite = Color{1, 1, 1, 1}

// HSLA builds a Color from a hue in degrees, saturation and lightness in
// [0, 1], and an alpha. Hue wraps modulo 360, matching CSS hsla().
func HSLA(h, s, l, a float64) Color {
	c := colorful.Hsl(wrapHue(h), s, l).Clamped()
	return Color{R: c.R, G: c.G, B: c.B, A: a}
}

// ParseHex parses "#rrggbb" or "#rgb" into an opaque Color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// MustHex is like ParseHex but panics on malformed input. Intended for
// package-level color tables.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex returns the color as "#rrggbb", dropping alpha.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// WithAlpha returns a copy of c with A replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Lerp blends c toward o by t in RGB space; alpha is interpolated linearly.
func (c Color) Lerp(o Color, t float64) Color {
	m := colorful.Color{R: c.R, G: c.G, B: c.B}.BlendRgb(colorful.Color{R: o.R, G: o.G, B: o.B}, t)
	return Color{R: m.R, G: m.G, B: m.B, A: lerp(c.A, o.A, t)}
}

// RGBA implements color.Color, so a Color can be passed straight to image
// and Ebitengine drawing calls.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.toRGBA().RGBA()
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Range is a general-purpose half-open [Min, Max) range.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Rand is the random source engines draw from. *rand.Rand from math/rand/v2
// satisfies it; tests inject deterministic sequences.
type Rand interface {
	Float64() float64
}

// globalRand forwards to the math/rand/v2 top-level source.
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// DefaultRand is used when a config leaves Rand nil.
var DefaultRand Rand = globalRand{}

// Sample returns a value in [Min, Max) drawn from src.
func (r Range) Sample(src Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + src.Float64()*(r.Max-r.Min)
}

// valid reports whether Min <= Max.
func (r Range) valid() bool {
	return r.Min <= r.Max
}

// EventType identifies a kind of host input event.
type EventType uint8

const (
	EventResize       EventType = iota // fires when the host viewport changes size
	EventPointerMove                   // fires when the pointer moves over the host
	EventPointerLeave                  // fires when the pointer leaves the host
)

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// wrapHue maps any hue in degrees to [0, 360).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
