package lumen

import (
	"fmt"
	"image"
	"reflect"
	"sync"
)

// Circle is a filled disc with an optional soft glow around it.
type Circle struct {
	X, Y   float64
	Radius float64
	Fill   Color
	// Glow is painted as a blurred halo of GlowRadius around the disc.
	// A zero GlowRadius disables it.
	Glow       Color
	GlowRadius float64
}

// Line is a straight stroke between two points.
type Line struct {
	X0, Y0 float64
	X1, Y1 float64
	Width  float64
	Stroke Color
}

// Surface is the minimal drawing capability a particle field needs. Keeping
// it this small lets the simulation run against an Ebitengine image, a
// software raster, a terminal, or a recorder in tests.
//
// A surface is owned by at most one running particle field, across every
// host in the process. Ownership is keyed by the surface value, so
// implementations should be pointer types; a type that cannot be compared is
// rejected with ErrInvalidConfig.
type Surface interface {
	Width() float64
	Height() float64
	Clear()
	DrawCircle(c Circle)
	DrawLine(l Line)
}

// Resizer is implemented by surfaces whose backing store follows the host
// viewport. A particle field resizes such a surface before respawning.
type Resizer interface {
	Resize(width, height float64)
}

// Snapshotter is implemented by surfaces that can hand back the last rendered
// frame, for screenshots.
type Snapshotter interface {
	Snapshot() image.Image
}

// surfaceOwners maps each claimed surface to the field drawing on it.
var surfaceOwners = struct {
	sync.Mutex
	m map[Surface]*ParticleField
}{m: make(map[Surface]*ParticleField)}

// checkSurface rejects surfaces that cannot serve as map keys.
func checkSurface(s Surface) error {
	if t := reflect.TypeOf(s); !t.Comparable() {
		return fmt.Errorf("%w: surface type %s is not comparable", ErrInvalidConfig, t)
	}
	return nil
}

// claimSurface records owner as the exclusive user of s.
func claimSurface(s Surface, owner *ParticleField) error {
	if err := checkSurface(s); err != nil {
		return err
	}
	surfaceOwners.Lock()
	defer surfaceOwners.Unlock()
	if cur, ok := surfaceOwners.m[s]; ok && cur != owner {
		return fmt.Errorf("%w (held by %q)", ErrSurfaceInUse, cur.name)
	}
	surfaceOwners.m[s] = owner
	return nil
}

// releaseSurface drops owner's claim on s.
func releaseSurface(s Surface, owner *ParticleField) {
	surfaceOwners.Lock()
	defer surfaceOwners.Unlock()
	if surfaceOwners.m[s] == owner {
		delete(surfaceOwners.m, s)
	}
}

// glowRings is the number of concentric discs used to approximate a glow.
const glowRings = 4

// halo calls fn for each glow ring of c from the outermost inward, with the
// ring radius and color. Ring alphas sum to c.Glow.A at the disc edge.
func (c Circle) halo(fn func(radius float64, col Color)) {
	if c.GlowRadius <= 0 || c.Glow.A <= 0 {
		return
	}
	step := c.GlowRadius / glowRings
	a := c.Glow.A / glowRings
	for i := glowRings; i >= 1; i-- {
		fn(c.Radius+step*float64(i), c.Glow.WithAlpha(a))
	}
}
