package lumen

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

// RasterSurface is a software surface backed by an *image.RGBA. It needs no
// GPU or window, so it serves headless renders, screenshots, and tests.
type RasterSurface struct {
	img        *image.RGBA
	ras        *vector.Rasterizer
	Background Color

	scratch *image.RGBA
}

// NewRasterSurface allocates a w×h surface cleared to transparent.
func NewRasterSurface(w, h int) *RasterSurface {
	s := &RasterSurface{}
	s.allocate(w, h)
	return s
}

func (s *RasterSurface) allocate(w, h int) {
	w, h = max(w, 0), max(h, 0)
	s.img = image.NewRGBA(image.Rect(0, 0, w, h))
	s.ras = vector.NewRasterizer(w, h)
	s.ras.DrawOp = draw.Over
	s.scratch = nil
}

// Width returns the surface width in pixels.
func (s *RasterSurface) Width() float64 { return float64(s.img.Rect.Dx()) }

// Height returns the surface height in pixels.
func (s *RasterSurface) Height() float64 { return float64(s.img.Rect.Dy()) }

// Image returns the backing image. It is overwritten by later draws; use
// Snapshot for a stable copy.
func (s *RasterSurface) Image() *image.RGBA { return s.img }

// Resize reallocates the backing image when the size changes.
func (s *RasterSurface) Resize(width, height float64) {
	w, h := int(width), int(height)
	if w == s.img.Rect.Dx() && h == s.img.Rect.Dy() {
		return
	}
	s.allocate(w, h)
}

// Snapshot returns a copy of the current pixels.
func (s *RasterSurface) Snapshot() image.Image {
	out := image.NewRGBA(s.img.Rect)
	copy(out.Pix, s.img.Pix)
	return out
}

// Clear fills the surface with Background.
func (s *RasterSurface) Clear() {
	if s.Background.A == 0 {
		clear(s.img.Pix)
		return
	}
	draw.Draw(s.img, s.img.Rect, image.NewUniform(s.Background.toRGBA()), image.Point{}, draw.Src)
}

// DrawCircle paints the glow rings, then the disc.
func (s *RasterSurface) DrawCircle(c Circle) {
	c.halo(func(r float64, col Color) {
		s.fillCircle(c.X, c.Y, r, col)
	})
	s.fillCircle(c.X, c.Y, c.Radius, c.Fill)
}

func (s *RasterSurface) fillCircle(cx, cy, r float64, col Color) {
	if r <= 0 || col.A <= 0 || s.img.Rect.Empty() {
		return
	}
	x, y, k := float32(cx), float32(cy), float32(r*kappa)
	rr := float32(r)
	s.ras.Reset(s.img.Rect.Dx(), s.img.Rect.Dy())
	s.ras.MoveTo(x+rr, y)
	s.ras.CubeTo(x+rr, y+k, x+k, y+rr, x, y+rr)
	s.ras.CubeTo(x-k, y+rr, x-rr, y+k, x-rr, y)
	s.ras.CubeTo(x-rr, y-k, x-k, y-rr, x, y-rr)
	s.ras.CubeTo(x+k, y-rr, x+rr, y-k, x+rr, y)
	s.ras.ClosePath()
	s.ras.Draw(s.img, s.img.Rect, image.NewUniform(col.toRGBA()), image.Point{})
}

// DrawLine strokes a line as a filled quad.
func (s *RasterSurface) DrawLine(l Line) {
	if l.Width <= 0 || l.Stroke.A <= 0 || s.img.Rect.Empty() {
		return
	}
	dx, dy := l.X1-l.X0, l.Y1-l.Y0
	n := math.Hypot(dx, dy)
	if n == 0 {
		return
	}
	// Half-width normal.
	nx, ny := float32(-dy/n*l.Width/2), float32(dx/n*l.Width/2)
	x0, y0, x1, y1 := float32(l.X0), float32(l.Y0), float32(l.X1), float32(l.Y1)
	s.ras.Reset(s.img.Rect.Dx(), s.img.Rect.Dy())
	s.ras.MoveTo(x0+nx, y0+ny)
	s.ras.LineTo(x1+nx, y1+ny)
	s.ras.LineTo(x1-nx, y1-ny)
	s.ras.LineTo(x0-nx, y0-ny)
	s.ras.ClosePath()
	s.ras.Draw(s.img, s.img.Rect, image.NewUniform(l.Stroke.toRGBA()), image.Point{})
}

// FillGradient composites g over the whole surface.
func (s *RasterSurface) FillGradient(g Gradient) {
	r := s.img.Rect
	if r.Empty() {
		return
	}
	if s.scratch == nil {
		s.scratch = image.NewRGBA(r)
	}
	w, h := float64(r.Dx()), float64(r.Dy())
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			c := g.At(g.Param(float64(x)+0.5, float64(y)+0.5, w, h))
			s.scratch.SetRGBA(x, y, c.toRGBA())
		}
	}
	draw.Draw(s.img, r, s.scratch, image.Point{}, draw.Over)
}
