package lumen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ImageSurface paints onto an offscreen Ebitengine image. Engines draw into
// it during Update; the game blits it to the screen in Draw.
//
// A zero-size ImageSurface has no backing image and ignores draw calls.
type ImageSurface struct {
	img *ebiten.Image
	w   int
	h   int
	// Background is the Clear color. The zero value clears to transparent.
	Background Color
	// Antialias smooths circle and line edges.
	Antialias bool

	verts []ebiten.Vertex
}

// NewImageSurface allocates a w×h surface.
func NewImageSurface(w, h int) *ImageSurface {
	s := &ImageSurface{Antialias: true}
	s.allocate(w, h)
	return s
}

func (s *ImageSurface) allocate(w, h int) {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.w, s.h = max(w, 0), max(h, 0)
	if s.w > 0 && s.h > 0 {
		s.img = ebiten.NewImage(s.w, s.h)
	}
}

// Image returns the backing image, or nil for a zero-size surface.
func (s *ImageSurface) Image() *ebiten.Image { return s.img }

// Width returns the surface width in pixels.
func (s *ImageSurface) Width() float64 { return float64(s.w) }

// Height returns the surface height in pixels.
func (s *ImageSurface) Height() float64 { return float64(s.h) }

// Resize reallocates the backing image when the size changes.
func (s *ImageSurface) Resize(width, height float64) {
	w, h := int(width), int(height)
	if w == s.w && h == s.h {
		return
	}
	s.allocate(w, h)
}

// Clear fills the surface with Background.
func (s *ImageSurface) Clear() {
	if s.img == nil {
		return
	}
	if s.Background.A == 0 {
		s.img.Clear()
		return
	}
	s.img.Fill(s.Background.toRGBA())
}

// DrawCircle paints the glow rings, then the disc.
func (s *ImageSurface) DrawCircle(c Circle) {
	if s.img == nil {
		return
	}
	x, y := float32(c.X), float32(c.Y)
	c.halo(func(r float64, col Color) {
		vector.DrawFilledCircle(s.img, x, y, float32(r), col.toRGBA(), s.Antialias)
	})
	vector.DrawFilledCircle(s.img, x, y, float32(c.Radius), c.Fill.toRGBA(), s.Antialias)
}

// DrawLine strokes a line.
func (s *ImageSurface) DrawLine(l Line) {
	if s.img == nil || l.Width <= 0 {
		return
	}
	vector.StrokeLine(s.img,
		float32(l.X0), float32(l.Y0), float32(l.X1), float32(l.Y1),
		float32(l.Width), l.Stroke.toRGBA(), s.Antialias)
}

// FillGradient paints g over the whole surface as a vertex-colored quad.
// The gradient is linear in position, so per-vertex colors interpolate
// exactly.
func (s *ImageSurface) FillGradient(g Gradient) {
	if s.img == nil {
		return
	}
	w, h := float64(s.w), float64(s.h)
	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}
	s.verts = s.verts[:0]
	for _, p := range corners {
		c := g.At(g.Param(p[0], p[1], w, h))
		a := float32(clamp01(c.A))
		s.verts = append(s.verts, ebiten.Vertex{
			DstX:   float32(p[0]),
			DstY:   float32(p[1]),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: float32(c.R) * a,
			ColorG: float32(c.G) * a,
			ColorB: float32(c.B) * a,
			ColorA: a,
		})
	}
	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	// Two triangles: TL-TR-BL, TR-BR-BL
	s.img.DrawTriangles(s.verts, []uint16{0, 1, 2, 1, 3, 2}, whitePixel(), &op)
}

// DrawTo blits the surface onto dst at the origin.
func (s *ImageSurface) DrawTo(dst *ebiten.Image) {
	if s.img == nil {
		return
	}
	dst.DrawImage(s.img, nil)
}

// GeoM converts m to an Ebitengine geometry matrix, for drawing an element
// image with a Tilt or Magnet pose.
func (m Affine) GeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// --- White pixel singleton (no sync.Once; lumen is single-threaded) ---

var whitePixelImage *ebiten.Image

// whitePixel returns a lazily-initialized 1x1 white image, the source for
// untextured triangles.
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}
