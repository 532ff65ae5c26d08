package lumen

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Default surface units per terminal cell. Cells are roughly twice as tall
// as they are wide.
const (
	DefaultCellWidth  = 8
	DefaultCellHeight = 16
)

type termCell struct {
	fg, bg Color
	glyph  rune
	// disc marks a cell holding a particle; lines never overwrite it.
	disc bool
}

// TerminalSurface paints onto a tcell screen in truecolor. Surface
// coordinates are scaled down to cells by CellWidth and CellHeight, so a
// field tuned for pixels keeps its density in a terminal.
//
// Draw calls write cells immediately; the caller decides when to Show.
type TerminalSurface struct {
	screen     tcell.Screen
	CellWidth  float64
	CellHeight float64
	Background Color

	cols, rows int
	cells      []termCell
}

// NewTerminalSurface wraps an initialized screen, sized to it.
func NewTerminalSurface(screen tcell.Screen) *TerminalSurface {
	s := &TerminalSurface{
		screen:     screen,
		CellWidth:  DefaultCellWidth,
		CellHeight: DefaultCellHeight,
		Background: Color{A: 1},
	}
	s.Sync()
	return s
}

// Sync re-reads the screen size and returns it in surface units, ready for
// Host.Resize.
func (s *TerminalSurface) Sync() (width, height float64) {
	cols, rows := s.screen.Size()
	s.allocate(cols, rows)
	return s.Width(), s.Height()
}

func (s *TerminalSurface) allocate(cols, rows int) {
	s.cols, s.rows = max(cols, 0), max(rows, 0)
	if n := s.cols * s.rows; cap(s.cells) >= n {
		s.cells = s.cells[:n]
	} else {
		s.cells = make([]termCell, n)
	}
}

// Width returns the surface width in surface units.
func (s *TerminalSurface) Width() float64 { return float64(s.cols) * s.CellWidth }

// Height returns the surface height in surface units.
func (s *TerminalSurface) Height() float64 { return float64(s.rows) * s.CellHeight }

// Resize sets the cell grid to cover width×height surface units.
func (s *TerminalSurface) Resize(width, height float64) {
	cols := int(math.Round(width / s.CellWidth))
	rows := int(math.Round(height / s.CellHeight))
	if cols == s.cols && rows == s.rows {
		return
	}
	s.allocate(cols, rows)
}

// Clear paints every cell with Background.
func (s *TerminalSurface) Clear() {
	bg := s.Background.WithAlpha(1)
	for i := range s.cells {
		s.cells[i] = termCell{fg: bg, bg: bg, glyph: ' '}
	}
	s.screen.Fill(' ', tcell.StyleDefault.Background(termColor(bg)))
}

// DrawCircle tints the centre cell's background with the glow and places a
// dot glyph sized by radius.
func (s *TerminalSurface) DrawCircle(c Circle) {
	i, ok := s.cellAt(c.X, c.Y)
	if !ok {
		return
	}
	cell := &s.cells[i]
	if c.GlowRadius > 0 {
		cell.bg = blendOver(cell.bg, c.Glow.WithAlpha(c.Glow.A*0.5))
	}
	cell.fg = blendOver(cell.bg, c.Fill)
	cell.glyph = '•'
	if c.Radius >= 2.5 {
		cell.glyph = '●'
	}
	cell.disc = true
	s.flush(i)
}

// DrawLine walks the cells between the endpoints and lays a faint dot in
// each one not already holding a particle.
func (s *TerminalSurface) DrawLine(l Line) {
	if l.Stroke.A <= 0 {
		return
	}
	x0, y0 := int(l.X0/s.CellWidth), int(l.Y0/s.CellHeight)
	x1, y1 := int(l.X1/s.CellWidth), int(l.Y1/s.CellHeight)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		if x0 >= 0 && x0 < s.cols && y0 >= 0 && y0 < s.rows {
			i := y0*s.cols + x0
			if cell := &s.cells[i]; !cell.disc {
				cell.fg = blendOver(cell.bg, l.Stroke.WithAlpha(math.Min(1, l.Stroke.A*4)))
				cell.glyph = '·'
				s.flush(i)
			}
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Cell returns the glyph and colors at a cell, for inspection.
func (s *TerminalSurface) Cell(col, row int) (glyph rune, fg, bg Color) {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return 0, Color{}, Color{}
	}
	c := s.cells[row*s.cols+col]
	return c.glyph, c.fg, c.bg
}

func (s *TerminalSurface) cellAt(x, y float64) (int, bool) {
	col, row := int(x/s.CellWidth), int(y/s.CellHeight)
	if x < 0 || y < 0 || col >= s.cols || row >= s.rows {
		return 0, false
	}
	return row*s.cols + col, true
}

func (s *TerminalSurface) flush(i int) {
	c := s.cells[i]
	style := tcell.StyleDefault.Foreground(termColor(c.fg)).Background(termColor(c.bg))
	s.screen.SetContent(i%s.cols, i/s.cols, c.glyph, nil, style)
}

// blendOver composites src over an opaque dst.
func blendOver(dst, src Color) Color {
	out := dst.Lerp(src.WithAlpha(1), clamp01(src.A))
	out.A = 1
	return out
}

func termColor(c Color) tcell.Color {
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
