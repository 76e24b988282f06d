// Package surface provides grid.Writer implementations: CellWriter paints
// a rectangle of a cell target (an off-screen buffer or a live terminal
// frame) and TextWriter prints lines to an io.Writer.
package surface

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/gridview/pkg/grid"
	"github.com/odvcencio/gridview/pkg/ui/backend"
	"github.com/odvcencio/gridview/pkg/ui/runtime"
)

// CellWriter writes into one rectangle of a RenderTarget. The cursor is
// relative to the rectangle's top-left corner; anything that falls outside
// the rectangle or the target is dropped. CellWriter never fails.
type CellWriter struct {
	target *backend.SubTarget
	area   runtime.Rect
	base   backend.Style
	style  backend.Style
	row    int
	col    int
}

// NewCellWriter binds target and area. base is the style of uncolored
// cells.
func NewCellWriter(target backend.RenderTarget, area runtime.Rect, base backend.Style) *CellWriter {
	return &CellWriter{
		target: backend.NewSubTarget(target, area.X, area.Y, area.Width, area.Height),
		area:   area,
		base:   base,
		style:  base,
	}
}

// Area returns the bound rectangle.
func (w *CellWriter) Area() runtime.Rect { return w.area }

// Cursor returns the relative cursor position.
func (w *CellWriter) Cursor() (row, col int) { return w.row, w.col }

func (w *CellWriter) Start() error {
	w.row, w.col = 0, 0
	w.style = w.base
	return nil
}

func (w *CellWriter) Finish() error {
	w.style = w.base
	return nil
}

// WriteText draws text from the cursor and advances by width. Double-width
// runes fill two cells, the second holding a zero rune. Runes past width
// are not drawn, and a double-width rune cut by the rectangle's edge is
// drawn as blanks.
func (w *CellWriter) WriteText(text string, width int) error {
	x := 0
	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > width {
			break
		}
		x0 := w.col + x
		x += rw
		if rw > 1 && !w.target.Contains(x0+rw-1, w.row) {
			// A glyph cut by the edge would spill past it; blank its
			// visible half instead.
			for i := 0; i < rw; i++ {
				w.target.SetContent(x0+i, w.row, ' ', nil, w.style)
			}
			continue
		}
		w.target.SetContent(x0, w.row, r, nil, w.style)
		for i := 1; i < rw; i++ {
			w.target.SetContent(x0+i, w.row, 0, nil, w.style)
		}
	}
	w.col += width
	return nil
}

func (w *CellWriter) WriteChar(c rune) error {
	w.target.SetContent(w.col, w.row, c, nil, w.base)
	w.col++
	return nil
}

func (w *CellWriter) Reset() error {
	w.row++
	w.col = 0
	return nil
}

func (w *CellWriter) ColorizeStart(c grid.Color) error {
	w.style = c.Style(w.base)
	return nil
}

func (w *CellWriter) ColorizeStop(grid.Color) error {
	w.style = w.base
	return nil
}

var _ grid.Writer = (*CellWriter)(nil)
