package runtime

import (
	"strings"

	"github.com/odvcencio/gridview/pkg/ui/backend"
)

// Cell represents a single character cell in the buffer.
// A zero Rune marks the trailing half of a double-width glyph.
type Cell struct {
	Rune  rune
	Style backend.Style
}

// Buffer is a 2D grid of cells for rendering widgets.
// Widgets render to the buffer, then the buffer is flushed to the backend.
// Supports dirty-region tracking for partial redraws.
type Buffer struct {
	cells  []Cell
	width  int
	height int

	// Dirty tracking - tracks which cells have changed
	dirty      []bool // Parallel to cells, true if cell changed
	dirtyCount int    // Number of dirty cells (fast check)
	dirtyRect  Rect   // Bounding box of dirty region
}

// NewBuffer creates a buffer with the given dimensions, filled with blanks.
func NewBuffer(w, h int) *Buffer {
	w, h = max(0, w), max(0, h)
	b := &Buffer{
		cells:  make([]Cell, w*h),
		dirty:  make([]bool, w*h),
		width:  w,
		height: h,
	}
	blank := Cell{Rune: ' ', Style: backend.DefaultStyle()}
	for i := range b.cells {
		b.cells[i] = blank
	}
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the buffer dimensions, preserving content where possible.
func (b *Buffer) Resize(w, h int) {
	w, h = max(0, w), max(0, h)
	if w == b.width && h == b.height {
		return
	}
	resized := NewBuffer(w, h)
	for y := 0; y < min(h, b.height); y++ {
		for x := 0; x < min(w, b.width); x++ {
			resized.cells[y*w+x] = b.cells[y*b.width+x]
		}
	}
	*b = *resized
	b.MarkAllDirty()
}

// Clear fills the buffer with spaces and default style.
func (b *Buffer) Clear() {
	b.Fill(Rect{0, 0, b.width, b.height}, ' ', backend.DefaultStyle())
}

// Get returns the cell at position (x, y).
// Returns a blank cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
	return b.cells[y*b.width+x]
}

// Set writes a rune with style at position (x, y).
// No-op if out of bounds. Marks the cell as dirty if changed.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	cell := Cell{Rune: r, Style: s}
	if b.cells[idx] != cell {
		b.cells[idx] = cell
		b.markCellDirty(x, y, idx)
	}
}

// SetContent implements backend.RenderTarget. Combining runes are dropped.
func (b *Buffer) SetContent(x, y int, mainc rune, _ []rune, style backend.Style) {
	b.Set(x, y, mainc, style)
}

// SetString writes a string starting at (x, y), one rune per cell.
// Clips to buffer bounds.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) {
	px := x
	for _, r := range s {
		b.Set(px, y, r, style)
		px++
	}
}

// Fill fills a rectangular region with a rune and style.
func (b *Buffer) Fill(r Rect, ch rune, s backend.Style) {
	clipped := r.Intersection(Rect{0, 0, b.width, b.height})
	for y := clipped.Y; y < clipped.Y+clipped.Height; y++ {
		for x := clipped.X; x < clipped.X+clipped.Width; x++ {
			b.Set(x, y, ch, s)
		}
	}
}

// Line returns row y as text. Continuation cells of wide glyphs are skipped.
func (b *Buffer) Line(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y*b.width : (y+1)*b.width] {
		if c.Rune == 0 {
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the whole buffer, rows joined by newlines.
func (b *Buffer) String() string {
	lines := make([]string, b.height)
	for y := range lines {
		lines[y] = b.Line(y)
	}
	return strings.Join(lines, "\n")
}

// --- Dirty Tracking Methods ---

// markCellDirty marks a single cell as dirty and updates the bounding box.
func (b *Buffer) markCellDirty(x, y, idx int) {
	if b.dirty[idx] {
		return
	}
	b.dirty[idx] = true
	b.dirtyCount++

	if b.dirtyCount == 1 {
		b.dirtyRect = Rect{X: x, Y: y, Width: 1, Height: 1}
		return
	}
	if x < b.dirtyRect.X {
		b.dirtyRect.Width += b.dirtyRect.X - x
		b.dirtyRect.X = x
	} else if x >= b.dirtyRect.X+b.dirtyRect.Width {
		b.dirtyRect.Width = x - b.dirtyRect.X + 1
	}
	if y < b.dirtyRect.Y {
		b.dirtyRect.Height += b.dirtyRect.Y - y
		b.dirtyRect.Y = y
	} else if y >= b.dirtyRect.Y+b.dirtyRect.Height {
		b.dirtyRect.Height = y - b.dirtyRect.Y + 1
	}
}

// MarkAllDirty marks the entire buffer as dirty.
func (b *Buffer) MarkAllDirty() {
	for i := range b.dirty {
		b.dirty[i] = true
	}
	b.dirtyCount = len(b.dirty)
	b.dirtyRect = Rect{X: 0, Y: 0, Width: b.width, Height: b.height}
}

// ClearDirty resets all dirty flags.
func (b *Buffer) ClearDirty() {
	clear(b.dirty)
	b.dirtyCount = 0
	b.dirtyRect = Rect{}
}

// IsDirty returns true if any cells have changed.
func (b *Buffer) IsDirty() bool {
	return b.dirtyCount > 0
}

// DirtyCount returns the number of dirty cells.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// DirtyRect returns the bounding box of dirty cells.
// Returns empty rect if nothing is dirty.
func (b *Buffer) DirtyRect() Rect {
	return b.dirtyRect
}

// ForEachDirtyCell calls fn for each dirty cell, row-major.
func (b *Buffer) ForEachDirtyCell(fn func(x, y int, cell Cell)) {
	if b.dirtyCount == 0 {
		return
	}
	r := b.dirtyRect
	for y := r.Y; y < r.Y+r.Height && y < b.height; y++ {
		for x := r.X; x < r.X+r.Width && x < b.width; x++ {
			idx := y*b.width + x
			if b.dirty[idx] {
				fn(x, y, b.cells[idx])
			}
		}
	}
}

var _ backend.RenderTarget = (*Buffer)(nil)
