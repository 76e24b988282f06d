package grid

import (
	"cmp"
	"slices"
)

// Dimensions is the derived size table of one render: a width per column
// and a height per row, in cells, padding included and borders excluded.
type Dimensions struct {
	Widths  []int
	Heights []int
}

// Empty reports whether there is nothing to lay out.
func (d Dimensions) Empty() bool {
	return len(d.Widths) == 0 || len(d.Heights) == 0
}

// Total returns the full rendered size including the border lines of b.
func (d Dimensions) Total(b Borders) (width, height int) {
	if d.Empty() {
		return 0, 0
	}
	cols, rows := len(d.Widths), len(d.Heights)
	for i, w := range d.Widths {
		width += w
		if b.hasVertical(i, cols) {
			width++
		}
	}
	if b.hasVertical(cols, cols) {
		width++
	}
	for i, h := range d.Heights {
		height += h
		if b.hasHorizontal(i, rows) {
			height++
		}
	}
	if b.hasHorizontal(rows, rows) {
		height++
	}
	return width, height
}

// layout is the span map of one render, clamped to the grid.
type layout struct {
	rows, cols int
	origin     [][]Position
	spans      map[Position]Span
}

func newLayout(records Records, cfg *Config) *layout {
	rows, cols := records.Count()
	l := &layout{
		rows:   rows,
		cols:   cols,
		origin: make([][]Position, rows),
		spans:  make(map[Position]Span, len(cfg.spans)),
	}
	for r := range l.origin {
		l.origin[r] = make([]Position, cols)
		for c := range l.origin[r] {
			l.origin[r][c] = Position{Row: -1, Col: -1}
		}
	}

	// Row-major so that an overlapping span never steals an earlier origin.
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			pos := Position{Row: r, Col: c}
			if l.origin[r][c].Row >= 0 {
				continue
			}
			s := cfg.Span(pos)
			s.Rows = min(s.Rows, rows-r)
			s.Cols = min(s.Cols, cols-c)
			l.spans[pos] = s
			for rr := r; rr < r+s.Rows; rr++ {
				for cc := c; cc < c+s.Cols; cc++ {
					if l.origin[rr][cc].Row < 0 {
						l.origin[rr][cc] = pos
					}
				}
			}
		}
	}
	return l
}

func (l *layout) originOf(r, c int) Position {
	return l.origin[r][c]
}

// Estimate computes the Dimensions of records under cfg. It is a pure
// function of its inputs.
//
// A column is as wide as its widest unmerged cell (text plus horizontal
// padding); a row is as tall as its tallest unmerged cell (line count plus
// vertical padding). A merged cell that does not fit the columns or rows it
// covers, counting the inner border lines it swallows, grows the narrowest
// of them one cell at a time, leftmost (topmost) first among equals.
func Estimate(records Records, cfg *Config) Dimensions {
	if records.Empty() {
		return Dimensions{}
	}
	l := newLayout(records, cfg)
	b := cfg.Borders()

	d := Dimensions{
		Widths:  make([]int, l.cols),
		Heights: make([]int, l.rows),
	}

	type merged struct {
		pos    Position
		span   Span
		width  int
		height int
	}
	var wide, tall []merged

	for r := 0; r < l.rows; r++ {
		for c := 0; c < l.cols; c++ {
			pos := Position{Row: r, Col: c}
			s, ok := l.spans[pos]
			if !ok {
				continue
			}
			text := records.Get(pos)
			pad := cfg.Padding(pos)
			m := merged{
				pos:    pos,
				span:   s,
				width:  text.Width() + pad.Horizontal(),
				height: text.Height() + pad.Vertical(),
			}
			if s.Cols == 1 {
				d.Widths[c] = max(d.Widths[c], m.width)
			} else {
				wide = append(wide, m)
			}
			if s.Rows == 1 {
				d.Heights[r] = max(d.Heights[r], m.height)
			} else {
				tall = append(tall, m)
			}
		}
	}

	byExtent := func(extent func(merged) int) func(a, b merged) int {
		return func(x, y merged) int {
			return cmp.Or(
				cmp.Compare(extent(x), extent(y)),
				cmp.Compare(x.pos.Row, y.pos.Row),
				cmp.Compare(x.pos.Col, y.pos.Col),
			)
		}
	}

	slices.SortStableFunc(wide, byExtent(func(m merged) int { return m.span.Cols }))
	for _, m := range wide {
		covered := d.Widths[m.pos.Col : m.pos.Col+m.span.Cols]
		have := sum(covered) + innerLines(m.pos.Col, m.span.Cols, func(i int) bool {
			return b.hasVertical(i, l.cols)
		})
		grow(covered, m.width-have)
	}

	slices.SortStableFunc(tall, byExtent(func(m merged) int { return m.span.Rows }))
	for _, m := range tall {
		covered := d.Heights[m.pos.Row : m.pos.Row+m.span.Rows]
		have := sum(covered) + innerLines(m.pos.Row, m.span.Rows, func(i int) bool {
			return b.hasHorizontal(i, l.rows)
		})
		grow(covered, m.height-have)
	}

	return d
}

// innerLines counts the border lines strictly inside [from, from+n).
func innerLines(from, n int, present func(int) bool) int {
	count := 0
	for i := from + 1; i < from+n; i++ {
		if present(i) {
			count++
		}
	}
	return count
}

// grow adds short cells to sizes, always to the smallest entry, leftmost
// first among equals.
func grow(sizes []int, short int) {
	for ; short > 0; short-- {
		smallest := 0
		for i, v := range sizes {
			if v < sizes[smallest] {
				smallest = i
			}
		}
		sizes[smallest]++
	}
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
