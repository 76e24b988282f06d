package grid

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Build streams records to w, laid out with dims.
//
// Output is produced line by line, top to bottom: the top border line, the
// content lines of each row separated by inner border lines, then the
// bottom border line, each present only when the border style draws it.
// Column names, if configured, are laid over the top border line.
// Every line ends with exactly one Reset. Columns absorbed by a merged cell
// produce no writes of their own; rows below the first row of a merged cell
// continue its text, and a border line crossing a merged cell carries the
// cell's text instead of the line.
//
// Start and Finish are always called, even for an empty grid. The first
// Writer failure stops the render and is returned as a *WriteError.
func Build(records Records, cfg *Config, dims Dimensions, colors ColorMap, w Writer) error {
	if err := wrap(OpStart, w.Start()); err != nil {
		return err
	}
	if !records.Empty() {
		e := &engine{
			records: records,
			cfg:     cfg,
			borders: cfg.Borders(),
			colors:  colors,
			layout:  newLayout(records, cfg),
			w:       w,
		}
		e.widths, e.heights = fit(dims.Widths, e.layout.cols), fit(dims.Heights, e.layout.rows)
		if err := e.run(); err != nil {
			return err
		}
	}
	return wrap(OpFinish, w.Finish())
}

type engine struct {
	records Records
	cfg     *Config
	borders Borders
	colors  ColorMap
	layout  *layout
	widths  []int
	heights []int
	w       Writer
}

func (e *engine) run() error {
	rows := e.layout.rows
	for r := 0; r <= rows; r++ {
		if e.borders.hasHorizontal(r, rows) {
			if err := e.borderLine(r); err != nil {
				return err
			}
			if err := e.reset(); err != nil {
				return err
			}
		}
		if r == rows {
			break
		}
		for i := 0; i < e.heights[r]; i++ {
			if err := e.contentLine(r, i); err != nil {
				return err
			}
			if err := e.reset(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *engine) contentLine(r, i int) error {
	cols := e.layout.cols
	if e.borders.hasVertical(0, cols) {
		if err := e.char(e.borders.Left); err != nil {
			return err
		}
	}
	for c := 0; c < cols; {
		o := e.layout.originOf(r, c)
		s := e.layout.spans[o]
		if err := e.cell(o, s, e.offset(o.Row, r)+i); err != nil {
			return err
		}
		c = max(c+1, o.Col+s.Cols)
		if e.borders.hasVertical(c, cols) {
			if err := e.char(e.borders.vertical(c, cols)); err != nil {
				return err
			}
		}
	}
	return nil
}

// borderLine writes horizontal line hb, the line above row hb.
func (e *engine) borderLine(hb int) error {
	rows, cols := e.layout.rows, e.layout.cols
	h := e.borders.horizontal(hb, rows)
	if e.borders.hasVertical(0, cols) {
		if err := e.char(e.junction(hb, 0)); err != nil {
			return err
		}
	}
	for c := 0; c < cols; {
		if o, crossed := e.crossed(hb, c); crossed {
			s := e.layout.spans[o]
			if err := e.cell(o, s, e.offset(o.Row, hb)-1); err != nil {
				return err
			}
			c = max(c+1, o.Col+s.Cols)
		} else {
			if err := e.text(e.segment(hb, c, h), e.widths[c]); err != nil {
				return err
			}
			c++
		}
		if e.borders.hasVertical(c, cols) {
			if err := e.char(e.junction(hb, c)); err != nil {
				return err
			}
		}
	}
	return nil
}

// segment returns the run of line hb above column c: the line rune
// repeated, with the column's name laid over it on the top line.
func (e *engine) segment(hb, c int, h rune) string {
	width := e.widths[c]
	names := e.cfg.ColumnNames()
	if hb != 0 || c >= len(names.Names) || names.Names[c] == "" {
		return strings.Repeat(string(h), width)
	}
	label := runewidth.Truncate(names.Names[c], width, "")
	lw := runewidth.StringWidth(label)
	left := 0
	switch names.Align {
	case AlignCenter:
		left = (width - lw) / 2
	case AlignRight:
		left = width - lw
	}
	return strings.Repeat(string(h), left) + label + strings.Repeat(string(h), width-lw-left)
}

// cell writes line of the cell anchored at o, colored when o has a color.
func (e *engine) cell(o Position, s Span, line int) error {
	width := extent(e.widths, o.Col, s.Cols, func(i int) bool {
		return e.borders.hasVertical(i, e.layout.cols)
	})
	height := extent(e.heights, o.Row, s.Rows, func(i int) bool {
		return e.borders.hasHorizontal(i, e.layout.rows)
	})
	text := e.slice(o, width, height, line)

	color, colored := e.colors[o]
	if colored {
		if err := wrap(OpColorizeStart, e.w.ColorizeStart(color)); err != nil {
			return err
		}
	}
	if err := e.text(text, width); err != nil {
		return err
	}
	if colored {
		return wrap(OpColorizeStop, e.w.ColorizeStop(color))
	}
	return nil
}

// slice renders one line of the cell at o, exactly width cells wide.
func (e *engine) slice(o Position, width, height, line int) string {
	pad := e.cfg.Padding(o)
	innerW := max(0, width-pad.Horizontal())
	innerH := max(0, height-pad.Vertical())

	text := e.records.Get(o)
	n := text.Height()
	top := 0
	switch e.cfg.VerticalAlignment(o) {
	case AlignMiddle:
		top = (innerH - n) / 2
	case AlignBottom:
		top = innerH - n
	}
	top = max(0, top)

	i := line - pad.Top - top
	if line < pad.Top || line >= pad.Top+innerH || i < 0 || i >= n {
		return blank(width)
	}

	s, sw := text.Line(i), text.LineWidth(i)
	if sw > innerW {
		s = runewidth.Truncate(s, innerW, "")
		sw = runewidth.StringWidth(s)
	}
	left := 0
	switch e.cfg.Alignment(o) {
	case AlignCenter:
		left = (innerW - sw) / 2
	case AlignRight:
		left = innerW - sw
	}

	var b strings.Builder
	b.WriteString(blank(pad.Left + left))
	b.WriteString(s)
	b.WriteString(blank(innerW - sw - left + pad.Right))
	out := b.String()
	if runewidth.StringWidth(out) > width {
		out = runewidth.FillRight(runewidth.Truncate(out, width, ""), width)
	}
	return out
}

// crossed reports whether line hb runs through a merged cell at column c,
// and returns that cell's origin.
func (e *engine) crossed(hb, c int) (Position, bool) {
	if hb == 0 || hb == e.layout.rows {
		return Position{}, false
	}
	o := e.layout.originOf(hb, c)
	return o, e.layout.originOf(hb-1, c) == o
}

// junction returns the rune where horizontal line hb meets vertical line vb.
func (e *engine) junction(hb, vb int) rune {
	rows, cols := e.layout.rows, e.layout.cols
	up := hb > 0 && e.verticalDrawn(hb-1, vb)
	down := hb < rows && e.verticalDrawn(hb, vb)
	left := vb > 0 && e.horizontalDrawn(hb, vb-1)
	right := vb < cols && e.horizontalDrawn(hb, vb)
	j := e.borders.junction(up, down, left, right, e.borders.horizontal(hb, rows), e.borders.vertical(vb, cols))
	if j == 0 {
		return ' '
	}
	return j
}

// verticalDrawn reports whether vertical line vb is drawn along row r.
func (e *engine) verticalDrawn(r, vb int) bool {
	cols := e.layout.cols
	if !e.borders.hasVertical(vb, cols) {
		return false
	}
	if vb == 0 || vb == cols {
		return true
	}
	return e.layout.originOf(r, vb-1) != e.layout.originOf(r, vb)
}

// horizontalDrawn reports whether horizontal line hb is drawn above column c.
func (e *engine) horizontalDrawn(hb, c int) bool {
	if !e.borders.hasHorizontal(hb, e.layout.rows) {
		return false
	}
	_, crossed := e.crossed(hb, c)
	return !crossed
}

// offset returns the line of a cell starting at row from where row r
// begins, counting the inner border lines in between.
func (e *engine) offset(from, r int) int {
	n := 0
	for k := from; k < r; k++ {
		n += e.heights[k]
		if e.borders.hasHorizontal(k+1, e.layout.rows) {
			n++
		}
	}
	return n
}

// extent returns the size of n tracks starting at from, including the
// border lines between them.
func extent(sizes []int, from, n int, line func(int) bool) int {
	return sum(sizes[from:from+n]) + innerLines(from, n, line)
}

func (e *engine) text(s string, width int) error {
	return wrap(OpWriteText, e.w.WriteText(s, width))
}

func (e *engine) char(c rune) error {
	return wrap(OpWriteChar, e.w.WriteChar(c))
}

func (e *engine) reset() error {
	return wrap(OpReset, e.w.Reset())
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &WriteError{Op: op, Err: err}
}

// fit returns sizes with exactly n non-negative entries, dropping extras
// and filling missing ones with zero.
func fit(sizes []int, n int) []int {
	out := make([]int, n)
	for i := range min(n, len(sizes)) {
		out[i] = max(0, sizes[i])
	}
	return out
}

func blank(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
