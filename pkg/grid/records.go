// Package grid lays out a table of text cells and streams it, line by line,
// to a Writer.
//
// A render is two pure steps. Estimate derives the Dimensions (column widths
// and row heights) from the records and their resolved Config. Build walks
// the grid in output order and drives a Writer with text runs, color
// brackets and line resets. Nothing is cached between renders.
package grid

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Position addresses a logical cell.
type Position struct {
	Row int
	Col int
}

// Text is the content of one cell, split into lines with their display
// widths measured once.
type Text struct {
	content string
	lines   []string
	widths  []int
	width   int
}

// NewText measures s. Lines are separated by '\n'; a trailing '\r' on a line
// is dropped. Empty content is a single line of width zero.
func NewText(s string) Text {
	lines := strings.Split(s, "\n")
	widths := make([]int, len(lines))
	width := 0
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		lines[i] = line
		widths[i] = runewidth.StringWidth(line)
		width = max(width, widths[i])
	}
	return Text{content: s, lines: lines, widths: widths, width: width}
}

// String returns the original content.
func (t Text) String() string { return t.content }

// Width returns the display width of the widest line.
func (t Text) Width() int { return t.width }

// Height returns the number of lines, at least one.
func (t Text) Height() int { return max(1, len(t.lines)) }

// Line returns line i, or "" when i is out of range.
func (t Text) Line(i int) string {
	if i < 0 || i >= len(t.lines) {
		return ""
	}
	return t.lines[i]
}

// LineWidth returns the display width of line i.
func (t Text) LineWidth(i int) int {
	if i < 0 || i >= len(t.widths) {
		return 0
	}
	return t.widths[i]
}

// Records is the logical grid: rows of cells in insertion order. Every row
// has the same number of columns. Records is immutable once built.
type Records struct {
	cells [][]Text
	cols  int
}

// NewRecords builds records from raw strings. Short rows are padded with
// empty cells up to the widest row.
func NewRecords(data [][]string) Records {
	cols := 0
	for _, row := range data {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return Records{}
	}

	cells := make([][]Text, len(data))
	for r, row := range data {
		cells[r] = make([]Text, cols)
		for c := range cells[r] {
			s := ""
			if c < len(row) {
				s = row[c]
			}
			cells[r][c] = NewText(s)
		}
	}
	return Records{cells: cells, cols: cols}
}

// Count returns the number of rows and columns.
func (r Records) Count() (rows, cols int) {
	return len(r.cells), r.cols
}

// Empty reports whether the grid has no rows or no columns.
func (r Records) Empty() bool {
	return len(r.cells) == 0 || r.cols == 0
}

// Get returns the cell at pos, or an empty Text when pos is out of range.
func (r Records) Get(pos Position) Text {
	if pos.Row < 0 || pos.Row >= len(r.cells) || pos.Col < 0 || pos.Col >= r.cols {
		return NewText("")
	}
	return r.cells[pos.Row][pos.Col]
}
