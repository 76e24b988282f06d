package grid

import (
	"maps"
	"slices"
)

// HAlign is horizontal alignment of text inside a cell.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is vertical alignment of text inside a cell.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
)

// Padding is blank space between a cell's border and its text.
type Padding struct {
	Left, Right, Top, Bottom int
}

// Horizontal returns Left + Right.
func (p Padding) Horizontal() int { return p.Left + p.Right }

// Vertical returns Top + Bottom.
func (p Padding) Vertical() int { return p.Top + p.Bottom }

// Span is the number of rows and columns a merged cell covers, counted from
// its origin. A 1x1 span is a plain cell.
type Span struct {
	Rows, Cols int
}

type entityKind uint8

const (
	entityGlobal entityKind = iota
	entityRow
	entityColumn
	entityCell
)

// Entity selects what a setting applies to: the whole table, a row, a
// column or a single cell.
type Entity struct {
	kind entityKind
	row  int
	col  int
}

// Global selects every cell.
func Global() Entity { return Entity{kind: entityGlobal} }

// Row selects every cell in row r.
func Row(r int) Entity { return Entity{kind: entityRow, row: r} }

// Column selects every cell in column c.
func Column(c int) Entity { return Entity{kind: entityColumn, col: c} }

// Cell selects the cell at (r, c).
func Cell(r, c int) Entity { return Entity{kind: entityCell, row: r, col: c} }

// lookup returns the entities that can apply to pos, most specific first.
func lookup(pos Position) [4]Entity {
	return [4]Entity{Cell(pos.Row, pos.Col), Column(pos.Col), Row(pos.Row), Global()}
}

// Config is the resolved table configuration: document-wide defaults plus
// row, column and cell overrides. A cell override beats a column override,
// which beats a row override, which beats the global default. Setting the
// same entity again replaces the earlier value.
type Config struct {
	borders Borders
	padding map[Entity]Padding
	halign  map[Entity]HAlign
	valign  map[Entity]VAlign
	spans   map[Position]Span
	names   ColumnNames
}

// ColumnNames are labels written into the top border line, one per column
// in order. A label wider than its column is truncated; columns are not
// widened for it. Nothing is written when the style has no top line.
type ColumnNames struct {
	Names []string
	Align HAlign
}

// NewConfig returns a configuration with no borders, no padding and
// top-left alignment.
func NewConfig() *Config {
	return &Config{
		borders: BordersNone,
		padding: map[Entity]Padding{Global(): {}},
		halign:  map[Entity]HAlign{Global(): AlignLeft},
		valign:  map[Entity]VAlign{Global(): AlignTop},
		spans:   map[Position]Span{},
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	return &Config{
		borders: c.borders,
		padding: maps.Clone(c.padding),
		halign:  maps.Clone(c.halign),
		valign:  maps.Clone(c.valign),
		spans:   maps.Clone(c.spans),
		names:   ColumnNames{Names: slices.Clone(c.names.Names), Align: c.names.Align},
	}
}

// SetBorders sets the border style.
func (c *Config) SetBorders(b Borders) { c.borders = b }

// Borders returns the border style.
func (c *Config) Borders() Borders { return c.borders }

// SetColumnNames sets the labels of the top border line.
func (c *Config) SetColumnNames(n ColumnNames) {
	c.names = ColumnNames{Names: slices.Clone(n.Names), Align: n.Align}
}

// ColumnNames returns the labels of the top border line.
func (c *Config) ColumnNames() ColumnNames { return c.names }

// SetPadding sets padding for an entity.
func (c *Config) SetPadding(e Entity, p Padding) {
	c.padding[e] = Padding{
		Left:   max(0, p.Left),
		Right:  max(0, p.Right),
		Top:    max(0, p.Top),
		Bottom: max(0, p.Bottom),
	}
}

// Padding returns the effective padding at pos.
func (c *Config) Padding(pos Position) Padding {
	return resolve(c.padding, pos)
}

// SetAlignment sets horizontal alignment for an entity.
func (c *Config) SetAlignment(e Entity, a HAlign) { c.halign[e] = a }

// Alignment returns the effective horizontal alignment at pos.
func (c *Config) Alignment(pos Position) HAlign {
	return resolve(c.halign, pos)
}

// SetVerticalAlignment sets vertical alignment for an entity.
func (c *Config) SetVerticalAlignment(e Entity, a VAlign) { c.valign[e] = a }

// VerticalAlignment returns the effective vertical alignment at pos.
func (c *Config) VerticalAlignment(pos Position) VAlign {
	return resolve(c.valign, pos)
}

// SetSpan merges the cells starting at origin. Spans smaller than 1x1 are
// raised to 1x1, which removes the merge.
func (c *Config) SetSpan(origin Position, s Span) {
	s.Rows, s.Cols = max(1, s.Rows), max(1, s.Cols)
	if s.Rows == 1 && s.Cols == 1 {
		delete(c.spans, origin)
		return
	}
	c.spans[origin] = s
}

// SetColumnSpan changes only the column extent of the span at origin.
func (c *Config) SetColumnSpan(origin Position, cols int) {
	s := c.Span(origin)
	s.Cols = cols
	c.SetSpan(origin, s)
}

// SetRowSpan changes only the row extent of the span at origin.
func (c *Config) SetRowSpan(origin Position, rows int) {
	s := c.Span(origin)
	s.Rows = rows
	c.SetSpan(origin, s)
}

// Span returns the span configured at origin, 1x1 when none is.
func (c *Config) Span(origin Position) Span {
	if s, ok := c.spans[origin]; ok {
		return s
	}
	return Span{Rows: 1, Cols: 1}
}

// Origin resolves pos to the origin of the merged cell covering it in
// records. Spans are clamped to the grid and, where they overlap, the one
// whose origin comes first in row-major order wins, exactly as rendered. A
// position outside the grid or not covered by any span is its own origin.
func (c *Config) Origin(records Records, pos Position) Position {
	rows, cols := records.Count()
	if pos.Row < 0 || pos.Row >= rows || pos.Col < 0 || pos.Col >= cols {
		return pos
	}
	return newLayout(records, c).originOf(pos.Row, pos.Col)
}

func resolve[V any](m map[Entity]V, pos Position) V {
	for _, e := range lookup(pos) {
		if v, ok := m[e]; ok {
			return v
		}
	}
	var zero V
	return zero
}
