// Package tabledoc reads table documents: YAML files describing the cells
// of a table together with its borders, padding, alignment, merges and
// colors. A Document resolves into the records, configuration and color
// map the grid package renders.
package tabledoc

import (
	"bytes"
	_ "embed"
	stderrors "errors"
	"io"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/odvcencio/gridview/pkg/errors"
	"github.com/odvcencio/gridview/pkg/grid"
	"github.com/odvcencio/gridview/pkg/ui/backend"
)

//go:embed demo.yaml
var demo []byte

// DefaultPadding applies when a document sets no padding: one blank column
// on each side of the text.
var DefaultPadding = []int{1, 1, 0, 0}

// Document is a table description.
type Document struct {
	// Style names the border preset: none, ascii, modern, rounded, double
	// or columns. Empty means ascii.
	Style string `yaml:"style"`

	// Padding is [left, right, top, bottom] for every cell.
	Padding []int `yaml:"padding,omitempty"`
	Align   *Align `yaml:"align,omitempty"`

	// Header adds a row above Rows merged across all columns.
	Header *Header `yaml:"header,omitempty"`

	// ColumnNames label the columns on the top border line.
	ColumnNames *ColumnNames `yaml:"column_names,omitempty"`

	Rows [][]string `yaml:"rows"`

	// Columns, RowStyles and Cells override the defaults. Indexes count
	// Rows only; the header row is not addressable.
	Columns   []Override     `yaml:"columns,omitempty"`
	RowStyles []Override     `yaml:"row_styles,omitempty"`
	Cells     []CellOverride `yaml:"cells,omitempty"`
}

// Align holds alignment names: left, center, right and top, middle, bottom.
type Align struct {
	Horizontal string `yaml:"horizontal,omitempty"`
	Vertical   string `yaml:"vertical,omitempty"`
}

// Color is a foreground/background pair of color names, palette indexes
// or #rrggbb values.
type Color struct {
	FG string `yaml:"fg,omitempty"`
	BG string `yaml:"bg,omitempty"`
}

// Header is a title row.
type Header struct {
	Text  string `yaml:"text"`
	Align string `yaml:"align,omitempty"`
	Color *Color `yaml:"color,omitempty"`
}

// ColumnNames are labels written into the top border, first column first.
type ColumnNames struct {
	Names []string `yaml:"names"`
	Align string   `yaml:"align,omitempty"`
}

// Override styles a whole row or column.
type Override struct {
	Index   int    `yaml:"index"`
	Padding []int  `yaml:"padding,omitempty"`
	Align   *Align `yaml:"align,omitempty"`
	Color   *Color `yaml:"color,omitempty"`
}

// CellOverride styles and merges one cell. A span of 0 reaches the last
// row or column.
type CellOverride struct {
	At      []int  `yaml:"at"`
	Padding []int  `yaml:"padding,omitempty"`
	Align   *Align `yaml:"align,omitempty"`
	Color   *Color `yaml:"color,omitempty"`
	RowSpan *int   `yaml:"row_span,omitempty"`
	ColSpan *int   `yaml:"col_span,omitempty"`
}

// Parse decodes a YAML document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, errors.ErrCodeDocumentParse, "failed to parse table document")
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDocumentLoad, "failed to read table document").
			WithContext("path", path)
	}
	doc, err := Parse(data)
	if err != nil {
		if e, ok := errors.As(err); ok {
			e.WithContext("path", path)
		}
		return nil, err
	}
	return doc, nil
}

// Default returns the built-in demo document.
func Default() *Document {
	doc, err := Parse(demo)
	if err != nil {
		panic("tabledoc: embedded demo document: " + err.Error())
	}
	return doc
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// Build resolves the document into renderable parts.
func (d *Document) Build() (grid.Records, *grid.Config, grid.ColorMap, error) {
	b := &builder{doc: d, cfg: grid.NewConfig(), colors: grid.ColorMap{}}
	if err := b.build(); err != nil {
		return grid.Records{}, nil, nil, err
	}
	return b.records, b.cfg, b.colors, nil
}

type builder struct {
	doc     *Document
	records grid.Records
	cfg     *grid.Config
	colors  grid.ColorMap
	offset  int
	rows    int
	cols    int
}

func (b *builder) build() error {
	d := b.doc

	borders, err := ParseStyle(d.Style)
	if err != nil {
		return err
	}
	b.cfg.SetBorders(borders)

	data := normalize(d.Rows)
	if d.Header != nil {
		data = append([][]string{{norm.NFC.String(d.Header.Text)}}, data...)
		b.offset = 1
	}
	b.records = grid.NewRecords(data)
	b.rows, b.cols = b.records.Count()

	padding := d.Padding
	if padding == nil {
		padding = DefaultPadding
	}
	if err := b.padding(grid.Global(), padding, "padding"); err != nil {
		return err
	}
	if err := b.align(grid.Global(), d.Align, "align"); err != nil {
		return err
	}

	if d.Header != nil && !b.records.Empty() {
		b.cfg.SetColumnSpan(grid.Position{}, b.cols)
		if d.Header.Align != "" {
			h, err := parseHAlign(d.Header.Align)
			if err != nil {
				return invalid("header.align", err.Error())
			}
			b.cfg.SetAlignment(grid.Cell(0, 0), h)
		}
		if err := b.color([]grid.Position{{}}, d.Header.Color, "header.color"); err != nil {
			return err
		}
	}

	if n := d.ColumnNames; n != nil {
		names := grid.ColumnNames{Names: make([]string, len(n.Names))}
		for i, name := range n.Names {
			names.Names[i] = norm.NFC.String(name)
		}
		if n.Align != "" {
			h, err := parseHAlign(n.Align)
			if err != nil {
				return invalid("column_names.align", err.Error())
			}
			names.Align = h
		}
		b.cfg.SetColumnNames(names)
	}

	for i, o := range d.RowStyles {
		field := fieldf("row_styles", i)
		if o.Index < 0 || o.Index >= b.rows-b.offset {
			return invalid(field+".index", "row index out of range").WithContext("index", o.Index)
		}
		r := o.Index + b.offset
		if err := b.override(grid.Row(r), o, field); err != nil {
			return err
		}
		if err := b.color(b.line(r, -1), o.Color, field+".color"); err != nil {
			return err
		}
	}

	for i, o := range d.Columns {
		field := fieldf("columns", i)
		if o.Index < 0 || o.Index >= b.cols {
			return invalid(field+".index", "column index out of range").WithContext("index", o.Index)
		}
		if err := b.override(grid.Column(o.Index), o, field); err != nil {
			return err
		}
		if err := b.color(b.line(-1, o.Index), o.Color, field+".color"); err != nil {
			return err
		}
	}

	for i, c := range d.Cells {
		if err := b.cell(c, fieldf("cells", i)); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) cell(c CellOverride, field string) error {
	if len(c.At) != 2 {
		return invalid(field+".at", "expected [row, column]")
	}
	r, col := c.At[0], c.At[1]
	if r < 0 || r >= b.rows-b.offset || col < 0 || col >= b.cols {
		return invalid(field+".at", "cell out of range").WithContext("at", c.At)
	}
	pos := grid.Position{Row: r + b.offset, Col: col}
	entity := grid.Cell(pos.Row, pos.Col)

	if err := b.override(entity, Override{Padding: c.Padding, Align: c.Align}, field); err != nil {
		return err
	}
	if err := b.color([]grid.Position{pos}, c.Color, field+".color"); err != nil {
		return err
	}

	span := b.cfg.Span(pos)
	if c.RowSpan != nil {
		n, err := spanLength(*c.RowSpan, b.rows-pos.Row)
		if err != nil {
			return invalid(field+".row_span", err.Error())
		}
		span.Rows = n
	}
	if c.ColSpan != nil {
		n, err := spanLength(*c.ColSpan, b.cols-pos.Col)
		if err != nil {
			return invalid(field+".col_span", err.Error())
		}
		span.Cols = n
	}
	b.cfg.SetSpan(pos, span)
	return nil
}

func (b *builder) override(e grid.Entity, o Override, field string) error {
	if o.Padding != nil {
		if err := b.padding(e, o.Padding, field+".padding"); err != nil {
			return err
		}
	}
	return b.align(e, o.Align, field+".align")
}

func (b *builder) padding(e grid.Entity, values []int, field string) error {
	if len(values) != 4 {
		return invalid(field, "expected [left, right, top, bottom]")
	}
	for _, v := range values {
		if v < 0 {
			return invalid(field, "padding must not be negative")
		}
	}
	b.cfg.SetPadding(e, grid.Padding{Left: values[0], Right: values[1], Top: values[2], Bottom: values[3]})
	return nil
}

func (b *builder) align(e grid.Entity, a *Align, field string) error {
	if a == nil {
		return nil
	}
	if a.Horizontal != "" {
		h, err := parseHAlign(a.Horizontal)
		if err != nil {
			return invalid(field+".horizontal", err.Error())
		}
		b.cfg.SetAlignment(e, h)
	}
	if a.Vertical != "" {
		v, err := parseVAlign(a.Vertical)
		if err != nil {
			return invalid(field+".vertical", err.Error())
		}
		b.cfg.SetVerticalAlignment(e, v)
	}
	return nil
}

func (b *builder) color(positions []grid.Position, c *Color, field string) error {
	if c == nil {
		return nil
	}
	fg, err := backend.ParseColor(c.FG)
	if err != nil {
		return invalid(field+".fg", err.Error())
	}
	bg, err := backend.ParseColor(c.BG)
	if err != nil {
		return invalid(field+".bg", err.Error())
	}
	for _, pos := range positions {
		b.colors[pos] = grid.NewColor(fg, bg)
	}
	return nil
}

// line returns the data positions of row r, or of column c when r is
// negative. The header row is never included.
func (b *builder) line(r, c int) []grid.Position {
	var out []grid.Position
	if r >= 0 {
		for col := 0; col < b.cols; col++ {
			out = append(out, grid.Position{Row: r, Col: col})
		}
		return out
	}
	for row := b.offset; row < b.rows; row++ {
		out = append(out, grid.Position{Row: row, Col: c})
	}
	return out
}

// normalize copies rows with every cell in NFC form, so that text typed
// with combining marks measures and renders like its precomposed form.
func normalize(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = norm.NFC.String(cell)
		}
	}
	return out
}
