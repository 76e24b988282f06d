package grid

import (
	"fmt"
	"maps"

	"github.com/odvcencio/gridview/pkg/ui/backend"
)

//go:generate mockgen -package=grid -destination=mock_writer_test.go github.com/odvcencio/gridview/pkg/grid Writer

// Writer receives a rendered table as a stream of cursor-relative writes.
//
// The cursor starts at the top-left of the output. WriteText prints text and
// moves the cursor right by width, which is the text's display width, not
// its rune count. WriteChar prints one rune and moves right by one. Reset
// moves to the start of the next line. ColorizeStart and ColorizeStop
// bracket the writes of one colored cell; writers without color support may
// ignore them. Start and Finish bracket the whole render.
type Writer interface {
	Start() error
	Finish() error
	WriteText(text string, width int) error
	WriteChar(c rune) error
	Reset() error
	ColorizeStart(c Color) error
	ColorizeStop(c Color) error
}

// Color is a foreground/background pair. backend.ColorDefault leaves the
// terminal's color in place.
type Color struct {
	FG backend.Color
	BG backend.Color
}

// NewColor returns a color pair.
func NewColor(fg, bg backend.Color) Color {
	return Color{FG: fg, BG: bg}
}

// IsDefault reports whether neither color is set.
func (c Color) IsDefault() bool {
	return c.FG == backend.ColorDefault && c.BG == backend.ColorDefault
}

// Style applies the pair to base.
func (c Color) Style(base backend.Style) backend.Style {
	if c.FG != backend.ColorDefault {
		base = base.Foreground(c.FG)
	}
	if c.BG != backend.ColorDefault {
		base = base.Background(c.BG)
	}
	return base
}

// ColorMap assigns colors to cell positions. A missing entry means the
// default color.
type ColorMap map[Position]Color

// Clone returns a copy of m.
func (m ColorMap) Clone() ColorMap {
	return maps.Clone(m)
}

// Writer operation names reported in WriteError.Op.
const (
	OpStart         = "start"
	OpFinish        = "finish"
	OpWriteText     = "write_text"
	OpWriteChar     = "write_char"
	OpReset         = "reset"
	OpColorizeStart = "colorize_start"
	OpColorizeStop  = "colorize_stop"
)

// WriteError is returned by Build when the Writer fails. Rendering stops at
// the first failure; the output may hold a partial line.
type WriteError struct {
	Op  string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("grid: %s: %v", e.Op, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
