package surface

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/odvcencio/gridview/pkg/grid"
	"github.com/odvcencio/gridview/pkg/ui/backend"
)

// TextOptions controls TextWriter output.
type TextOptions struct {
	// MaxWidth and MaxHeight clip the output; zero means unlimited.
	MaxWidth  int
	MaxHeight int

	// NoColor drops all color escapes.
	NoColor bool

	// Renderer styles colored runs. Nil detects the color profile of the
	// output: a non-terminal gets plain text.
	Renderer *lipgloss.Renderer
}

// TextWriter prints a table line by line to an io.Writer. Each line is
// flushed on Reset; errors from the underlying writer are returned.
type TextWriter struct {
	out      io.Writer
	opts     TextOptions
	renderer *lipgloss.Renderer

	line   strings.Builder
	row    int
	col    int
	style  lipgloss.Style
	styled bool
}

// NewTextWriter creates a TextWriter for out.
func NewTextWriter(out io.Writer, opts TextOptions) *TextWriter {
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(out)
	}
	if opts.NoColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return &TextWriter{
		out:      out,
		opts:     opts,
		renderer: renderer,
	}
}

func (w *TextWriter) Start() error {
	w.line.Reset()
	w.row, w.col = 0, 0
	w.styled = false
	return nil
}

// Finish flushes a line left open without a trailing Reset.
func (w *TextWriter) Finish() error {
	if w.line.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(w.out, w.line.String())
	w.line.Reset()
	return err
}

func (w *TextWriter) WriteText(text string, width int) error {
	w.put(text, width)
	return nil
}

func (w *TextWriter) WriteChar(c rune) error {
	w.put(string(c), 1)
	return nil
}

func (w *TextWriter) Reset() error {
	visible := w.visibleRow()
	w.row++
	w.col = 0
	if !visible {
		w.line.Reset()
		return nil
	}
	w.line.WriteByte('\n')
	_, err := io.WriteString(w.out, w.line.String())
	w.line.Reset()
	return err
}

func (w *TextWriter) ColorizeStart(c grid.Color) error {
	if w.opts.NoColor || c.IsDefault() {
		return nil
	}
	style := w.renderer.NewStyle()
	if c.FG != backend.ColorDefault {
		style = style.Foreground(lipgloss.Color(c.FG.String()))
	}
	if c.BG != backend.ColorDefault {
		style = style.Background(lipgloss.Color(c.BG.String()))
	}
	w.style, w.styled = style, true
	return nil
}

func (w *TextWriter) ColorizeStop(grid.Color) error {
	w.styled = false
	return nil
}

func (w *TextWriter) visibleRow() bool {
	return w.opts.MaxHeight <= 0 || w.row < w.opts.MaxHeight
}

// put appends text of the given display width, clipped to MaxWidth.
func (w *TextWriter) put(text string, width int) {
	start := w.col
	w.col += width
	if !w.visibleRow() {
		return
	}
	if w.opts.MaxWidth > 0 {
		room := w.opts.MaxWidth - start
		if room <= 0 {
			return
		}
		if width > room {
			text = runewidth.Truncate(text, room, "")
		}
	}
	if w.styled {
		text = w.style.Render(text)
	}
	w.line.WriteString(text)
}

var _ grid.Writer = (*TextWriter)(nil)
