package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/gridview/pkg/ui/backend"
	"github.com/odvcencio/gridview/pkg/ui/runtime"
)

// Text is a simple multi-line text display widget.
type Text struct {
	Base
	text  string
	style backend.Style
	lines []string // Cached line splits
}

// NewText creates a new text widget.
func NewText(text string) *Text {
	return &Text{
		text:  text,
		style: backend.DefaultStyle(),
		lines: strings.Split(text, "\n"),
	}
}

// SetText updates the displayed text.
func (t *Text) SetText(text string) {
	t.text = text
	t.lines = strings.Split(text, "\n")
	t.Invalidate()
}

// Text returns the current text.
func (t *Text) Text() string {
	return t.text
}

// WithStyle sets the style and returns the widget for chaining.
func (t *Text) WithStyle(style backend.Style) *Text {
	t.style = style
	return t
}

// Measure returns the size needed to display the text.
func (t *Text) Measure(constraints runtime.Constraints) runtime.Size {
	maxWidth := 0
	for _, line := range t.lines {
		maxWidth = max(maxWidth, runewidth.StringWidth(line))
	}
	return constraints.Constrain(runtime.Size{
		Width:  maxWidth,
		Height: max(1, len(t.lines)),
	})
}

// Render draws the text, clipped to the widget bounds.
func (t *Text) Render(ctx runtime.RenderContext) {
	bounds := t.bounds
	if bounds.Empty() {
		return
	}
	for i, line := range t.lines {
		if i >= bounds.Height {
			break
		}
		drawLine(ctx.Buffer, bounds.X, bounds.Y+i, runewidth.Truncate(line, bounds.Width, ""), t.style)
	}
}

// drawLine writes s at (x, y), giving double-width runes two cells.
func drawLine(buf *runtime.Buffer, x, y int, s string, style backend.Style) {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		buf.Set(x, y, r, style)
		for i := 1; i < w; i++ {
			buf.Set(x+i, y, 0, style)
		}
		x += w
	}
}
