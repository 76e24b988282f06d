// Package table is the table widget: it owns one table snapshot and renders
// it into a rectangle of a cell target or as text.
//
// Every render runs the whole pipeline again (estimate the dimensions,
// traverse the grid, stream into a surface writer) so the output always
// matches the current area. Renders of one Table must not overlap.
package table

import (
	"io"
	"time"

	"github.com/odvcencio/gridview/pkg/grid"
	"github.com/odvcencio/gridview/pkg/logging"
	"github.com/odvcencio/gridview/pkg/ui/backend"
	"github.com/odvcencio/gridview/pkg/ui/runtime"
	"github.com/odvcencio/gridview/pkg/ui/surface"
	"github.com/odvcencio/gridview/pkg/ui/widgets"
)

//go:generate mockgen -package=table -destination=mock_observer_test.go github.com/odvcencio/gridview/pkg/ui/widgets/table Observer

// Observer is told about every finished render.
type Observer interface {
	ObserveRender(d time.Duration, err error)
}

// Option configures a Table.
type Option func(*Table)

// WithObserver reports render timings and failures to o.
func WithObserver(o Observer) Option {
	return func(t *Table) { t.observer = o }
}

// WithLogger sets the logger used for failed renders.
func WithLogger(l *logging.Logger) Option {
	return func(t *Table) { t.logger = l }
}

// WithBaseStyle sets the style of uncolored cells and borders.
func WithBaseStyle(s backend.Style) Option {
	return func(t *Table) { t.base = s }
}

// Table renders a fixed table snapshot.
type Table struct {
	widgets.Base
	records grid.Records
	cfg     *grid.Config
	colors  grid.ColorMap

	base     backend.Style
	observer Observer
	logger   *logging.Logger
}

// New creates a table widget. cfg and colors are copied; later changes by
// the caller do not affect the widget.
func New(records grid.Records, cfg *grid.Config, colors grid.ColorMap, opts ...Option) *Table {
	if cfg == nil {
		cfg = grid.NewConfig()
	}
	t := &Table{
		records: records,
		cfg:     cfg.Clone(),
		colors:  colors.Clone(),
		base:    backend.DefaultStyle(),
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Dimensions estimates the column widths and row heights.
func (t *Table) Dimensions() grid.Dimensions {
	return grid.Estimate(t.records, t.cfg)
}

// Size returns the natural size of the table, borders included.
func (t *Table) Size() runtime.Size {
	w, h := t.Dimensions().Total(t.cfg.Borders())
	return runtime.Size{Width: w, Height: h}
}

// Measure returns the natural size within constraints.
func (t *Table) Measure(constraints runtime.Constraints) runtime.Size {
	return constraints.Constrain(t.Size())
}

// Render draws the table into its bounds. Failures are logged.
func (t *Table) Render(ctx runtime.RenderContext) {
	bounds := t.Bounds()
	if err := t.Draw(ctx.Buffer, bounds); err != nil {
		t.logger.RenderFailed(bounds.Width, bounds.Height, err)
	}
}

// Draw renders the table into area of target. Anything that does not fit
// the area is cut off. The writer's error is returned unchanged.
func (t *Table) Draw(target backend.RenderTarget, area runtime.Rect) error {
	return t.render(surface.NewCellWriter(target, area, t.base), area.Width, area.Height)
}

// Print renders the table as text lines to out.
func (t *Table) Print(out io.Writer, opts surface.TextOptions) error {
	return t.render(surface.NewTextWriter(out, opts), opts.MaxWidth, opts.MaxHeight)
}

func (t *Table) render(w grid.Writer, width, height int) error {
	start := time.Now()

	cfg := t.cfg.Clone()
	colors := t.colors.Clone()
	dims := grid.Estimate(t.records, cfg)
	err := grid.Build(t.records, cfg, dims, colors, w)

	elapsed := time.Since(start)
	if err == nil {
		t.logger.RenderCompleted(width, height, elapsed)
	}
	if t.observer != nil {
		t.observer.ObserveRender(elapsed, err)
	}
	return err
}
