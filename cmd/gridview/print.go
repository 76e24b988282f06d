package main

import (
	"context"
	"io"

	"github.com/odvcencio/gridview/pkg/telemetry"
	"github.com/odvcencio/gridview/pkg/ui/surface"
	"github.com/odvcencio/gridview/pkg/ui/widgets/table"
)

// printTable writes the table to out. Output is clipped to --width/--height;
// without --width a terminal's width is used.
func (s *session) printTable(ctx context.Context, tbl *table.Table, out io.Writer) (err error) {
	_, span := telemetry.StartSpan(ctx, "gridview.print")
	span.SetAttributes(telemetry.AttrHost.String(s.host))
	defer func() { telemetry.EndSpan(span, err) }()

	opts := surface.TextOptions{
		MaxWidth:  s.opts.width,
		MaxHeight: s.opts.height,
		NoColor:   s.cfg.UI.NoColor,
	}
	if opts.MaxWidth == 0 && stdoutIsTerminal() {
		if w, _, err := stdoutSize(); err == nil && w > 0 {
			opts.MaxWidth = w
		}
	}

	if err := tbl.Print(out, opts); err != nil {
		s.logError("print failed", err)
		return withExitCode(err, exitFailure)
	}
	return nil
}
