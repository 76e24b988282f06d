package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/gridview/pkg/errors"
	"github.com/odvcencio/gridview/pkg/filewatch"
	"github.com/odvcencio/gridview/pkg/telemetry"
	"github.com/odvcencio/gridview/pkg/ui/backend"
	"github.com/odvcencio/gridview/pkg/ui/runtime"
	"github.com/odvcencio/gridview/pkg/ui/widgets"
	"github.com/odvcencio/gridview/pkg/ui/widgets/table"
)

const (
	minTableHeight = 5
	quitHint       = "Press any key to quit."
)

// reloadMsg carries a table rebuilt after the document changed on disk.
type reloadMsg struct {
	table *table.Table
	err   error
}

// statusMsg replaces the footer status line.
type statusMsg struct {
	text string
}

// viewer is the full-screen host: the table above a short footer.
type viewer struct {
	session *session
	split   *widgets.Split
	footer  *widgets.Text
	status  string
}

func newViewer(s *session, tbl *table.Table) *viewer {
	v := &viewer{session: s, footer: widgets.NewText("")}
	v.split = widgets.NewSplit(widgets.NewInset(tbl, s.cfg.UI.Margin), v.footer, minTableHeight, s.cfg.UI.FooterHeight)
	v.status = "Showing " + s.source()
	v.refreshFooter()
	return v
}

func (v *viewer) refreshFooter() {
	lines := []string{quitHint, v.status}
	if v.session.opts.watch {
		lines = append(lines, "Watching "+v.session.opts.document+" for changes.")
	}
	v.footer.SetText(strings.Join(lines, "\n"))
}

// setTable swaps the table on display.
func (v *viewer) setTable(tbl *table.Table) {
	v.split.Top = widgets.NewInset(tbl, v.session.cfg.UI.Margin)
	v.split.Layout(v.split.Bounds())
}

// update quits on any key and applies reloads; everything else gets the
// default handling.
func (v *viewer) update(app *runtime.App, msg runtime.Message) bool {
	switch m := msg.(type) {
	case runtime.KeyMsg:
		app.HandleCommand(runtime.Quit{})
		return false
	case runtime.CustomMsg:
		switch p := m.Value.(type) {
		case reloadMsg:
			if p.err != nil {
				v.session.logError("reload failed", p.err)
				return false
			}
			v.setTable(p.table)
			return true
		case statusMsg:
			v.status = p.text
			v.refreshFooter()
			return true
		}
		return false
	}
	return runtime.DefaultUpdate(app, msg)
}

// view runs the full-screen viewer until a key is pressed or ctx is done.
func (s *session) view(ctx context.Context, tbl *table.Table) error {
	be, err := newBackend()
	if err != nil {
		return withExitCode(errors.Wrap(err, errors.ErrCodeBackendInit, "failed to open terminal"), exitFailure)
	}
	return s.runViewer(ctx, be, tbl)
}

func (s *session) runViewer(ctx context.Context, be backend.Backend, tbl *table.Table) error {
	v := newViewer(s, tbl)
	app := runtime.NewApp(runtime.AppConfig{
		Backend: be,
		Root:    v.split,
		Update:  v.update,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, unsubscribe := s.hub.Subscribe()
	defer unsubscribe()

	if s.opts.watch {
		if err := s.watch(ctx, app); err != nil {
			return withExitCode(err, exitFailure)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		err := app.Run(gctx)
		if stderrors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return withExitCode(errors.Wrap(err, errors.ErrCodeBackendInit, "viewer stopped"), exitFailure)
		}
		return nil
	})
	g.Go(func() error {
		forwardStatus(gctx, events, app)
		return nil
	})
	return g.Wait()
}

// watch reloads the document whenever it changes on disk and posts the
// result to the app loop.
func (s *session) watch(ctx context.Context, app *runtime.App) error {
	fw := filewatch.NewFileWatcher(10, filewatch.WithLogger(s.logger.With("filewatch")))
	fw.Subscribe(filepath.Base(s.opts.document), func(change filewatch.FileChange) {
		if change.Type == filewatch.ChangeDeleted || change.Type == filewatch.ChangeRenamed {
			s.logger.Warn("document removed", slog.String("path", change.Path))
			return
		}
		tbl, err := s.loadTable(ctx)
		app.Post(runtime.CustomMsg{Value: reloadMsg{table: tbl, err: err}})
	})
	return fw.Watch(ctx, s.opts.document)
}

// forwardStatus turns document events into footer updates. Render events
// are skipped: each one would trigger another render.
func forwardStatus(ctx context.Context, events <-chan telemetry.Event, app *runtime.App) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if text, ok := describeEvent(ev); ok {
				app.Post(runtime.CustomMsg{Value: statusMsg{text: text}})
			}
		}
	}
}

func describeEvent(ev telemetry.Event) (string, bool) {
	switch ev.Type {
	case telemetry.EventDocumentLoaded:
		return fmt.Sprintf("Reloaded %v at %s (%v x %v)",
			ev.Data["path"], ev.Timestamp.Format("15:04:05"), ev.Data["rows"], ev.Data["columns"]), true
	case telemetry.EventDocumentReloadFailed:
		return fmt.Sprintf("Reload of %v failed: %v", ev.Data["path"], ev.Data["error"]), true
	}
	return "", false
}
