package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/odvcencio/gridview/pkg/config"
	"github.com/odvcencio/gridview/pkg/errors"
	"github.com/odvcencio/gridview/pkg/logging"
	"github.com/odvcencio/gridview/pkg/tabledoc"
	"github.com/odvcencio/gridview/pkg/telemetry"
	"github.com/odvcencio/gridview/pkg/ui/widgets/table"
)

const demoSource = "built-in demo"

// session holds what every host mode shares: logging, telemetry and the
// recipe for building the table from its document.
type session struct {
	opts     *options
	cfg      *config.Config
	host     string
	logger   *logging.Logger
	metrics  *telemetry.Metrics
	hub      *telemetry.Hub
	recorder *telemetry.Recorder
	closers  []func()
}

func execute(ctx context.Context, opts *options, cfg *config.Config, stdout, stderr io.Writer) error {
	s, err := newSession(opts, cfg, stderr)
	if err != nil {
		return err
	}
	defer s.close()

	if cfg.Metrics.Addr != "" {
		stop, err := startMetricsServer(cfg.Metrics.Addr, s.metrics.Handler(), s.logger.With("metrics"))
		if err != nil {
			return withExitCode(err, exitFailure)
		}
		s.closers = append(s.closers, stop)
	}

	tbl, err := s.loadTable(ctx)
	if err != nil {
		return withExitCode(err, exitUsage)
	}

	if s.host == config.HostPrint {
		return s.printTable(ctx, tbl, stdout)
	}
	return s.view(ctx, tbl)
}

func newSession(opts *options, cfg *config.Config, stderr io.Writer) (*session, error) {
	s := &session{opts: opts, cfg: cfg, host: resolveHost(cfg)}

	level, err := logging.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, withExitCode(err, exitUsage)
	}
	switch {
	case cfg.Logging.File != "":
		s.logger, err = logging.NewFile(cfg.Logging.File, "gridview", level)
		if err != nil {
			return nil, withExitCode(err, exitFailure)
		}
		s.closers = append(s.closers, func() { _ = s.logger.Close() })
	case s.host == config.HostPrint:
		s.logger = logging.New(stderr, "gridview", level)
	default:
		// The screen owns the terminal; without a log file there is
		// nowhere to write.
		s.logger = logging.Discard()
	}

	if path := cfg.Logging.TraceFile; path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			s.close()
			return nil, withExitCode(errors.Wrap(err, errors.ErrCodeInternal, "failed to open trace file").
				WithContext("path", path), exitFailure)
		}
		tp, err := telemetry.NewTracerProvider(f, "gridview", version)
		if err != nil {
			_ = f.Close()
			s.close()
			return nil, withExitCode(err, exitFailure)
		}
		s.closers = append(s.closers, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = tp.Shutdown(ctx)
			_ = f.Close()
		})
	}

	s.metrics = telemetry.NewMetrics()
	s.hub = telemetry.NewHub()
	s.closers = append(s.closers, s.hub.Close)
	s.recorder = telemetry.NewRecorder(s.metrics, s.hub, "gridview")
	return s, nil
}

// close runs the cleanups in reverse order.
func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

// source names the document for logs and the footer.
func (s *session) source() string {
	if s.opts.document == "" {
		return demoSource
	}
	return filepath.Base(s.opts.document)
}

// loadTable reads the document and builds a table widget from it.
func (s *session) loadTable(ctx context.Context) (tbl *table.Table, err error) {
	_, span := telemetry.StartSpan(ctx, "gridview.document.load")
	span.SetAttributes(telemetry.AttrDocumentPath.String(s.source()))
	defer func() { telemetry.EndSpan(span, err) }()

	doc := tabledoc.Default()
	if s.opts.document != "" {
		doc, err = tabledoc.Load(s.opts.document)
		if err != nil {
			s.recorder.ObserveReload(s.source(), 0, 0, err)
			return nil, err
		}
	}
	if doc.Style == "" {
		doc.Style = s.cfg.UI.Border
	}

	records, cfg, colors, err := doc.Build()
	if err != nil {
		if e, ok := errors.As(err); ok {
			e.WithContext("document", s.source())
		}
		s.recorder.ObserveReload(s.source(), 0, 0, err)
		return nil, err
	}
	if s.cfg.UI.NoColor {
		colors = nil
	}

	rows, cols := records.Count()
	span.SetAttributes(telemetry.AttrTableRows.Int(rows), telemetry.AttrTableColumns.Int(cols))
	s.recorder.ObserveReload(s.source(), rows, cols, nil)
	s.logger.DocumentLoaded(s.source(), rows, cols)

	return table.New(records, cfg, colors,
		table.WithObserver(s.recorder),
		table.WithLogger(s.logger.With("table")),
	), nil
}

func (s *session) logError(msg string, err error) {
	s.logger.Error(msg, slog.String("error", err.Error()))
}
