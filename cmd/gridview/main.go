// Command gridview renders a table document, either full screen in the
// terminal or as text on stdout.
//
//	gridview [flags] [table.yaml]
//
// Without a document it shows a built-in demo table.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	goruntime "runtime"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/odvcencio/gridview/pkg/config"
	gverrors "github.com/odvcencio/gridview/pkg/errors"
	"github.com/odvcencio/gridview/pkg/tabledoc"
	"github.com/odvcencio/gridview/pkg/ui/backend"
	tcellbackend "github.com/odvcencio/gridview/pkg/ui/backend/tcell"
)

// Version information - set via ldflags during build
var (
	version   = "0.1.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Terminal hooks, replaced in tests.
var (
	stdoutIsTerminal = func() bool {
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
	stdoutSize = func() (int, int, error) {
		return term.GetSize(int(os.Stdout.Fd()))
	}
	newBackend = func() (backend.Backend, error) {
		return tcellbackend.New()
	}
)

type options struct {
	configPath  string
	print       bool
	width       int
	height      int
	watch       bool
	noColor     bool
	metricsAddr string
	logLevel    string
	traceFile   string
	showVersion bool
	document    string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if opts.showVersion {
		printVersion(stdout)
		return exitOK
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", friendly(err))
		return exitUsage
	}

	if err := execute(ctx, opts, cfg, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", friendly(err))
		return exitCodeForError(err)
	}
	return exitOK
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("gridview", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", "", "load configuration from `path` instead of ~/.gridview and ./.gridview")
	fs.BoolVar(&opts.print, "print", false, "print the table to stdout instead of opening the viewer")
	fs.IntVar(&opts.width, "width", 0, "clip printed output to `n` columns (default: terminal width)")
	fs.IntVar(&opts.height, "height", 0, "clip printed output to `n` lines")
	fs.BoolVar(&opts.watch, "watch", false, "reload the document when the file changes")
	fs.BoolVar(&opts.noColor, "no-color", false, "disable colors")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on `addr`")
	fs.StringVar(&opts.logLevel, "log-level", "", "log `level`: debug, info, warn or error")
	fs.StringVar(&opts.traceFile, "trace-file", "", "write OpenTelemetry spans to `path`")
	fs.BoolVar(&opts.showVersion, "version", false, "print version information and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: gridview [flags] [table.yaml]\n\n")
		fmt.Fprintf(fs.Output(), "Border styles: %s\n\nFlags:\n", strings.Join(tabledoc.Styles(), ", "))
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected at most one document, got %d", fs.NArg())
	}
	opts.document = fs.Arg(0)

	if opts.width < 0 || opts.height < 0 {
		return nil, errors.New("--width and --height must not be negative")
	}
	if opts.watch && opts.document == "" {
		return nil, errors.New("--watch needs a document path")
	}
	return opts, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.LoadFromPath(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if opts.print {
		cfg.UI.Host = config.HostPrint
	}
	if opts.noColor {
		cfg.UI.NoColor = true
	}
	if opts.metricsAddr != "" {
		cfg.Metrics.Addr = opts.metricsAddr
	}
	if opts.logLevel != "" {
		cfg.Logging.Level = opts.logLevel
	}
	if opts.traceFile != "" {
		cfg.Logging.TraceFile = opts.traceFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveHost picks terminal or print output.
func resolveHost(cfg *config.Config) string {
	if cfg.UI.Host == config.HostAuto {
		if stdoutIsTerminal() {
			return config.HostTerminal
		}
		return config.HostPrint
	}
	return cfg.UI.Host
}

func friendly(err error) string {
	if e, ok := gverrors.As(err); ok && e.UserMessage != "" {
		return e.UserMessage
	}
	return err.Error()
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "gridview %s\n", version)
	if commit != "unknown" {
		fmt.Fprintf(w, "  Commit:     %s\n", commit)
	}
	if buildDate != "unknown" {
		fmt.Fprintf(w, "  Built:      %s\n", buildDate)
	}
	fmt.Fprintf(w, "  Go version: %s\n", goruntime.Version())
}
