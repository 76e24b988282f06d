package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odvcencio/gridview/pkg/config"
	"github.com/odvcencio/gridview/pkg/logging"
	"github.com/odvcencio/gridview/pkg/telemetry"
	"github.com/odvcencio/gridview/pkg/ui/backend"
	"github.com/odvcencio/gridview/pkg/ui/backend/sim"
)

// isolate keeps the host's config, environment and terminal out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{
		"GRIDVIEW_HOST", "GRIDVIEW_BORDER", "GRIDVIEW_LOG_LEVEL", "GRIDVIEW_LOG_FILE",
		"GRIDVIEW_TRACE_FILE", "GRIDVIEW_METRICS_ADDR", "GRIDVIEW_NO_COLOR",
	} {
		t.Setenv(key, "")
	}
	if v, ok := os.LookupEnv("NO_COLOR"); ok {
		require.NoError(t, os.Unsetenv("NO_COLOR"))
		t.Cleanup(func() { _ = os.Setenv("NO_COLOR", v) })
	}

	oldTTY, oldSize, oldBackend := stdoutIsTerminal, stdoutSize, newBackend
	stdoutIsTerminal = func() bool { return false }
	stdoutSize = func() (int, int, error) { return 0, 0, errors.New("not a terminal") }
	t.Cleanup(func() {
		stdoutIsTerminal, stdoutSize, newBackend = oldTTY, oldSize, oldBackend
	})
}

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions([]string{"--print", "--width", "40", "--no-color", "--log-level=debug", "doc.yaml"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, opts.print)
	assert.Equal(t, 40, opts.width)
	assert.True(t, opts.noColor)
	assert.Equal(t, "debug", opts.logLevel)
	assert.Equal(t, "doc.yaml", opts.document)
}

func TestParseOptions_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"two documents", []string{"a.yaml", "b.yaml"}},
		{"negative width", []string{"--width", "-1"}},
		{"watch without document", []string{"--watch"}},
		{"unknown flag", []string{"--fancy"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseOptions(tt.args, io.Discard)
			assert.Error(t, err)
		})
	}
}

func TestParseOptions_Help(t *testing.T) {
	var out bytes.Buffer
	_, err := parseOptions([]string{"-h"}, &out)
	assert.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, out.String(), "Usage: gridview")
	assert.Contains(t, out.String(), "rounded")
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "gridview "+version)
}

func TestRun_UsageError(t *testing.T) {
	code, _, stderr := runCLI(t, "a.yaml", "b.yaml")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "at most one document")
}

func TestRun_PrintDemo(t *testing.T) {
	isolate(t)

	code, stdout, stderr := runCLI(t, "--print")
	require.Equal(t, exitOK, code, stderr)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "+"), "ascii border expected, got %q", lines[0])
	assert.Contains(t, stdout, "tabled")
	assert.Contains(t, stdout, "https://github.com/ratatui/ratatui")
	assert.Contains(t, stdout, "a new backend")
	assert.NotContains(t, stdout, "\x1b[", "non-terminal output is plain")

	width := runewidth.StringWidth(lines[0])
	for _, line := range lines {
		assert.Equal(t, width, runewidth.StringWidth(line), "line %q", line)
	}
}

func TestRun_PrintDocument(t *testing.T) {
	isolate(t)
	path := writeDoc(t, `
style: modern
padding: [0, 0, 0, 0]
rows:
  - [a, b]
  - [c, d]
`)

	code, stdout, stderr := runCLI(t, "--print", path)
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "┌─┬─┐\n│a│b│\n├─┼─┤\n│c│d│\n└─┴─┘\n", stdout)
}

func TestRun_PrintUsesConfigBorder(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "gridview.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ui: {border: rounded}\n"), 0o644))
	path := writeDoc(t, "padding: [0, 0, 0, 0]\nrows: [[x]]\n")

	code, stdout, stderr := runCLI(t, "--config", cfgPath, "--print", path)
	require.Equal(t, exitOK, code, stderr)
	assert.Equal(t, "╭─╮\n│x│\n╰─╯\n", stdout)
}

func TestRun_PrintClipsToWidth(t *testing.T) {
	isolate(t)

	code, stdout, stderr := runCLI(t, "--print", "--width", "12", "--height", "3")
	require.Equal(t, exitOK, code, stderr)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 12)
	}
}

func TestRun_PrintTerminalWidth(t *testing.T) {
	isolate(t)
	stdoutIsTerminal = func() bool { return true }
	stdoutSize = func() (int, int, error) { return 20, 10, nil }

	code, stdout, stderr := runCLI(t, "--print", "--no-color")
	require.Equal(t, exitOK, code, stderr)
	for _, line := range strings.Split(strings.TrimSuffix(stdout, "\n"), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 20)
	}
}

func TestRun_DocumentErrors(t *testing.T) {
	isolate(t)

	code, _, stderr := runCLI(t, "--print", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "DOCUMENT_LOAD")

	bad := writeDoc(t, "style: plaid\nrows: [[a]]\n")
	code, _, stderr = runCLI(t, "--print", bad)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Unknown border style")
}

func TestRun_ConfigError(t *testing.T) {
	isolate(t)
	code, _, stderr := runCLI(t, "--print", "--log-level", "loud")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr, "Error loading config")
}

func TestRun_TraceFile(t *testing.T) {
	isolate(t)
	trace := filepath.Join(t.TempDir(), "spans.jsonl")

	code, _, stderr := runCLI(t, "--print", "--trace-file", trace)
	require.Equal(t, exitOK, code, stderr)

	data, err := os.ReadFile(trace)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gridview.document.load")
	assert.Contains(t, string(data), "gridview.print")
}

func TestRun_LogFile(t *testing.T) {
	isolate(t)
	logPath := filepath.Join(t.TempDir(), "logs", "gridview.log")
	t.Setenv("GRIDVIEW_LOG_FILE", logPath)

	code, _, stderr := runCLI(t, "--print")
	require.Equal(t, exitOK, code, stderr)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"document loaded"`)
	assert.Contains(t, string(data), demoSource)
}

func TestResolveHost(t *testing.T) {
	isolate(t)
	cfg := config.DefaultConfig()

	assert.Equal(t, config.HostPrint, resolveHost(cfg))
	stdoutIsTerminal = func() bool { return true }
	assert.Equal(t, config.HostTerminal, resolveHost(cfg))

	cfg.UI.Host = config.HostPrint
	assert.Equal(t, config.HostPrint, resolveHost(cfg))
}

func startViewer(t *testing.T, be *sim.Backend, args ...string) <-chan int {
	t.Helper()
	newBackend = func() (backend.Backend, error) { return be, nil }
	done := make(chan int, 1)
	go func() {
		done <- run(context.Background(), append([]string{}, args...), io.Discard, io.Discard)
	}()
	return done
}

func waitExit(t *testing.T, done <-chan int) int {
	t.Helper()
	select {
	case code := <-done:
		return code
	case <-time.After(5 * time.Second):
		t.Fatal("viewer did not exit")
		return -1
	}
}

func TestViewer_ShowsTableAndQuitsOnKey(t *testing.T) {
	isolate(t)
	t.Setenv("GRIDVIEW_HOST", config.HostTerminal)
	be := sim.New(80, 24)

	done := startViewer(t, be)

	require.Eventually(t, func() bool {
		return be.ContainsText("tabled") && be.ContainsText(quitHint)
	}, 5*time.Second, 10*time.Millisecond)

	x, y := be.FindText("+")
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)

	be.InjectKeyRune('x')
	assert.Equal(t, exitOK, waitExit(t, done))
}

func TestViewer_Margin(t *testing.T) {
	isolate(t)
	t.Setenv("GRIDVIEW_HOST", config.HostTerminal)
	cfgPath := filepath.Join(t.TempDir(), "gridview.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("ui: {margin: 2}\n"), 0o644))
	be := sim.New(80, 24)

	done := startViewer(t, be, "--config", cfgPath)

	require.Eventually(t, func() bool { return be.ContainsText("tabled") }, 5*time.Second, 10*time.Millisecond)
	x, y := be.FindText("+")
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, y)

	be.InjectKeyRune('q')
	assert.Equal(t, exitOK, waitExit(t, done))
}

func TestViewer_WatchReloads(t *testing.T) {
	isolate(t)
	t.Setenv("GRIDVIEW_HOST", config.HostTerminal)
	path := writeDoc(t, "rows: [[before]]\n")
	be := sim.New(60, 16)

	done := startViewer(t, be, "--watch", path)

	require.Eventually(t, func() bool { return be.ContainsText("before") }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("rows: [[after]]\n"), 0o644))
	require.Eventually(t, func() bool {
		return be.ContainsText("after") && be.ContainsText("Reloaded table.yaml")
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte("rows: [[broken\n"), 0o644))
	require.Eventually(t, func() bool { return be.ContainsText("Reload of table.yaml failed") }, 5*time.Second, 20*time.Millisecond)
	assert.True(t, be.ContainsText("after"), "the last good table stays on screen")

	be.InjectKeyRune('q')
	assert.Equal(t, exitOK, waitExit(t, done))
}

func TestViewer_BackendFailure(t *testing.T) {
	isolate(t)
	t.Setenv("GRIDVIEW_HOST", config.HostTerminal)
	newBackend = func() (backend.Backend, error) { return nil, errors.New("no tty") }

	code, _, stderr := runCLI(t)
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "no tty")
}

func TestMetricsRouter(t *testing.T) {
	metrics := telemetry.NewMetrics()
	metrics.ObserveRender(time.Millisecond, nil)
	srv := httptest.NewServer(newMetricsRouter(metrics.Handler()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok\n", string(body))

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(body), `gridview_renders_total{result="ok"} 1`)

	resp, err = http.Post(srv.URL+"/metrics", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestStartMetricsServer(t *testing.T) {
	metrics := telemetry.NewMetrics()
	stop, err := startMetricsServer("127.0.0.1:0", metrics.Handler(), logging.Discard())
	require.NoError(t, err)
	stop()

	_, err = startMetricsServer("127.0.0.1:-1", metrics.Handler(), logging.Discard())
	assert.Error(t, err)
}

func TestDescribeEvent(t *testing.T) {
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	text, ok := describeEvent(telemetry.Event{
		Type:      telemetry.EventDocumentLoaded,
		Timestamp: at,
		Data:      map[string]any{"path": "t.yaml", "rows": 2, "columns": 3},
	})
	assert.True(t, ok)
	assert.Equal(t, "Reloaded t.yaml at 07:08:09 (2 x 3)", text)

	text, ok = describeEvent(telemetry.Event{
		Type: telemetry.EventDocumentReloadFailed,
		Data: map[string]any{"path": "t.yaml", "error": "bad"},
	})
	assert.True(t, ok)
	assert.Equal(t, "Reload of t.yaml failed: bad", text)

	_, ok = describeEvent(telemetry.Event{Type: telemetry.EventRenderCompleted})
	assert.False(t, ok)
}

func TestExitCodes(t *testing.T) {
	assert.Equal(t, exitOK, exitCodeForError(nil))
	assert.Equal(t, exitFailure, exitCodeForError(errors.New("x")))
	assert.Equal(t, exitUsage, exitCodeForError(withExitCode(errors.New("x"), exitUsage)))
	assert.Nil(t, withExitCode(nil, exitUsage))

	wrapped := withExitCode(context.Canceled, exitFailure)
	assert.ErrorIs(t, wrapped, context.Canceled)
}
