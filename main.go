package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"golang.org/x/term"

	"github.com/atomicstack/termloop/internal/app"
	"github.com/atomicstack/termloop/internal/config"
	"github.com/atomicstack/termloop/internal/counter"
	"github.com/atomicstack/termloop/internal/event"
	"github.com/atomicstack/termloop/internal/logging"
	"github.com/atomicstack/termloop/internal/logging/events"
	"github.com/atomicstack/termloop/internal/terminal"
)

const (
	exitOK    = 0
	exitFatal = 1
)

// runApp is replaced in tests.
var runApp = app.Run[*counter.State]

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg, uuid.New().String())

	os.Exit(run(context.Background(), runtimeCfg))
}

// run drives the counter and maps the outcome to an exit status. The
// terminal has already been restored by the time an error is printed.
func run(ctx context.Context, cfg config.Config) int {
	defer terminal.RestoreOnPanic()

	err := runApp(ctx, cfg.App, counter.New(), counter.Handlers(), counter.Render)
	code := exitCode(err)
	events.App.Exit(code, err)
	if code != exitOK {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return code
}

// exitCode treats a shutdown requested through the context like a quit.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled), errors.Is(err, event.ErrStopped):
		return exitOK
	default:
		return exitFatal
	}
}

func traceStartup(cfg config.Config, sessionID string) {
	events.App.Start(startupTracePayload(cfg, sessionID))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, sessionID string) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"session":      sessionID,
		"argv":         cfg.Args,
		"flags":        flags,
		"tick_rate_ms": cfg.App.TickRate.Milliseconds(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Input  ttyProbeResult `json:"input"`
	Output ttyProbeResult `json:"output"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails probes the descriptors the session reads from and draws
// to.
func collectTTYDetails() ttyDetails {
	return ttyDetails{
		Input:  probeTTY("stdin", os.Stdin),
		Output: probeTTY("stderr", os.Stderr),
	}
}

func probeTTY(name string, f *os.File) ttyProbeResult {
	entry := ttyProbeResult{Name: name}
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return entry
	}
	entry.IsTerminal = true
	if width, height, err := term.GetSize(fd); err == nil {
		entry.Width, entry.Height = width, height
	} else {
		entry.Error = err.Error()
	}
	return entry
}
