package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

const defaultLogFile = "termloop.log"

// State is read without locks so the terminal crash hook can log from a
// panicking goroutine regardless of what other goroutines hold.
var (
	traceEnabled atomic.Bool
	logPath      atomic.Pointer[string]
)

// Error appends err to the shared log file. Terminal output is never used,
// since the screen may still be in raw or alternate mode.
func Error(err error) {
	if err == nil {
		return
	}
	appendLog("logging", func(w io.Writer) error {
		return log.New(w, "", log.LstdFlags).Output(2, err.Error())
	})
}

// Errorf formats and logs an error.
func Errorf(format string, args ...interface{}) {
	Error(fmt.Errorf(format, args...))
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	traceEnabled.Store(enabled)
}

// TraceEnabled reports whether Trace writes entries.
func TraceEnabled() bool {
	return traceEnabled.Load()
}

type traceEntry struct {
	Time    time.Time   `json:"time"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	entry := traceEntry{Time: time.Now().UTC(), Event: event, Payload: payload}
	appendLog("trace logging", func(w io.Writer) error {
		return json.NewEncoder(w).Encode(entry)
	})
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	if strings.TrimSpace(path) == "" {
		logPath.Store(nil)
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath.Store(nil)
		return
	}
	logPath.Store(&path)
}

// Path returns the current log destination.
func Path() string {
	if p := logPath.Load(); p != nil {
		return *p
	}
	return defaultLogFile
}

// appendLog opens the log for one write. Failures go to stderr prefixed with
// what, since there is nowhere else to report them.
func appendLog(what string, write func(io.Writer) error) {
	f, err := os.OpenFile(Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
	}
}
