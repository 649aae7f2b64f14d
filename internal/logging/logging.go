package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogFile = "dnac-console.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	verbose      bool
	logPath      = defaultLogFile
	sink         io.WriteCloser
	logger       *log.Logger
)

func newSink(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28,
	}
}

// writer returns the shared log writer, opening it lazily. Callers hold mu.
func writer() io.Writer {
	if sink == nil {
		rotator := newSink(logPath)
		sink = rotator
		logger = log.New(rotator, "", log.LstdFlags)
	}
	return sink
}

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	writer()
	logger.Println("error:", err)
}

// Info writes an informational line when verbose logging is enabled.
func Info(format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose {
		return
	}
	writer()
	logger.Printf(format, args...)
}

// SetVerbose toggles informational log lines.
func SetVerbose(enabled bool) {
	mu.Lock()
	verbose = enabled
	mu.Unlock()
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are being written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if !traceEnabled {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	if err := json.NewEncoder(writer()).Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeSink()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Path returns the active log file path.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close flushes and releases the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeSink()
}

func closeSink() error {
	if sink == nil {
		return nil
	}
	err := sink.Close()
	sink = nil
	logger = nil
	return err
}
