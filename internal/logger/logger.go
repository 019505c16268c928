// Package logger provides verbose logging for zip2pdf.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow imports and PDF generation.
// Independently of verbose mode, Init can attach a rotated log file that
// records every message at or above the configured level.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the file sink.
type Options struct {
	// Level is the minimum level written to the file (debug, info, warn, error).
	Level string

	// File is the log file path. Empty disables file logging.
	File string

	// Pretty writes human readable lines instead of JSON.
	Pretty bool

	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer      = os.Stderr
	console zerolog.Logger = newConsole(os.Stderr)
	file                   = zerolog.Nop()
	rotator *lumberjack.Logger
)

// Init attaches the file sink described by opts, replacing any previous one.
func Init(opts Options) error {
	mu.Lock()
	defer mu.Unlock()

	closeFileLocked()
	if opts.File == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
		return fmt.Errorf("create logs dir: %w", err)
	}

	rotator = &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}

	var w io.Writer = rotator
	if opts.Pretty {
		w = zerolog.ConsoleWriter{Out: rotator, NoColor: true, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		lvl = zerolog.InfoLevel
	}

	file = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return nil
}

// Close flushes and closes the file sink, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeFileLocked()
}

func closeFileLocked() error {
	file = zerolog.Nop()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	console = newConsole(w)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	emit(zerolog.DebugLevel, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	file.Debug().Str("section", name).Msg("")
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	emit(zerolog.InfoLevel, format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	emit(zerolog.WarnLevel, format, args...)
}

// Error prints an error message if verbose mode is enabled.
func Error(format string, args ...any) {
	emit(zerolog.ErrorLevel, format, args...)
}

func emit(level zerolog.Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	msg := fmt.Sprintf(format, args...)
	file.WithLevel(level).Msg(msg)
	if verbose {
		console.WithLevel(level).Msg(msg)
	}
}

// newConsole renders "[LEVEL] message" lines without timestamps or colour.
func newConsole(w io.Writer) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: func(i any) string {
			return "[" + strings.ToUpper(fmt.Sprint(i)) + "]"
		},
	}
	return zerolog.New(cw)
}
