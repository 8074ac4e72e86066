package log

import (
	"fmt"
	"os"

	"github.com/gur-shatz/tessa/internal/color"
)

// Logger is an instance-based logger with its own prefix and verbosity.
type Logger struct {
	prefix  string
	verbose bool
}

// New creates a new Logger with the given prefix and verbosity.
func New(prefix string, verbose bool) *Logger {
	return &Logger{prefix: prefix, verbose: verbose}
}

// Error prints a red error message to stderr.
func (this *Logger) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "%s %s %s\n", this.prefix, color.Red("Error:"), msg)
}

// Warn prints a yellow warning message to stdout.
func (this *Logger) Warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(this.prefix + " " + color.Yellow(msg))
}

// Success prints a green success message to stdout.
func (this *Logger) Success(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(this.prefix + " " + color.Green(msg))
}

// Fail prints a red failure message to stdout. Unlike Error this is part of
// the normal report flow (a verified mismatch is a verdict, not a crash).
func (this *Logger) Fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(this.prefix + " " + color.Red(msg))
}

// Status prints a bold status message to stdout.
func (this *Logger) Status(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(color.Bold(this.prefix + " " + msg))
}

// Verbose prints a dim message to stdout, only if verbose mode is enabled.
func (this *Logger) Verbose(format string, args ...any) {
	if !this.verbose {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Println(color.Dim(this.prefix + " " + msg))
}

// Field prints an aligned, dim "name: value" report line to stdout.
func (this *Logger) Field(name, value string) {
	fmt.Println(color.Dim(fmt.Sprintf("  %-10s %s", name+":", value)))
}

// --- Global convenience functions for standalone use ---

var defaultLogger = &Logger{prefix: "[tessa]"}

// Init initializes the global logger. Must be called before any other global log function.
func Init(v bool) {
	defaultLogger.verbose = v
}

// SetPrefix changes the global log prefix (default "[tessa]").
func SetPrefix(p string) {
	defaultLogger.prefix = p
}

func Error(format string, args ...any)   { defaultLogger.Error(format, args...) }
func Warn(format string, args ...any)    { defaultLogger.Warn(format, args...) }
func Success(format string, args ...any) { defaultLogger.Success(format, args...) }
func Fail(format string, args ...any)    { defaultLogger.Fail(format, args...) }
func Status(format string, args ...any)  { defaultLogger.Status(format, args...) }
func Verbose(format string, args ...any) { defaultLogger.Verbose(format, args...) }
func Field(name, value string)           { defaultLogger.Field(name, value) }
