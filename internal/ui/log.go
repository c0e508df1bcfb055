package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	mu       sync.Mutex
	sink     Sink = consoleSink{w: os.Stdout}
	debugLog *os.File

	// Verbose enables logging of the external commands that are executed
	Verbose bool
)

type consoleSink struct {
	w io.Writer
}

func (c consoleSink) WriteLine(level Level, timestamp, msg string) {
	fmt.Fprintf(c.w, "%s %s: %s\n", color.New(color.FgBlue).Sprint(timestamp), level.consoleColor().Sprint(level.String()), msg)
}

// SetOutput sends console log lines to w and returns a function restoring the previous sink
func SetOutput(w io.Writer) func() {
	return setSink(consoleSink{w: w})
}

func setSink(s Sink) func() {
	mu.Lock()
	prev := sink
	sink = s
	mu.Unlock()
	return func() {
		mu.Lock()
		sink = prev
		mu.Unlock()
	}
}

func tuiActive() bool {
	mu.Lock()
	defer mu.Unlock()
	_, ok := sink.(tuiSink)
	return ok
}

// InitDebugLogging mirrors every log line to the given file
func InitDebugLogging(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("opening debug log: %w", err)
	}
	mu.Lock()
	debugLog = f
	mu.Unlock()
	return nil
}

// CloseDebugLog closes the debug log file if one is open
func CloseDebugLog() {
	mu.Lock()
	defer mu.Unlock()
	if debugLog != nil {
		debugLog.Close()
		debugLog = nil
	}
}

func logLine(level Level, format string, args ...interface{}) {
	timestamp := time.Now().Format("15:04:05")
	msg := fmt.Sprintf(format, args...)

	mu.Lock()
	s := sink
	if debugLog != nil {
		fmt.Fprintf(debugLog, "%s %s: %s\n", time.Now().Format(time.RFC3339), level, msg)
	}
	mu.Unlock()

	s.WriteLine(level, timestamp, msg)
}

// LogInfo logs an informational message
func LogInfo(format string, args ...interface{}) {
	logLine(LevelInfo, format, args...)
}

// LogWarning logs a non-fatal problem
func LogWarning(format string, args ...interface{}) {
	logLine(LevelWarning, format, args...)
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	logLine(LevelError, format, args...)
}

// LogSuccess logs a success message
func LogSuccess(format string, args ...interface{}) {
	logLine(LevelSuccess, format, args...)
}

// LogShellCommand logs an external command when verbose output is enabled
func LogShellCommand(command string, args []string, dir string) {
	if !Verbose {
		return
	}
	logLine(LevelCommand, "(%s) %s %s", dir, command, strings.Join(args, " "))
}

// StartSpinner shows a spinner on stderr until the returned function is called.
// Nothing is drawn when the TUI is active or the output is not a terminal.
func StartSpinner(suffix string) func() {
	if tuiActive() || color.NoColor {
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + suffix
	_ = s.Color("cyan")
	s.Start()
	return s.Stop
}
