package ui

import "github.com/fatih/color"

// Level identifies the kind of a log line
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
	LevelSuccess
	LevelCommand
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelSuccess:
		return "SUCCESS"
	case LevelCommand:
		return "EXEC"
	default:
		return "INFO"
	}
}

// tviewColor returns the tview colour tag name for the level
func (l Level) tviewColor() string {
	switch l {
	case LevelWarning:
		return "orange"
	case LevelError:
		return "red"
	case LevelSuccess:
		return "green"
	case LevelCommand:
		return "gray"
	default:
		return "yellow"
	}
}

func (l Level) consoleColor() *color.Color {
	switch l {
	case LevelWarning:
		return color.New(color.FgHiYellow)
	case LevelError:
		return color.New(color.FgHiRed, color.Bold)
	case LevelSuccess:
		return color.New(color.FgHiGreen)
	case LevelCommand:
		return color.New(color.FgHiBlack)
	default:
		return color.New(color.FgHiCyan)
	}
}

// Sink receives formatted log lines.
// This allows swapping the console for the TUI and capturing output in tests
type Sink interface {
	WriteLine(level Level, timestamp, msg string)
}
