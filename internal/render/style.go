// Package render formats tasks for terminal output.
package render

import (
	"github.com/fatih/color"

	"github.com/taskdeck/taskdeck/internal/task"
)

// Sprint color functions for building styled strings.
var (
	Bold   = color.New(color.Bold).SprintFunc()
	Dim    = color.New(color.Faint).SprintFunc()
	Cyan   = color.New(color.FgCyan).SprintFunc()
	Green  = color.New(color.FgGreen).SprintFunc()
	Red    = color.New(color.FgRed).SprintFunc()
	Yellow = color.New(color.FgYellow).SprintFunc()
)

// Mode controls when output is colorized.
type Mode string

const (
	ModeAuto   Mode = "auto"
	ModeAlways Mode = "always"
	ModeNever  Mode = "never"
)

// SetMode applies the color mode globally. Auto keeps the library
// default, which drops color when stdout is not a terminal.
func SetMode(mode Mode) {
	switch mode {
	case ModeAlways:
		color.NoColor = false
	case ModeNever:
		color.NoColor = true
	}
}

// StatusIcon returns a colored status glyph for compact display.
func StatusIcon(status task.Status) string {
	if status == task.StatusDone {
		return Green("✓")
	}
	return Yellow("•")
}
