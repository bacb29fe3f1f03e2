package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
)

// UI handles terminal output in either human or JSON mode.
type UI struct {
	jsonMode bool
}

// NewUI creates a UI. jsonMode suppresses decoration and emits one JSON
// object per result for automation.
func NewUI(jsonMode bool) *UI {
	return &UI{jsonMode: jsonMode}
}

// Success prints a success line.
func (ui *UI) Success(format string, args ...interface{}) {
	if ui.jsonMode {
		ui.emit("success", fmt.Sprintf(format, args...))
		return
	}
	color.New(color.FgGreen).Printf("✓ %s\n", fmt.Sprintf(format, args...))
}

// Error prints an error line.
func (ui *UI) Error(format string, args ...interface{}) {
	if ui.jsonMode {
		ui.emit("error", fmt.Sprintf(format, args...))
		return
	}
	color.New(color.FgRed).Printf("✗ %s\n", fmt.Sprintf(format, args...))
}

// Warning prints a warning line.
func (ui *UI) Warning(format string, args ...interface{}) {
	if ui.jsonMode {
		ui.emit("warning", fmt.Sprintf(format, args...))
		return
	}
	color.New(color.FgYellow).Printf("⚠ %s\n", fmt.Sprintf(format, args...))
}

// Info prints an informational line.
func (ui *UI) Info(format string, args ...interface{}) {
	if ui.jsonMode {
		ui.emit("info", fmt.Sprintf(format, args...))
		return
	}
	color.New(color.FgCyan).Printf("ℹ %s\n", fmt.Sprintf(format, args...))
}

// Field prints a labeled value, indented under the current item.
func (ui *UI) Field(key, format string, args ...interface{}) {
	if ui.jsonMode {
		return
	}
	color.New(color.FgYellow).Printf("  %s: ", key)
	fmt.Printf(format+"\n", args...)
}

// Result emits a structured payload: JSON in automation mode, a header
// line otherwise.
func (ui *UI) Result(label string, payload interface{}) {
	if ui.jsonMode {
		json.NewEncoder(os.Stdout).Encode(map[string]interface{}{label: payload})
		return
	}
	color.New(color.FgMagenta, color.Bold).Printf("━━━ %s ━━━\n", label)
}

func (ui *UI) emit(level, msg string) {
	json.NewEncoder(os.Stdout).Encode(map[string]string{"level": level, "message": msg})
}
