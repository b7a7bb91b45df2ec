// Package output provides styled terminal output for the magic CLI.
//
// All commands report through this package so user-facing messages share a
// single look. Functions use lipgloss for styling but hide the details from
// callers.
package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool
)

// SetVerbose enables or disables verbose output. Called by the root command
// when --verbose is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// Success prints a completed-operation message in green.
//
// Example:
//
//	output.Success("Created lib/app/controllers/user_controller.dart")
func Success(msg string) {
	fmt.Println(successStyle.Render("✨ " + msg))
}

// Error prints a failure message in red.
func Error(msg string) {
	fmt.Println(errorStyle.Render("✗ " + msg))
}

// Warn prints a warning in yellow. Use this for recoverable conditions,
// like skipping an artifact that already exists.
func Warn(msg string) {
	fmt.Println(warnStyle.Render("⚠ " + msg))
}

// Info prints a status update in cyan.
func Info(msg string) {
	fmt.Println(infoStyle.Render("→ " + msg))
}

// Step prints an indented sub-item in gray.
//
// Example:
//
//	output.Step("magic make:model User")
func Step(msg string) {
	fmt.Println(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message only when verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Println(stepStyle.Render("· " + msg))
	}
}
