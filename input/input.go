// Package input provides interactive terminal input utilities.
//
// Commands that need to ask the user something (artifact names, overwrite
// confirmations) go through this package for a consistent look. Both
// helpers return their default on EOF, so non-interactive invocations get
// the conservative answer instead of hanging.
package input

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Prompt asks for text input with an optional default value. Pressing Enter
// without typing anything returns the default.
//
// Example:
//
//	name := input.Prompt("Application name", "my_app")
func Prompt(message, defaultValue string) string {
	reader := bufio.NewReader(os.Stdin)

	if defaultValue != "" {
		fmt.Print(promptStyle.Render(message) + " " +
			hintStyle.Render(fmt.Sprintf("(%s)", defaultValue)) + ": ")
	} else {
		fmt.Print(promptStyle.Render(message) + ": ")
	}

	line, err := reader.ReadString('\n')
	if err != nil {
		return defaultValue
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return defaultValue
	}
	return line
}

// Confirm asks a yes/no question. Returns true for y/yes (case-insensitive).
// Pressing Enter returns defaultYes.
func Confirm(message string, defaultYes bool) bool {
	reader := bufio.NewReader(os.Stdin)

	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	fmt.Print(promptStyle.Render(message) + " " + hintStyle.Render(hint) + ": ")

	line, err := reader.ReadString('\n')
	if err != nil {
		return defaultYes
	}

	line = strings.TrimSpace(strings.ToLower(line))
	if line == "" {
		return defaultYes
	}
	return line == "y" || line == "yes"
}
