package generator

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
	addStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("green"))
	delStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
	ctxStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Diff renders a unified diff between the existing file content and the
// freshly generated content. Returns "" when the two are identical.
//
// The implementation is a plain LCS line diff; generated artifacts are small
// so quadratic space is fine here.
func Diff(path string, existing, generated []byte) string {
	if string(existing) == string(generated) {
		return ""
	}

	oldLines := splitLines(string(existing))
	newLines := splitLines(string(generated))

	width := terminalWidth()

	var b strings.Builder
	b.WriteString(headerStyle.Render("--- "+path+" (existing)") + "\n")
	b.WriteString(headerStyle.Render("+++ "+path+" (generated)") + "\n")

	for _, l := range editScript(oldLines, newLines) {
		text := truncate(l.text, width-2)
		switch l.kind {
		case lineAdded:
			b.WriteString(addStyle.Render("+ "+text) + "\n")
		case lineRemoved:
			b.WriteString(delStyle.Render("- "+text) + "\n")
		default:
			b.WriteString(ctxStyle.Render("  "+text) + "\n")
		}
	}

	return b.String()
}

type lineKind int

const (
	lineContext lineKind = iota
	lineAdded
	lineRemoved
)

type diffLine struct {
	kind lineKind
	text string
}

// editScript computes the full edit script via an LCS table.
func editScript(oldLines, newLines []string) []diffLine {
	m, n := len(oldLines), len(newLines)
	lcs := make([][]int, m+1)
	for i := range lcs {
		lcs[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var script []diffLine
	i, j := 0, 0
	for i < m && j < n {
		switch {
		case oldLines[i] == newLines[j]:
			script = append(script, diffLine{lineContext, oldLines[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			script = append(script, diffLine{lineRemoved, oldLines[i]})
			i++
		default:
			script = append(script, diffLine{lineAdded, newLines[j]})
			j++
		}
	}
	for ; i < m; i++ {
		script = append(script, diffLine{lineRemoved, oldLines[i]})
	}
	for ; j < n; j++ {
		script = append(script, diffLine{lineAdded, newLines[j]})
	}

	return script
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// terminalWidth returns the current terminal width, or a sane default when
// stdout is not a terminal (tests, pipes).
func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// truncate clips a line to at most max bytes so styled diff lines never
// wrap. The cut lands on a rune boundary so multi-byte content stays valid
// UTF-8.
func truncate(s string, max int) string {
	if max <= 3 || len(s) <= max {
		return s
	}
	cut := max - 1
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}

// fits reports whether the diff is short enough to print inline instead of
// paging it.
func fits(diff string) bool {
	return strings.Count(diff, "\n") <= 20
}
