// Package format renders entities for humans. Color degrades gracefully
// when stdout is not a terminal.
package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
)

var (
	tableBorderColor = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#AAAAAA"}
	tableBorderStyle = lipgloss.NewStyle().Foreground(tableBorderColor)

	nameStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#007700", Dark: "#00FF00"})
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0000AA", Dark: "#5555FF"})
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#AA0000", Dark: "#FF5555"}).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#777777", Dark: "#999999"})
	headerStyle = lipgloss.NewStyle().Bold(true)
)

// Name styles a mod or game name.
func Name(s string) string { return nameStyle.Render(s) }

// ID styles a numeric identifier.
func ID(v int64) string { return idStyle.Render(fmt.Sprintf("%d", v)) }

// Warn styles text that should alarm the reader.
func Warn(s string) string { return warnStyle.Render(s) }

// Muted styles secondary detail.
func Muted(s string) string { return mutedStyle.Render(s) }

// Header styles a section heading.
func Header(s string) string { return headerStyle.Render(s) }

// Table renders headers and rows with a normal border.
func Table(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(w, t.String())
}

// PluralizeMod says "1 mod" or "N mods".
func PluralizeMod(count int) string {
	if count == 1 {
		return "1 mod"
	}
	return fmt.Sprintf("%d mods", count)
}

// Link emits an OSC 8 terminal hyperlink when stdout is a terminal, and
// falls back to "text (url)" otherwise.
func Link(text, url string) string {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		if text == url {
			return url
		}
		return fmt.Sprintf("%s (%s)", text, url)
	}
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, text)
}

// Indent prefixes every line of s with four spaces.
func Indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "    " + line
	}
	return strings.Join(lines, "\n")
}
