// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss styling state lives. All
// helpers are semantic (Success, Error, Header, ...) rather than visual.
// When disabled, every helper returns its input unchanged with no ANSI codes.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	enabled bool

	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	headerStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
	keyStyle     lipgloss.Style
)

// Init sets up styling. It respects the NO_COLOR and STZ_NO_COLOR
// environment variables; if either is set, styling stays disabled regardless
// of enable. Call once from main before any output.
func Init(enable bool) {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("STZ_NO_COLOR") != "" {
		enabled = false
		return
	}

	enabled = enable
	if !enabled {
		return
	}

	// Force ANSI256 regardless of TTY detection so basic and extended
	// colors both work under pagers and pipes when styling is requested.
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	keyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
}

// Enabled reports whether styling is active.
func Enabled() bool {
	return enabled
}

func render(s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Success styles confirmation output.
func Success(text string) string { return render(successStyle, text) }

// Warning styles cautionary output.
func Warning(text string) string { return render(warningStyle, text) }

// Error styles failure output.
func Error(text string) string { return render(errorStyle, text) }

// Header styles section and group headings.
func Header(text string) string { return render(headerStyle, text) }

// Muted styles secondary detail.
func Muted(text string) string { return render(mutedStyle, text) }

// Key styles config keys and alias names.
func Key(text string) string { return render(keyStyle, text) }
