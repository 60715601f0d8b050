// Package ui renders the short human-facing summaries the CLI prints to
// stderr. Machine-readable output never goes through this package.
package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Severity and status colors.
var (
	Primary  = lipgloss.Color("#7D56F4")
	Critical = lipgloss.Color("#FF0000")
	High     = lipgloss.Color("#FF6B6B")
	Medium   = lipgloss.Color("#FFD93D")
	Low      = lipgloss.Color("#4D96FF")
	Info     = lipgloss.Color("#9CA3AF")

	Success = lipgloss.Color("#00D26A")
	Warning = lipgloss.Color("#FFB800")
	Error   = lipgloss.Color("#FF3838")
	Muted   = lipgloss.Color("#6B7280")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(Primary).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Width(16)

	ValueStyle = lipgloss.NewStyle().
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().Foreground(Success).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error).Bold(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
)

var (
	noColorMode bool
	uiMu        sync.RWMutex
)

// SetNoColor disables colored output
func SetNoColor(noColor bool) {
	uiMu.Lock()
	defer uiMu.Unlock()
	noColorMode = noColor
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsNoColor returns whether color is disabled
func IsNoColor() bool {
	uiMu.RLock()
	defer uiMu.RUnlock()
	return noColorMode
}

// SeverityStyle returns the style for a severity or risk level name.
func SeverityStyle(level string) lipgloss.Style {
	var c lipgloss.Color
	switch strings.ToLower(level) {
	case "critical":
		c = Critical
	case "high":
		c = High
	case "medium":
		c = Medium
	case "low":
		c = Low
	default:
		c = Info
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}
