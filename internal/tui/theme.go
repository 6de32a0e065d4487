package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	colorAccent     lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "27", Dark: "39"}
	colorMuted      lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "243", Dark: "246"}
	colorSelectedBg lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "254", Dark: "236"}
	colorSuccess    lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "28", Dark: "42"}
	colorError      lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "160", Dark: "203"}
	colorInfo       lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "31", Dark: "45"}
	colorControlBg  lipgloss.TerminalColor = lipgloss.AdaptiveColor{Light: "252", Dark: "238"}
)

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
}

func styleMuted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorMuted)
}

func styleSelectedRow() lipgloss.Style {
	return lipgloss.NewStyle().Background(colorSelectedBg)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the TUI.
//
// Note: termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which suits
// non-interactive output but can accidentally disable colors in a TUI. Here we
// honor NO_COLOR and the "mono" profile, and otherwise follow the terminal's
// capabilities.
func applyColorProfilePreference(profile string) {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" || profile == "mono" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	p := termenv.ColorProfile()

	// Trust TERM/COLORTERM when they indicate stronger support than the
	// detector reports (some terminals under-report on probing).
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if p != termenv.Ascii {
			p = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") {
		if p == termenv.Ascii || p == termenv.ANSI {
			p = termenv.ANSI256
		}
	}

	lipgloss.SetColorProfile(p)
}
