package tui

import (
	"github.com/charmbracelet/lipgloss"

	"panel-cli/internal/panel"
)

func toastIcon(kind panel.ToastKind) string {
	switch kind {
	case panel.ToastSuccess:
		return "✓"
	case panel.ToastError:
		return "✗"
	default:
		return "i"
	}
}

func toastStyle(kind panel.ToastKind) lipgloss.Style {
	switch kind {
	case panel.ToastSuccess:
		return lipgloss.NewStyle().Foreground(colorSuccess)
	case panel.ToastError:
		return lipgloss.NewStyle().Foreground(colorError)
	default:
		return lipgloss.NewStyle().Foreground(colorInfo)
	}
}

// renderToastRail renders live toasts oldest-first, one per line. "x"
// dismisses the oldest early; the rest expire on their own.
func renderToastRail(toasts *panel.Toasts) string {
	items := toasts.Items()
	if len(items) == 0 {
		return ""
	}
	out := ""
	for i, t := range items {
		if i > 0 {
			out += "\n"
		}
		out += toastStyle(t.Kind).Render(toastIcon(t.Kind) + " " + t.Message)
		if i == 0 {
			out += styleMuted().Render("  (x: dismiss)")
		}
	}
	return out
}
