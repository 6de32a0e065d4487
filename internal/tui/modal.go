package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type confirmFocus int

const (
	confirmFocusCancel confirmFocus = iota
	confirmFocusConfirm
)

func modalBodyWidth(width int) int {
	w := width - 12
	if w > 64 {
		w = 64
	}
	if w < 30 {
		w = 30
	}
	return w
}

// renderModalBox draws a bordered, centered modal with a title bar.
func renderModalBox(width, height int, title, content string) string {
	bodyW := modalBodyWidth(width)

	titleBar := lipgloss.NewStyle().
		Bold(true).
		Background(colorControlBg).
		Width(bodyW).
		Padding(0, 1).
		Render(title)

	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(0, 1).
		Render(content)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Render(titleBar + "\n" + body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderConfirmModal renders the delete confirmation dialog.
//
// Avoid nested borders here: some terminals show background artifacts when
// bordered components sit inside a modal with a background color.
func renderConfirmModal(width, height int, title, body string, focus confirmFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Background(colorControlBg)
	btnActive := btnBase.
		Background(colorError).
		Bold(true)

	del := btnBase.Render("Delete")
	cancel := btnBase.Render("Cancel")
	if focus == confirmFocusConfirm {
		del = btnActive.Render("Delete")
	} else {
		cancel = btnActive.Background(colorAccent).Render("Cancel")
	}

	controls := lipgloss.JoinHorizontal(lipgloss.Top, cancel, " ", del)
	help := styleMuted().Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, height, title, content)
}
