package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func modalWidth(termW int) int {
	w := termW - 8
	if w > 56 {
		w = 56
	}
	if w < 30 {
		w = 30
	}
	return w
}

func modalBodyWidth(termW int) int {
	return modalWidth(termW) - 4
}

// renderModalBox frames modal content with a title bar. Borders are kept to
// the box itself: nesting bordered components inside a modal with a
// background color shows artifacts on some terminals.
func renderModalBox(termW int, title string, content string) string {
	w := modalWidth(termW)

	titleBar := lipgloss.NewStyle().
		Bold(true).
		Width(w - 2).
		Padding(0, 1).
		Background(colorControlBg).
		Foreground(colorSurfaceFg).
		Render(title)

	body := lipgloss.NewStyle().
		Width(w - 2).
		Padding(0, 1).
		Render(content)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Render(titleBar + "\n" + body)
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	}
	if focus == confirmFocusCancel {
		cancel = btnActive.Render(cancelLabel)
	}

	sep := lipgloss.NewStyle().Render(" ")
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, sep, cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

// renderChoiceModal renders a modal with a row of labeled buttons; focus is
// the index of the highlighted one.
func renderChoiceModal(width int, title string, body string, labels []string, focus int) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorSurfaceFg).
		Background(colorControlBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	parts := make([]string, 0, len(labels)*2)
	for i, l := range labels {
		st := btnBase
		if i == focus {
			st = btnActive
		}
		if i > 0 {
			parts = append(parts, " ")
		}
		parts = append(parts, st.Render(l))
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab/←/→: focus   enter: select   esc: cancel")

	content := strings.Join([]string{
		body,
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

func renderInputLine(bodyW int, inputView string) string {
	if bodyW < 10 {
		bodyW = 10
	}

	// Text inputs should always render as a single visual line inside
	// modals; stray newlines trigger wrapping that looks like "newline
	// insertion" while typing.
	inputView = strings.ReplaceAll(inputView, "\n", " ")
	inputView = strings.ReplaceAll(inputView, "\r", " ")

	line := lipgloss.PlaceHorizontal(
		bodyW,
		lipgloss.Left,
		" "+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > bodyW {
		// Never exceed the modal body width; terminate ANSI styling to
		// prevent bleed.
		line = xansi.Cut(line, 0, bodyW) + "\x1b[0m"
	}
	return line
}
