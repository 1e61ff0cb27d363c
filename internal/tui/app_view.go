package tui

import (
	"fmt"
	"strings"

	"applock/internal/model"
	"applock/internal/protect"

	"github.com/charmbracelet/lipgloss"
)

const (
	gridCols  = 5
	cellWidth = 13
)

func (m appModel) View() string {
	header := m.viewHeader()
	body := m.viewBody()
	footer := styleMuted().Render("t: tap shield   enter: open/add   a: add app   x: remove   p: password   o: off   ?: help   q: quit")

	mini := ""
	if m.minibufferText != "" {
		mini = lipgloss.NewStyle().Bold(true).Foreground(accentFor(m.ctrl.Theme())).Render(m.minibufferText)
	}

	return strings.Join([]string{header, body, mini, footer}, "\n\n")
}

func (m appModel) viewHeader() string {
	accent := accentFor(m.ctrl.Theme())

	title := lipgloss.NewStyle().Bold(true).Render("App Protection")
	badge := lipgloss.NewStyle().
		Padding(0, 1).
		Bold(true).
		Foreground(ac("255", "235")).
		Background(accent).
		Render(string(m.ctrl.State()))

	// Tap progress while the counter is live.
	dots := ""
	if m.ctrl.ClickCount() > 0 {
		filled := m.ctrl.ClickCount()
		if filled > 3 {
			filled = 3
		}
		dots = styleMuted().Render("  taps " + strings.Repeat("●", filled) + strings.Repeat("○", 3-filled))
	}

	return title + "  " + badge + dots
}

func (m appModel) viewBody() string {
	if m.modal != modalNone {
		return m.viewModal()
	}
	return m.viewShield() + "\n\n" + m.viewGrid()
}

func (m appModel) viewShield() string {
	accent := accentFor(m.ctrl.Theme())

	var hint string
	switch m.ctrl.State() {
	case model.StateBackground:
		hint = "Background protection armed. Tap once more to fully activate."
	case model.StateActive:
		hint = "Protection active. Opening a protected app requires the password."
	default:
		switch m.ctrl.ClickCount() {
		case 0:
			hint = "Tap the shield to begin setup."
		case 1:
			hint = "Setup mode. Tap again to arm background protection."
		default:
			hint = "Tap once more to fully activate."
		}
	}

	shield := lipgloss.NewStyle().
		Bold(true).
		Foreground(accent).
		Render("🛡  " + string(m.ctrl.State()))
	return shield + "\n" + styleMuted().Render(hint)
}

func (m appModel) viewGrid() string {
	slots := m.ctrl.GridSlots()

	cellBase := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorMuted).
		Width(cellWidth).
		Align(lipgloss.Center)
	cellSelected := cellBase.
		BorderForeground(accentFor(m.ctrl.Theme())).
		Bold(true)

	var rows []string
	for start := 0; start < len(slots); start += gridCols {
		end := start + gridCols
		if end > len(slots) {
			end = len(slots)
		}
		var cells []string
		for i := start; i < end; i++ {
			sl := slots[i]
			label := "+ add"
			if !sl.Empty {
				label = sl.App.Icon + " " + truncateName(sl.App.Name, cellWidth-4)
			}
			st := cellBase
			if i == m.selectedSlot {
				st = cellSelected
			}
			if sl.Empty {
				cells = append(cells, st.Render(styleMuted().Render(label)))
			} else {
				cells = append(cells, st.Render(label))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	count := fmt.Sprintf("%d/%d protected", len(m.ctrl.Apps()), protect.MaxProtectedApps)
	return strings.Join(rows, "\n") + "\n" + styleMuted().Render(count)
}

func truncateName(s string, max int) string {
	if max < 2 {
		max = 2
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func (m appModel) viewModal() string {
	var box string
	switch m.modal {
	case modalCreatePassword:
		box = m.viewCreatePasswordModal()
	case modalBackgroundNotice:
		box = renderModalBox(m.width, "Protection enabled",
			"Background protection is now enabled.\nTap the shield once more to fully activate.\n\n"+
				styleMuted().Render("enter: ok"))
	case modalUnlock:
		box = m.viewUnlockModal()
	case modalUnlockChoice:
		app := ""
		if res := m.ctrl.OpenApp(m.pendingOpenPkg); res.Member {
			app = res.App.Icon + " " + res.App.Name
		}
		box = renderChoiceModal(m.width, "Unlocked",
			"Password correct. What should happen with "+app+"?",
			[]string{"Turn off", "Allow temporarily", "Cancel"}, m.choiceFocus)
	case modalCatalog:
		box = m.viewCatalogModal()
	case modalConfirmRemove:
		name := m.pendingRemovePkg
		if res := m.ctrl.OpenApp(m.pendingRemovePkg); res.Member {
			name = res.App.Icon + " " + res.App.Name
		}
		box = renderConfirmModal(m.width, "Remove app",
			"Stop protecting "+name+"?", "Remove", "Cancel", m.confirmFocus)
	case modalInfo:
		box = renderModalBox(m.width, m.infoTitle, m.infoBody+"\n\n"+styleMuted().Render("enter: ok"))
	case modalHelp:
		box = m.viewHelpModal()
	}

	w := m.width
	if w <= 0 {
		return box
	}
	h := m.height - 8
	if h < lipgloss.Height(box) {
		h = lipgloss.Height(box)
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box)
}

func (m appModel) viewCreatePasswordModal() string {
	bodyW := modalBodyWidth(m.width)

	label := func(s string, focused bool) string {
		st := styleMuted()
		if focused {
			st = lipgloss.NewStyle().Bold(true).Foreground(accentFor(m.ctrl.Theme()))
		}
		return st.Render(s)
	}

	btn := func(s string, focused bool) string {
		st := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
		if focused {
			st = st.Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
		}
		return st.Render(s)
	}

	parts := []string{
		label("Password", m.pwFocus == pwFocusPassword),
		renderInputLine(bodyW, m.pwInput.View()),
		"",
		label("Confirm", m.pwFocus == pwFocusConfirm),
		renderInputLine(bodyW, m.pwConfirmInput.View()),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top,
			btn("Save", m.pwFocus == pwFocusSave), " ", btn("Cancel", m.pwFocus == pwFocusCancel)),
	}
	if m.modalErr != "" {
		parts = append(parts, "", styleError().Width(bodyW).Render(m.modalErr))
	}
	parts = append(parts, "", styleMuted().Width(bodyW).Render("tab: focus   enter: next/save   esc: cancel"))

	title := "Create password"
	if m.ctrl.HasPassword() && !m.pwSetupFlow {
		title = "Change password"
	}
	return renderModalBox(m.width, title, strings.Join(parts, "\n"))
}

func (m appModel) viewUnlockModal() string {
	bodyW := modalBodyWidth(m.width)

	app := ""
	if res := m.ctrl.OpenApp(m.pendingOpenPkg); res.Member {
		app = res.App.Icon + " " + res.App.Name
	}

	parts := []string{
		"Protection is active. Enter the password to open " + app + ".",
		"",
		renderInputLine(bodyW, m.unlockInput.View()),
	}
	if m.modalErr != "" {
		parts = append(parts, "", styleError().Width(bodyW).Render(m.modalErr))
	}
	parts = append(parts, "", styleMuted().Width(bodyW).Render("enter: unlock   esc: cancel"))

	return renderModalBox(m.width, "Locked", strings.Join(parts, "\n"))
}

func (m appModel) viewCatalogModal() string {
	parts := []string{m.catalogList.View()}
	if m.modalErr != "" {
		parts = append(parts, styleError().Render(m.modalErr))
	}
	parts = append(parts, styleMuted().Render("/: filter   enter: protect   esc: close"))
	return renderModalBox(m.width, "Add protected app", strings.Join(parts, "\n"))
}
