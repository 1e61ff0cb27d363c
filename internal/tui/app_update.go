package tui

import (
	"errors"
	"time"

	"applock/internal/protect"

	tea "github.com/charmbracelet/bubbletea"
)

// backgroundNoticeDelay is the fixed delay before the BACKGROUND
// confirmation dialog appears after password creation.
const backgroundNoticeDelay = 600 * time.Millisecond

const minibufferTTL = 3 * time.Second

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := m.height - 10
		if h < 8 {
			h = 8
		}
		w := m.width - 8
		if w < 40 {
			w = 40
		}
		m.catalogList.SetSize(w, h)
		return m, nil

	case backgroundNoticeMsg:
		if msg.seq != m.noticeSeq {
			return m, nil
		}
		// Don't steal an open modal; the minibuffer already said it.
		if m.modal == modalNone {
			m.modal = modalBackgroundNotice
		}
		return m, nil

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
		}
		return m, nil

	case tea.KeyMsg:
		// ctrl+c quits from anywhere, modal or not, and always saves UI
		// state on the way out.
		if msg.String() == "ctrl+c" {
			m.saveUIState()
			return m, tea.Quit
		}
		if m.modal != modalNone {
			return m.updateModal(msg)
		}
		return m.updateMain(msg)
	}

	return m, nil
}

func (m appModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.saveUIState()
		return m, tea.Quit

	case "t", " ":
		return m.handleTap()

	case "o":
		m.ctrl.ForceOff()
		return m.showMinibuffer("Protection turned off")

	case "p":
		m.pwSetupFlow = false
		return m.openCreatePasswordModal()

	case "a":
		return m.openCatalogModal()

	case "?":
		m.modal = modalHelp
		return m, nil

	case "left", "h":
		m.selectedSlot--
		m.clampSelection()
		return m, nil
	case "right", "l":
		m.selectedSlot++
		m.clampSelection()
		return m, nil
	case "up", "k":
		m.selectedSlot -= gridCols
		if m.selectedSlot < 0 {
			m.selectedSlot += gridCols
		}
		m.clampSelection()
		return m, nil
	case "down", "j":
		slots := len(m.ctrl.GridSlots())
		if m.selectedSlot+gridCols < slots {
			m.selectedSlot += gridCols
		}
		return m, nil

	case "enter":
		slots := m.ctrl.GridSlots()
		m.clampSelection()
		sl := slots[m.selectedSlot]
		if sl.Empty {
			return m.openCatalogModal()
		}
		return m.openProtectedApp(sl.App.PackageName)

	case "x", "backspace", "delete":
		slots := m.ctrl.GridSlots()
		m.clampSelection()
		sl := slots[m.selectedSlot]
		if sl.Empty {
			return m, nil
		}
		m.modal = modalConfirmRemove
		m.pendingRemovePkg = sl.App.PackageName
		m.confirmFocus = confirmFocusConfirm
		return m, nil
	}

	return m, nil
}

func (m appModel) handleTap() (tea.Model, tea.Cmd) {
	switch m.ctrl.Tap() {
	case protect.TapSetup:
		return m.showMinibuffer("Setup mode: tap twice more to fully activate")
	case protect.TapNeedPassword:
		m.pwSetupFlow = true
		return m.openCreatePasswordModal()
	case protect.TapBackground:
		return m.showMinibuffer("Background protection enabled")
	case protect.TapActive:
		return m.showMinibuffer("Protection active: protected apps are locked")
	default:
		return m, nil
	}
}

func (m appModel) openProtectedApp(pkg string) (tea.Model, tea.Cmd) {
	res := m.ctrl.OpenApp(pkg)
	if !res.Member {
		return m, nil
	}
	if res.ChallengeRequired {
		m.modal = modalUnlock
		m.modalErr = ""
		m.pendingOpenPkg = pkg
		m.unlockInput.SetValue("")
		m.unlockInput.Focus()
		return m, nil
	}
	m.modal = modalInfo
	m.infoTitle = "Open app"
	m.infoBody = res.App.Icon + " " + res.App.Name + " would open normally (protection is not active)."
	return m, nil
}

func (m appModel) openCreatePasswordModal() (tea.Model, tea.Cmd) {
	m.modal = modalCreatePassword
	m.modalErr = ""
	m.pwFocus = pwFocusPassword
	m.pwInput.SetValue("")
	m.pwConfirmInput.SetValue("")
	m.pwInput.Focus()
	m.pwConfirmInput.Blur()
	return m, nil
}

func (m appModel) openCatalogModal() (tea.Model, tea.Cmd) {
	m.refreshCatalog()
	m.modal = modalCatalog
	m.modalErr = ""
	return m, nil
}

func (m appModel) showMinibuffer(text string) (tea.Model, tea.Cmd) {
	m.minibufferText = text
	m.minibufferSeq++
	seq := m.minibufferSeq
	return m, tea.Tick(minibufferTTL, func(time.Time) tea.Msg { return minibufferClearMsg{seq: seq} })
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalCreatePassword:
		return m.updateCreatePasswordModal(msg)
	case modalUnlock:
		return m.updateUnlockModal(msg)
	case modalUnlockChoice:
		return m.updateUnlockChoiceModal(msg)
	case modalCatalog:
		return m.updateCatalogModal(msg)
	case modalConfirmRemove:
		return m.updateConfirmRemoveModal(msg)
	case modalBackgroundNotice, modalInfo, modalHelp:
		switch msg.String() {
		case "enter", "esc", "q":
			m.closeModal()
		}
		return m, nil
	}
	return m, nil
}

func (m appModel) updateCreatePasswordModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Abandoning setup keeps the click count where it is: the next tap
		// can still force ACTIVE without passing through BACKGROUND.
		if m.pwSetupFlow {
			m.ctrl.CancelPasswordSetup()
		}
		m.closeModal()
		return m, nil

	case "tab", "shift+tab", "up", "down":
		dir := 1
		if msg.String() == "shift+tab" || msg.String() == "up" {
			dir = -1
		}
		m.pwFocus = pwModalFocus((int(m.pwFocus) + dir + 4) % 4)
		m.pwInput.Blur()
		m.pwConfirmInput.Blur()
		switch m.pwFocus {
		case pwFocusPassword:
			m.pwInput.Focus()
		case pwFocusConfirm:
			m.pwConfirmInput.Focus()
		}
		return m, nil

	case "enter":
		switch m.pwFocus {
		case pwFocusPassword:
			m.pwFocus = pwFocusConfirm
			m.pwInput.Blur()
			m.pwConfirmInput.Focus()
			return m, nil
		case pwFocusConfirm, pwFocusSave:
			return m.submitPassword()
		case pwFocusCancel:
			if m.pwSetupFlow {
				m.ctrl.CancelPasswordSetup()
			}
			m.closeModal()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.pwFocus {
	case pwFocusPassword:
		m.pwInput, cmd = m.pwInput.Update(msg)
	case pwFocusConfirm:
		m.pwConfirmInput, cmd = m.pwConfirmInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) submitPassword() (tea.Model, tea.Cmd) {
	setupFlow := m.pwSetupFlow
	err := m.ctrl.SetPassword(m.pwInput.Value(), m.pwConfirmInput.Value())
	if err != nil {
		var ve protect.ValidationError
		if errors.As(err, &ve) {
			// Rejections keep the modal (and its inputs) so the user can
			// correct and retry.
			m.modalErr = ve.Message
			return m, nil
		}
		m.modalErr = err.Error()
		return m, nil
	}

	m.closeModal()
	if setupFlow {
		// The transition to BACKGROUND happened; confirm it with a dialog
		// after a fixed delay.
		m.noticeSeq++
		seq := m.noticeSeq
		mm, cmd := m.showMinibuffer("Password set")
		return mm, tea.Batch(cmd,
			tea.Tick(backgroundNoticeDelay, func(time.Time) tea.Msg { return backgroundNoticeMsg{seq: seq} }))
	}
	return m.showMinibuffer("Password set")
}

func (m appModel) updateUnlockModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancel: no state change.
		m.closeModal()
		return m, nil

	case "enter":
		if err := m.ctrl.VerifyPassword(m.unlockInput.Value()); err != nil {
			// Mismatch: report and keep the field as typed (no clearing).
			m.modalErr = "Incorrect password"
			return m, nil
		}
		m.modal = modalUnlockChoice
		m.modalErr = ""
		m.choiceFocus = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.unlockInput, cmd = m.unlockInput.Update(msg)
	return m, cmd
}

func (m appModel) updateUnlockChoiceModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil

	case "tab", "right", "l":
		m.choiceFocus = (m.choiceFocus + 1) % 3
		return m, nil
	case "shift+tab", "left", "h":
		m.choiceFocus = (m.choiceFocus + 2) % 3
		return m, nil

	case "enter":
		choice := m.choiceFocus
		app := m.pendingOpenPkg
		m.closeModal()
		switch choice {
		case 0: // turn off
			m.ctrl.ForceOff()
			return m.showMinibuffer("Protection turned off")
		case 1: // temporary allow: acknowledged, nothing enforced
			m.ctrl.AllowTemporarily()
			m.modal = modalInfo
			m.infoTitle = "Temporary access"
			if res := m.ctrl.OpenApp(app); res.Member {
				m.infoBody = res.App.Icon + " " + res.App.Name + " is temporarily allowed. Protection stays active."
			} else {
				m.infoBody = "Temporarily allowed. Protection stays active."
			}
			return m, nil
		default: // cancel
			return m, nil
		}
	}
	return m, nil
}

func (m appModel) updateConfirmRemoveModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeModal()
		return m, nil

	case "tab", "shift+tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil

	case "enter":
		pkg := m.pendingRemovePkg
		confirmed := m.confirmFocus == confirmFocusConfirm
		m.closeModal()
		if !confirmed {
			return m, nil
		}
		name := pkg
		if res := m.ctrl.OpenApp(pkg); res.Member {
			name = res.App.Name
		}
		m.ctrl.RemoveApp(pkg)
		m.clampSelection()
		return m.showMinibuffer("Removed " + name)
	}
	return m, nil
}

func (m appModel) updateCatalogModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While filtering, the list owns every key.
	if !m.catalogList.SettingFilter() {
		switch msg.String() {
		case "esc":
			m.closeModal()
			return m, nil

		case "enter":
			it, ok := m.catalogList.SelectedItem().(catalogItem)
			if !ok {
				return m, nil
			}
			if err := m.ctrl.AddApp(it.app.Protected()); err != nil {
				var ve protect.ValidationError
				if errors.As(err, &ve) {
					m.modalErr = ve.Message
					return m, nil
				}
				m.modalErr = err.Error()
				return m, nil
			}
			m.closeModal()
			return m.showMinibuffer("Protected " + it.app.Name)
		}
	}

	var cmd tea.Cmd
	m.catalogList, cmd = m.catalogList.Update(msg)
	return m, cmd
}
