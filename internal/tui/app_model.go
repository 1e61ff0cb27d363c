package tui

import (
	"applock/internal/catalog"
	"applock/internal/model"
	"applock/internal/protect"
	"applock/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
)

type appModel struct {
	ctrl  *protect.Controller
	store store.Store

	width  int
	height int

	// selectedSlot is the grid cursor (index into GridSlots).
	selectedSlot int

	catalogList list.Model

	modal modalKind
	// modalErr is the user-facing rejection shown inside the open modal.
	// It never clears the inputs: the user corrects and retries.
	modalErr string

	pwInput        textinput.Model
	pwConfirmInput textinput.Model
	pwFocus        pwModalFocus
	// pwSetupFlow marks the create-password modal opened by the second tap.
	// Cancelling it abandons the pending transition but keeps the count.
	pwSetupFlow bool

	unlockInput textinput.Model
	// pendingOpenPkg is the protected app awaiting the unlock challenge.
	pendingOpenPkg string
	choiceFocus    int

	// pendingRemovePkg is the app awaiting removal confirmation.
	pendingRemovePkg string
	confirmFocus     confirmModalFocus

	infoTitle string
	infoBody  string

	noticeSeq int

	minibufferText string
	minibufferSeq  int
}

type catalogItem struct {
	app       model.CatalogApp
	protected bool
}

func (i catalogItem) Title() string {
	return i.app.Icon + " " + i.app.Name
}

func (i catalogItem) Description() string {
	if i.protected {
		return i.app.PackageName + " (already protected)"
	}
	return i.app.PackageName
}

func (i catalogItem) FilterValue() string {
	return i.app.Name + " " + i.app.PackageName
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("app", "apps")
	// The list lives inside a modal: quitting is the app's decision, not the
	// list's. ESC closes the modal and q must never reach tea.Quit here,
	// since that path would skip saving UI state.
	// DisableQuitKeybindings is required: the list re-enables KeyMap.Quit on
	// every update unless its internal disable flag is set.
	l.DisableQuitKeybindings()
	return l
}

func newAppModel(ctrl *protect.Controller, s store.Store) appModel {
	m := appModel{
		ctrl:  ctrl,
		store: s,
	}

	m.catalogList = newList("Catalog", nil)
	m.refreshCatalog()

	m.pwInput = textinput.New()
	m.pwInput.Placeholder = "Password (1-8 chars)"
	m.pwInput.CharLimit = 16
	m.pwInput.Width = 24

	m.pwConfirmInput = textinput.New()
	m.pwConfirmInput.Placeholder = "Confirm password"
	m.pwConfirmInput.CharLimit = 16
	m.pwConfirmInput.Width = 24

	m.unlockInput = textinput.New()
	m.unlockInput.Placeholder = "Password"
	m.unlockInput.CharLimit = 16
	m.unlockInput.Width = 24

	// Best-effort: restore the grid cursor from the last run.
	if st, err := s.LoadUIState(); err == nil {
		if st.SelectedSlot >= 0 && st.SelectedSlot < len(ctrl.GridSlots()) {
			m.selectedSlot = st.SelectedSlot
		}
		if st.ShowHelp {
			m.modal = modalHelp
		}
	}

	return m
}

func (m *appModel) refreshCatalog() {
	var items []list.Item
	for _, a := range catalog.Apps() {
		items = append(items, catalogItem{app: a, protected: m.ctrl.IsProtected(a.PackageName)})
	}
	m.catalogList.SetItems(items)
}

func (m *appModel) saveUIState() {
	_ = m.store.SaveUIState(&store.UIState{
		SelectedSlot: m.selectedSlot,
		ShowHelp:     m.modal == modalHelp,
	})
}

func (m *appModel) clampSelection() {
	n := len(m.ctrl.GridSlots())
	if m.selectedSlot >= n {
		m.selectedSlot = n - 1
	}
	if m.selectedSlot < 0 {
		m.selectedSlot = 0
	}
}

func (m *appModel) closeModal() {
	m.modal = modalNone
	m.modalErr = ""
	m.pendingOpenPkg = ""
	m.choiceFocus = 0
	m.pendingRemovePkg = ""
	m.confirmFocus = confirmFocusConfirm
	m.pwFocus = pwFocusPassword
	m.pwSetupFlow = false

	m.pwInput.SetValue("")
	m.pwInput.Blur()
	m.pwConfirmInput.SetValue("")
	m.pwConfirmInput.Blur()
	m.unlockInput.SetValue("")
	m.unlockInput.Blur()
}
