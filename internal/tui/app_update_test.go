package tui

import (
	"strings"
	"testing"

	"applock/internal/catalog"
	"applock/internal/logging"
	"applock/internal/model"
	"applock/internal/protect"
	"applock/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) appModel {
	t.Helper()
	s := store.Store{Dir: t.TempDir()}
	c, err := protect.New(s, logging.Nop())
	if err != nil {
		t.Fatalf("protect.New: %v", err)
	}
	m := newAppModel(c, s)
	m.width = 100
	m.height = 40
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func typeString(t *testing.T, m appModel, s string) appModel {
	t.Helper()
	for _, r := range s {
		mAny, _ := m.Update(keyRune(r))
		m = mAny.(appModel)
	}
	return m
}

func TestSecondTap_OpensCreatePasswordModal_EscKeepsCount(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	mAny, _ := m.Update(keyRune('t'))
	m = mAny.(appModel)
	if m.ctrl.ClickCount() != 1 {
		t.Fatalf("expected count 1 after first tap; got %d", m.ctrl.ClickCount())
	}

	mAny, _ = m.Update(keyRune('t'))
	m = mAny.(appModel)
	if m.modal != modalCreatePassword {
		t.Fatalf("expected create-password modal on second tap; got %v", m.modal)
	}
	if !m.pwSetupFlow {
		t.Fatalf("expected setup flow to be marked")
	}

	// Cancelling keeps the counter: the third tap may still force ACTIVE.
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = mAny.(appModel)
	if m.modal != modalNone {
		t.Fatalf("expected modal closed after esc; got %v", m.modal)
	}
	if m.ctrl.ClickCount() != 2 {
		t.Fatalf("expected count to stay at 2 after cancel; got %d", m.ctrl.ClickCount())
	}
	if m.ctrl.State() != model.StateOff {
		t.Fatalf("expected OFF after cancelled setup; got %s", m.ctrl.State())
	}

	mAny, _ = m.Update(keyRune('t'))
	m = mAny.(appModel)
	if m.ctrl.State() != model.StateActive {
		t.Fatalf("expected third tap to force ACTIVE; got %s", m.ctrl.State())
	}
}

func TestCreatePasswordModal_MismatchKeepsInputs(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	mAny, _ := m.openCreatePasswordModal()
	m = mAny.(appModel)

	m = typeString(t, m, "1234")
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // advance to confirm
	m = mAny.(appModel)
	m = typeString(t, m, "9999")
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter}) // submit
	m = mAny.(appModel)

	if m.modal != modalCreatePassword {
		t.Fatalf("rejection must keep the modal open; got %v", m.modal)
	}
	if m.modalErr != "Passwords do not match" {
		t.Fatalf("expected mismatch message; got %q", m.modalErr)
	}
	if m.pwInput.Value() != "1234" || m.pwConfirmInput.Value() != "9999" {
		t.Fatalf("rejection must not clear inputs; got %q / %q",
			m.pwInput.Value(), m.pwConfirmInput.Value())
	}
}

func TestCreatePasswordModal_SetupFlowSchedulesBackgroundNotice(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	for i := 0; i < 2; i++ {
		mAny, _ := m.Update(keyRune('t'))
		m = mAny.(appModel)
	}
	if m.modal != modalCreatePassword {
		t.Fatalf("expected create-password modal; got %v", m.modal)
	}

	m = typeString(t, m, "1234")
	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)
	m = typeString(t, m, "1234")
	mAny, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)

	if m.modal != modalNone {
		t.Fatalf("expected modal closed after save; got %v", m.modal)
	}
	if m.ctrl.State() != model.StateBackground {
		t.Fatalf("expected BACKGROUND after setup password; got %s", m.ctrl.State())
	}
	if cmd == nil {
		t.Fatalf("expected a delayed notice command")
	}

	// Deliver the delayed message by hand.
	mAny, _ = m.Update(backgroundNoticeMsg{seq: m.noticeSeq})
	m = mAny.(appModel)
	if m.modal != modalBackgroundNotice {
		t.Fatalf("expected background notice dialog; got %v", m.modal)
	}

	// Stale sequence numbers are dropped.
	m.closeModal()
	mAny, _ = m.Update(backgroundNoticeMsg{seq: m.noticeSeq - 1})
	m = mAny.(appModel)
	if m.modal != modalNone {
		t.Fatalf("stale notice must not open a dialog; got %v", m.modal)
	}
}

func TestUnlockModal_WrongPasswordKeepsTypedValue(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	if err := m.ctrl.SetPassword("1234", "1234"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := m.ctrl.SetState(model.StateActive); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	app := catalog.Apps()[0]
	if err := m.ctrl.AddApp(app.Protected()); err != nil {
		t.Fatalf("AddApp: %v", err)
	}

	mAny, _ := m.openProtectedApp(app.PackageName)
	m = mAny.(appModel)
	if m.modal != modalUnlock {
		t.Fatalf("expected unlock challenge; got %v", m.modal)
	}

	m = typeString(t, m, "0000")
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)
	if m.modalErr != "Incorrect password" {
		t.Fatalf("expected incorrect-password message; got %q", m.modalErr)
	}
	if m.unlockInput.Value() != "0000" {
		t.Fatalf("rejection must keep the typed value; got %q", m.unlockInput.Value())
	}

	// Correct it and unlock.
	m.unlockInput.SetValue("1234")
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)
	if m.modal != modalUnlockChoice {
		t.Fatalf("expected choice dialog after unlock; got %v", m.modal)
	}
}

func TestUnlockChoice_TurnOffResetsProtection(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	if err := m.ctrl.SetPassword("1234", "1234"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := m.ctrl.SetState(model.StateActive); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	m.modal = modalUnlockChoice
	m.choiceFocus = 0 // turn off

	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)
	if m.ctrl.State() != model.StateOff {
		t.Fatalf("expected OFF after turn off; got %s", m.ctrl.State())
	}
	if m.ctrl.ClickCount() != 0 {
		t.Fatalf("expected count reset; got %d", m.ctrl.ClickCount())
	}
	if m.ctrl.Theme() != model.ThemePurple {
		t.Fatalf("expected purple theme after turn off; got %s", m.ctrl.Theme())
	}
}

func TestUnlockChoice_AllowTemporarilyKeepsStateActive(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	if err := m.ctrl.SetPassword("1234", "1234"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := m.ctrl.SetState(model.StateActive); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	app := catalog.Apps()[0]
	if err := m.ctrl.AddApp(app.Protected()); err != nil {
		t.Fatalf("AddApp: %v", err)
	}
	m.modal = modalUnlockChoice
	m.pendingOpenPkg = app.PackageName
	m.choiceFocus = 1 // allow temporarily

	mAny, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)
	if m.ctrl.State() != model.StateActive {
		t.Fatalf("temporary allow must not change state; got %s", m.ctrl.State())
	}
	if m.modal != modalInfo {
		t.Fatalf("expected info dialog acknowledging the allow; got %v", m.modal)
	}
	if !strings.Contains(m.infoBody, app.Name) {
		t.Fatalf("expected info body to name the app; got %q", m.infoBody)
	}
}

func TestOpenApp_NotActiveShowsSimulatedOpen(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	app := catalog.Apps()[2]
	if err := m.ctrl.AddApp(app.Protected()); err != nil {
		t.Fatalf("AddApp: %v", err)
	}

	mAny, _ := m.openProtectedApp(app.PackageName)
	m = mAny.(appModel)
	if m.modal != modalInfo {
		t.Fatalf("expected simulated-open dialog when not ACTIVE; got %v", m.modal)
	}
}

func TestCatalogModal_EnterAddsAppAndDuplicateIsRejected(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	mAny, _ := m.Update(keyRune('a'))
	m = mAny.(appModel)
	if m.modal != modalCatalog {
		t.Fatalf("expected catalog modal; got %v", m.modal)
	}

	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)
	if m.modal != modalNone {
		t.Fatalf("expected catalog closed after add; got %v", m.modal)
	}
	if len(m.ctrl.Apps()) != 1 {
		t.Fatalf("expected one protected app; got %d", len(m.ctrl.Apps()))
	}

	// Adding the same entry again is rejected in place.
	mAny, _ = m.Update(keyRune('a'))
	m = mAny.(appModel)
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)
	if m.modal != modalCatalog {
		t.Fatalf("rejection must keep the catalog open; got %v", m.modal)
	}
	if m.modalErr != "App already protected" {
		t.Fatalf("expected duplicate message; got %q", m.modalErr)
	}
}

func TestRemoveKey_ConfirmsBeforeRemoving(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	app := catalog.Apps()[0]
	if err := m.ctrl.AddApp(app.Protected()); err != nil {
		t.Fatalf("AddApp: %v", err)
	}
	m.selectedSlot = 0

	mAny, _ := m.Update(keyRune('x'))
	m = mAny.(appModel)
	if m.modal != modalConfirmRemove {
		t.Fatalf("expected removal confirmation; got %v", m.modal)
	}

	// Esc keeps the app.
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = mAny.(appModel)
	if len(m.ctrl.Apps()) != 1 {
		t.Fatalf("cancelled removal must keep the app; got %d", len(m.ctrl.Apps()))
	}

	// Confirm removes.
	mAny, _ = m.Update(keyRune('x'))
	m = mAny.(appModel)
	mAny, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = mAny.(appModel)
	if len(m.ctrl.Apps()) != 0 {
		t.Fatalf("expected app removed; got %d", len(m.ctrl.Apps()))
	}

	// x on an empty slot is a no-op.
	mAny, _ = m.Update(keyRune('x'))
	m = mAny.(appModel)
	if m.modal != modalNone {
		t.Fatalf("expected no dialog on empty slot; got %v", m.modal)
	}
}

func TestGridNavigation_StaysInBounds(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	mAny, _ := m.Update(keyRune('h'))
	m = mAny.(appModel)
	if m.selectedSlot != 0 {
		t.Fatalf("left at origin must clamp to 0; got %d", m.selectedSlot)
	}

	for i := 0; i < 30; i++ {
		mAny, _ = m.Update(keyRune('l'))
		m = mAny.(appModel)
	}
	if want := len(m.ctrl.GridSlots()) - 1; m.selectedSlot != want {
		t.Fatalf("right must clamp to last slot %d; got %d", want, m.selectedSlot)
	}
}

func TestCatalogModal_QDoesNotQuitProgram(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	mAny, _ := m.Update(keyRune('a'))
	m = mAny.(appModel)
	if m.modal != modalCatalog {
		t.Fatalf("expected catalog modal; got %v", m.modal)
	}

	mAny, cmd := m.Update(keyRune('q'))
	m = mAny.(appModel)
	if m.modal != modalCatalog {
		t.Fatalf("q inside the catalog must not close or quit; got %v", m.modal)
	}
	if cmd != nil {
		if _, quits := cmd().(tea.QuitMsg); quits {
			t.Fatalf("q inside the catalog must not emit tea.Quit")
		}
	}
}

func TestCtrlC_QuitsFromModalAndSavesUIState(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.selectedSlot = 2
	mAny, _ := m.Update(keyRune('a'))
	m = mAny.(appModel)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, quits := cmd().(tea.QuitMsg); !quits {
		t.Fatalf("ctrl+c must quit from inside a modal")
	}

	st, err := m.store.LoadUIState()
	if err != nil {
		t.Fatalf("LoadUIState: %v", err)
	}
	if st.SelectedSlot != 2 {
		t.Fatalf("expected selected slot persisted on ctrl+c; got %d", st.SelectedSlot)
	}
}

func TestQuit_PersistsUIState(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	m.selectedSlot = 3

	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}

	st, err := m.store.LoadUIState()
	if err != nil {
		t.Fatalf("LoadUIState: %v", err)
	}
	if st.SelectedSlot != 3 {
		t.Fatalf("expected selected slot persisted; got %d", st.SelectedSlot)
	}

	m2 := newAppModel(m.ctrl, m.store)
	if m2.selectedSlot != 3 {
		t.Fatalf("expected selection restored on next run; got %d", m2.selectedSlot)
	}
}

func TestOffKey_TurnsProtectionOff(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)
	if err := m.ctrl.SetPassword("1234", "1234"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if err := m.ctrl.SetState(model.StateActive); err != nil {
		t.Fatalf("SetState: %v", err)
	}

	mAny, _ := m.Update(keyRune('o'))
	m = mAny.(appModel)
	if m.ctrl.State() != model.StateOff {
		t.Fatalf("expected OFF; got %s", m.ctrl.State())
	}
	if m.minibufferText == "" {
		t.Fatalf("expected a status message")
	}
}
