package tui

type modalKind int

const (
	modalNone modalKind = iota
	// modalCreatePassword collects password + confirmation (tap 2 setup, or
	// an explicit password change).
	modalCreatePassword
	// modalBackgroundNotice confirms the OFF -> BACKGROUND transition; it is
	// shown a fixed delay after password creation completes.
	modalBackgroundNotice
	// modalUnlock is the password challenge for opening a protected app in
	// ACTIVE state.
	modalUnlock
	// modalUnlockChoice offers turn off / allow temporarily / cancel after a
	// correct unlock answer.
	modalUnlockChoice
	// modalCatalog picks a candidate app to protect.
	modalCatalog
	// modalConfirmRemove confirms dropping an app from the protected set.
	modalConfirmRemove
	// modalInfo is a generic single-button message dialog (simulated opens,
	// temporary-allow acknowledgement).
	modalInfo
	modalHelp
)

type pwModalFocus int

const (
	pwFocusPassword pwModalFocus = iota
	pwFocusConfirm
	pwFocusSave
	pwFocusCancel
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// backgroundNoticeMsg fires the delayed BACKGROUND confirmation dialog.
type backgroundNoticeMsg struct{ seq int }

// minibufferClearMsg clears the transient status line.
type minibufferClearMsg struct{ seq int }
