package model

type ProtectionState string

const (
	StateOff        ProtectionState = "OFF"
	StateBackground ProtectionState = "BACKGROUND"
	StateActive     ProtectionState = "ACTIVE"
)

func (s ProtectionState) Valid() bool {
	switch s {
	case StateOff, StateBackground, StateActive:
		return true
	}
	return false
}

type Theme string

const (
	ThemePurple Theme = "purple"
	ThemeRed    Theme = "red"
)

// ThemeFor couples the visual theme to the protection state: the red theme
// only appears once protection is fully active.
func ThemeFor(s ProtectionState) Theme {
	if s == StateActive {
		return ThemeRed
	}
	return ThemePurple
}

// ProtectedApp is a catalog entry the user selected for simulated blocking.
// PackageName is the unique key within a profile.
type ProtectedApp struct {
	Name        string `json:"name"`
	PackageName string `json:"package_name"`
	Icon        string `json:"icon"`
}

// CatalogApp is a candidate app from the static catalog. Same shape as
// ProtectedApp, kept as a separate type so the read-only catalog never leaks
// into the mutable profile by accident.
type CatalogApp struct {
	Name        string `json:"name"`
	PackageName string `json:"package_name"`
	Icon        string `json:"icon"`
}

func (a CatalogApp) Protected() ProtectedApp {
	return ProtectedApp{Name: a.Name, PackageName: a.PackageName, Icon: a.Icon}
}

// Profile is the single persisted record. The whole blob is rewritten on
// every mutation; last writer wins, no versioning, no migration.
//
// Password is stored and displayed in plain text. That is deliberate
// fidelity to the mock (the app shows the password back to the user); this
// is not a credential store.
type Profile struct {
	ID              string          `json:"id,omitempty"`
	ProtectionState ProtectionState `json:"protectionState"`
	Theme           Theme           `json:"theme"`
	ProtectedApps   []ProtectedApp  `json:"protectedApps"`
	Password        string          `json:"password"`
}

// Normalize fills defaults for absent fields so a partially-written or
// legacy blob still loads: OFF / purple / empty list / empty password.
func (p *Profile) Normalize() {
	if !p.ProtectionState.Valid() {
		p.ProtectionState = StateOff
	}
	if p.Theme != ThemePurple && p.Theme != ThemeRed {
		p.Theme = ThemeFor(p.ProtectionState)
	}
	if p.ProtectedApps == nil {
		p.ProtectedApps = []ProtectedApp{}
	}
}

func (p *Profile) HasPassword() bool {
	return p.Password != ""
}
