package protect

import (
	"context"

	"applock/internal/model"
	"applock/internal/store"

	"github.com/rs/zerolog"
)

const (
	// MaxPasswordLen bounds the numeric password.
	MaxPasswordLen = 8
	// MaxProtectedApps caps the protected set.
	MaxProtectedApps = 20
	// MinGridSlots is how many grid slots the display model always shows;
	// slots past the live set render as add-affordance placeholders.
	MinGridSlots = 10
)

// TapOutcome describes what a single tap on the shield did.
type TapOutcome int

const (
	// TapNoop: taps past count 3 do nothing.
	TapNoop TapOutcome = iota
	// TapSetup: first tap, setup mode, no transition.
	TapSetup
	// TapNeedPassword: second tap with no password set. The count has
	// already advanced; the transition to BACKGROUND waits for a successful
	// password creation.
	TapNeedPassword
	// TapBackground: transitioned OFF -> BACKGROUND.
	TapBackground
	// TapActive: transitioned to ACTIVE.
	TapActive
)

// Controller owns the in-memory profile and the tap counter, and is the only
// mutator. Views read snapshots and submit intents; they never write fields
// directly.
//
// Every successful mutation rewrites the persisted record. Storage failures
// are logged and the in-memory change stands, so memory and disk can diverge
// after one — the app stays interactive regardless.
//
// Not safe for concurrent use: the UI event loop dispatches one handler at a
// time, which is the only mutator.
type Controller struct {
	store store.Store
	log   zerolog.Logger

	profile    *model.Profile
	clickCount int

	// pendingSetup marks a second tap that is waiting on password creation
	// before the OFF -> BACKGROUND transition may complete.
	pendingSetup bool
}

// New loads the persisted record once and wraps it in a controller.
func New(s store.Store, log zerolog.Logger) (*Controller, error) {
	p, err := s.Load(context.Background())
	if err != nil {
		return nil, err
	}
	return &Controller{store: s, log: log, profile: p, clickCount: countFor(p.ProtectionState)}, nil
}

// countFor reconstructs the click count implied by a protection state. The
// count itself is not part of the persisted record, but it must stay
// consistent with the state: a controller reloaded while ACTIVE starts at 3
// (further taps are no-ops), and BACKGROUND starts at 2 (one tap to fully
// activate). Without this, two taps after a restart would silently downgrade
// ACTIVE to BACKGROUND with no password challenge.
func countFor(s model.ProtectionState) int {
	switch s {
	case model.StateBackground:
		return 2
	case model.StateActive:
		return 3
	default:
		return 0
	}
}

func (c *Controller) State() model.ProtectionState { return c.profile.ProtectionState }
func (c *Controller) Theme() model.Theme           { return c.profile.Theme }
func (c *Controller) ClickCount() int              { return c.clickCount }
func (c *Controller) HasPassword() bool            { return c.profile.HasPassword() }

// Password returns the stored password in clear text. The mock intentionally
// displays it back to the user.
func (c *Controller) Password() string { return c.profile.Password }

// Profile returns a snapshot copy for rendering and CLI output.
func (c *Controller) Profile() model.Profile {
	p := *c.profile
	p.ProtectedApps = append([]model.ProtectedApp{}, c.profile.ProtectedApps...)
	return p
}

// Tap advances the click counter and applies the transition table:
//
//	count 1          setup mode, no change
//	count 2, no pw   wait for password creation, then OFF -> BACKGROUND
//	count 2, pw set  OFF -> BACKGROUND
//	count 3          ACTIVE, unconditionally
//	count > 3        no-op
//
// The count advances before the password check, so a cancelled creation on
// tap 2 leaves the count at 2: the next tap reaches 3 and forces ACTIVE
// without ever passing through BACKGROUND. Deliberate.
func (c *Controller) Tap() TapOutcome {
	if c.clickCount >= 3 {
		return TapNoop
	}
	c.clickCount++

	switch c.clickCount {
	case 1:
		return TapSetup
	case 2:
		if !c.profile.HasPassword() {
			c.pendingSetup = true
			return TapNeedPassword
		}
		c.setState(model.StateBackground)
		c.persist()
		return TapBackground
	default:
		c.pendingSetup = false
		c.setState(model.StateActive)
		c.persist()
		return TapActive
	}
}

// SetPassword validates and stores the password. Each rejection carries a
// distinct user-facing message and mutates nothing. On success, a pending
// second-tap transition completes to BACKGROUND.
func (c *Controller) SetPassword(password, confirm string) error {
	if password == "" {
		return errValidation("Password cannot be empty")
	}
	if len([]rune(password)) > MaxPasswordLen {
		return errValidation("Password must be 8 characters or less")
	}
	if password != confirm {
		return errValidation("Passwords do not match")
	}

	c.profile.Password = password
	if c.pendingSetup && c.profile.ProtectionState == model.StateOff && c.clickCount == 2 {
		c.setState(model.StateBackground)
	}
	c.pendingSetup = false
	c.persist()
	return nil
}

// CancelPasswordSetup abandons password creation on the second tap. The
// click count deliberately stays where it is (see Tap).
func (c *Controller) CancelPasswordSetup() {
	c.pendingSetup = false
}

// PendingSetup reports whether a second-tap transition is waiting on
// password creation.
func (c *Controller) PendingSetup() bool { return c.pendingSetup }

// VerifyPassword checks a challenge answer. Mismatch returns AuthError and
// changes nothing; the caller may retry.
func (c *Controller) VerifyPassword(password string) error {
	if !c.profile.HasPassword() || password != c.profile.Password {
		return AuthError{}
	}
	return nil
}

// ForceOff turns protection fully off from any state: OFF, count 0, purple.
func (c *Controller) ForceOff() {
	c.clickCount = 0
	c.pendingSetup = false
	c.setState(model.StateOff)
	c.persist()
}

// AllowTemporarily grants the "temporary allow" unlock choice. It is
// acknowledged but not time-boxed or enforced: the state stays ACTIVE and
// nothing is persisted.
func (c *Controller) AllowTemporarily() {}

// SetState writes the protection state directly, for the scriptable
// surface. The theme is recoupled and the counter is synced to the new
// state.
func (c *Controller) SetState(s model.ProtectionState) error {
	if !s.Valid() {
		return errValidation("Invalid protection state: " + string(s))
	}
	c.clickCount = countFor(s)
	c.pendingSetup = false
	c.setState(s)
	c.persist()
	return nil
}

// OpenResult describes a simulated open of a protected app.
type OpenResult struct {
	App model.ProtectedApp
	// Member is false when the package is not in the protected set.
	Member bool
	// ChallengeRequired is true only in ACTIVE state: the caller must run
	// the unlock flow before "opening".
	ChallengeRequired bool
}

// OpenApp routes a simulated open through the ACTIVE check. Outside ACTIVE
// the app "would open normally" and nothing happens.
func (c *Controller) OpenApp(packageName string) OpenResult {
	for _, a := range c.profile.ProtectedApps {
		if a.PackageName == packageName {
			return OpenResult{
				App:               a,
				Member:            true,
				ChallengeRequired: c.profile.ProtectionState == model.StateActive,
			}
		}
	}
	return OpenResult{}
}

func (c *Controller) setState(s model.ProtectionState) {
	c.profile.ProtectionState = s
	c.profile.Theme = model.ThemeFor(s)
}

func (c *Controller) persist() {
	if err := c.store.Save(context.Background(), c.profile); err != nil {
		// Logged only; the in-memory change stands (memory and disk may now
		// diverge). Nothing here is allowed to take the UI down.
		c.log.Error().Err(err).Msg("persist profile")
	}
}
