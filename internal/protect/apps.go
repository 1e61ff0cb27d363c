package protect

import "applock/internal/model"

// AddApp appends an app to the protected set, preserving insertion order.
// The set is bounded and keyed by package name.
func (c *Controller) AddApp(app model.ProtectedApp) error {
	if len(c.profile.ProtectedApps) >= MaxProtectedApps {
		return errValidation("Maximum 20 apps allowed")
	}
	for _, a := range c.profile.ProtectedApps {
		if a.PackageName == app.PackageName {
			return errValidation("App already protected")
		}
	}
	c.profile.ProtectedApps = append(c.profile.ProtectedApps, app)
	c.persist()
	return nil
}

// RemoveApp removes the entry matching the package name. Removing an absent
// package is a silent no-op; either way the record is rewritten.
func (c *Controller) RemoveApp(packageName string) {
	apps := c.profile.ProtectedApps
	for i, a := range apps {
		if a.PackageName == packageName {
			c.profile.ProtectedApps = append(apps[:i], apps[i+1:]...)
			break
		}
	}
	c.persist()
}

// Apps returns a snapshot of the protected set in insertion order.
func (c *Controller) Apps() []model.ProtectedApp {
	return append([]model.ProtectedApp{}, c.profile.ProtectedApps...)
}

// IsProtected reports membership by package name.
func (c *Controller) IsProtected(packageName string) bool {
	for _, a := range c.profile.ProtectedApps {
		if a.PackageName == packageName {
			return true
		}
	}
	return false
}

// Slot is one cell of the display grid: either a live protected app or an
// empty add-affordance placeholder.
type Slot struct {
	App   model.ProtectedApp
	Empty bool
}

// GridSlots projects the protected set onto the display grid: the live set
// padded with placeholders up to MinGridSlots. The projection never drops a
// live member and never mutates the underlying set.
func (c *Controller) GridSlots() []Slot {
	n := len(c.profile.ProtectedApps)
	total := n
	if total < MinGridSlots {
		total = MinGridSlots
	}
	slots := make([]Slot, 0, total)
	for _, a := range c.profile.ProtectedApps {
		slots = append(slots, Slot{App: a})
	}
	for len(slots) < total {
		slots = append(slots, Slot{Empty: true})
	}
	return slots
}
