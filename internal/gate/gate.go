// internal/gate/gate.go
package gate

import (
	"fmt"

	"github.com/newthinker/stratix/internal/profile"
)

// Allowed reports whether a profile may use a feature gated at requiredLevel.
// A nil profile is always denied when a level is required. A requiredLevel of
// zero (or below) means the feature is ungated for any signed-in profile.
// The predicate never fails; callers decide the user-facing consequence.
func Allowed(p *profile.Profile, requiredLevel int) bool {
	if p == nil {
		return false
	}
	if requiredLevel <= 0 {
		return true
	}
	return p.Level >= requiredLevel
}

// DenialMessage is the user-facing text shown when a gate denies access.
func DenialMessage(p *profile.Profile, requiredLevel int) string {
	if p == nil {
		return "Please sign in to access this feature"
	}
	return fmt.Sprintf("This feature requires Level %d. You are currently Level %d.", requiredLevel, p.Level)
}

// NavItem describes a navigation entry and its gating threshold.
type NavItem struct {
	Path     string `json:"path"`
	Label    string `json:"label"`
	MinLevel int    `json:"minLevel,omitempty"`
	Locked   bool   `json:"locked"`
}

// navItems mirrors the product's navigation bar; only the scanner is gated.
var navItems = []NavItem{
	{Path: "/dashboard", Label: "Cockpit"},
	{Path: "/lab", Label: "The Lab"},
	{Path: "/scanner", Label: "Scanner", MinLevel: 3},
	{Path: "/strategies", Label: "Strategies"},
	{Path: "/extension", Label: "Extension"},
}

// Nav returns the navigation items with the Locked flag evaluated against
// the given profile. Locked entries render as a disabled affordance instead
// of a link.
func Nav(p *profile.Profile) []NavItem {
	items := make([]NavItem, len(navItems))
	copy(items, navItems)
	for i := range items {
		items[i].Locked = !Allowed(p, items[i].MinLevel)
	}
	return items
}
