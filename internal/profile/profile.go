package profile

import "strings"

// Tier is the subscription tier of an account.
type Tier string

const (
	TierFree  Tier = "free"
	TierPro   Tier = "pro"
	TierElite Tier = "elite"
)

// Profile is the per-session user record. It is owned by exactly one session
// and mutated only through Service operations; the session store holds a
// best-effort mirror.
type Profile struct {
	ID                  string  `json:"id"`
	Email               string  `json:"email"`
	Name                string  `json:"name"`
	Level               int     `json:"level"`
	XP                  int     `json:"xp"`
	XPToNextLevel       int     `json:"xpToNextLevel"`
	Tier                Tier    `json:"tier"`
	CompletedAssessment bool    `json:"completedAssessment"`
	Capital             float64 `json:"capital"`
}

// xpPerLevel scales the XP requirement with the level reached.
const xpPerLevel = 1000

// defaultProfile returns the starter record handed out at login.
func defaultProfile(email string) Profile {
	return Profile{
		Email:               email,
		Name:                nameFromEmail(email),
		Level:               3,
		XP:                  450,
		XPToNextLevel:       xpPerLevel,
		Tier:                TierFree,
		CompletedAssessment: false,
		Capital:             10000,
	}
}

func nameFromEmail(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}

// Patch is a partial profile update. Nil fields are left untouched.
// XPToNextLevel is intentionally absent: it is always re-derived from Level
// so a merge cannot leave the pair inconsistent.
type Patch struct {
	Email               *string  `json:"email,omitempty"`
	Name                *string  `json:"name,omitempty"`
	Level               *int     `json:"level,omitempty"`
	XP                  *int     `json:"xp,omitempty"`
	Tier                *Tier    `json:"tier,omitempty"`
	CompletedAssessment *bool    `json:"completedAssessment,omitempty"`
	Capital             *float64 `json:"capital,omitempty"`
}

// apply merges the patch into p, re-deriving XPToNextLevel when the level
// changes. Other fields merge as given, matching the shipped product's
// unvalidated update semantics.
func (patch Patch) apply(p *Profile) {
	if patch.Email != nil {
		p.Email = *patch.Email
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Level != nil {
		p.Level = *patch.Level
		p.XPToNextLevel = xpPerLevel * p.Level
	}
	if patch.XP != nil {
		p.XP = *patch.XP
	}
	if patch.Tier != nil {
		p.Tier = *patch.Tier
	}
	if patch.CompletedAssessment != nil {
		p.CompletedAssessment = *patch.CompletedAssessment
	}
	if patch.Capital != nil {
		p.Capital = *patch.Capital
	}
}
