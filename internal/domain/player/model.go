package player

import "fmt"

// NamePair links a name as it appears on a scorecard to the canonical name
// taken from the player's profile page.
type NamePair struct {
	DisplayName   string
	CanonicalName string
}

func (p NamePair) Validate() error {
	if p.DisplayName == "" {
		return fmt.Errorf("display name is required")
	}
	if p.CanonicalName == "" {
		return fmt.Errorf("canonical name is required")
	}

	return nil
}

// UnresolvedName is what the profile page yields when it carries no heading.
const UnresolvedName = "N/A"

// IsResolved reports whether a profile lookup produced a usable name.
func IsResolved(name string) bool {
	return name != "" && name != UnresolvedName
}
