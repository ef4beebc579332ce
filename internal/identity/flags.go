package identity

import (
	"sort"
	"strings"
)

// IsTargetEmail reports whether the address belongs to the investigation
// target. Matching is substring-based: OCR output often glues prefixes or
// export tags onto the address.
func (n *Normalizer) IsTargetEmail(email string) bool {
	if email == "" {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(email))
	for _, t := range n.tables.TargetEmails {
		if strings.Contains(lower, strings.ToLower(t)) {
			return true
		}
	}
	return false
}

// IsTargetName reports whether a display name matches a known target name
// pattern.
func (n *Normalizer) IsTargetName(name string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, p := range n.tables.TargetNamePatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// IsTarget combines the email and name checks for a single identity token.
func (n *Normalizer) IsTarget(identity string) bool {
	return n.IsTargetEmail(identity) || n.IsTargetName(identity)
}

// IsAssociateName reports whether a name or address mentions a known
// associate.
func (n *Normalizer) IsAssociateName(name string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, a := range n.tables.AssociateNames {
		if strings.Contains(lower, a) {
			return true
		}
	}
	return false
}

// AssociatesIn returns the title-cased associate names mentioned in the
// given identity token, sorted for determinism.
func (n *Normalizer) AssociatesIn(name string) []string {
	if name == "" {
		return nil
	}
	lower := strings.ToLower(strings.TrimSpace(name))
	var found []string
	for _, a := range n.tables.AssociateNames {
		if strings.Contains(lower, a) {
			found = append(found, titleCase(a))
		}
	}
	sort.Strings(found)
	return found
}
