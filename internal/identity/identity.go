// Package identity canonicalizes raw name/address tokens from OCR-degraded
// documents into stable identities: a validated, case-folded email address
// when one is recoverable, else a cleaned display name.
//
// All correction tables are injected data (config.Tables), not compiled-in
// logic. Canonicalization is idempotent: feeding a canonical identity back
// in returns it unchanged.
package identity

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mailsift/mailsift/internal/config"
)

var (
	emailRE        = regexp.MustCompile(`[\w.\-+:]+@[\w.\-]+\.[a-zA-Z]{2,}`)
	emailShapeRE   = regexp.MustCompile(`^[\w.+\-]+@[\w.\-]+\.[a-zA-Z]{2,}$`)
	bracketedRE    = regexp.MustCompile(`\[([^\]]+)\]`)
	mailtoTailRE   = regexp.MustCompile(`\s*\[mailto:?[^\]]*$`)
	mailtoSpanRE   = regexp.MustCompile(`\s*\[mailto:?[^\]]*\]`)
	brokenAddrRE   = regexp.MustCompile(`\[[\w\-.]+@[\w\s\-.]+\]?`)
	bracketJunkRE  = regexp.MustCompile(`\s*\[\s*[il1I]+\s*$`)
	openBracketRE  = regexp.MustCompile(`\s*\[\s*$`)
	closeBracketRE = regexp.MustCompile(`^\s*\]`)

	angleTailRE     = regexp.MustCompile(`\s*[<‹〈(].*$`)
	trailingDashRE  = regexp.MustCompile(`[_\-]+$`)
	leadingDashRE   = regexp.MustCompile(`^[_\-]+`)
	closeAngleArtRE = regexp.MustCompile(`[.\s]*[›〉>\]]+.*$`)
	htmlTagRE       = regexp.MustCompile(`(?i)<\s*/?\s*[a-z]+\s*>`)
	danglingOpenRE  = regexp.MustCompile(`[<\[‹〈]\s*$`)
	danglingCloseRE = regexp.MustCompile(`^\s*[>\]›〉]`)
	bulletRE        = regexp.MustCompile(`[•●○◦▪▫]`)
	subjectArtRE    = regexp.MustCompile(`(?i)Subject:\s*.*$`)
	parenSuffixRE   = regexp.MustCompile(`\s*\([^)]*\)\s*[<\-]*\s*$`)
	spaceRunRE      = regexp.MustCompile(`\s+`)
	pureJunkRE      = regexp.MustCompile(`^[\s\-_<>\[\]()]+$`)

	trailingDigitsRE = regexp.MustCompile(`\s+\d{5,}[.\-=]*$`)
	trailingNoiseRE  = regexp.MustCompile(`\s+[\d=\-.|]+$`)
	trailingStrokeRE = regexp.MustCompile(`\s+[IilL1]$`)
	trailingQuoteRE  = regexp.MustCompile("['`]+[IiLl]*$")
	trailingBTRE     = regexp.MustCompile(`(?i)\s+(BT)$`)
	trailingPunctRE  = regexp.MustCompile(`[.,]$`)

	plainNameRE = regexp.MustCompile(`^[A-Za-z\s.]+$`)
)

// Normalizer applies artifact-stripping rules and the static correction
// tables. Safe for concurrent use; it never mutates the tables.
type Normalizer struct {
	tables *config.Tables
}

// NewNormalizer returns a Normalizer over the given tables.
func NewNormalizer(t *config.Tables) *Normalizer {
	return &Normalizer{tables: t}
}

// CleanArtifacts removes bracket/OCR artifacts specific to identity fields:
// [mailto: fragments, malformed bracketed addresses, trailing bracket
// garbage.
func (n *Normalizer) CleanArtifacts(name string) string {
	if name == "" {
		return ""
	}
	name = mailtoTailRE.ReplaceAllString(name, "")
	name = mailtoSpanRE.ReplaceAllString(name, "")
	name = brokenAddrRE.ReplaceAllString(name, "")
	name = bracketJunkRE.ReplaceAllString(name, "")
	name = openBracketRE.ReplaceAllString(name, "")
	name = closeBracketRE.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// NormalizeField scrubs a raw sender/recipient field of OCR artifacts and
// formatting noise. Returns "" when nothing identity-like remains.
func (n *Normalizer) NormalizeField(field string) string {
	if field == "" {
		return ""
	}

	field = strings.TrimSpace(field)
	if len(field) >= 2 {
		if (strings.HasPrefix(field, `"`) && strings.HasSuffix(field, `"`)) ||
			(strings.HasPrefix(field, "'") && strings.HasSuffix(field, "'")) {
			field = strings.TrimSpace(field[1 : len(field)-1])
		}
	}

	field = n.CleanArtifacts(field)
	field = angleTailRE.ReplaceAllString(field, "")
	field = trailingDashRE.ReplaceAllString(field, "")
	field = leadingDashRE.ReplaceAllString(field, "")
	field = closeAngleArtRE.ReplaceAllString(field, "")
	field = htmlTagRE.ReplaceAllString(field, "")
	field = danglingOpenRE.ReplaceAllString(field, "")
	field = danglingCloseRE.ReplaceAllString(field, "")
	field = decodeEntities(field)
	field = bulletRE.ReplaceAllString(field, "")
	field = subjectArtRE.ReplaceAllString(field, "")
	field = parenSuffixRE.ReplaceAllString(field, "")
	field = strings.TrimSpace(spaceRunRE.ReplaceAllString(field, " "))

	if pureJunkRE.MatchString(field) {
		return ""
	}
	return field
}

// SplitAddress separates "Name [email@domain]" / "Name <email@domain>" style
// fields into a normalized email and a cleaned display name. Either result
// may be empty; an empty email with a nonempty name means the field carried
// no recoverable address.
func (n *Normalizer) SplitAddress(field string) (email, name string) {
	field = strings.TrimSpace(field)
	if field == "" || isRedacted(field) {
		return "", ""
	}

	// Bracketed content first: it is either a real address or OCR garbage
	// to strip, and NormalizeField would eat the closing bracket.
	if loc := bracketedRE.FindStringSubmatchIndex(field); loc != nil {
		inner := strings.TrimSpace(field[loc[2]:loc[3]])
		if n.ValidEmail(inner) {
			name := n.NormalizeField(field[:loc[0]])
			return n.NormalizeEmail(inner), name
		}
		field = n.NormalizeField(strings.TrimSpace(field[:loc[0]]))
	} else {
		field = n.NormalizeField(field)
	}
	if field == "" {
		return "", ""
	}

	if m := emailRE.FindStringIndex(field); m != nil {
		candidate := field[m[0]:m[1]]
		if n.ValidEmail(candidate) {
			name := strings.TrimSpace(strings.NewReplacer("<", "", ">", "").Replace(field[:m[0]]))
			return n.NormalizeEmail(candidate), name
		}
	}

	return "", field
}

// NormalizeEmail case-folds an address and applies the OCR typo correction
// table. A leading "e:" export prefix is dropped.
func (n *Normalizer) NormalizeEmail(email string) string {
	if email == "" {
		return email
	}
	if len(email) > 2 && strings.EqualFold(email[:2], "e:") {
		email = email[2:]
	}
	lower := strings.ToLower(strings.TrimSpace(email))
	if fixed, ok := n.tables.EmailCorrections[lower]; ok {
		return fixed
	}
	return lower
}

// ValidEmail reports whether s has local@domain.tld shape with a plausible
// TLD. TLD spellings known to occur only as OCR corruption are rejected.
func (n *Normalizer) ValidEmail(s string) bool {
	if s == "" || !strings.Contains(s, "@") {
		return false
	}
	if len(s) > 2 && strings.EqualFold(s[:2], "e:") {
		s = s[2:]
	}
	if !emailShapeRE.MatchString(s) {
		return false
	}

	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return false
	}
	local, domain := parts[0], parts[1]
	if local == "" || len(local) > 64 {
		return false
	}
	if !strings.Contains(domain, ".") {
		return false
	}

	segs := strings.Split(domain, ".")
	tld := strings.ToLower(segs[len(segs)-1])
	if len(tld) < 2 {
		return false
	}
	for _, bad := range n.tables.BadTLDs {
		if tld == bad {
			return false
		}
	}
	return true
}

// Canonicalize maps a raw identity token to its canonical form:
// artifact-strip, recover and normalize an address if possible, else apply
// the name correction and nickname tables and title-case the remainder.
func (n *Normalizer) Canonicalize(raw string) string {
	return n.CanonicalizeWith(raw, nil)
}

// CanonicalizeWith is Canonicalize consulting an alias table discovered
// during parsing (name → address). The alias table is an explicit input;
// there is no hidden shared state.
func (n *Normalizer) CanonicalizeWith(raw string, aliases AliasTable) string {
	if raw == "" {
		return raw
	}

	s := n.NormalizeField(raw)
	if s == "" {
		return s
	}

	s = trailingDigitsRE.ReplaceAllString(s, "")
	s = trailingNoiseRE.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = trailingStrokeRE.ReplaceAllString(s, "")
	s = trailingQuoteRE.ReplaceAllString(s, "")
	s = trailingBTRE.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(trailingPunctRE.ReplaceAllString(s, ""))
	if s == "" {
		return s
	}

	if email, _ := n.SplitAddress(s); email != "" {
		return email
	}

	clean := strings.Join(strings.Fields(s), " ")
	lower := strings.ToLower(clean)

	if fixed, ok := n.tables.NameCorrections[lower]; ok {
		return fixed
	}
	if addr, ok := n.tables.CanonicalSenders[lower]; ok {
		return addr
	}
	if addr, ok := aliases[lower]; ok {
		return addr
	}

	if plainNameRE.MatchString(clean) {
		return titleCase(clean)
	}
	return clean
}

func isRedacted(s string) bool {
	switch strings.ToLower(s) {
	case "[redacted]", "redacted", "-":
		return true
	}
	return false
}

func decodeEntities(s string) string {
	return strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&").Replace(s)
}

// titleCase uppercases the first letter of each word, lowercasing the rest.
// Words already canonical ("Al Seckel") pass through unchanged, which keeps
// Canonicalize idempotent.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		for j, r := range runes {
			if unicode.IsLetter(r) {
				runes[j] = unicode.ToUpper(r)
				break
			}
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
