package identity

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mailsift/mailsift/internal/textdoc"
)

var (
	// "Weingarten, Reid" style tokens must survive the delimiter split.
	lastFirstRE = regexp.MustCompile(`\b[A-Za-z][a-z]*(?:\s+[A-Za-z][a-z]*)*,\s+[A-Za-z][a-z]*(?:\s+[A-Za-z]\.?)?\b`)

	recipientSplitRE = regexp.MustCompile(`[;,]\s*|\s{2,}`)
	edgePunctTailRE  = regexp.MustCompile(`[\s_\-.;:,]+$`)
	edgePunctHeadRE  = regexp.MustCompile(`^[\s_\-.;:,]+`)
	junkTokenRE      = regexp.MustCompile(`^[\s.\-_<>\[\]()]+$`)
	wordAfterRE      = regexp.MustCompile(`^\s+[A-Za-z]`)
)

// Recipients splits a To/Cc field on ";" and "," delimiters and cleans each
// entry. "Lastname, Firstname" tokens are shielded from the split: a comma
// followed by exactly one or two name words and no further text is a name
// separator, not a list delimiter. An empty or unrecoverable field yields
// the Unknown Recipient sentinel.
func (n *Normalizer) Recipients(field string) []string {
	if strings.TrimSpace(field) == "" {
		return []string{textdoc.UnknownRecipient}
	}

	field = strings.TrimSpace(field)

	var protected []string
	shielded := replaceAllShielded(field, &protected)

	var result []string
	for _, token := range recipientSplitRE.Split(shielded, -1) {
		token = strings.TrimSpace(token)
		for i, name := range protected {
			token = strings.ReplaceAll(token, placeholder(i), name)
		}
		if token == "" || len(token) == 1 {
			continue
		}
		switch token {
		case ".", "-", "_", ":", ";", ",":
			continue
		}
		if junkTokenRE.MatchString(token) {
			continue
		}

		email, name := n.SplitAddress(token)
		switch {
		case email != "":
			result = append(result, email)
		case name != "":
			name = n.cleanRecipientName(name)
			if len(name) < 2 {
				continue
			}
			if fixed, ok := n.tables.NameCorrections[strings.ToLower(name)]; ok {
				result = append(result, fixed)
			} else {
				result = append(result, name)
			}
		case !isRedacted(token):
			if fixed, ok := n.tables.NameCorrections[strings.ToLower(token)]; ok {
				result = append(result, fixed)
			} else {
				result = append(result, token)
			}
		}
	}

	if len(result) == 0 {
		return []string{textdoc.UnknownRecipient}
	}
	return result
}

// cleanRecipientName strips trailing OCR debris from a display name:
// punctuation runs, long digit sequences, lone stroke characters, quote
// artifacts.
func (n *Normalizer) cleanRecipientName(name string) string {
	name = edgePunctTailRE.ReplaceAllString(name, "")
	name = edgePunctHeadRE.ReplaceAllString(name, "")
	name = trailingDigitsRE.ReplaceAllString(name, "")
	name = trailingNoiseRE.ReplaceAllString(name, "")
	name = trailingStrokeRE.ReplaceAllString(name, "")
	name = trailingQuoteRE.ReplaceAllString(name, "")
	name = trailingBTRE.ReplaceAllString(name, "")
	name = trailingPunctRE.ReplaceAllString(name, "")
	return strings.TrimSpace(name)
}

// replaceAllShielded swaps each protectable "Lastname, Firstname" match for
// a placeholder token. A match immediately followed by another word is a
// real list delimiter and stays unprotected.
func replaceAllShielded(field string, protected *[]string) string {
	var b strings.Builder
	rest := field
	for {
		loc := lastFirstRE.FindStringIndex(rest)
		if loc == nil {
			b.WriteString(rest)
			break
		}
		match := rest[loc[0]:loc[1]]
		tail := rest[loc[1]:]
		b.WriteString(rest[:loc[0]])
		if wordAfterRE.MatchString(tail) {
			b.WriteString(match)
		} else {
			*protected = append(*protected, match)
			b.WriteString(placeholder(len(*protected) - 1))
		}
		rest = tail
	}
	return b.String()
}

func placeholder(i int) string {
	return fmt.Sprintf("\x00P%d\x00", i)
}
