package clean

import (
	"regexp"
	"strings"
)

// disclaimerPattern is one detector for boilerplate disclaimer text. When
// tailGroup is true, capture group 2 is a terminator (blank line or end of
// text) that stays in the body; only group 1 is removed.
type disclaimerPattern struct {
	re        *regexp.Regexp
	tailGroup bool
}

// Ordered most specific to least specific. Earlier patterns capture
// complete disclaimers; later ones catch OCR-truncated stubs.
var disclaimerPatterns = []disclaimerPattern{
	{re: regexp.MustCompile(`(?is)(?:^|\n)\s*please\s*note[\s\S]+?(?:copyright[\s\-]*all rights reserved|all rights reserved)`)},

	{re: regexp.MustCompile(`(?is)pleasenote[A-Za-z\s]*information[A-Za-z\s]*contain[A-Za-z\s]*communication[A-Za-z\s]*confidential[\s\S]+?(?:copyright[\s\-]*all rights reserved|all rights reserved)`)},

	{re: regexp.MustCompile(`(?is)(?:^|\n)\s*please\s*note\s*\n\s*The information contained in this communication[\s\S]+?(?:strictly prohibited[\s\S]{0,200}|jeevacation@gmail\.com[\s\S]{0,200}|copyright[\s\-]*all rights reserved)`)},

	{re: regexp.MustCompile(`(?is)((?:^|\n)\s*please\s*note\s*[\n\s]*The information contained in this communication[\s\S]+?property of[\s\S]{0,50}?)(\n\s*\n|\z)`), tailGroup: true},

	{re: regexp.MustCompile(`(?is)((?:^|\n)\s*please\s*note\s*[\n\s]*The information contained in this communication[\s\S]+?addressee[\s\S]{0,100}?)(\n\s*\n|\z)`), tailGroup: true},

	{re: regexp.MustCompile(`(?is)((?:^|\n)\s*please\s*note\s*[\n\s]*The information contained in this communication is\s*confidential[\s\S]{0,150}?)(\n\s*\n|\z)`), tailGroup: true},

	{re: regexp.MustCompile(`(?i)((?:^|\n)\s*please\s*note\s*(?:wrote:)?[ \t]*)(\n|\z)`), tailGroup: true},

	{re: regexp.MustCompile(`(?is)(?:^|\n)\s*The information contained in this communication[\s\S]+?(?:strictly prohibited[\s\S]{0,200}|jeevacation@gmail\.com[\s\S]{0,200})(?:\n\n|\z)`)},
}

// ExtractDisclaimer removes every recognizable disclaimer from body,
// however garbled, and reports the canonical disclaimer text in its place.
// The returned disclaimer is "" when none was found.
func (c *Cleaner) ExtractDisclaimer(body string) (cleaned, disclaimer string) {
	if body == "" {
		return body, ""
	}

	cleaned = body
	for {
		found := false
		for _, p := range disclaimerPatterns {
			m := p.re.FindStringSubmatchIndex(cleaned)
			if m == nil {
				continue
			}
			start, end := m[0], m[1]
			if p.tailGroup {
				start, end = m[2], m[3]
			}
			disclaimer = c.tables.CanonicalDisclaimer
			cleaned = strings.TrimSpace(cleaned[:start] + cleaned[end:])
			found = true
			break
		}
		if !found {
			break
		}
	}
	return cleaned, disclaimer
}
