// Package clean repairs OCR damage in message bodies: glued or
// space-broken URLs, scanner character swaps, page-footer debris,
// boilerplate disclaimers, and quoted reply tails.
package clean

import (
	"regexp"
	"strings"

	"github.com/mailsift/mailsift/internal/config"
)

var (
	urlSpacesRE    = regexp.MustCompile(`(https?\s*:\s*//\s*\S+(?:\s\S+)*?)(\s{2,}|\n|\z)`)
	onThunRE       = regexp.MustCompile(`\bOn\s+Thun,`)
	nobtLineRE     = regexp.MustCompile(`(?m)^\s*Nobt\s*$`)
	strokeILineRE  = regexp.MustCompile(`\nI\s+([a-z])`)
	blankRunRE     = regexp.MustCompile(`\n\s*\n\s*\n+`)
	pageFooterRE   = regexp.MustCompile(`Page \d+ of \d+`)
	batesStampRE   = regexp.MustCompile(`HOUSE_OVERSIGHT_\d+`)
	mobileSigRE    = regexp.MustCompile(`(?i)\n\s*Sent from my (?:iPhone|iPad|BlackBerry|Android)[^\n]*\n?\z`)
	underscoreBar  = regexp.MustCompile(`\n_{10,}\n`)
	dashBarRE      = regexp.MustCompile(`\n-{10,}\n`)
	mailtoHeaderRE = regexp.MustCompile(`From:\s*\[mailto:.*?\]`)
	sentHeaderRE   = regexp.MustCompile(`Sent:\s*\d+/\d+/\d+.*?\n`)
	separatorLine  = regexp.MustCompile(`^[_\-\s]+$`)
)

// Cleaner bundles the body-repair passes over one table set.
type Cleaner struct {
	tables  *config.Tables
	segDict []string
}

// NewCleaner returns a Cleaner over the given tables.
func NewCleaner(t *config.Tables) *Cleaner {
	return &Cleaner{tables: t, segDict: t.SegmentationDictionary()}
}

// Body applies the standard body repairs: URL de-spacing, known scanner
// misreads, page footers and Bates stamps, mobile signatures, and separator
// bars. Disclaimers and quoted tails are left alone; ExtractDisclaimer and
// StripQuoted handle those.
func (c *Cleaner) Body(body string) string {
	if body == "" {
		return ""
	}

	body = despaceURLs(body)

	body = onThunRE.ReplaceAllString(body, "On Thu,")
	body = nobtLineRE.ReplaceAllString(body, "Nope")
	body = strokeILineRE.ReplaceAllString(body, "\nl$1")

	body = blankRunRE.ReplaceAllString(body, "\n\n")
	body = pageFooterRE.ReplaceAllString(body, "")
	body = batesStampRE.ReplaceAllString(body, "")
	body = mobileSigRE.ReplaceAllString(body, "")

	body = underscoreBar.ReplaceAllString(body, "\n")
	body = dashBarRE.ReplaceAllString(body, "\n")
	body = mailtoHeaderRE.ReplaceAllString(body, "")
	body = sentHeaderRE.ReplaceAllString(body, "")

	var kept []string
	for _, line := range strings.Split(body, "\n") {
		if separatorLine.MatchString(line) {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// despaceURLs closes up single-space breaks inside a URL on one line. The
// URL ends at a run of two or more spaces, a newline, or end of text; that
// terminator is kept.
func despaceURLs(body string) string {
	var b strings.Builder
	for {
		m := urlSpacesRE.FindStringSubmatchIndex(body)
		if m == nil {
			b.WriteString(body)
			break
		}
		b.WriteString(body[:m[0]])
		b.WriteString(strings.ReplaceAll(body[m[2]:m[3]], " ", ""))
		body = body[m[3]:]
	}
	return b.String()
}
