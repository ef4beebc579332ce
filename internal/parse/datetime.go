package parse

import (
	"regexp"
	"strings"
	"time"
)

// Layouts observed in the corpus, ordered most common first. The first
// layout that parses wins.
var dateLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"1/2/2006 3:04:05PM",
	"1/2/2006 3:04 PM",
	"1/2/06 3:04:05 PM",
	"Monday, January 2, 2006 3:04 PM",
	"Monday, January 2, 2006 3:04:05 PM",
	"Monday, January 2, 2006 3:04PM",
	"Mon, Jan 2, 2006 at 3:04 PM",
	"Mon, Jan 2, 2006 at 3:04:05 PM",
	"2/1/2006 3:04 PM",
	"2/1/2006 3:04:05 PM",
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
	"Monday, January 2, 2006 at 3:04 PM",
	"Monday, January 2, 2006 at 3:04:05 PM",
	"January 2, 2006 at 3:04:05 PM",
	"January 2, 2006 at 3:04 PM",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05",
	"Mon, Jan 2, 2006 3:04 PM",
	"Monday, January 2 2006 3:04 PM",
	"Monday, January 2 2006 3:04:05 PM",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006, 3:04:05 PM",
	"2 January 2006 at 15: 04",
	"Mon 1/2/2006 3:04 PM",
	"Mon 1/2/2006 3:04:05 PM",
	"January 2, 2006, 3:04:05 PM",
	"January 2, 2006 3:04:05 PM",
	"Monday, 2 January 2006 15:04",
	"Monday, 2 January 2006 15:04:05",
	"Monday, Jan 2, 2006, 3:04 PM",
	"2 January 2006 15:04",
	"2 January, 2006 3:04 PM",
	"Monday, January 2. 2006 15:04",
	"Jan 2, 2006 15:04:05",
	"January 2, 2006 3:04 PM",
	"January 2, 2006",
	"1/2/2006",
	"1/2/06",
	"2/1/2006",
}

var (
	parenCounterRE = regexp.MustCompile(`\s*\(\d+\)\s*$`)
	gmtOffsetRE    = regexp.MustCompile(`\s*\(GMT[+-]\d{2}:\d{2}\)\s*`)
	gmtShortRE     = regexp.MustCompile(`\s+GMT[+-]\d+\s*`)
	tzParenRE      = regexp.MustCompile(`\s*\((?:EST|PST|CST|MST|EDT|PDT|CDT|MDT|UTC|GMT|GDT|BST|IST)\)\s*`)
	tzAbbrevRE     = regexp.MustCompile(`\s+(?:EST|PST|CST|MST|EDT|PDT|CDT|MDT|UTC|GMT|GDT|BST|IST)\s*`)
	lowerMeridRE   = regexp.MustCompile(`([ap])\.?m\.?\b`)
)

// ParsedDate is a successfully interpreted raw date string. Times with no
// zone information are taken as UTC.
type ParsedDate struct {
	Time      time.Time
	ISO       string
	Timestamp int64
}

// ParseDatetime tries each known layout against a cleaned copy of the raw
// string. Returns nil when nothing matches; callers keep the raw string and
// a zero timestamp in that case.
func ParseDatetime(raw string) *ParsedDate {
	if raw == "" {
		return nil
	}

	clean := parenCounterRE.ReplaceAllString(raw, "")
	clean = gmtOffsetRE.ReplaceAllString(clean, "")
	clean = gmtShortRE.ReplaceAllString(clean, " ")
	clean = tzParenRE.ReplaceAllString(clean, " ")
	clean = tzAbbrevRE.ReplaceAllString(clean, " ")
	clean = lowerMeridRE.ReplaceAllStringFunc(clean, func(m string) string {
		return strings.ToUpper(strings.NewReplacer(".", "").Replace(m))
	})
	clean = strings.TrimSpace(clean)

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, clean)
		if err != nil {
			continue
		}
		return &ParsedDate{
			Time:      t,
			ISO:       t.Format("2006-01-02T15:04:05"),
			Timestamp: t.Unix(),
		}
	}
	return nil
}
