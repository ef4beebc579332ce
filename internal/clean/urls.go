package clean

import (
	"regexp"
	"strings"
)

// The url* patterns share one permissive character class: anything legal in
// a URL plus whitespace, so a single address broken across spaces or line
// wraps still matches as one unit.
var (
	youtubeGlueRE = regexp.MustCompile(`(?i)(https?://(?:www\.)?youtube\.com/watch\?v=)([a-zA-Z0-9_-]{11})([a-z]{5,})`)

	urlWithExtRE = regexp.MustCompile(`(?i)https?\s*:\s*//\s*[a-zA-Z0-9\-._~:/?#\[\]@!$&'()*+,;=%\s]+?(?:\.html|\.htm|\.php|\.asp|\.aspx|\.jsp|\.pdf|\.jpg|\.jpeg|\.png|\.gif|\.css|\.js)`)

	urlWithIDRE = regexp.MustCompile(`(?i)(https?\s*:\s*//\s*[a-zA-Z0-9\-._~:/?#\[\]@!$&'()*+,;=%\s]+?[a-z0-9]{12,})(\s*\n|\s+Please|\s*\z)`)

	urlWithSlugRE = regexp.MustCompile(`(?i)(https?\s*:\s*//\s*[a-zA-Z0-9\-._~:/?#\[\]@!$&'()*+,;=%\s]+?[a-z][\w\-]{2,}/?)(\s*\n|\s+Please|\s*\z)`)

	urlMidBreakRE = regexp.MustCompile(`(https?://[a-zA-Z0-9\-._~:/?#\[\]@!$&'()*+,;=%]+)(\s+)([a-zA-Z0-9\-._~:/?#\[\]@!$&'()*+,;=%]*[/\-_.=?&#][a-zA-Z0-9\-._~:/?#\[\]@!$&'()*+,;=%]+)`)

	wsRunRE = regexp.MustCompile(`\s+`)
)

const maxRepairPasses = 20

// RepairURLs reassembles URLs that OCR broke apart. Passes, in order:
// YouTube links with prose glued onto the 11-character video ID, URLs
// ending in a known file extension, URLs ending in a long resource ID, URLs
// ending in a path slug, and finally single whitespace breaks between two
// URL-shaped halves.
func (c *Cleaner) RepairURLs(text string) string {
	if text == "" {
		return text
	}

	for i := 0; i < 10; i++ {
		m := youtubeGlueRE.FindStringSubmatchIndex(text)
		if m == nil {
			break
		}
		url := text[m[2]:m[3]] + text[m[4]:m[5]]
		glued := text[m[6]:m[7]]
		text = text[:m[0]] + url + " " + c.segment(glued) + text[m[7]:]
	}

	for i := 0; i < maxRepairPasses; i++ {
		loc := urlWithExtRE.FindStringIndex(text)
		if loc == nil {
			break
		}
		fixed := wsRunRE.ReplaceAllString(text[loc[0]:loc[1]], "")
		text = text[:loc[0]] + fixed + text[loc[1]:]
	}

	text = repairTailed(text, urlWithIDRE)
	text = repairTailed(text, urlWithSlugRE)

	for i := 0; i < maxRepairPasses; i++ {
		m := urlMidBreakRE.FindStringSubmatchIndex(text)
		if m == nil {
			break
		}
		fixed := wsRunRE.ReplaceAllString(text[m[0]:m[1]], "")
		text = text[:m[0]] + fixed + text[m[1]:]
	}

	return text
}

// repairTailed collapses whitespace inside capture group 1 of re. Group 2
// is the terminator (newline, end of text, or the start of disclaimer
// boilerplate) and is left in place.
func repairTailed(text string, re *regexp.Regexp) string {
	for i := 0; i < maxRepairPasses; i++ {
		m := re.FindStringSubmatchIndex(text)
		if m == nil {
			break
		}
		fixed := wsRunRE.ReplaceAllString(text[m[2]:m[3]], "")
		if fixed == text[m[2]:m[3]] {
			break
		}
		text = text[:m[2]] + fixed + text[m[3]:]
	}
	return text
}

// segment re-spaces run-together prose using a greedy longest-word scan
// over a fixed dictionary. Characters that start no known word pass through
// one at a time.
func (c *Cleaner) segment(text string) string {
	if len(text) < 5 {
		return text
	}

	lower := strings.ToLower(text)
	var parts []string
	i := 0
	for i < len(lower) {
		matched := false
		for _, word := range c.segDict {
			if strings.HasPrefix(lower[i:], word) {
				parts = append(parts, text[i:i+len(word)])
				i += len(word)
				matched = true
				break
			}
		}
		if !matched {
			parts = append(parts, text[i:i+1])
			i++
		}
	}

	return strings.TrimSpace(wsRunRE.ReplaceAllString(strings.Join(parts, " "), " "))
}
