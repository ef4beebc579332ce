package clean

import (
	"regexp"
	"strings"
)

// Markers after which everything is quoted or forwarded material.
var quoteMarkerREs = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:^|\n)On\s+[A-Z][a-z]{2},\s+[A-Z][a-z]{2,}\s+\d{1,2},\s+\d{4}\s+at\s+[\d:]+\s+[AP]M`),
	regexp.MustCompile(`(?i)(?:^|\n)From:\s*.+?\s*\n\s*Sent:\s*.+?\s*\n\s*To:`),
	regexp.MustCompile(`(?i)(?:^|\n)-+\s*Original Message\s*-+`),
	regexp.MustCompile(`(?i)(?:^|\n)[<>]\s*wrote:`),
	regexp.MustCompile(`(?i)(?:^|\n)\s*(?:.*?:)?\s*wrote:`),
}

var signatureREs = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(?:^|\n)Sent from my BlackBerry.*`),
	regexp.MustCompile(`(?is)(?:^|\n)Sent from my iPhone.*`),
	regexp.MustCompile(`(?is)(?:^|\n)Sent from my iPad.*`),
	regexp.MustCompile(`(?is)(?:^|\n)Get Outlook for.*`),
	regexp.MustCompile(`(?is)(?:^|\n)Sent from Yahoo Mail.*`),
}

// StripQuoted truncates body at the earliest quote or forward marker and
// drops trailing mobile signatures, leaving only the new content the author
// wrote.
func (c *Cleaner) StripQuoted(body string) string {
	if body == "" {
		return body
	}

	earliest := len(body)
	for _, re := range quoteMarkerREs {
		if loc := re.FindStringIndex(body); loc != nil && loc[0] < earliest {
			earliest = loc[0]
		}
	}
	if earliest < len(body) {
		body = strings.TrimSpace(body[:earliest])
	}

	for _, re := range signatureREs {
		body = re.ReplaceAllString(body, "")
	}
	return strings.TrimSpace(body)
}
