package parse

import (
	"regexp"
	"strings"

	"github.com/mailsift/mailsift/internal/textdoc"
)

// recipientPattern pairs a quoted-content pattern with whether its second
// capture group is an email address.
type recipientPattern struct {
	re       *regexp.Regexp
	hasEmail bool
}

// Ordered by specificity. The angle-bracket classes accept the unicode
// variants OCR substitutes for < and >.
var quotedRecipientPatterns = []recipientPattern{
	{regexp.MustCompile(`(?i)On\s+[^,]+,\s+([^<‹\n]+?)\s*[<‹〈]([^>›〉@]+@[^>›〉]+)[>›〉]\s+wrote:`), true},
	{regexp.MustCompile(`(?i)[>\s]*From:\s*([^<‹\n]+?)\s*[<‹〈]([^>›〉@]+@[^>›〉]+)[>›〉]`), true},
	{regexp.MustCompile(`(?i)Original Message[^\n]*\n[>\s]*From:\s*([^<‹\n]+?)\s*[<‹〈]([^>›〉@]+@[^>›〉]+)[>›〉]`), true},
	{regexp.MustCompile(`(?im)[>\s]+From:\s*([A-Z][A-Za-z\s.]+?)\s*(?:\n|\z)`), false},
	{regexp.MustCompile(`(?i)On\s+[A-Z][a-z]+,\s+[A-Z][a-z]+\s+\d+,\s+\d{4}[^,]+,\s+([A-Za-z][A-Za-z\s.]+?)\s+wrote:`), false},
	{regexp.MustCompile(`(?im)^From:\s*([A-Z][A-Za-z\s.]+?)\s*(?:\n|[<‹])`), false},
}

var forwardToPatterns = []recipientPattern{
	{regexp.MustCompile(`(?im)^To:\s*([^<‹\n]+?)\s*[<‹〈]([^>›〉@]+@[^>›〉]+)[>›〉]`), true},
	{regexp.MustCompile(`(?im)^To:\s*([A-Za-z][A-Za-z\s.]+?)(?:\n|\z)`), false},
}

var (
	forwardMarkerREs = []*regexp.Regexp{
		regexp.MustCompile(`(?i)[-\s]*Forwarded [Mm]essage[-\s]*`),
		regexp.MustCompile(`(?i)Begin forwarded message:`),
		regexp.MustCompile(`(?i)Fwd:`),
		regexp.MustCompile(`(?i)FW:`),
	}

	angleEdgeRE = regexp.MustCompile(`^[>\s]+|[>\s]+$`)

	dearLineRE = regexp.MustCompile(`^dear\s+[a-z\s]+[—\-:]?\s*$`)
)

var greetings = []string{
	"dear", "hi", "hello", "hey", "greetings",
	"good morning", "good afternoon", "good evening",
	"to whom it may concern", "ladies and gentlemen",
}

// recipientFromBody infers the recipient from quoted content when the To
// header was absent or unreadable. Forwarded messages are checked first:
// there the top To: line names who the message was forwarded to.
func (e *Engine) recipientFromBody(body string) string {
	if body == "" {
		return textdoc.UnknownRecipient
	}

	head := body
	if len(head) > 500 {
		head = head[:500]
	}
	isForward := false
	for _, re := range forwardMarkerREs {
		if re.MatchString(head) {
			isForward = true
			break
		}
	}

	if isForward {
		window := body
		if len(window) > 1000 {
			window = window[:1000]
		}
		for _, p := range forwardToPatterns {
			m := p.re.FindStringSubmatch(window)
			if m == nil {
				continue
			}
			if p.hasEmail {
				email := strings.TrimSpace(m[2])
				if e.norm.ValidEmail(email) {
					return e.norm.NormalizeEmail(email)
				}
			} else {
				name := e.norm.NormalizeField(strings.TrimSpace(m[1]))
				if name != "" && !isGreeting(name) && len(name) > 2 {
					return name
				}
			}
		}
	}

	for _, p := range quotedRecipientPatterns {
		m := p.re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		if p.hasEmail {
			email := strings.TrimSpace(m[2])
			if e.norm.ValidEmail(email) {
				return e.norm.NormalizeEmail(email)
			}
		}

		name := angleEdgeRE.ReplaceAllString(strings.TrimSpace(m[1]), "")
		name = e.norm.NormalizeField(name)
		if name == "" || isGreeting(name) {
			continue
		}
		switch strings.ToLower(name) {
		case "[redacted]", "redacted", "-":
			continue
		}
		if len(name) <= 2 {
			continue
		}
		if email, _ := e.norm.SplitAddress(name); email != "" {
			return email
		}
		return name
	}

	return textdoc.UnknownRecipient
}

func isGreeting(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, g := range greetings {
		if strings.HasPrefix(lower, g) {
			return true
		}
	}
	return dearLineRE.MatchString(lower)
}
