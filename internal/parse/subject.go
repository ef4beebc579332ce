package parse

import (
	"regexp"
	"strings"
)

var (
	replyPrefixRE   = regexp.MustCompile(`(?i)^\s*re:\s*`)
	forwardPrefixRE = regexp.MustCompile(`(?i)^\s*(?:fwd?|fw):\s*`)
)

// SubjectMeta is a subject line with its Re:/Fwd: chain peeled off.
type SubjectMeta struct {
	Clean      string
	ReplyDepth int
	IsForward  bool
}

// ParseSubject counts and strips reply and forward prefixes. "Re: Fwd: Re:
// dinner" yields depth 2, forward true, clean "dinner".
func ParseSubject(subject string) SubjectMeta {
	if subject == "" {
		return SubjectMeta{}
	}

	meta := SubjectMeta{}
	for {
		if replyPrefixRE.MatchString(subject) {
			subject = replyPrefixRE.ReplaceAllString(subject, "")
			meta.ReplyDepth++
		} else if forwardPrefixRE.MatchString(subject) {
			subject = forwardPrefixRE.ReplaceAllString(subject, "")
			meta.IsForward = true
		} else {
			break
		}
	}
	meta.Clean = strings.TrimSpace(subject)
	return meta
}
