package parse

import (
	"regexp"

	"github.com/mailsift/mailsift/internal/textdoc"
)

var (
	fromHeaderRE    = regexp.MustCompile(`(?m)^From:\s*`)
	sentHeadRE      = regexp.MustCompile(`(?m)^Sent:\s*`)
	dateHeadRE      = regexp.MustCompile(`(?m)^Date:\s*`)
	guidHeadRE      = regexp.MustCompile(`(?m)^GUID:\s*`)
	messageHeadRE   = regexp.MustCompile(`(?m)^Message:\s*`)
	senderHeadRE    = regexp.MustCompile(`(?m)^Sender:\s*`)
	multiSendersRE  = regexp.MustCompile(`(?i)From:.*multiple senders`)
)

// Detect classifies a document by the header lines it carries. Traditional
// export wins over message export when both shapes are present; a
// traditional document addressed to multiple senders is a chat transcript.
func Detect(content string) textdoc.Format {
	traditional := fromHeaderRE.MatchString(content) &&
		(sentHeadRE.MatchString(content) || dateHeadRE.MatchString(content))
	if traditional {
		if multiSendersRE.MatchString(content) {
			return textdoc.FormatChat
		}
		return textdoc.FormatTraditional
	}

	if guidHeadRE.MatchString(content) &&
		messageHeadRE.MatchString(content) &&
		senderHeadRE.MatchString(content) {
		return textdoc.FormatMessage
	}

	return textdoc.FormatNone
}
