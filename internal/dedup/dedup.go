// Package dedup collapses message records that appear verbatim in more than
// one source document into a single canonical record carrying the full list
// of source documents.
package dedup

import (
	"strings"

	"github.com/mailsift/mailsift/internal/textdoc"
)

// contentKey identifies "the same message" across source documents. Record
// IDs are source-qualified, so the key is built from content alone:
// timestamp, case-folded sender and primary recipient, normalized subject,
// and the first 50 characters of the body.
type contentKey struct {
	timestamp int64
	sender    string
	recipient string
	subject   string
	body      string
}

func keyFor(r *textdoc.MessageRecord) contentKey {
	return contentKey{
		timestamp: r.Timestamp,
		sender:    strings.ToLower(strings.TrimSpace(r.Sender)),
		recipient: strings.ToLower(strings.TrimSpace(r.Recipient)),
		subject:   strings.ToLower(strings.TrimSpace(r.SubjectClean)),
		body:      textdoc.BodyPrefix(strings.TrimSpace(r.Body), 50),
	}
}

// Deduplicate collapses cross-document duplicates in arrival order. The
// first occurrence becomes the canonical record and its metadata wins; every
// later occurrence contributes only its source document, appended to the
// canonical record's DuplicateSources, and is dropped.
//
// Canonical records that are self-mailed (the tracked identity is both
// sender and recipient, an artifact of quote misattribution) have their
// recipient coerced to the unknown sentinel.
func Deduplicate(records []*textdoc.MessageRecord) []*textdoc.MessageRecord {
	seen := make(map[contentKey]*textdoc.MessageRecord, len(records))
	out := make([]*textdoc.MessageRecord, 0, len(records))

	for _, r := range records {
		k := keyFor(r)
		if canon, ok := seen[k]; ok {
			if r.SourceDocument != "" && !hasSource(canon, r.SourceDocument) {
				canon.DuplicateSources = append(canon.DuplicateSources, r.SourceDocument)
			}
			continue
		}
		r.DuplicateSources = []string{r.SourceDocument}
		coerceSelfMail(r)
		seen[k] = r
		out = append(out, r)
	}
	return out
}

func hasSource(r *textdoc.MessageRecord, source string) bool {
	for _, s := range r.DuplicateSources {
		if s == source {
			return true
		}
	}
	return false
}

// coerceSelfMail rewrites records where the tracked identity appears as
// both sender and recipient. These come from quoted replies where the
// quoting party's address leaks into both header fields; the recipient side
// is the unreliable one.
func coerceSelfMail(r *textdoc.MessageRecord) {
	if !r.TargetSender || !r.TargetRecipient {
		return
	}
	r.Recipient = textdoc.UnknownRecipient
	r.Recipients = []string{textdoc.UnknownRecipient}
	r.CC = nil
	r.TargetRecipient = false
}
