// Package textdoc defines the shared data model for reconstructed
// conversations: message records extracted from OCR-degraded document
// exports, the threads they are grouped into, and corpus-level summaries.
//
// Records are created once per extraction pass and are immutable except for
// the normalization and deduplication updates applied in a single post-pass
// (identity re-canonicalization, duplicate-source accumulation).
package textdoc

import (
	"crypto/sha256"
	"fmt"
)

// UnknownRecipient is the sentinel used when no recipient could be resolved.
// It is a valid, retained value; only an unresolvable sender drops a record.
const UnknownRecipient = "Unknown Recipient"

// Format identifies which extractor produced a record.
type Format string

const (
	// FormatNone marks a document no extractor recognizes. Counted as
	// "other document", never attached to a retained record.
	FormatNone Format = ""

	// FormatTraditional is the header-block export (From:/Sent:/To:/Subject:).
	FormatTraditional Format = "traditional"

	// FormatMessage is the delimited-message-block export (GUID:/Message:/Sender:/Time:).
	FormatMessage Format = "message"

	// FormatChat is a multi-party chat transcript embedded in a header-block
	// document whose From line names multiple senders.
	FormatChat Format = "chat"
)

// MessageRecord is one reconstructed message. Field presence is stable:
// optional fields carry omitempty and downstream rendering branches on it.
type MessageRecord struct {
	ID   string `json:"id"`
	GUID string `json:"guid,omitempty"`

	Format Format `json:"format"`

	// Sender is the canonical identity: a validated, case-folded email
	// address, or a cleaned display name when no valid address was
	// recoverable. Never empty for a retained record.
	Sender     string `json:"sender"`
	SenderName string `json:"sender_name,omitempty"`

	// Recipient is the primary recipient; Recipients carries the full To
	// list and CC the carbon-copy list. An unresolvable recipient is the
	// UnknownRecipient sentinel, not an empty string.
	Recipient  string   `json:"recipient"`
	Recipients []string `json:"recipients"`
	CC         []string `json:"cc,omitempty"`

	SubjectRaw   string `json:"subject_raw,omitempty"`
	SubjectClean string `json:"subject_clean"`
	ReplyDepth   int    `json:"reply_depth"`
	IsForward    bool   `json:"is_forward"`

	// Timestamp is Unix epoch seconds; 0 means the date string could not be
	// parsed. Such records sort last and are excluded from date-range
	// statistics. RawDate preserves the original string for display.
	Timestamp int64  `json:"timestamp"`
	Date      string `json:"date,omitempty"`
	RawDate   string `json:"raw_date,omitempty"`

	// Body is the cleaned, de-quoted message text; may be empty.
	// Disclaimer holds the canonical boilerplate text when one was detected
	// and removed, else it is absent from the JSON encoding.
	Body       string `json:"body"`
	Disclaimer string `json:"disclaimer,omitempty"`

	Importance string `json:"importance,omitempty"`
	Flags      string `json:"flags,omitempty"`

	SourceDocument string `json:"source_document"`

	// IsEmbedded marks a record recovered from inside another message's
	// body (quoted reply or forward).
	IsEmbedded bool `json:"is_embedded"`

	// DuplicateSources lists every source document found to contain this
	// exact message. Populated by deduplication; a unique record carries a
	// single-element list.
	DuplicateSources []string `json:"duplicate_sources"`

	// Derived flags against the tracked target identity and the associate
	// name list. Downstream statistics only.
	TargetSender       bool     `json:"target_sender"`
	TargetRecipient    bool     `json:"target_recipient"`
	AssociateSender    bool     `json:"associate_sender"`
	AssociateRecipient bool     `json:"associate_recipient"`
	AssociateNames     []string `json:"associate_names,omitempty"`

	Irrelevant bool `json:"irrelevant"`
}

// Thread is a set of records believed to belong to one conversation.
// Threads are created during the single reconstruction pass and are never
// merged or split afterwards.
type Thread struct {
	ID           string           `json:"id"`
	Subject      string           `json:"subject"`
	Participants []string         `json:"participants"`
	Emails       []*MessageRecord `json:"emails"`

	FirstTimestamp int64 `json:"first_timestamp"`
	LastTimestamp  int64 `json:"last_timestamp"`

	HasTarget bool `json:"has_target"`
}

// RecordID derives a stable content identifier from the extraction-time
// fields plus source provenance. Including source document and block
// position means the same quoted text re-extracted from a second file gets
// its own ID; cross-file duplicate collapse happens later on the composite
// dedup key, not here.
func RecordID(sender, recipient, rawDate, subject, sourceDoc string, position int) string {
	h := sha256.New()
	for _, part := range []string{sender, recipient, rawDate, subject, sourceDoc} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	fmt.Fprintf(h, "%d", position)
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// BodyPrefix returns the first n characters of the body, used as the tail of
// the composite dedup key.
func BodyPrefix(body string, n int) string {
	runes := []rune(body)
	if len(runes) <= n {
		return body
	}
	return string(runes[:n])
}
