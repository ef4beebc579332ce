package identity

import (
	"sort"
	"strings"

	"github.com/mailsift/mailsift/internal/textdoc"
)

// AliasTable maps a lowercased display name to the address it was observed
// alongside. It is built in a first pass over all parsed records and applied
// in a second pass, so canonicalization never depends on document order.
type AliasTable map[string]string

// BuildAliasTable scans records where both a sender name and a sender
// address were recovered and maps the name to the address. Later
// observations win, matching a simple overwrite on re-observation.
func BuildAliasTable(records []*textdoc.MessageRecord) AliasTable {
	aliases := make(AliasTable)
	for _, r := range records {
		if r.SenderName == "" || !strings.Contains(r.Sender, "@") {
			continue
		}
		aliases[strings.ToLower(strings.TrimSpace(r.SenderName))] = r.Sender
	}
	return aliases
}

// Reconcile applies the alias table and correction tables to every identity
// field of every record, then recomputes the target, associate, and
// irrelevance flags from the canonical values. Records are updated in
// place.
func Reconcile(records []*textdoc.MessageRecord, n *Normalizer, aliases AliasTable) {
	for _, r := range records {
		r.Sender = n.CanonicalizeWith(r.Sender, aliases)
		if r.Recipient != "" {
			r.Recipient = n.CanonicalizeWith(r.Recipient, aliases)
		}
		for i, rcpt := range r.Recipients {
			r.Recipients[i] = n.CanonicalizeWith(rcpt, aliases)
		}
		for i, cc := range r.CC {
			r.CC[i] = n.CanonicalizeWith(cc, aliases)
		}

		all := make([]string, 0, len(r.Recipients)+len(r.CC))
		all = append(all, r.Recipients...)
		all = append(all, r.CC...)

		r.TargetSender = n.IsTarget(r.Sender)
		r.TargetRecipient = n.IsTarget(r.Recipient) || anyTarget(n, all)

		r.AssociateSender = n.IsAssociateName(r.Sender)
		r.AssociateRecipient = n.IsAssociateName(r.Recipient) || anyAssociate(n, all)
		r.AssociateNames = collectAssociates(n, r, all)

		r.Irrelevant = n.IsIrrelevant(r)
	}
}

func anyTarget(n *Normalizer, ids []string) bool {
	for _, id := range ids {
		if n.IsTarget(id) {
			return true
		}
	}
	return false
}

func anyAssociate(n *Normalizer, ids []string) bool {
	for _, id := range ids {
		if n.IsAssociateName(id) {
			return true
		}
	}
	return false
}

func collectAssociates(n *Normalizer, r *textdoc.MessageRecord, all []string) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(found []string) {
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				names = append(names, f)
			}
		}
	}
	add(n.AssociatesIn(r.Sender))
	add(n.AssociatesIn(r.Recipient))
	for _, id := range all {
		add(n.AssociatesIn(id))
	}
	sort.Strings(names)
	return names
}

// IsIrrelevant flags obvious spam only. Fragmentary or ambiguous records
// stay relevant.
func (n *Normalizer) IsIrrelevant(r *textdoc.MessageRecord) bool {
	from := strings.ToLower(r.Sender)
	for _, spam := range n.tables.SpamSenders {
		if strings.Contains(from, spam) {
			return true
		}
	}
	combined := strings.ToLower(r.SubjectClean) + " " + strings.ToLower(r.Body) + " " + from
	if strings.Contains(combined, "unsubscribe") &&
		(strings.Contains(combined, "newsletter") || strings.Contains(combined, "mailing list")) {
		return true
	}
	return false
}
