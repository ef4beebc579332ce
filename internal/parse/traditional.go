package parse

import (
	"strings"

	"github.com/mailsift/mailsift/internal/textdoc"
)

var entityDecoder = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"©", "@",
	"&#64;", "@",
)

// parseTraditional extracts the outer message and any embedded quoted
// messages from a header-block document. Returns nil when the required
// From and Sent/Date headers are missing.
func (e *Engine) parseTraditional(content, sourceDoc string) []*textdoc.MessageRecord {
	content = strings.TrimPrefix(content, "\uFEFF")
	content = entityDecoder.Replace(content)

	lines := strings.Split(content, "\n")

	// First occurrence of each header wins; embedded messages repeat the
	// same header names further down.
	var from, to, cc, sent, subject, importance string
	var haveFrom, haveTo, haveCC, haveSent, haveSubject, haveImportance bool
	lastHeaderIdx := 0

	for idx, line := range lines {
		switch {
		case strings.HasPrefix(line, "From:") && !haveFrom:
			from, haveFrom = strings.TrimSpace(line[5:]), true
			lastHeaderIdx = idx
		case strings.HasPrefix(line, "To:") && !haveTo:
			to, haveTo = strings.TrimSpace(line[3:]), true
			lastHeaderIdx = idx
		case (strings.HasPrefix(line, "CC:") || strings.HasPrefix(line, "Cc:")) && !haveCC:
			cc, haveCC = strings.TrimSpace(line[3:]), true
			lastHeaderIdx = idx
		case strings.HasPrefix(line, "Sent:") && !haveSent:
			sent, haveSent = strings.TrimSpace(line[5:]), true
			lastHeaderIdx = idx
		case strings.HasPrefix(line, "Date:") && !haveSent:
			sent, haveSent = strings.TrimSpace(line[5:]), true
			lastHeaderIdx = idx
		case strings.HasPrefix(line, "Subject:") && !haveSubject:
			subject, haveSubject = strings.TrimSpace(line[8:]), true
			lastHeaderIdx = idx
		case strings.HasPrefix(line, "Importance:") && !haveImportance:
			importance, haveImportance = strings.TrimSpace(line[11:]), true
			lastHeaderIdx = idx
		}
	}

	if !haveSent || !haveFrom {
		return nil
	}
	if strings.Contains(strings.ToLower(from), "multiple senders") {
		return nil
	}

	body := e.collectBody(lines, lastHeaderIdx)

	// Embedded messages carry their own From:/To: headers, so recover them
	// before body cleanup strips header-shaped lines.
	embedded := e.extractEmbedded(body, sourceDoc)

	body = e.cleaner.Body(body)

	fromEmail, fromName := e.norm.SplitAddress(from)

	toList := []string{textdoc.UnknownRecipient}
	if to != "" {
		toList = e.norm.Recipients(to)
	}
	var ccList []string
	if cc != "" {
		ccList = e.norm.Recipients(cc)
	}

	toEmail := textdoc.UnknownRecipient
	if len(toList) > 0 {
		toEmail = toList[0]
	}
	if toEmail == textdoc.UnknownRecipient && body != "" {
		if recovered := e.recipientFromBody(body); recovered != textdoc.UnknownRecipient {
			toEmail = recovered
			toList = []string{recovered}
		}
	}

	if fromEmail == "" {
		fromEmail = e.norm.NormalizeField(from)
		fromName = ""
	}
	if fromEmail == "" {
		return nil
	}

	parsed := ParseDatetime(sent)
	meta := ParseSubject(subject)

	processed := e.cleaner.RepairURLs(body)
	processed, disclaimer := e.cleaner.ExtractDisclaimer(processed)
	processed = e.cleaner.StripQuoted(processed)

	rec := &textdoc.MessageRecord{
		ID:             textdoc.RecordID(fromEmail, toEmail, sent, subject, sourceDoc, 0),
		Format:         textdoc.FormatTraditional,
		Sender:         fromEmail,
		SenderName:     fromName,
		Recipient:      toEmail,
		Recipients:     toList,
		CC:             ccList,
		SubjectRaw:     subject,
		SubjectClean:   meta.Clean,
		ReplyDepth:     meta.ReplyDepth,
		IsForward:      meta.IsForward,
		RawDate:        sent,
		Body:           processed,
		Disclaimer:     disclaimer,
		Importance:     importance,
		SourceDocument: sourceDoc,
	}
	if parsed != nil {
		rec.Timestamp = parsed.Timestamp
		rec.Date = parsed.ISO
	} else {
		rec.Date = sent
	}
	e.applyFlags(rec, to)

	records := []*textdoc.MessageRecord{rec}
	for i, emb := range embedded {
		emb.ID = textdoc.RecordID(emb.Sender, emb.Recipient, emb.RawDate, emb.SubjectRaw, sourceDoc, i+1)
		emb.Format = textdoc.FormatTraditional
		emb.SubjectClean = emb.SubjectRaw
		e.applyFlags(emb, "")
		records = append(records, emb)
	}
	return records
}

// collectBody returns the text after the last outer header line. A short
// standalone boundary marker line ends the body; marker text buried inside
// longer lines is document noise handled later.
func (e *Engine) collectBody(lines []string, lastHeaderIdx int) string {
	if lastHeaderIdx == 0 {
		return ""
	}
	var bodyLines []string
	for _, line := range lines[lastHeaderIdx+1:] {
		stripped := strings.TrimSpace(line)
		if stripped != "" && len(stripped) < 50 && e.isBoundaryMarker(stripped) {
			break
		}
		if len(bodyLines) == 0 && stripped == "" {
			continue
		}
		bodyLines = append(bodyLines, line)
	}
	return strings.TrimSpace(strings.Join(bodyLines, "\n"))
}

func (e *Engine) isBoundaryMarker(line string) bool {
	for _, marker := range e.tables.BoundaryMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// applyFlags computes the target, associate, and irrelevance flags from the
// record's current identities. rawTo, when nonempty, is the unparsed To
// field; a quick quote-stripping split over it catches identities the
// structured recipient extraction dropped.
func (e *Engine) applyFlags(r *textdoc.MessageRecord, rawTo string) {
	all := make([]string, 0, len(r.Recipients)+len(r.CC))
	all = append(all, r.Recipients...)
	all = append(all, r.CC...)

	r.TargetSender = e.norm.IsTarget(r.Sender) || e.norm.IsTargetName(r.SenderName)

	targetRcpt := e.norm.IsTarget(r.Recipient)
	for _, id := range all {
		targetRcpt = targetRcpt || e.norm.IsTarget(id)
	}
	for _, id := range splitRawRecipients(rawTo) {
		targetRcpt = targetRcpt || e.norm.IsTarget(id)
	}
	r.TargetRecipient = targetRcpt

	r.AssociateSender = e.norm.IsAssociateName(r.Sender) || e.norm.IsAssociateName(r.SenderName)
	assocRcpt := e.norm.IsAssociateName(r.Recipient)
	for _, id := range all {
		assocRcpt = assocRcpt || e.norm.IsAssociateName(id)
	}
	r.AssociateRecipient = assocRcpt

	seen := make(map[string]bool)
	var names []string
	for _, id := range append([]string{r.Sender, r.SenderName, r.Recipient}, all...) {
		for _, a := range e.norm.AssociatesIn(id) {
			if !seen[a] {
				seen[a] = true
				names = append(names, a)
			}
		}
	}
	r.AssociateNames = names

	r.Irrelevant = e.norm.IsIrrelevant(r)
}

// splitRawRecipients is the permissive fallback split over an unparsed
// recipient field: quotes removed, entries split on ";" and ",".
func splitRawRecipients(field string) []string {
	if field == "" {
		return nil
	}
	field = strings.NewReplacer(`"`, "", "'", "").Replace(field)
	var out []string
	for _, part := range strings.FieldsFunc(field, func(r rune) bool {
		return r == ';' || r == ','
	}) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
