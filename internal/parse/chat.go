package parse

import (
	"regexp"
	"strings"

	"github.com/mailsift/mailsift/internal/textdoc"
)

var (
	chatBodyRE      = regexp.MustCompile(`(?s)Subject:.*?\n(.*)`)
	chatTimestampRE = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}\s+\d{1,2}:\d{2}:\d{2}\s+[AP]M$`)

	phoneNumberRE = regexp.MustCompile(`^\+?\d{10,}$`)
	dateStartRE   = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`)
	mostlyDigitRE = regexp.MustCompile(`^[\d()\s\-]+$`)
	hasAlnumRE    = regexp.MustCompile(`[a-zA-Z0-9]`)
)

// parseChat extracts per-message records from a chat transcript. Timestamp
// lines are the anchors: the line before each is the sender, the lines
// after it up to the next sender line are the message.
func (e *Engine) parseChat(content, sourceDoc string) []*textdoc.MessageRecord {
	bm := chatBodyRE.FindStringSubmatch(content)
	if bm == nil {
		return nil
	}

	var lines []string
	for _, line := range strings.Split(bm[1], "\n") {
		line = strings.TrimSpace(line)
		if line == "" || e.containsBoundaryMarker(line) {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return nil
	}

	var tsIdx []int
	for i, line := range lines {
		if chatTimestampRE.MatchString(line) {
			tsIdx = append(tsIdx, i)
		}
	}
	if len(tsIdx) == 0 {
		return nil
	}

	var records []*textdoc.MessageRecord
	for i, ts := range tsIdx {
		if ts == 0 {
			continue
		}
		sender := lines[ts-1]
		timestamp := lines[ts]
		if !validSenderName(sender) {
			continue
		}

		nextSender := len(lines)
		if i+1 < len(tsIdx) {
			nextSender = tsIdx[i+1] - 1
		}
		if nextSender < ts+1 {
			nextSender = ts + 1
		}
		message := strings.TrimSpace(strings.Join(lines[ts+1:nextSender], " "))
		if message == "" {
			continue
		}

		parsed := ParseDatetime(timestamp)

		senderEmail, senderName := e.norm.SplitAddress(sender)
		if senderEmail == "" {
			senderEmail = e.norm.NormalizeField(sender)
		}
		if senderEmail == "" {
			continue
		}

		recipient := e.recipientFromBody(message)

		processed := e.cleaner.RepairURLs(message)
		processed, disclaimer := e.cleaner.ExtractDisclaimer(processed)
		processed = e.cleaner.StripQuoted(processed)

		rec := &textdoc.MessageRecord{
			ID:             textdoc.RecordID(senderEmail, recipient, timestamp, textdoc.BodyPrefix(message, 50), sourceDoc, i),
			Format:         textdoc.FormatChat,
			Sender:         senderEmail,
			SenderName:     senderName,
			Recipient:      recipient,
			Recipients:     []string{recipient},
			RawDate:        timestamp,
			Body:           processed,
			Disclaimer:     disclaimer,
			SourceDocument: sourceDoc,
		}
		if parsed != nil {
			rec.Timestamp = parsed.Timestamp
			rec.Date = parsed.ISO
		} else {
			rec.Date = timestamp
		}
		rec.TargetSender = e.norm.IsTargetEmail(senderEmail)
		rec.Irrelevant = e.norm.IsIrrelevant(rec)
		records = append(records, rec)
	}

	return records
}

func (e *Engine) containsBoundaryMarker(line string) bool {
	for _, marker := range e.tables.BoundaryMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

// validSenderName rejects lines that anchor position says should be a
// sender but are clearly artifacts: phone numbers, timestamps, document
// markers, or punctuation runs.
func validSenderName(name string) bool {
	if len(name) < 2 {
		return false
	}
	if phoneNumberRE.MatchString(name) {
		return false
	}
	if strings.HasPrefix(name, "Time:") {
		return false
	}
	upper := strings.ToUpper(name)
	if strings.Contains(upper, "HOUSE") || strings.Contains(upper, "OVERSIGHT") {
		return false
	}
	if dateStartRE.MatchString(name) {
		return false
	}
	if !hasAlnumRE.MatchString(name) {
		return false
	}
	if mostlyDigitRE.MatchString(name) {
		return false
	}
	return true
}
