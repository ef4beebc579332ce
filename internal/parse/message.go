package parse

import (
	"regexp"
	"strings"

	"github.com/mailsift/mailsift/internal/textdoc"
)

var (
	guidLineRE    = regexp.MustCompile(`GUID:\s*([A-F0-9-]+)`)
	messageBodyRE = regexp.MustCompile(`(?s)Message:\s*(.+?)(?:\nSender:|\z)`)
	senderLineRE  = regexp.MustCompile(`Sender:\s*([^\n]+)`)
	timeLineRE    = regexp.MustCompile(`Time:\s*([^\n]+)`)
	flagsLineRE   = regexp.MustCompile(`Flags:\s*([^\n]+)`)

	shortDateRE  = regexp.MustCompile(`^\d{2}/\d{2}/\d{2}`)
	digitsOnlyRE = regexp.MustCompile(`^[\d\s+\-()]+$`)
)

// parseMessage extracts records from a message-block export. Each block
// opens with a GUID line; blocks missing any of the GUID, Message, Sender,
// or Time fields are skipped, not failed.
func (e *Engine) parseMessage(content, sourceDoc string) []*textdoc.MessageRecord {
	blocks := splitGUIDBlocks(content)
	if len(blocks) == 0 {
		return nil
	}

	var records []*textdoc.MessageRecord
	for blockIdx, block := range blocks {
		gm := guidLineRE.FindStringSubmatch(block)
		mm := messageBodyRE.FindStringSubmatch(block)
		sm := senderLineRE.FindStringSubmatch(block)
		tm := timeLineRE.FindStringSubmatch(block)
		if gm == nil || mm == nil || sm == nil || tm == nil {
			continue
		}

		guid := strings.TrimSpace(gm[1])
		message := strings.TrimSpace(mm[1])
		sender := strings.TrimSpace(sm[1])
		timeStr := strings.TrimSpace(tm[1])
		flagStr := ""
		if fm := flagsLineRE.FindStringSubmatch(block); fm != nil {
			flagStr = strings.TrimSpace(fm[1])
		}

		if strings.HasPrefix(sender, "Time:") ||
			shortDateRE.MatchString(sender) ||
			digitsOnlyRE.MatchString(sender) ||
			len(sender) < 2 {
			continue
		}

		senderEmail, senderName := e.norm.SplitAddress(sender)
		if senderEmail == "" {
			senderEmail = e.norm.NormalizeField(sender)
		}
		if senderEmail == "" || strings.HasPrefix(senderEmail, "Time:") {
			continue
		}

		message = e.cleaner.Body(message)
		recipient := e.recipientFromBody(message)
		parsed := ParseDatetime(timeStr)

		processed := e.cleaner.RepairURLs(message)
		processed, disclaimer := e.cleaner.ExtractDisclaimer(processed)
		processed = e.cleaner.StripQuoted(processed)

		rec := &textdoc.MessageRecord{
			ID:             textdoc.RecordID(senderEmail, recipient, timeStr, textdoc.BodyPrefix(message, 50), sourceDoc, blockIdx),
			GUID:           guid,
			Format:         textdoc.FormatMessage,
			Sender:         senderEmail,
			SenderName:     senderName,
			Recipient:      recipient,
			Recipients:     []string{recipient},
			RawDate:        timeStr,
			Body:           processed,
			Disclaimer:     disclaimer,
			Flags:          flagStr,
			SourceDocument: sourceDoc,
		}
		if parsed != nil {
			rec.Timestamp = parsed.Timestamp
			rec.Date = parsed.ISO
		} else {
			rec.Date = timeStr
		}
		rec.TargetSender = e.norm.IsTargetEmail(senderEmail)
		rec.Irrelevant = e.norm.IsIrrelevant(rec)
		records = append(records, rec)
	}

	return records
}

// splitGUIDBlocks cuts the document at each GUID: line, keeping the GUID
// line at the head of its block.
func splitGUIDBlocks(content string) []string {
	locs := guidLineRE.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return nil
	}
	var blocks []string
	for i, loc := range locs {
		end := len(content)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		block := strings.TrimSpace(content[loc[0]:end])
		if block != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}
