package parse

import (
	"regexp"
	"strings"

	"github.com/mailsift/mailsift/internal/textdoc"
)

var (
	formalHeaderRE = regexp.MustCompile(`(?:^|\n)From:\s*(.+?)\s*\n(?:Sent|Date):\s*(.+?)\s*\nTo:\s*([^\n]+)(?:\s*\nSubject:[ \t]*([^\n]*))?`)

	gmailHeadRE   = regexp.MustCompile(`(?:^|\n)On\s+([A-Z][a-z]{2},\s+[A-Z][a-z]{2,}\s+\d{1,2},\s+\d{4})\s+at\s+([\d:]+\s+[AP]M)\s*,?\s*`)
	gmailSenderRE = regexp.MustCompile(`(?s)^(.*?)(?:\s+wrote:)?\s*[:\n]\s*`)
	gmailStopRE   = regexp.MustCompile(`\n(?:From:|On\s+[A-Z][a-z]{2},)`)

	angleEmailRE = regexp.MustCompile(`<([^>]+)>`)
)

const gmailBodyCap = 500

// extractEmbedded recovers quoted or forwarded messages from a body: formal
// repeated header blocks first, then Gmail-style "On <date> at <time>,
// <sender> wrote:" citations. Runs on the raw body, before cleanup removes
// the header lines it keys on.
func (e *Engine) extractEmbedded(body, sourceDoc string) []*textdoc.MessageRecord {
	var out []*textdoc.MessageRecord

	for _, m := range formalHeaderRE.FindAllStringSubmatchIndex(body, -1) {
		fromAddr := strings.TrimSpace(body[m[2]:m[3]])
		rawDate := strings.TrimSpace(body[m[4]:m[5]])
		toAddr := strings.TrimSpace(body[m[6]:m[7]])
		subject := ""
		if m[8] >= 0 {
			subject = strings.TrimSpace(body[m[8]:m[9]])
		}

		embBody := body[m[1]:]
		end := len(embBody)
		if next := strings.Index(embBody, "\nFrom:"); next > 0 && next < end {
			end = next
		}
		if next := strings.Index(embBody, "\nOn "); next > 0 && next < end {
			window := embBody[next:]
			if len(window) > 200 {
				window = window[:200]
			}
			if strings.Contains(window, " wrote:") {
				end = next
			}
		}
		embBody = strings.TrimSpace(embBody[:end])

		fromEmail := e.norm.Canonicalize(fromAddr)
		if len(fromEmail) < 2 {
			continue
		}
		toEmail := e.norm.Canonicalize(toAddr)
		if toEmail == "" {
			toEmail = textdoc.UnknownRecipient
		}
		var toList []string
		if toAddr != "" {
			toList = e.norm.Recipients(toAddr)
		}

		processed := e.cleaner.RepairURLs(embBody)
		processed, disclaimer := e.cleaner.ExtractDisclaimer(processed)
		processed = e.cleaner.StripQuoted(processed)

		out = append(out, e.embeddedRecord(fromEmail, toEmail, toList, rawDate, subject, processed, disclaimer, sourceDoc))
	}

	out = append(out, e.extractGmailCitations(body, sourceDoc)...)
	return out
}

func (e *Engine) extractGmailCitations(body, sourceDoc string) []*textdoc.MessageRecord {
	var out []*textdoc.MessageRecord

	rest := body
	for {
		m := gmailHeadRE.FindStringSubmatchIndex(rest)
		if m == nil {
			break
		}
		datePart := strings.TrimSpace(rest[m[2]:m[3]])
		timePart := strings.TrimSpace(rest[m[4]:m[5]])
		tail := rest[m[1]:]

		sm := gmailSenderRE.FindStringSubmatchIndex(tail)
		if sm == nil {
			rest = rest[m[1]:]
			continue
		}
		senderPart := strings.TrimSpace(tail[sm[2]:sm[3]])
		quoted := tail[sm[1]:]

		// The citation body runs to the next header-shaped line, the next
		// citation, or a blank line.
		end := len(quoted)
		if loc := gmailStopRE.FindStringIndex(quoted); loc != nil && loc[0] < end {
			end = loc[0]
		}
		if blank := strings.Index(quoted, "\n\n"); blank >= 0 && blank < end {
			end = blank
		}
		quotedBody := strings.TrimSpace(quoted[:end])

		rest = quoted[end:]

		fromEmail := e.gmailSender(senderPart)
		if len(fromEmail) < 2 || quotedBody == "" {
			continue
		}
		quotedBody = textdoc.BodyPrefix(quotedBody, gmailBodyCap)

		rawDate := datePart + " at " + timePart
		out = append(out, e.embeddedRecord(fromEmail, textdoc.UnknownRecipient, nil, rawDate, "", quotedBody, "", sourceDoc))
	}
	return out
}

// gmailSender resolves the sender blob of a citation: "Name <addr>",
// "Name < >", or a bare name.
func (e *Engine) gmailSender(senderPart string) string {
	if m := angleEmailRE.FindStringSubmatchIndex(senderPart); m != nil {
		addr := strings.TrimSpace(senderPart[m[2]:m[3]])
		if strings.Contains(addr, "@") {
			return e.norm.Canonicalize(addr)
		}
		return e.norm.Canonicalize(strings.TrimSpace(senderPart[:m[0]]))
	}
	return e.norm.Canonicalize(senderPart)
}

func (e *Engine) embeddedRecord(from, to string, toList []string, rawDate, subject, body, disclaimer, sourceDoc string) *textdoc.MessageRecord {
	rec := &textdoc.MessageRecord{
		Format:         textdoc.FormatTraditional,
		Sender:         from,
		Recipient:      to,
		Recipients:     toList,
		SubjectRaw:     subject,
		SubjectClean:   subject,
		RawDate:        rawDate,
		Body:           body,
		Disclaimer:     disclaimer,
		SourceDocument: sourceDoc,
		IsEmbedded:     true,
	}
	if parsed := ParseDatetime(rawDate); parsed != nil {
		rec.Timestamp = parsed.Timestamp
		rec.Date = parsed.ISO
	} else {
		rec.Date = rawDate
	}
	return rec
}
