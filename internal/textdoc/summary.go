package textdoc

import (
	"sort"
	"time"
)

// IdentityCount pairs a canonical identity with how many records carry it.
type IdentityCount struct {
	Identity string `json:"identity"`
	Count    int    `json:"count"`
}

// DateRange bounds the dated records of a corpus.
type DateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// CorpusSummary is the record-level statistics block attached to exports.
// Date range and per-identity counts exclude nothing except the
// zero-timestamp sentinel (range) and the unknown-recipient sentinel
// (recipient counts).
type CorpusSummary struct {
	TotalRecords     int              `json:"total_records"`
	TargetSent       int              `json:"target_sent"`
	TargetReceived   int              `json:"target_received"`
	UniqueSenders    int              `json:"unique_senders"`
	UniqueRecipients int              `json:"unique_recipients"`
	SenderCounts     []IdentityCount  `json:"sender_counts"`
	RecipientCounts  []IdentityCount  `json:"recipient_counts"`
	ByFormat         map[Format]int   `json:"by_format"`
	DateRange        *DateRange       `json:"date_range,omitempty"`
}

// Summarize computes corpus statistics over a record set.
func Summarize(records []*MessageRecord) *CorpusSummary {
	s := &CorpusSummary{
		TotalRecords: len(records),
		ByFormat:     make(map[Format]int),
	}

	senders := make(map[string]int)
	recipients := make(map[string]int)
	var minTS, maxTS int64

	for _, r := range records {
		if r.TargetSender {
			s.TargetSent++
		}
		if r.TargetRecipient {
			s.TargetReceived++
		}
		s.ByFormat[r.Format]++

		if r.Sender != "" {
			senders[r.Sender]++
		}
		if len(r.Recipients) > 0 {
			for _, rec := range r.Recipients {
				if rec != "" && rec != UnknownRecipient {
					recipients[rec]++
				}
			}
		} else if r.Recipient != "" && r.Recipient != UnknownRecipient {
			recipients[r.Recipient]++
		}

		if r.Timestamp > 0 {
			if minTS == 0 || r.Timestamp < minTS {
				minTS = r.Timestamp
			}
			if r.Timestamp > maxTS {
				maxTS = r.Timestamp
			}
		}
	}

	s.UniqueSenders = len(senders)
	s.UniqueRecipients = len(recipients)
	s.SenderCounts = sortedCounts(senders)
	s.RecipientCounts = sortedCounts(recipients)

	if minTS > 0 {
		s.DateRange = &DateRange{
			Earliest: time.Unix(minTS, 0).UTC().Format("2006-01-02"),
			Latest:   time.Unix(maxTS, 0).UTC().Format("2006-01-02"),
		}
	}
	return s
}

// sortedCounts returns counts descending, identity ascending on ties, so
// export output is stable.
func sortedCounts(m map[string]int) []IdentityCount {
	out := make([]IdentityCount, 0, len(m))
	for id, n := range m {
		out = append(out, IdentityCount{Identity: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Identity < out[j].Identity
	})
	return out
}
