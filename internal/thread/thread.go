// Package thread groups deduplicated message records into conversation
// threads. The reconstruction is a single greedy pass over records sorted
// by timestamp: each record either joins the best-scoring existing thread
// or founds a new one. Threads are never merged or split afterwards, so
// the clustering is order-dependent and heuristic, not optimal.
package thread

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/mailsift/mailsift/internal/textdoc"
)

// matchThreshold is the minimum similarity score for a record to join an
// existing thread instead of founding a new one.
const matchThreshold = 50

var (
	subjectPrefixRE = regexp.MustCompile(`^(re|fwd|fw):\s*`)
	whitespaceRE    = regexp.MustCompile(`\s+`)
)

// normalizeSubject folds a subject line for comparison: lowercase, one
// leading reply/forward prefix removed, whitespace collapsed.
func normalizeSubject(subject string) string {
	if subject == "" {
		return ""
	}
	s := strings.ToLower(subject)
	s = subjectPrefixRE.ReplaceAllString(s, "")
	s = whitespaceRE.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// group is a thread under construction. Participants live in a set until
// finalization; emails accumulate in scan order, which is timestamp order.
type group struct {
	thread       *textdoc.Thread
	participants map[string]struct{}
}

// Build assigns records to conversation threads. Records with a zero
// timestamp cannot be placed on a timeline and are left unthreaded. The
// input is expected to be deduplicated already; Build does not collapse
// duplicates itself.
func Build(records []*textdoc.MessageRecord) []*textdoc.Thread {
	dated := make([]*textdoc.MessageRecord, 0, len(records))
	for _, r := range records {
		if r.Timestamp > 0 {
			dated = append(dated, r)
		}
	}
	sort.SliceStable(dated, func(i, j int) bool {
		return dated[i].Timestamp < dated[j].Timestamp
	})

	var groups []*group
	for _, r := range dated {
		if g := findMatch(r, groups); g != nil {
			g.thread.Emails = append(g.thread.Emails, r)
			addParticipant(g, r.Sender)
			addParticipant(g, r.Recipient)
			continue
		}
		g := &group{
			thread: &textdoc.Thread{
				ID:        fmt.Sprintf("thread_%d", len(groups)),
				Subject:   r.SubjectRaw,
				Emails:    []*textdoc.MessageRecord{r},
				HasTarget: r.TargetSender || r.TargetRecipient,
			},
			participants: make(map[string]struct{}),
		}
		addParticipant(g, r.Sender)
		addParticipant(g, r.Recipient)
		groups = append(groups, g)
	}

	threads := make([]*textdoc.Thread, 0, len(groups))
	for _, g := range groups {
		t := g.thread
		t.Participants = make([]string, 0, len(g.participants))
		for p := range g.participants {
			t.Participants = append(t.Participants, p)
		}
		sort.Strings(t.Participants)

		t.FirstTimestamp = t.Emails[0].Timestamp
		t.LastTimestamp = t.Emails[0].Timestamp
		for _, e := range t.Emails[1:] {
			if e.Timestamp < t.FirstTimestamp {
				t.FirstTimestamp = e.Timestamp
			}
			if e.Timestamp > t.LastTimestamp {
				t.LastTimestamp = e.Timestamp
			}
		}
		threads = append(threads, t)
	}

	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].LastTimestamp > threads[j].LastTimestamp
	})
	return threads
}

func addParticipant(g *group, identity string) {
	if identity == "" {
		return
	}
	g.participants[identity] = struct{}{}
}

// findMatch returns the best-scoring existing thread for a record, or nil
// when no thread reaches the threshold. Ties go to the earlier thread.
func findMatch(r *textdoc.MessageRecord, groups []*group) *group {
	search := r.SubjectClean
	if search == "" {
		search = r.SubjectRaw
	}

	var best *group
	bestScore := 0
	for _, g := range groups {
		if s := score(r, search, g); s > bestScore {
			bestScore = s
			best = g
		}
	}
	if bestScore >= matchThreshold {
		return best
	}
	return nil
}

// score rates how plausibly a record continues a thread. The weights favor
// strong structural signals (exact subject, sender/recipient reversal)
// over soft ones (lexical similarity, recency), with a penalty for
// forwards, which usually start a new conversation.
func score(r *textdoc.MessageRecord, searchSubject string, g *group) int {
	s := 0

	if r.ReplyDepth > 0 {
		s += 20
	}

	if searchSubject != "" && g.thread.Subject != "" {
		ns := normalizeSubject(searchSubject)
		nt := normalizeSubject(g.thread.Subject)
		switch {
		case ns == nt:
			s += 60
		case strings.Contains(nt, ns) || strings.Contains(ns, nt):
			s += 35
		default:
			if ratio := similarity(ns, nt); ratio > 0.7 {
				s += int(ratio * 25)
			}
		}
	}

	if _, ok := g.participants[r.Sender]; ok {
		s += 25
	} else if _, ok := g.participants[r.Recipient]; ok {
		s += 25
	}

	emails := g.thread.Emails
	if len(emails) > 0 {
		last := emails[len(emails)-1]
		if r.Sender == last.Recipient && r.Recipient == last.Sender {
			s += 50
		}
		if r.ReplyDepth == last.ReplyDepth+1 {
			s += 15
		}
		if r.Timestamp > 0 && last.Timestamp > 0 {
			diff := r.Timestamp - last.Timestamp
			if diff < 0 {
				diff = -diff
			}
			days := float64(diff) / 86400
			switch {
			case days < 1:
				s += 15
			case days < 7:
				s += 10
			case days < 30:
				s += 5
			}
		}
	}

	if r.IsForward {
		s -= 10
	}
	return s
}

// ByParticipant returns the threads a given identity appears in.
func ByParticipant(threads []*textdoc.Thread, identity string) []*textdoc.Thread {
	var out []*textdoc.Thread
	for _, t := range threads {
		for _, p := range t.Participants {
			if p == identity {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

// TargetThreads returns only the threads whose founding record involved
// the tracked identity.
func TargetThreads(threads []*textdoc.Thread) []*textdoc.Thread {
	var out []*textdoc.Thread
	for _, t := range threads {
		if t.HasTarget {
			out = append(out, t)
		}
	}
	return out
}
