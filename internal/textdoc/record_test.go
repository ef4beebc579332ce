package textdoc

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRecordIDStable(t *testing.T) {
	a := RecordID("jeevacation@gmail.com", "reid@example.com", "6/15/2018 1:47:13 PM", "Dinner", "doc_001.txt", 0)
	b := RecordID("jeevacation@gmail.com", "reid@example.com", "6/15/2018 1:47:13 PM", "Dinner", "doc_001.txt", 0)
	if a != b {
		t.Fatalf("RecordID not deterministic: %s vs %s", a, b)
	}
	if len(a) != 16 {
		t.Errorf("RecordID length = %d, want 16", len(a))
	}
}

func TestRecordIDDistinguishesFields(t *testing.T) {
	base := RecordID("a", "b", "c", "d", "e", 0)
	cases := []string{
		RecordID("x", "b", "c", "d", "e", 0),
		RecordID("a", "x", "c", "d", "e", 0),
		RecordID("a", "b", "c", "d", "x", 0),
		RecordID("a", "b", "c", "d", "e", 1),
		// Field boundaries matter: "ab"+"" must not collide with "a"+"b".
		RecordID("ab", "", "c", "d", "e", 0),
	}
	for i, id := range cases {
		if id == base {
			t.Errorf("case %d collided with base ID", i)
		}
	}
}

func TestBodyPrefix(t *testing.T) {
	if got := BodyPrefix("short", 50); got != "short" {
		t.Errorf("BodyPrefix(short) = %q", got)
	}
	long := strings.Repeat("x", 60)
	if got := BodyPrefix(long, 50); len(got) != 50 {
		t.Errorf("BodyPrefix length = %d, want 50", len(got))
	}
	// Rune-safe: must not split a multibyte character.
	if got := BodyPrefix("ééé", 2); got != "éé" {
		t.Errorf("BodyPrefix(ééé, 2) = %q, want éé", got)
	}
}

func TestRecordJSONFieldPresence(t *testing.T) {
	r := &MessageRecord{
		ID:               "abc",
		Format:           FormatTraditional,
		Sender:           "a@example.com",
		Recipient:        UnknownRecipient,
		Recipients:       []string{UnknownRecipient},
		SubjectClean:     "",
		SourceDocument:   "doc.txt",
		DuplicateSources: []string{"doc.txt"},
	}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)

	// Absent optional fields are omitted entirely.
	for _, absent := range []string{"disclaimer", "guid", "importance", "associate_names"} {
		if strings.Contains(s, `"`+absent+`"`) {
			t.Errorf("empty %s serialized: %s", absent, s)
		}
	}
	// Core fields stay present even when zero-valued.
	for _, present := range []string{"subject_clean", "timestamp", "body", "reply_depth", "duplicate_sources"} {
		if !strings.Contains(s, `"`+present+`"`) {
			t.Errorf("core field %s missing: %s", present, s)
		}
	}
}

func TestSummarize(t *testing.T) {
	records := []*MessageRecord{
		{
			Sender: "jeevacation@gmail.com", Recipient: "reid@example.com",
			Recipients: []string{"reid@example.com", "carol@example.com"},
			Format:     FormatTraditional, Timestamp: 1529070433, TargetSender: true,
		},
		{
			Sender: "reid@example.com", Recipient: "jeevacation@gmail.com",
			Recipients: []string{"jeevacation@gmail.com"},
			Format:     FormatTraditional, Timestamp: 1529156833, TargetRecipient: true,
		},
		{
			Sender: "reid@example.com", Recipient: UnknownRecipient,
			Recipients: []string{UnknownRecipient},
			Format:     FormatChat, Timestamp: 0,
		},
	}

	s := Summarize(records)
	if s.TotalRecords != 3 {
		t.Errorf("TotalRecords = %d, want 3", s.TotalRecords)
	}
	if s.TargetSent != 1 || s.TargetReceived != 1 {
		t.Errorf("target counts = %d/%d, want 1/1", s.TargetSent, s.TargetReceived)
	}
	if s.UniqueSenders != 2 {
		t.Errorf("UniqueSenders = %d, want 2", s.UniqueSenders)
	}
	// Unknown Recipient is never counted.
	if s.UniqueRecipients != 3 {
		t.Errorf("UniqueRecipients = %d, want 3", s.UniqueRecipients)
	}
	if s.ByFormat[FormatChat] != 1 || s.ByFormat[FormatTraditional] != 2 {
		t.Errorf("ByFormat = %v", s.ByFormat)
	}
	if s.DateRange == nil || s.DateRange.Earliest != "2018-06-15" || s.DateRange.Latest != "2018-06-16" {
		t.Errorf("DateRange = %+v, want 2018-06-15..2018-06-16", s.DateRange)
	}
	// Counts sort descending, identity ascending on ties.
	if s.SenderCounts[0].Identity != "reid@example.com" || s.SenderCounts[0].Count != 2 {
		t.Errorf("SenderCounts = %v, want reid first with 2", s.SenderCounts)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalRecords != 0 || s.DateRange != nil {
		t.Errorf("Summarize(nil) = %+v, want zeroes and no date range", s)
	}
}
