package dedup

import (
	"reflect"
	"testing"

	"github.com/mailsift/mailsift/internal/textdoc"
)

func record(source string) *textdoc.MessageRecord {
	return &textdoc.MessageRecord{
		ID:             textdoc.RecordID("jeevacation@gmail.com", "reid@example.com", "6/15/2018 1:47:13 PM", "Dinner", source, 0),
		Format:         textdoc.FormatTraditional,
		Sender:         "jeevacation@gmail.com",
		Recipient:      "reid@example.com",
		Recipients:     []string{"reid@example.com"},
		SubjectClean:   "Dinner",
		Timestamp:      1529070433,
		Body:           "Can you make it Thursday?",
		SourceDocument: source,
	}
}

func TestDeduplicateCollapsesAcrossSources(t *testing.T) {
	a := record("batch1/doc_001.txt")
	b := record("batch2/doc_047.txt")

	out := Deduplicate([]*textdoc.MessageRecord{a, b})
	if len(out) != 1 {
		t.Fatalf("Deduplicate returned %d records, want 1", len(out))
	}
	if out[0] != a {
		t.Errorf("canonical record is not the first occurrence")
	}
	want := []string{"batch1/doc_001.txt", "batch2/doc_047.txt"}
	if !reflect.DeepEqual(out[0].DuplicateSources, want) {
		t.Errorf("DuplicateSources = %v, want %v", out[0].DuplicateSources, want)
	}
}

func TestDeduplicateRepeatedSourceNotDoubled(t *testing.T) {
	a := record("doc_001.txt")
	b := record("doc_001.txt")

	out := Deduplicate([]*textdoc.MessageRecord{a, b})
	if len(out) != 1 {
		t.Fatalf("Deduplicate returned %d records, want 1", len(out))
	}
	if got := out[0].DuplicateSources; len(got) != 1 || got[0] != "doc_001.txt" {
		t.Errorf("DuplicateSources = %v, want single doc_001.txt", got)
	}
}

func TestDeduplicateDistinctRecordsKept(t *testing.T) {
	a := record("doc_001.txt")
	b := record("doc_002.txt")
	b.Body = "A different message entirely."

	out := Deduplicate([]*textdoc.MessageRecord{a, b})
	if len(out) != 2 {
		t.Fatalf("Deduplicate returned %d records, want 2", len(out))
	}
	for _, r := range out {
		if len(r.DuplicateSources) != 1 || r.DuplicateSources[0] != r.SourceDocument {
			t.Errorf("unique record DuplicateSources = %v, want [%s]", r.DuplicateSources, r.SourceDocument)
		}
	}
}

func TestDeduplicateFirstBodyWins(t *testing.T) {
	a := record("doc_001.txt")
	b := record("doc_002.txt")
	// Same first 50 characters, divergent OCR tail.
	a.Body = "Can you make it Thursday? I will bring the paperwork along."
	b.Body = "Can you make it Thursday? I will bring the paperw0rk a1ong."

	out := Deduplicate([]*textdoc.MessageRecord{a, b})
	if len(out) != 1 {
		t.Fatalf("Deduplicate returned %d records, want 1", len(out))
	}
	if out[0].Body != a.Body {
		t.Errorf("canonical body = %q, want first occurrence's body", out[0].Body)
	}
}

func TestSelfMailCoercion(t *testing.T) {
	r := record("doc_001.txt")
	r.Recipient = "jeevacation@gmail.com"
	r.Recipients = []string{"jeevacation@gmail.com"}
	r.CC = []string{"other@example.com"}
	r.TargetSender = true
	r.TargetRecipient = true

	out := Deduplicate([]*textdoc.MessageRecord{r})
	if len(out) != 1 {
		t.Fatalf("Deduplicate returned %d records, want 1", len(out))
	}
	got := out[0]
	if got.Recipient != textdoc.UnknownRecipient {
		t.Errorf("Recipient = %q, want %q", got.Recipient, textdoc.UnknownRecipient)
	}
	if !reflect.DeepEqual(got.Recipients, []string{textdoc.UnknownRecipient}) {
		t.Errorf("Recipients = %v, want [%q]", got.Recipients, textdoc.UnknownRecipient)
	}
	if got.CC != nil {
		t.Errorf("CC = %v, want nil", got.CC)
	}
	if got.TargetRecipient {
		t.Errorf("TargetRecipient still set after coercion")
	}
	if !got.TargetSender {
		t.Errorf("TargetSender cleared, want preserved")
	}
}

func TestNoCoercionForOrdinaryRecords(t *testing.T) {
	r := record("doc_001.txt")
	r.TargetSender = true

	out := Deduplicate([]*textdoc.MessageRecord{r})
	if out[0].Recipient != "reid@example.com" {
		t.Errorf("Recipient = %q, want untouched", out[0].Recipient)
	}
}
