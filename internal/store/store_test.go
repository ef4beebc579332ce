package store

import (
	"context"
	"testing"

	"github.com/mailsift/mailsift/internal/textdoc"
)

func testArchive(t *testing.T) *SQLiteArchive {
	t.Helper()
	a, err := Open(Config{DBPath: ":memory:"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func testRecord(id, sender, body string, ts int64) *textdoc.MessageRecord {
	return &textdoc.MessageRecord{
		ID:               id,
		Format:           textdoc.FormatTraditional,
		Sender:           sender,
		Recipient:        "reid@example.com",
		Recipients:       []string{"reid@example.com"},
		SubjectClean:     "Dinner",
		Timestamp:        ts,
		Body:             body,
		SourceDocument:   "doc_001.txt",
		DuplicateSources: []string{"doc_001.txt"},
	}
}

func TestSaveAndGetMessage(t *testing.T) {
	a := testArchive(t)
	ctx := context.Background()

	r := testRecord("abc123", "jeevacation@gmail.com", "Can you make it Thursday?", 1529070433)
	r.CC = []string{"assistant@example.com"}
	r.TargetSender = true

	n, err := a.SaveRecords(ctx, []*textdoc.MessageRecord{r})
	if err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}
	if n != 1 {
		t.Fatalf("SaveRecords stored %d, want 1", n)
	}

	got, err := a.GetMessage(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if got == nil {
		t.Fatal("GetMessage returned nil for stored record")
	}
	if got.Sender != r.Sender || got.Body != r.Body || got.Timestamp != r.Timestamp {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if len(got.CC) != 1 || got.CC[0] != "assistant@example.com" {
		t.Errorf("CC = %v, want one entry", got.CC)
	}
	if !got.TargetSender {
		t.Errorf("TargetSender lost in round trip")
	}
}

func TestGetMessageMissing(t *testing.T) {
	a := testArchive(t)
	got, err := a.GetMessage(context.Background(), "nope")
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if got != nil {
		t.Errorf("GetMessage returned %+v for missing id, want nil", got)
	}
}

func TestSaveRecordsUpsert(t *testing.T) {
	a := testArchive(t)
	ctx := context.Background()

	r := testRecord("abc123", "jeevacation@gmail.com", "original", 1529070433)
	if _, err := a.SaveRecords(ctx, []*textdoc.MessageRecord{r}); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}

	r2 := testRecord("abc123", "jeevacation@gmail.com", "updated", 1529070433)
	r2.DuplicateSources = []string{"doc_001.txt", "doc_002.txt"}
	if _, err := a.SaveRecords(ctx, []*textdoc.MessageRecord{r2}); err != nil {
		t.Fatalf("SaveRecords upsert: %v", err)
	}

	got, err := a.GetMessage(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if got.Body != "updated" {
		t.Errorf("Body = %q, want updated", got.Body)
	}
	if len(got.DuplicateSources) != 2 {
		t.Errorf("DuplicateSources = %v, want two entries", got.DuplicateSources)
	}

	var count int64
	if err := a.db.QueryRow(`SELECT COUNT(*) FROM messages`).Scan(&count); err != nil {
		t.Fatalf("counting rows: %v", err)
	}
	if count != 1 {
		t.Errorf("message rows = %d, want 1 after upsert", count)
	}
}

func TestSaveRecordsRejectsEmptySender(t *testing.T) {
	a := testArchive(t)
	r := testRecord("abc123", "", "body", 1529070433)
	if _, err := a.SaveRecords(context.Background(), []*textdoc.MessageRecord{r}); err == nil {
		t.Fatal("SaveRecords accepted a record with no sender")
	}
}

func TestListMessagesFilters(t *testing.T) {
	a := testArchive(t)
	ctx := context.Background()

	dated := testRecord("m1", "jeevacation@gmail.com", "dated", 1529070433)
	dated.TargetSender = true
	undated := testRecord("m2", "other@example.com", "undated", 0)
	chat := testRecord("m3", "other@example.com", "chat line", 1529080000)
	chat.Format = textdoc.FormatChat

	if _, err := a.SaveRecords(ctx, []*textdoc.MessageRecord{dated, undated, chat}); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}

	got, err := a.ListMessages(ctx, ListOpts{})
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("default listing returned %d records, want dated only (2)", len(got))
	}
	if got[0].ID != "m3" {
		t.Errorf("newest first: got %s, want m3", got[0].ID)
	}

	got, err = a.ListMessages(ctx, ListOpts{IncludeNoDate: true})
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(got) != 3 || got[2].ID != "m2" {
		t.Errorf("IncludeNoDate listing = %d records, want 3 with undated last", len(got))
	}

	got, err = a.ListMessages(ctx, ListOpts{TargetOnly: true})
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(got) != 1 || got[0].ID != "m1" {
		t.Errorf("TargetOnly listing = %v, want only m1", got)
	}

	got, err = a.ListMessages(ctx, ListOpts{Format: "chat"})
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(got) != 1 || got[0].ID != "m3" {
		t.Errorf("Format filter = %v, want only m3", got)
	}
}

func TestSearch(t *testing.T) {
	a := testArchive(t)
	ctx := context.Background()

	r1 := testRecord("m1", "jeevacation@gmail.com", "Dinner at the island on Thursday", 1529070433)
	r2 := testRecord("m2", "other@example.com", "Quarterly tax filing deadline", 1529080000)
	if _, err := a.SaveRecords(ctx, []*textdoc.MessageRecord{r1, r2}); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}

	hits, err := a.Search(ctx, "island", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("Search returned %d hits, want 1", len(hits))
	}
	if hits[0].Record.ID != "m1" {
		t.Errorf("hit = %s, want m1", hits[0].Record.ID)
	}
	if hits[0].Snippet == "" {
		t.Errorf("expected a snippet for the hit")
	}
}

func TestThreadsRoundTrip(t *testing.T) {
	a := testArchive(t)
	ctx := context.Background()

	r1 := testRecord("m1", "jeevacation@gmail.com", "original", 1529070433)
	r2 := testRecord("m2", "reid@example.com", "reply", 1529074033)
	if _, err := a.SaveRecords(ctx, []*textdoc.MessageRecord{r1, r2}); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}

	th := &textdoc.Thread{
		ID:             "thread_0",
		Subject:        "Dinner",
		Participants:   []string{"jeevacation@gmail.com", "reid@example.com"},
		Emails:         []*textdoc.MessageRecord{r1, r2},
		FirstTimestamp: 1529070433,
		LastTimestamp:  1529074033,
		HasTarget:      true,
	}
	if err := a.SaveThreads(ctx, []*textdoc.Thread{th}); err != nil {
		t.Fatalf("SaveThreads: %v", err)
	}

	got, err := a.GetThread(ctx, "thread_0")
	if err != nil {
		t.Fatalf("GetThread: %v", err)
	}
	if got == nil {
		t.Fatal("GetThread returned nil")
	}
	if len(got.Emails) != 2 || got.Emails[0].ID != "m1" {
		t.Errorf("thread emails = %v, want chronological m1, m2", got.Emails)
	}
	if !got.HasTarget {
		t.Errorf("HasTarget lost in round trip")
	}

	list, err := a.ListThreads(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListThreads: %v", err)
	}
	if len(list) != 1 || list[0].ID != "thread_0" {
		t.Errorf("ListThreads = %v, want one thread", list)
	}

	// A second save replaces the thread set entirely.
	if err := a.SaveThreads(ctx, nil); err != nil {
		t.Fatalf("SaveThreads(nil): %v", err)
	}
	list, err = a.ListThreads(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListThreads: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ListThreads after clear = %d, want 0", len(list))
	}
}

func TestStats(t *testing.T) {
	a := testArchive(t)
	ctx := context.Background()

	r1 := testRecord("m1", "jeevacation@gmail.com", "one", 1529070433)
	r1.TargetSender = true
	r1.DuplicateSources = []string{"doc_001.txt", "doc_002.txt"}
	r2 := testRecord("m2", "other@example.com", "two", 1600000000)
	r2.IsEmbedded = true
	r3 := testRecord("m3", "other@example.com", "undated", 0)

	if _, err := a.SaveRecords(ctx, []*textdoc.MessageRecord{r1, r2, r3}); err != nil {
		t.Fatalf("SaveRecords: %v", err)
	}

	stats, err := a.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.MessageCount != 3 {
		t.Errorf("MessageCount = %d, want 3", stats.MessageCount)
	}
	if stats.TargetMessages != 1 {
		t.Errorf("TargetMessages = %d, want 1", stats.TargetMessages)
	}
	if stats.DuplicateCount != 1 {
		t.Errorf("DuplicateCount = %d, want 1", stats.DuplicateCount)
	}
	if stats.EmbeddedCount != 1 {
		t.Errorf("EmbeddedCount = %d, want 1", stats.EmbeddedCount)
	}
	if stats.EarliestTimestamp != 1529070433 || stats.LatestTimestamp != 1600000000 {
		t.Errorf("date range %d..%d, want zero-timestamp record excluded",
			stats.EarliestTimestamp, stats.LatestTimestamp)
	}
	if stats.ByFormat["traditional"] != 3 {
		t.Errorf("ByFormat = %v, want 3 traditional", stats.ByFormat)
	}
}
