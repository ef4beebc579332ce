package identity

import (
	"reflect"
	"testing"

	"github.com/mailsift/mailsift/internal/config"
	"github.com/mailsift/mailsift/internal/textdoc"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	return NewNormalizer(config.Default())
}

func TestValidEmail(t *testing.T) {
	n := newTestNormalizer(t)
	cases := []struct {
		in   string
		want bool
	}{
		{"jeevacation@gmail.com", true},
		{"a.b-c+tag@example.co.uk", true},
		{"e:someone@example.com", true},
		{"test@gmail.corn", false},
		{"test@gmail.cam", false},
		{"test@gmail.cpm", false},
		{"no-at-sign.example.com", false},
		{"user@nodot", false},
		{"user@domain.x", false},
		{"", false},
		{"@example.com", false},
	}
	for _, c := range cases {
		if got := n.ValidEmail(c.in); got != c.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNormalizeEmailCorrections(t *testing.T) {
	n := newTestNormalizer(t)
	if got := n.NormalizeEmail("jeevacation@qmail.com"); got != "jeevacation@gmail.com" {
		t.Fatalf("OCR typo correction: got %q", got)
	}
	if got := n.NormalizeEmail("E:JEEVACATION@GMAIL.COM"); got != "jeevacation@gmail.com" {
		t.Fatalf("prefix strip + fold: got %q", got)
	}
	if got := n.NormalizeEmail("Someone@Example.COM"); got != "someone@example.com" {
		t.Fatalf("case fold: got %q", got)
	}
}

func TestCanonicalizeNameToAddress(t *testing.T) {
	n := newTestNormalizer(t)
	cases := []struct {
		in   string
		want string
	}{
		{"Jeffrey Epstein", "jeevacation@gmail.com"},
		{"jeffrey epstein", "jeevacation@gmail.com"},
		{"jeevacation@qmail.com", "jeevacation@gmail.com"},
		{"John Smith <jsmith@example.com>", "jsmith@example.com"},
		{"some stranger", "Some Stranger"},
	}
	for _, c := range cases {
		if got := n.Canonicalize(c.in); got != c.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	n := newTestNormalizer(t)
	inputs := []string{
		"Jeffrey Epstein",
		"jeevacation@qmail.com",
		"Reid Weingarten",
		"o'brien & co", // falls through title-casing
	}
	for _, in := range inputs {
		once := n.Canonicalize(in)
		twice := n.Canonicalize(once)
		if once != twice {
			t.Errorf("Canonicalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestSplitAddress(t *testing.T) {
	n := newTestNormalizer(t)
	cases := []struct {
		in        string
		wantEmail string
		wantName  string
	}{
		{"John Smith [jsmith@example.com]", "jsmith@example.com", "John Smith"},
		{"John Smith <jsmith@example.com>", "jsmith@example.com", "John Smith"},
		{"jsmith@example.com", "jsmith@example.com", ""},
		{"John Smith", "", "John Smith"},
		{"[Redacted]", "", ""},
		{"John Smith [mailto:jsmith@exam", "", "John Smith"},
	}
	for _, c := range cases {
		email, name := n.SplitAddress(c.in)
		if email != c.wantEmail || name != c.wantName {
			t.Errorf("SplitAddress(%q) = (%q, %q), want (%q, %q)",
				c.in, email, name, c.wantEmail, c.wantName)
		}
	}
}

func TestRecipientsSplitting(t *testing.T) {
	n := newTestNormalizer(t)

	got := n.Recipients("alice@example.com; bob@example.com")
	want := []string{"alice@example.com", "bob@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("semicolon split: got %v, want %v", got, want)
	}

	// "Lastname, Firstname" must stay a single recipient.
	got = n.Recipients("Weingarten, Reid")
	if len(got) != 1 || got[0] != "Weingarten, Reid" {
		t.Fatalf("lastname-firstname protection: got %v", got)
	}

	// A comma followed by more list entries is a delimiter.
	got = n.Recipients("Alice Adams, Bob Barker, Carol Chase")
	want = []string{"Alice Adams", "Bob Barker", "Carol Chase"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("comma list split: got %v, want %v", got, want)
	}

	if got := n.Recipients(""); len(got) != 1 || got[0] != textdoc.UnknownRecipient {
		t.Fatalf("empty field: got %v", got)
	}
	if got := n.Recipients("- ; ."); len(got) != 1 || got[0] != textdoc.UnknownRecipient {
		t.Fatalf("junk field: got %v", got)
	}
}

func TestAliasTableTwoPhase(t *testing.T) {
	n := newTestNormalizer(t)
	records := []*textdoc.MessageRecord{
		{Sender: "lsummers@example.edu", SenderName: "Larry Summers"},
		{Sender: "Larry Summers", Recipient: "jeevacation@gmail.com"},
	}

	aliases := BuildAliasTable(records)
	if aliases["larry summers"] != "lsummers@example.edu" {
		t.Fatalf("alias discovery: got %q", aliases["larry summers"])
	}

	Reconcile(records, n, aliases)
	if records[1].Sender != "lsummers@example.edu" {
		t.Fatalf("alias application: got %q", records[1].Sender)
	}
	if !records[1].TargetRecipient {
		t.Fatal("target recipient flag not set after reconcile")
	}
}

func TestReconcileFlags(t *testing.T) {
	n := newTestNormalizer(t)
	records := []*textdoc.MessageRecord{
		{
			Sender:     "jeevacation@gmail.com",
			Recipient:  "Larry Summers",
			Recipients: []string{"Larry Summers"},
		},
	}
	Reconcile(records, n, nil)

	r := records[0]
	if !r.TargetSender {
		t.Error("TargetSender should be set")
	}
	if r.TargetRecipient {
		t.Error("TargetRecipient should not be set")
	}
	if !r.AssociateRecipient {
		t.Error("AssociateRecipient should be set")
	}
	if len(r.AssociateNames) == 0 {
		t.Error("AssociateNames should list the associate")
	}
}

func TestIsIrrelevant(t *testing.T) {
	n := newTestNormalizer(t)
	spam := &textdoc.MessageRecord{Sender: "deals@asmallworld@lists.example.com"}
	if !n.IsIrrelevant(spam) {
		t.Error("known spam sender should be irrelevant")
	}
	news := &textdoc.MessageRecord{
		Sender: "info@example.com",
		Body:   "Click here to unsubscribe from this newsletter.",
	}
	if !n.IsIrrelevant(news) {
		t.Error("unsubscribe newsletter should be irrelevant")
	}
	normal := &textdoc.MessageRecord{Sender: "friend@example.com", Body: "lunch tomorrow?"}
	if n.IsIrrelevant(normal) {
		t.Error("plain mail should stay relevant")
	}
}
