package clean

import (
	"strings"
	"testing"

	"github.com/mailsift/mailsift/internal/config"
)

func newTestCleaner(t *testing.T) *Cleaner {
	t.Helper()
	return NewCleaner(config.Default())
}

func TestBodyOCRFixes(t *testing.T) {
	c := newTestCleaner(t)

	got := c.Body("see On Thun, the meeting")
	if !strings.Contains(got, "On Thu,") {
		t.Errorf("Thun fix: got %q", got)
	}

	got = c.Body("question?\nNobt\n")
	if !strings.Contains(got, "Nope") {
		t.Errorf("Nobt fix: got %q", got)
	}

	got = c.Body("ok\nI ike this plan")
	if !strings.Contains(got, "like this plan") {
		t.Errorf("stroke-I fix: got %q", got)
	}
}

func TestBodyRemovesFooters(t *testing.T) {
	c := newTestCleaner(t)
	in := "hello there\nPage 3 of 7\nHOUSE_OVERSIGHT_012345\nmore text"
	got := c.Body(in)
	if strings.Contains(got, "Page 3") || strings.Contains(got, "HOUSE_OVERSIGHT") {
		t.Errorf("footers not removed: %q", got)
	}
	if !strings.Contains(got, "hello there") || !strings.Contains(got, "more text") {
		t.Errorf("content lost: %q", got)
	}
}

func TestBodyCollapsesBlankRuns(t *testing.T) {
	c := newTestCleaner(t)
	got := c.Body("a\n\n\n\n\nb")
	if got != "a\n\nb" {
		t.Errorf("blank run collapse: got %q", got)
	}
}

func TestBodyDespacesURL(t *testing.T) {
	c := newTestCleaner(t)
	got := c.Body("https ://www. example. com/path\nunrelated text")
	if !strings.Contains(got, "https://www.example.com/path") {
		t.Errorf("URL despace: got %q", got)
	}
	if !strings.Contains(got, "unrelated text") {
		t.Errorf("trailing text lost: %q", got)
	}
}

func TestRepairURLsExtension(t *testing.T) {
	c := newTestCleaner(t)
	got := c.RepairURLs("read https://example.com/20 1 9/story .html\nmore text")
	if !strings.Contains(got, "https://example.com/2019/story.html\n") {
		t.Errorf("extension pass: got %q", got)
	}
}

func TestRepairURLsMidBreak(t *testing.T) {
	c := newTestCleaner(t)
	got := c.RepairURLs(`see https://example.com/long path-with/segments "end"`)
	if !strings.Contains(got, "https://example.com/longpath-with/segments") {
		t.Errorf("mid-break pass: got %q", got)
	}
}

func TestRepairURLsYouTube(t *testing.T) {
	c := newTestCleaner(t)
	in := "https://www.youtube.com/watch?v=dQw4w9WgXcQpleasewatchthis"
	got := c.RepairURLs(in)
	if !strings.Contains(got, "https://www.youtube.com/watch?v=dQw4w9WgXcQ ") {
		t.Errorf("video ID not separated: %q", got)
	}
	if !strings.Contains(got, "please watch this") {
		t.Errorf("glued text not segmented: %q", got)
	}
}

func TestExtractDisclaimerFull(t *testing.T) {
	c := newTestCleaner(t)
	body := "lunch at noon?\n\nplease note\nThe information contained in this communication is confidential, may be attorney-client privileged, and is intended only for the use of the addressee. Unauthorized use is strictly prohibited."
	cleaned, disclaimer := c.ExtractDisclaimer(body)
	if disclaimer == "" {
		t.Fatal("disclaimer not detected")
	}
	if disclaimer != config.Default().CanonicalDisclaimer {
		t.Error("disclaimer not canonicalized")
	}
	if strings.Contains(cleaned, "confidential") {
		t.Errorf("disclaimer text left in body: %q", cleaned)
	}
	if !strings.Contains(cleaned, "lunch at noon?") {
		t.Errorf("real content lost: %q", cleaned)
	}
}

func TestExtractDisclaimerStub(t *testing.T) {
	c := newTestCleaner(t)
	cleaned, disclaimer := c.ExtractDisclaimer("that will be fun\nplease note")
	if disclaimer == "" {
		t.Fatal("truncated disclaimer not detected")
	}
	if cleaned != "that will be fun" {
		t.Errorf("cleaned body: got %q", cleaned)
	}
}

func TestExtractDisclaimerNone(t *testing.T) {
	c := newTestCleaner(t)
	cleaned, disclaimer := c.ExtractDisclaimer("nothing of note here")
	if disclaimer != "" {
		t.Errorf("false positive: %q", disclaimer)
	}
	if cleaned != "nothing of note here" {
		t.Errorf("body altered: %q", cleaned)
	}
}

func TestStripQuotedGmail(t *testing.T) {
	c := newTestCleaner(t)
	body := "sounds good\n\nOn Mon, June 15, 2018 at 1:47 PM, John Smith wrote:\n> earlier text"
	got := c.StripQuoted(body)
	if got != "sounds good" {
		t.Errorf("gmail quote strip: got %q", got)
	}
}

func TestStripQuotedOriginalMessage(t *testing.T) {
	c := newTestCleaner(t)
	body := "my reply\n-----Original Message-----\nFrom: someone"
	got := c.StripQuoted(body)
	if got != "my reply" {
		t.Errorf("original-message strip: got %q", got)
	}
}

func TestStripQuotedSignature(t *testing.T) {
	c := newTestCleaner(t)
	got := c.StripQuoted("short note\nSent from my iPhone")
	if got != "short note" {
		t.Errorf("signature strip: got %q", got)
	}
}

func TestSegmentDictionaryOrder(t *testing.T) {
	dict := config.Default().SegmentationDictionary()
	for i := 1; i < len(dict); i++ {
		if len(dict[i]) > len(dict[i-1]) {
			t.Fatalf("dictionary not longest-first at %d: %q after %q", i, dict[i], dict[i-1])
		}
	}
}
