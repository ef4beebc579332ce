package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTables(t *testing.T) {
	tables := Default()

	if len(tables.TargetEmails) == 0 {
		t.Fatal("defaults carry no target emails")
	}
	if got := tables.EmailCorrections["jeevacation@qmail.com"]; got != "jeevacation@gmail.com" {
		t.Errorf("EmailCorrections[jeevacation@qmail.com] = %q, want jeevacation@gmail.com", got)
	}
	if got := tables.CanonicalSenders["jeffrey epstein"]; got != "jeevacation@gmail.com" {
		t.Errorf("CanonicalSenders[jeffrey epstein] = %q, want jeevacation@gmail.com", got)
	}
	if tables.CanonicalDisclaimer == "" {
		t.Error("defaults carry no canonical disclaimer")
	}
	if len(tables.BoundaryMarkers) == 0 {
		t.Error("defaults carry no boundary markers")
	}
	for _, tld := range []string{"corn", "cam", "cpm"} {
		found := false
		for _, bad := range tables.BadTLDs {
			if bad == tld {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("BadTLDs missing %q", tld)
		}
	}
}

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	t.Setenv(EnvTablesPath, "")
	tables, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if len(tables.TargetEmails) != len(def.TargetEmails) {
		t.Errorf("Load(\"\") diverged from defaults")
	}
}

func TestLoadOverrideReplacesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	yaml := `bad_tlds: ["zzz"]
email_corrections:
  a@b.corn: a@b.com
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write tables: %v", err)
	}

	tables, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tables.BadTLDs) != 1 || tables.BadTLDs[0] != "zzz" {
		t.Errorf("BadTLDs = %v, want wholesale replacement", tables.BadTLDs)
	}
	if tables.EmailCorrections["a@b.corn"] != "a@b.com" {
		t.Errorf("EmailCorrections not overridden: %v", tables.EmailCorrections["a@b.corn"])
	}
	// Untouched sections keep their defaults.
	if len(tables.TargetEmails) == 0 {
		t.Errorf("TargetEmails lost on partial override")
	}
}

func TestLoadViaEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	if err := os.WriteFile(path, []byte(`spam_senders: ["noreply@, promo@"]`), 0o600); err != nil {
		t.Fatalf("write tables: %v", err)
	}
	t.Setenv(EnvTablesPath, path)

	tables, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tables.SpamSenders) != 1 {
		t.Errorf("SpamSenders = %v, want env-file override", tables.SpamSenders)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load accepted a missing explicit path")
	}
}

func TestSegmentationDictionaryLongestFirst(t *testing.T) {
	tables := &Tables{SegmentationWords: []string{"in", "interest", "inter"}}
	dict := tables.SegmentationDictionary()
	if len(dict) != 3 || dict[0] != "interest" || dict[2] != "in" {
		t.Errorf("SegmentationDictionary() = %v, want longest first", dict)
	}
}
