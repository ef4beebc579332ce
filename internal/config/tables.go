// Package config loads the static data tables the pipeline depends on:
// identity correction maps, the canonical disclaimer text, document boundary
// markers, and the tracked target / associate name lists.
//
// The tables are data, not logic. Built-in defaults ship with the binary and
// an optional YAML file (explicit path, or MAILSIFT_TABLES in the
// environment) overrides individual sections without a redeploy.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvTablesPath names the environment variable consulted when no explicit
// tables path is given.
const EnvTablesPath = "MAILSIFT_TABLES"

// Tables holds every static correction and lookup table used by the
// pipeline. Map keys are matched case-insensitively after lowering.
type Tables struct {
	// TargetEmails are the known addresses of the tracked target identity.
	// Substring match against canonical senders/recipients.
	TargetEmails []string `yaml:"target_emails"`

	// TargetNamePatterns are lowercase name fragments that indicate the
	// tracked target when no address is present.
	TargetNamePatterns []string `yaml:"target_name_patterns"`

	// AssociateNames are lowercase names of known associates, used only for
	// downstream statistics flags.
	AssociateNames []string `yaml:"associate_names"`

	// EmailCorrections maps known OCR-corrupted address spellings to their
	// canonical address. Keys lowercase.
	EmailCorrections map[string]string `yaml:"email_corrections"`

	// NameCorrections maps known corrupted display-name spellings
	// (lowercase) to the canonical display name.
	NameCorrections map[string]string `yaml:"name_corrections"`

	// CanonicalSenders maps bare first-name/nickname forms (lowercase) to
	// the canonical email address of the individual they denote.
	CanonicalSenders map[string]string `yaml:"canonical_senders"`

	// CanonicalDisclaimer is the corrected full text substituted for any
	// detected variant of the legal boilerplate paragraph.
	CanonicalDisclaimer string `yaml:"canonical_disclaimer"`

	// BoundaryMarkers are tokens that begin a standalone document-boundary
	// line (Bates-stamp style page markers).
	BoundaryMarkers []string `yaml:"boundary_markers"`

	// BadTLDs are top-level-domain spellings that only occur as OCR
	// corruption; an address ending in one fails validation.
	BadTLDs []string `yaml:"bad_tlds"`

	// SpamSenders are address fragments whose presence marks a record as
	// irrelevant marketing traffic.
	SpamSenders []string `yaml:"spam_senders"`

	// SegmentationWords is the dictionary for greedy longest-match
	// resegmentation of OCR-merged words after repaired URLs.
	SegmentationWords []string `yaml:"segmentation_words"`
}

// Load resolves the tables: built-in defaults, optionally overridden
// section-by-section from a YAML file. An empty path falls back to
// MAILSIFT_TABLES; if that is also empty the defaults are returned as-is.
func Load(path string) (*Tables, error) {
	t := Default()

	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv(EnvTablesPath))
	}
	if path == "" {
		return t, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var override Tables
	if err := yaml.Unmarshal(b, &override); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	t.merge(&override)
	return t, nil
}

// merge replaces each non-empty section of t with the override's version.
// Sections are replaced wholesale, not deep-merged, so a file can retract
// default entries.
func (t *Tables) merge(o *Tables) {
	if len(o.TargetEmails) > 0 {
		t.TargetEmails = o.TargetEmails
	}
	if len(o.TargetNamePatterns) > 0 {
		t.TargetNamePatterns = o.TargetNamePatterns
	}
	if len(o.AssociateNames) > 0 {
		t.AssociateNames = o.AssociateNames
	}
	if len(o.EmailCorrections) > 0 {
		t.EmailCorrections = o.EmailCorrections
	}
	if len(o.NameCorrections) > 0 {
		t.NameCorrections = o.NameCorrections
	}
	if len(o.CanonicalSenders) > 0 {
		t.CanonicalSenders = o.CanonicalSenders
	}
	if strings.TrimSpace(o.CanonicalDisclaimer) != "" {
		t.CanonicalDisclaimer = o.CanonicalDisclaimer
	}
	if len(o.BoundaryMarkers) > 0 {
		t.BoundaryMarkers = o.BoundaryMarkers
	}
	if len(o.BadTLDs) > 0 {
		t.BadTLDs = o.BadTLDs
	}
	if len(o.SpamSenders) > 0 {
		t.SpamSenders = o.SpamSenders
	}
	if len(o.SegmentationWords) > 0 {
		t.SegmentationWords = o.SegmentationWords
	}
}

// SegmentationDictionary returns the segmentation words sorted longest
// first, the order the greedy matcher consumes them in.
func (t *Tables) SegmentationDictionary() []string {
	words := append([]string(nil), t.SegmentationWords...)
	sort.SliceStable(words, func(i, j int) bool {
		if len(words[i]) != len(words[j]) {
			return len(words[i]) > len(words[j])
		}
		return words[i] < words[j]
	})
	return words
}
