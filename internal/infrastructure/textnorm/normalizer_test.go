package textnorm

import (
	"strings"
	"testing"
)

func TestNormalizeEmptyInput(t *testing.T) {
	n := New()
	for _, in := range []string{"", "   ", "\t\n", "!!!", "???"} {
		if got := n.Normalize(in); got != "" {
			t.Fatalf("Normalize(%q) = %q, want empty", in, got)
		}
	}
}

func TestNormalizeBasicQuery(t *testing.T) {
	n := New()
	got := n.Normalize("What is Section 420 IPC?")
	want := "section ipc"
	if got != want {
		t.Fatalf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalizeKeepsFourDigitTokens(t *testing.T) {
	n := New()
	got := n.Normalize("Indian Penal Code Act of 1860, section 420, case no 123456")
	if !contains(got, "1860") {
		t.Fatalf("expected 4-digit token retained, got %q", got)
	}
	if contains(got, "420") || contains(got, "123456") {
		t.Fatalf("expected short and long digit runs stripped, got %q", got)
	}
}

func TestNormalizeStripsURLsAndEmails(t *testing.T) {
	n := New()
	got := n.Normalize("complaint at https://consumerhelpline.gov.in or mail help@gov.in today")
	if contains(got, "http") || contains(got, "gov") || contains(got, "@") {
		t.Fatalf("expected urls and emails stripped, got %q", got)
	}
}

func TestNormalizeExpandsAbbreviationsAndContractions(t *testing.T) {
	n := New()
	got := n.Normalize("Smith v. Jones can't be cited")
	if !contains(got, "versus") {
		t.Fatalf("expected v. expanded to versus, got %q", got)
	}
	if !contains(got, "cannot") {
		t.Fatalf("expected can't expanded to cannot, got %q", got)
	}
}

func TestNormalizeDropsLegalStopwords(t *testing.T) {
	n := New()
	got := n.Normalize("whereas the accused herein notwithstanding the charge")
	if contains(got, "whereas") || contains(got, "herein") || contains(got, "notwithstanding") {
		t.Fatalf("expected legal connectives removed, got %q", got)
	}
}

func TestNormalizeFoldsDiacritics(t *testing.T) {
	n := New()
	if got := n.Normalize("café naïve résumé"); got != "cafe naive resume" {
		t.Fatalf("Normalize() = %q, want %q", got, "cafe naive resume")
	}
}

func TestNormalizeLemmatizes(t *testing.T) {
	n := New()
	cases := map[string]string{
		"sections":  "section",
		"penalties": "penalty",
		"filing":    "file",
		"arrested":  "arrest",
		"married":   "marry",
		"charges":   "charge",
	}
	for in, want := range cases {
		if got := n.Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeLemmatizesPluralGerunds(t *testing.T) {
	// A plural gerund must reach its terminal base in one pass, not
	// shed one suffix per call.
	n := New()
	cases := map[string]string{
		"proceedings": "proceed",
		"filings":     "file",
		"hearings":    "hear",
	}
	for in, want := range cases {
		if got := n.Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}

	first := n.Normalize("Divorce and child custody proceedings in family court")
	if second := n.Normalize(first); first != second {
		t.Fatalf("normalize not idempotent: first %q, second %q", first, second)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := New()
	inputs := []string{
		"What is the punishment for theft under IPC Section 378?",
		"How to file a consumer complaint about a defective product?",
		"Divorce and child custody proceedings in family court",
		"Smith v. Jones, can't appeal, see https://example.com",
		"Propriété and naïveté with Fällen diacritics, year 1950",
		"",
	}
	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Fatalf("normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func contains(haystack, needle string) bool {
	return strings.Contains(haystack, needle)
}
