package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	urlRe        = regexp.MustCompile(`https?://[^\s]+`)
	emailRe      = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	shortNumRe   = regexp.MustCompile(`\b\d{1,3}\b`)
	longNumRe    = regexp.MustCompile(`\b\d{5,}\b`)

	// NFKD then strip combining marks: diacritics fold to their ASCII
	// base letter. Lossy by design; acceptable for matching.
	asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
)

// Normalizer canonicalizes free text into the comparable form shared by
// index building and query handling. The same stage selection must be
// used on both sides or the vector spaces stop being comparable.
type Normalizer struct {
	minTokenLen int
	maxTokenLen int
}

func New() *Normalizer {
	return &Normalizer{minTokenLen: 2, maxTokenLen: 50}
}

// Normalize runs the full pipeline. Deterministic, pure, and idempotent;
// empty or unusable input normalizes to the empty string, never an error.
func (n *Normalizer) Normalize(text string) string {
	cleaned := basicClean(text)
	if cleaned == "" {
		return ""
	}

	cleaned = foldToASCII(cleaned)
	cleaned = expandContractions(cleaned)
	cleaned = expandLegalAbbreviations(cleaned)
	cleaned = urlRe.ReplaceAllString(cleaned, "")
	cleaned = emailRe.ReplaceAllString(cleaned, "")
	cleaned = stripPunctuation(cleaned)
	// Keep exactly 4-digit tokens: years and section numbers carry
	// signal, shorter and longer digit runs are mostly noise.
	cleaned = shortNumRe.ReplaceAllString(cleaned, "")
	cleaned = longNumRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(whitespaceRe.ReplaceAllString(cleaned, " "))

	tokens := strings.Fields(cleaned)
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, stop := stopwords[token]; stop {
			continue
		}
		lemma := lemmatize(token)
		if _, stop := stopwords[lemma]; stop {
			continue
		}
		if len(lemma) < n.minTokenLen || len(lemma) > n.maxTokenLen {
			continue
		}
		out = append(out, lemma)
	}
	return strings.Join(out, " ")
}

func basicClean(text string) string {
	text = strings.ToLower(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func foldToASCII(text string) string {
	folded, _, err := transform.String(asciiFold, text)
	if err != nil {
		folded = text
	}
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func expandContractions(text string) string {
	for _, c := range contractions {
		text = strings.ReplaceAll(text, c.from, c.to)
	}
	return text
}

var abbreviationRes = buildAbbreviationRes()

func buildAbbreviationRes() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(legalAbbreviations))
	for i, a := range legalAbbreviations {
		res[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(a.from) + `(\s|$)`)
	}
	return res
}

func expandLegalAbbreviations(text string) string {
	for i, a := range legalAbbreviations {
		text = abbreviationRes[i].ReplaceAllString(text, a.to+"$1")
	}
	return text
}

// stripPunctuation keeps lowercase letters, digits and spaces; input is
// already case-folded and ASCII-folded at this point.
func stripPunctuation(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == ' ' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
