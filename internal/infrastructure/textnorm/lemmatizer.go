package textnorm

import "strings"

// Irregular forms that suffix rules would mangle.
var irregularLemmas = map[string]string{
	"children": "child",
	"men":      "man",
	"women":    "woman",
	"wives":    "wife",
	"feet":     "foot",
	"teeth":    "tooth",
	"mice":     "mouse",
	"people":   "person",
	"held":     "hold",
	"gave":     "give",
	"given":    "give",
	"taken":    "take",
	"took":     "take",
	"went":     "go",
	"gone":     "go",
	"brought":  "bring",
	"bought":   "buy",
	"sought":   "seek",
	"caught":   "catch",
	"paid":     "pay",
	"made":     "make",
	"said":     "say",
	"found":    "find",
	"lost":     "lose",
	"stolen":   "steal",
	"stole":    "steal",
	"sued":     "sue",
	"left":     "leave",
	"laws":     "law",
	"rights":   "right",
}

// Base forms used to validate "+e" restoration after stripping verbal
// suffixes ("filing" -> "file", "charged" -> "charge"). Without a full
// lexicon this list covers the verbs that matter for legal queries.
var eRestoredBases = map[string]struct{}{
	"file": {}, "charge": {}, "judge": {}, "sentence": {}, "fine": {},
	"release": {}, "seize": {}, "lease": {}, "use": {}, "abuse": {},
	"accuse": {}, "announce": {}, "argue": {}, "arrange": {},
	"believe": {}, "bribe": {}, "change": {}, "compare": {},
	"complete": {}, "decide": {}, "declare": {}, "describe": {},
	"divorce": {}, "engage": {}, "examine": {}, "execute": {},
	"give": {}, "include": {}, "issue": {}, "manage": {}, "note": {},
	"notice": {}, "provide": {}, "prove": {}, "purchase": {},
	"receive": {}, "refuse": {}, "register": {}, "remove": {},
	"require": {}, "resolve": {}, "serve": {}, "settle": {},
	"state": {}, "take": {}, "trace": {}, "value": {}, "violate": {},
	"write": {}, "agree": {},
}

// lemmatize reduces a token to a base form with morphy-style suffix
// detachment: noun rules first, then verbal -ed/-ing, defaulting to the
// noun reading when ambiguous. Rules are re-applied until the token
// stops changing, so a plural gerund ("filings") reaches its terminal
// base ("file") in one call and normalization stays idempotent.
func lemmatize(token string) string {
	for {
		next := lemmatizeStep(token)
		if next == token {
			return token
		}
		token = next
	}
}

func lemmatizeStep(token string) string {
	if len(token) < 3 {
		return token
	}
	if lemma, ok := irregularLemmas[token]; ok {
		return lemma
	}

	if lemma, ok := depluralize(token); ok {
		return lemma
	}
	if lemma, ok := deverbalize(token); ok {
		return lemma
	}
	return token
}

func depluralize(token string) (string, bool) {
	switch {
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		return token[:len(token)-3] + "y", true
	case strings.HasSuffix(token, "ches"), strings.HasSuffix(token, "shes"),
		strings.HasSuffix(token, "xes"), strings.HasSuffix(token, "zes"),
		strings.HasSuffix(token, "sses"):
		return token[:len(token)-2], true
	case strings.HasSuffix(token, "ss"), strings.HasSuffix(token, "us"),
		strings.HasSuffix(token, "is"):
		return token, false
	case strings.HasSuffix(token, "s") && len(token) > 3:
		return token[:len(token)-1], true
	}
	return token, false
}

func deverbalize(token string) (string, bool) {
	if strings.HasSuffix(token, "ied") && len(token) > 4 {
		return token[:len(token)-3] + "y", true
	}
	if strings.HasSuffix(token, "ing") && len(token) >= 6 {
		return fixStrippedStem(token[:len(token)-3]), true
	}
	if strings.HasSuffix(token, "eed") {
		base := token[:len(token)-1]
		if _, ok := eRestoredBases[base]; ok {
			return base, true
		}
		return token, false
	}
	if strings.HasSuffix(token, "ed") && len(token) >= 5 {
		return fixStrippedStem(token[:len(token)-2]), true
	}
	return token, false
}

// fixStrippedStem undoes doubled final consonants ("wedd" -> "wed") and
// restores a trailing "e" when the result is a known base ("fil" ->
// "file").
func fixStrippedStem(stem string) string {
	if n := len(stem); n >= 3 && stem[n-1] == stem[n-2] && !isVowel(stem[n-1]) {
		return stem[:n-1]
	}
	if _, ok := eRestoredBases[stem+"e"]; ok {
		return stem + "e"
	}
	return stem
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
