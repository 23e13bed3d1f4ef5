package usecase

import (
	"regexp"
	"strings"
)

// Domain-significant vocabulary for literal-match boosting. Substring
// containment against raw (not normalized) text, so exact crime names,
// act names and procedural terms keep their full weight even when the
// vector space dilutes them.
var legalKeywords = []string{
	// Crime types
	"theft", "robbery", "dacoity", "murder", "assault", "rape", "kidnapping",
	"extortion", "forgery", "cheating", "fraud", "bribery", "corruption",
	"defamation", "trespass", "mischief", "arson", "riot",

	// Procedure
	"bail", "arrest", "fir", "warrant", "trial", "appeal", "petition",
	"complaint", "cognizable", "bailable", "summons", "investigation",
	"chargesheet", "custody", "remand", "conviction", "acquittal",

	// Statutes and structure
	"ipc", "crpc", "section", "act", "code", "article", "clause",

	// Family law
	"divorce", "marriage", "maintenance", "alimony", "adoption",
	"matrimonial", "spouse", "dowry",

	// Property law
	"property", "land", "title", "deed", "registration", "mutation",
	"ownership", "inheritance", "estate", "lease",

	// Consumer law
	"consumer", "defective", "refund", "warranty", "compensation",

	// Cyber law
	"cyber", "hacking", "phishing", "online", "digital", "internet",

	// Intent signal, not subject matter
	"what", "how", "when", "where", "why", "who", "which",
	"punishment", "penalty", "sentence", "fine", "imprisonment",
	"procedure", "process", "rights", "law", "legal",
}

var (
	sectionNumberRe = regexp.MustCompile(`section\s+(\d+[a-z]?)`)
	bareNumberRe    = regexp.MustCompile(`\b(\d+)\b`)
)

// extractKeywords pulls the domain vocabulary hits out of text, section
// references normalized to a canonical token ("section 420" ->
// "section420"), and standalone numbers.
func extractKeywords(text string) map[string]struct{} {
	lower := strings.ToLower(text)
	found := make(map[string]struct{})

	for _, keyword := range legalKeywords {
		if strings.Contains(lower, keyword) {
			found[keyword] = struct{}{}
		}
	}
	for _, m := range sectionNumberRe.FindAllStringSubmatch(lower, -1) {
		found["section"+m[1]] = struct{}{}
	}
	for _, m := range bareNumberRe.FindAllStringSubmatch(lower, -1) {
		found[m[1]] = struct{}{}
	}
	return found
}

// keywordScore measures literal keyword overlap between the query and a
// candidate record. Question matches carry 70% of the weight: paraphrase
// overlap on the question is the stronger relevance signal, the answer
// only corroborates. Returns 0 when the query has no keywords.
func keywordScore(query, candidateQuestion, candidateAnswer string) float64 {
	queryKeywords := extractKeywords(query)
	if len(queryKeywords) == 0 {
		return 0.0
	}

	questionMatches := overlapRatio(queryKeywords, extractKeywords(candidateQuestion))
	answerMatches := overlapRatio(queryKeywords, extractKeywords(candidateAnswer))

	score := 0.7*questionMatches + 0.3*answerMatches
	if score > 1.0 {
		score = 1.0
	}
	return score
}

func overlapRatio(query, candidate map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	matches := 0
	for kw := range query {
		if _, ok := candidate[kw]; ok {
			matches++
		}
	}
	return float64(matches) / float64(len(query))
}
