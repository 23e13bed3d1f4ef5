package textnorm

// Contractions expanded before legal abbreviations so that generic
// apostrophe forms are not clobbered by the abbreviation pass. Longer
// keys are applied first.
var contractions = []struct{ from, to string }{
	{"won't", "will not"},
	{"can't", "cannot"},
	{"n't", " not"},
	{"'re", " are"},
	{"'ve", " have"},
	{"'ll", " will"},
	{"'d", " would"},
	{"'m", " am"},
}

var legalAbbreviations = []struct{ from, to string }{
	{"op. cit.", "in the work cited"},
	{"ibid.", "in the same place"},
	{"i.e.", "that is"},
	{"e.g.", "for example"},
	{"etc.", "et cetera"},
	{"vs.", "versus"},
	{"cf.", "compare"},
	{"ca.", "circa"},
	{"v.", "versus"},
	{"supra", "above"},
	{"infra", "below"},
}

// English stopwords plus legal connectives. The legal set mirrors the
// boilerplate vocabulary of statutes and judgments; dropping it keeps
// ubiquitous drafting words out of the vector space.
var stopwords = buildStopwordSet()

func buildStopwordSet() map[string]struct{} {
	english := []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves",
		"you", "your", "yours", "yourself", "yourselves",
		"he", "him", "his", "himself", "she", "her", "hers", "herself",
		"it", "its", "itself", "they", "them", "their", "theirs", "themselves",
		"am", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "having", "do", "does", "did", "doing",
		"a", "an", "the", "and", "but", "if", "or", "because", "as",
		"until", "while", "of", "at", "by", "for", "with", "about",
		"against", "between", "into", "through", "during", "before",
		"after", "above", "below", "to", "from", "up", "down", "in",
		"out", "on", "off", "over", "under", "again", "further", "then",
		"once", "here", "there", "all", "any", "both", "each", "few",
		"more", "most", "other", "some", "such", "no", "nor", "not",
		"only", "own", "same", "so", "than", "too", "very", "can",
		"will", "just", "should", "now", "this", "that", "these",
		"those", "shall", "must", "would", "could",
		"what", "which", "who", "whom", "when", "where", "why", "how",
	}
	legal := []string{
		"whereas", "whereof", "wherein", "whereby", "therefore",
		"heretofore", "hereinafter", "aforementioned", "aforesaid",
		"pursuant", "thereof", "herein", "hereunder", "notwithstanding",
		"provided", "however",
	}

	set := make(map[string]struct{}, len(english)+len(legal))
	for _, w := range english {
		set[w] = struct{}{}
	}
	for _, w := range legal {
		set[w] = struct{}{}
	}
	return set
}
