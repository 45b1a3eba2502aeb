package similarity

import "strings"

// stopWords are common English function words and pronouns that carry
// little topical signal and would otherwise dominate raw overlap counts.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true, "out": true,
	"has": true, "him": true, "his": true, "how": true, "its": true,
	"may": true, "new": true, "now": true, "old": true, "see": true,
	"two": true, "who": true, "why": true, "did": true, "does": true,
	"have": true, "this": true, "that": true, "with": true, "from": true,
	"they": true, "will": true, "would": true, "there": true, "their": true,
	"what": true, "about": true, "which": true, "when": true, "were": true,
	"been": true, "being": true, "should": true, "could": true, "them": true,
}

// Tokenize normalizes text and splits it into tokens, dropping stop
// words and tokens of length <= 2. Duplicate tokens are retained in
// input order so term frequencies survive for cosine weighting.
func Tokenize(text string) []string {
	words := strings.Fields(Normalize(text))

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len([]rune(w)) <= 2 || stopWords[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}
