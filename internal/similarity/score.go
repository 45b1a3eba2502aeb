package similarity

import "math"

// Jaccard computes set overlap between the tokens of two texts:
// |A ∩ B| / |A ∪ B| with duplicates collapsed. Two contentless inputs
// are defined as maximally similar and score 1.0.
func Jaccard(a, b string) float64 {
	setA := tokenSet(Tokenize(a))
	setB := tokenSet(Tokenize(b))

	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for t := range setA {
		if setB[t] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

// Cosine computes TF-weighted cosine similarity between the tokens of
// two texts. Duplicate tokens count toward term frequency. Follows the
// same empty/empty policy as Jaccard.
func Cosine(a, b string) float64 {
	tokensA := Tokenize(a)
	tokensB := Tokenize(b)

	if len(tokensA) == 0 && len(tokensB) == 0 {
		return 1.0
	}
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0.0
	}

	freqA := termFrequency(tokensA)
	freqB := termFrequency(tokensB)

	var dot float64
	for term, countA := range freqA {
		if countB, ok := freqB[term]; ok {
			dot += float64(countA) * float64(countB)
		}
	}

	normA := vectorNorm(freqA)
	normB := vectorNorm(freqB)
	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dot / (normA * normB)
}

// Combined averages Jaccard and Cosine into one score. A plain mean is
// deliberate: cheap and interpretable for a warning heuristic rather
// than authoritative ranking.
func Combined(a, b string) float64 {
	return (Jaccard(a, b) + Cosine(a, b)) / 2.0
}

func tokenSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

func termFrequency(tokens []string) map[string]int {
	freq := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freq[t]++
	}
	return freq
}

func vectorNorm(freq map[string]int) float64 {
	var sum float64
	for _, count := range freq {
		sum += float64(count) * float64(count)
	}
	return math.Sqrt(sum)
}
