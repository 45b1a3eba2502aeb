package similarity

import "sort"

// Match pairs a candidate with its combined similarity score. Index is
// the candidate's position in the input slice so callers can re-join a
// match to its source record without content-derived keys.
type Match struct {
	Index int     `json:"index"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// FindMostSimilar scores every candidate against query, drops scores
// below minScore, sorts descending and truncates to limit. Ties keep
// the candidates' relative input order. limit <= 0 means no truncation.
func FindMostSimilar(query string, candidates []string, limit int, minScore float64) []Match {
	matches := make([]Match, 0, len(candidates))

	for i, candidate := range candidates {
		score := Combined(query, candidate)
		if score < minScore {
			continue
		}
		matches = append(matches, Match{
			Index: i,
			Text:  candidate,
			Score: score,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches
}
