package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindMostSimilar_Ranking(t *testing.T) {
	candidates := []string{
		"wifi is slow",
		"wifi slow again",
		"food is cold",
	}

	matches := FindMostSimilar("the wifi is very slow", candidates, 2, 0.1)

	require.Len(t, matches, 2)
	assert.Equal(t, "wifi is slow", matches[0].Text)
	assert.Equal(t, "wifi slow again", matches[1].Text)
	assert.Greater(t, matches[0].Score, matches[1].Score)
}

func TestFindMostSimilar_LimitAndThreshold(t *testing.T) {
	candidates := []string{
		"wifi down in hostel block",
		"hostel wifi not working",
		"wifi outage reported hostel",
		"parking lot lighting broken",
	}

	matches := FindMostSimilar("hostel wifi down", candidates, 2, 0.2)

	assert.LessOrEqual(t, len(matches), 2)
	for _, m := range matches {
		assert.GreaterOrEqual(t, m.Score, 0.2)
	}
}

func TestFindMostSimilar_NoTruncationWhenLimitZero(t *testing.T) {
	candidates := []string{
		"wifi slow",
		"wifi very slow",
		"slow wifi connection",
	}

	matches := FindMostSimilar("slow wifi", candidates, 0, 0.0)
	assert.Len(t, matches, 3)
}

func TestFindMostSimilar_StableTieOrder(t *testing.T) {
	// Identical candidates score identically; input order must survive.
	candidates := []string{
		"projector broken in room",
		"projector broken in room",
	}

	matches := FindMostSimilar("room projector broken", candidates, 0, 0.1)

	require.Len(t, matches, 2)
	assert.Equal(t, 0, matches[0].Index)
	assert.Equal(t, 1, matches[1].Index)
	assert.Equal(t, matches[0].Score, matches[1].Score)
}

func TestFindMostSimilar_IndexSurvivesFiltering(t *testing.T) {
	candidates := []string{
		"cafeteria food cold",
		"wifi keeps dropping in library",
	}

	matches := FindMostSimilar("library wifi dropping", candidates, 3, 0.3)

	require.NotEmpty(t, matches)
	assert.Equal(t, 1, matches[0].Index)
}

func TestFindMostSimilar_EmptyCandidates(t *testing.T) {
	assert.Empty(t, FindMostSimilar("anything", nil, 3, 0.3))
}
