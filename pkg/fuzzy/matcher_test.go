package fuzzy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalog = []string{"Al Fakher", "Adalya", "Serbetli"}

func TestRankFindsExactNameIgnoringCase(t *testing.T) {
	m := NewMatcher()

	matches := m.Rank("al fakher", catalog, 5)

	require.NotEmpty(t, matches)
	assert.Equal(t, "Al Fakher", matches[0].Name)
	assert.Greater(t, matches[0].Score, Threshold)
}

func TestRankUnrelatedQueryIsFilteredOut(t *testing.T) {
	m := NewMatcher()

	matches := AboveThreshold(m.Rank("xyz123", catalog, 5), Threshold)

	assert.Empty(t, matches)
}

func TestRankEmptyCandidates(t *testing.T) {
	m := NewMatcher()

	matches := m.Rank("anything", nil, 5)

	assert.NotNil(t, matches)
	assert.Empty(t, matches)
}

func TestRankRespectsLimitAndOrdering(t *testing.T) {
	m := NewMatcher()
	candidates := []string{
		"Darkside Bananapapa", "Darkside Supernova", "Tangiers Cane Mint",
		"Al Fakher Mint", "Adalya Love 66", "Serbetli Ice Melon",
		"MustHave Pinkman", "Element Water Mint", "Black Burn Overdose",
	}

	for _, query := range []string{"mint", "darkside", "love66", "", "melon ice"} {
		for _, limit := range []int{0, 1, 3, 5, 20} {
			t.Run(fmt.Sprintf("%q/%d", query, limit), func(t *testing.T) {
				matches := m.Rank(query, candidates, limit)

				assert.LessOrEqual(t, len(matches), max(limit, 0))
				for i := 1; i < len(matches); i++ {
					assert.GreaterOrEqual(t, matches[i-1].Score, matches[i].Score)
				}
				for _, match := range matches {
					assert.GreaterOrEqual(t, match.Score, 0)
					assert.LessOrEqual(t, match.Score, 100)
				}
			})
		}
	}
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	m := NewMatcher()
	candidates := []string{"Adalya", "Serbetli", "Tangiers"}

	matches := m.Rank("qqq", candidates, 3)

	require.Len(t, matches, 3)
	for i, match := range matches {
		assert.Equal(t, 0, match.Score)
		assert.Equal(t, candidates[i], match.Name)
	}
}

func TestScoreNormalization(t *testing.T) {
	m := NewMatcher()

	tests := []struct {
		query     string
		candidate string
	}{
		{"  AL   fakher ", "Al Fakher"},
		{"al-fakher", "Al Fakher"},
		{"дарксайд", "Дарксайд"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, 100, m.Score(tt.query, tt.candidate))
		})
	}
}

func TestScoreSubstringBeatsScatteredOverlap(t *testing.T) {
	m := NewMatcher()

	substring := m.Score("fakher", "Al Fakher Grape")
	scattered := m.Score("fakher", "Four Kings Heather")

	assert.Greater(t, substring, scattered)
	assert.Greater(t, substring, Threshold)
}

func TestScoreSmallTypoStaysAboveThreshold(t *testing.T) {
	m := NewMatcher()

	assert.Greater(t, m.Score("al fahker", "Al Fakher"), Threshold)
	assert.Greater(t, m.Score("serbeti", "Serbetli"), Threshold)
}

func TestAboveThresholdBoundary(t *testing.T) {
	matches := []Match{
		{Name: "exactly", Score: 60},
		{Name: "above", Score: 61},
		{Name: "below", Score: 59},
		{Name: "top", Score: 100},
	}

	kept := AboveThreshold(matches, Threshold)

	assert.Equal(t, []Match{{Name: "above", Score: 61}, {Name: "top", Score: 100}}, kept)
}
