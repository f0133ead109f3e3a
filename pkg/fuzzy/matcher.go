package fuzzy

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// Threshold is the disambiguation noise floor. Only scores strictly above it
// are shown to the user.
const Threshold = 60

const (
	unbaseScale        = 0.95
	partialScale       = 0.9
	farPartialScale    = 0.6
	partialLengthRatio = 1.5
	farLengthRatio     = 8
)

// Match is one ranked candidate. Score is in [0,100].
type Match struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Matcher ranks catalog names against a free-text query. It holds no state
// and is safe for concurrent use.
type Matcher struct{}

func NewMatcher() *Matcher {
	return &Matcher{}
}

// Rank scores every candidate against query and returns at most limit
// matches, highest score first. Equal scores keep their input order.
func (m *Matcher) Rank(query string, candidates []string, limit int) []Match {
	if limit <= 0 || len(candidates) == 0 {
		return []Match{}
	}

	matches := make([]Match, 0, len(candidates))
	for _, candidate := range candidates {
		matches = append(matches, Match{Name: candidate, Score: m.Score(query, candidate)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// Score is a weighted ratio: plain edit-distance similarity, token-order and
// token-set variants, and a best-window partial match when the two strings
// differ a lot in length.
func (m *Matcher) Score(query, candidate string) int {
	p1, p2 := Normalize(query), Normalize(candidate)
	if p1 == "" || p2 == "" {
		return 0
	}
	if p1 == p2 {
		return 100
	}

	l1, l2 := runeLen(p1), runeLen(p2)
	lengthRatio := float64(max(l1, l2)) / float64(min(l1, l2))

	best := ratio(p1, p2)

	if lengthRatio < partialLengthRatio {
		best = math.Max(best, tokenSortRatio(p1, p2)*unbaseScale)
		best = math.Max(best, tokenSetRatio(p1, p2)*unbaseScale)
		return round(best)
	}

	scale := partialScale
	if lengthRatio > farLengthRatio {
		scale = farPartialScale
	}
	best = math.Max(best, partialRatio(p1, p2)*scale)
	best = math.Max(best, partialRatio(sortTokens(p1), sortTokens(p2))*unbaseScale*scale)
	return round(best)
}

// AboveThreshold keeps matches whose score is strictly greater than threshold.
func AboveThreshold(matches []Match, threshold int) []Match {
	kept := make([]Match, 0, len(matches))
	for _, match := range matches {
		if match.Score > threshold {
			kept = append(kept, match)
		}
	}
	return kept
}

// Normalize folds case, turns punctuation into spaces and collapses runs of
// whitespace.
func Normalize(s string) string {
	folded := cases.Fold().String(s)
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, folded)
	return strings.Join(strings.Fields(mapped), " ")
}

func ratio(a, b string) float64 {
	longest := max(runeLen(a), runeLen(b))
	if longest == 0 {
		return 0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 100 * float64(longest-distance) / float64(longest)
}

func partialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	needle := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		r := ratio(needle, string(long[i:i+len(short)]))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

func tokenSortRatio(a, b string) float64 {
	return ratio(sortTokens(a), sortTokens(b))
}

func tokenSetRatio(a, b string) float64 {
	setA, setB := tokenSet(a), tokenSet(b)

	var common, onlyA, onlyB []string
	for token := range setA {
		if setB[token] {
			common = append(common, token)
		} else {
			onlyA = append(onlyA, token)
		}
	}
	for token := range setB {
		if !setA[token] {
			onlyB = append(onlyB, token)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	sect := strings.Join(common, " ")
	combinedA := strings.TrimSpace(sect + " " + strings.Join(onlyA, " "))
	combinedB := strings.TrimSpace(sect + " " + strings.Join(onlyB, " "))

	best := ratio(combinedA, combinedB)
	if sect != "" {
		best = math.Max(best, ratio(sect, combinedA))
		best = math.Max(best, ratio(sect, combinedB))
	}
	return best
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range strings.Fields(s) {
		set[token] = true
	}
	return set
}

func runeLen(s string) int {
	return len([]rune(s))
}

func round(f float64) int {
	return int(math.Round(f))
}
