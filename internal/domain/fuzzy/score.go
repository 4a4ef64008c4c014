package fuzzy

import (
	"strings"

	"github.com/antzucaro/matchr"
)

// weighting applied when a strategy compares less of the candidate
// than the full string does.
const (
	concatWeight   = 0.95
	pairwiseWeight = 0.90
)

// score compares an input token against a candidate name and returns
// the best weighted Jaro-Winkler similarity on a 0-100 scale. Three
// strategies are tried so multi-word candidates still score well
// against single-token input: the full string, the candidate with
// spaces removed, and the best single candidate token.
func score(token, candidate string) int {
	token = strings.ToLower(token)
	candidate = strings.ToLower(candidate)

	best := matchr.JaroWinkler(token, candidate, false)

	fields := strings.Fields(candidate)
	if len(fields) > 1 {
		concat := matchr.JaroWinkler(token, strings.Join(fields, ""), false) * concatWeight
		if concat > best {
			best = concat
		}
	}
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		pair := matchr.JaroWinkler(token, f, false) * pairwiseWeight
		if pair > best {
			best = pair
		}
	}
	return int(best*100 + 0.5)
}

// editDistance reports the Levenshtein distance between token and
// candidate, for diagnostics alongside the similarity score.
func editDistance(token, candidate string) int {
	return matchr.Levenshtein(strings.ToLower(token), strings.ToLower(candidate))
}
