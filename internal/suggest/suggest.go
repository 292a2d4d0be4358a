// Package suggest ranks "did you mean" candidates for unknown options
// and subcommands. Distance comes from xrash/smetrics (the same library
// the wider CLI ecosystem uses for this); ties break on Jaro-Winkler
// similarity so prefix-preserving typos win.
package suggest

import (
	"strings"

	"github.com/xrash/smetrics"
)

// Inputs shorter than this never produce a suggestion; one-character
// typos match too much.
const minInputLength = 2

// Best returns the closest candidate within maxDistance edits of input,
// or "" when nothing qualifies. Matching is case-insensitive; an exact
// match is not a suggestion and returns "".
func Best(input string, candidates []string, maxDistance int) string {
	if maxDistance <= 0 || len(input) < minInputLength {
		return ""
	}

	lowered := strings.ToLower(input)
	best := ""
	bestDist := maxDistance + 1
	bestSim := 0.0

	for _, cand := range candidates {
		cl := strings.ToLower(cand)
		if cl == lowered {
			continue
		}
		dist := smetrics.WagnerFischer(lowered, cl, 1, 1, 1)
		if dist > maxDistance {
			continue
		}
		sim := smetrics.JaroWinkler(lowered, cl, 0.7, 4)
		if dist < bestDist || (dist == bestDist && sim > bestSim) {
			best = cand
			bestDist = dist
			bestSim = sim
		}
	}
	return best
}
