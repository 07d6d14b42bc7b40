package conceptgraph

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MatchTopic finds the concept whose name best matches a free-text topic,
// restricted to the given subject and grade (empty filters match all).
// Matching is accent- and case-insensitive: a full substring match beats
// per-word hits, ties resolve to the earliest concept in topological order.
// Returns ("", false) when nothing matches.
func (g *Graph) MatchTopic(topic, subject, grade string) (string, bool) {
	t := normalizeText(topic)
	if t == "" {
		return "", false
	}
	words := strings.Fields(t)

	bestID := ""
	bestScore := 0.0
	for _, c := range g.TopologicalOrder() {
		if subject != "" && c.Subject != subject {
			continue
		}
		if grade != "" && c.Grade != grade {
			continue
		}

		name := normalizeText(c.Name)
		var score float64
		if strings.Contains(name, t) {
			score = 2.0
		} else {
			hits := 0
			for _, w := range words {
				if strings.Contains(name, w) {
					hits++
				}
			}
			if hits > 0 {
				score = 1.0 + 0.1*float64(hits)
			}
		}

		if score > bestScore {
			bestScore = score
			bestID = c.ID
		}
	}

	if bestID == "" {
		return "", false
	}
	return bestID, true
}

// normalizeText lowercases, strips diacritics, and collapses anything that
// is not a letter, digit, or space. "Álgebra  básica" -> "algebra basica".
func normalizeText(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	lastSpace := false
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// Combining mark from decomposition — drop it.
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace && b.Len() > 0 {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}
