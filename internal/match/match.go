// Package match implements keyword matching over recognized speech.
// Transcripts are normalized before matching so accents and casing coming
// out of a recognizer never affect the result.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, trims, and strips combining diacritic marks, so
// "Français" and "francais" compare equal.
func Normalize(text string) string {
	out, _, err := transform.String(stripMarks, text)
	if err != nil {
		out = text
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Candidate is a named choice with the keywords that select it.
type Candidate struct {
	Name     string
	Keywords []string
}

// Best returns the candidate whose longest keyword appears in the
// normalized transcript. Longer keywords win over shorter ones, so
// "transaction history" beats "history" regardless of candidate order;
// ties keep the earlier candidate.
func Best(transcript string, candidates []Candidate) (Candidate, bool) {
	text := Normalize(transcript)
	var best Candidate
	bestLen := -1
	for _, c := range candidates {
		for _, kw := range c.Keywords {
			k := Normalize(kw)
			if k == "" || !strings.Contains(text, k) {
				continue
			}
			if len(k) > bestLen {
				best = c
				bestLen = len(k)
			}
		}
	}
	return best, bestLen >= 0
}

// AnyOf reports whether any keyword appears in the normalized transcript.
func AnyOf(transcript string, keywords []string) bool {
	text := Normalize(transcript)
	for _, kw := range keywords {
		k := Normalize(kw)
		if k != "" && strings.Contains(text, k) {
			return true
		}
	}
	return false
}
