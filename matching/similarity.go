package matching

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CosineSimilarity computes the cosine similarity of two vectors.
// Returns 0 for mismatched or zero-norm inputs.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// NormalizeSkill lowercases a skill and strips diacritics so that
// "React", "react" and "Reáct" compare equal.
func NormalizeSkill(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
