// Package matching scores candidates against an accumulated requirement
// set: exact skill overlap, transferable-skill bonuses, experience
// alignment and optional embedding-based refinement.
package matching

// Weights is the tunable constant table for the scoring engine. All
// heuristic numbers live here, never inline in the algorithm, so tests
// can assert exact values and operators can tune without touching code.
type Weights struct {
	// Transferability maps required skill -> candidate skill -> bonus
	// points. A candidate-held skill that partially substitutes for a
	// missing required one contributes its bonus once.
	Transferability map[string]map[string]float64

	// Experience-level penalties: one level off and two levels off.
	LevelPenaltyNear float64
	LevelPenaltyFar  float64

	// EmbeddingBlend is the fraction of the embedding similarity
	// (scaled 0-100) blended into the score, applied only when the
	// direct-match ratio falls below EmbeddingWeakSignal.
	EmbeddingBlend      float64
	EmbeddingWeakSignal float64

	// Overall-fit blend when a company profile is present. The split is
	// a product decision with no derivation behind it; treat as tunable.
	SkillWeight   float64
	CultureWeight float64
	MissionWeight float64

	// MissionNeutral is the mission-alignment score used when either
	// side has no problem-domain text to compare.
	MissionNeutral float64

	// SmoothScores enables the cosmetic de-rounding of final scores.
	// Disabled in tests that assert exact arithmetic.
	SmoothScores bool
}

// DefaultWeights is the versioned production weight table.
var DefaultWeights = Weights{
	Transferability: map[string]map[string]float64{
		"react": {
			"vue.js":  20,
			"angular": 15,
			"next.js": 20,
		},
		"vue.js": {
			"react":   20,
			"angular": 15,
		},
		"angular": {
			"react":  15,
			"vue.js": 15,
		},
		"next.js": {
			"react": 20,
		},
		"node.js": {
			"express": 20,
			"nestjs":  15,
			"fastapi": 10,
		},
		"python": {
			"django":  15,
			"fastapi": 15,
		},
		"typescript": {
			"javascript": 15,
		},
		"javascript": {
			"typescript": 15,
		},
		"postgresql": {
			"mysql": 15,
		},
	},

	LevelPenaltyNear: 10,
	LevelPenaltyFar:  25,

	EmbeddingBlend:      0.20,
	EmbeddingWeakSignal: 0.5,

	SkillWeight:   0.60,
	CultureWeight: 0.25,
	MissionWeight: 0.15,

	MissionNeutral: 70,

	SmoothScores: true,
}
