package models

// TransferablePair records a required skill covered by a different,
// partially substitutable skill the candidate holds.
type TransferablePair struct {
	Required string `json:"required"`
	Has      string `json:"has"`
}

// MatchResult is the per-candidate scoring output for one turn.
// Produced fresh on every turn, never persisted.
type MatchResult struct {
	CandidateID string `json:"candidate_id"`
	Name        string `json:"name,omitempty"`
	Score       int    `json:"score"` // 0-100
	// RankScore is the pre-smoothing score. Ranking uses it so the
	// cosmetic smoothing of Score can never reorder candidates.
	RankScore       float64  `json:"-"`
	ExperienceYears float64  `json:"experience_years"`
	ExperienceLevel string   `json:"experience_level,omitempty"`
	Availability    string   `json:"availability,omitempty"`
	Location        string   `json:"location,omitempty"`
	Skills          []string `json:"skills,omitempty"`

	MatchedSkills      []string           `json:"matched_skills"`
	TransferableSkills []TransferablePair `json:"transferable_skills"`
	MissingSkills      []string           `json:"missing_skills"`
	Reasoning          string             `json:"reasoning"`

	// Only populated when a company profile was supplied.
	CultureFit       *float64 `json:"culture_fit,omitempty"`
	MissionAlignment *float64 `json:"mission_alignment,omitempty"`
	OverallFit       *float64 `json:"overall_fit,omitempty"`

	TenureLabel string `json:"tenure_label,omitempty"`

	// Set when the embedding provider was unreachable and the score
	// fell back to the direct/transferable signal only.
	EmbeddingUnavailable bool `json:"embedding_unavailable,omitempty"`
}

// CompanyProfile carries the employer side of culture matching: the
// culture questionnaire answers and the mission statement.
type CompanyProfile struct {
	Name           string            `json:"name,omitempty" firestore:"name,omitempty"`
	Mission        string            `json:"mission,omitempty" firestore:"mission,omitempty"`
	CultureAnswers map[string]string `json:"culture_answers,omitempty" firestore:"cultureAnswers,omitempty"`
}
