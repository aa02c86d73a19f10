package models

// SearchRequest represents the API request for a progressive search turn
// @Description Progressive candidate search request
type SearchRequest struct {
	SessionID string          `json:"session_id,omitempty" example:"b42c9a1e-7f13-4f7e-9a61-2f8f0f1c0d1a"`
	Query     string          `json:"query" example:"senior react developers"`
	Reset     bool            `json:"reset,omitempty" example:"false"`
	Company   *CompanyProfile `json:"company_profile,omitempty"`
	CompanyID string          `json:"company_id,omitempty"` // stored profile, used when no inline profile is given
}

// SearchResponse represents the API response for a progressive search turn
// @Description Ranked matches plus the accumulated requirement set
type SearchResponse struct {
	SessionID             string                `json:"session_id"`
	TurnNumber            int                   `json:"turn_number" example:"2"`
	EffectiveRequirements EffectiveRequirements `json:"effective_requirements"`
	PoolSizeBefore        int                   `json:"pool_size_before" example:"50"`
	MatchesFound          int                   `json:"matches_found" example:"12"`
	Matches               []MatchResult         `json:"matches"`
	NarrativeSummary      string                `json:"narrative_summary,omitempty"`
	RefinementSuggestion  string                `json:"refinement_suggestion,omitempty"`
	PoolExhausted         bool                  `json:"pool_exhausted,omitempty"`
	EmbeddingUnavailable  bool                  `json:"embedding_unavailable,omitempty"`
}

// ChatRequest represents a full agent-loop conversation turn
// @Description Conversational message routed through the tool-calling agent
type ChatRequest struct {
	SessionID string          `json:"session_id,omitempty"`
	Message   string          `json:"message" example:"show me only the senior ones"`
	Company   *CompanyProfile `json:"company_profile,omitempty"`
	CompanyID string          `json:"company_id,omitempty"`
}

// ChatResponse represents the agent's reply for one turn
// @Description Natural-language reply plus structured matches for rendering
type ChatResponse struct {
	SessionID  string        `json:"session_id"`
	Response   string        `json:"response"`
	Matches    []MatchResult `json:"matches,omitempty"`
	ToolsUsed  []string      `json:"tools_used,omitempty"`
	Incomplete bool          `json:"incomplete,omitempty"` // tool loop cap was hit
}

// ResetRequest represents a session reset request
type ResetRequest struct {
	SessionID string `json:"session_id"`
}

// ResetResponse acknowledges a session reset
type ResetResponse struct {
	SessionID           string `json:"session_id"`
	Status              string `json:"status" example:"success"`
	CandidatesAvailable int    `json:"candidates_available" example:"50"`
}

// TenureResponse represents the tenure analysis for one candidate
// @Description Work-history stability score and label
type TenureResponse struct {
	CandidateID     string   `json:"candidate_id"`
	Name            string   `json:"name,omitempty"`
	Label           string   `json:"label" example:"stable"`
	Score           int      `json:"score" example:"85"`
	AvgTenureMonths float64  `json:"avg_tenure_months" example:"28.5"`
	ShortStints     int      `json:"short_stint_count"`
	LongStints      int      `json:"long_stint_count"`
	RedFlags        []string `json:"red_flags,omitempty"`
}

// CompanyProfileRequest sets the employer profile for a session
type CompanyProfileRequest struct {
	SessionID string         `json:"session_id"`
	Profile   CompanyProfile `json:"profile"`
}

// ErrorResponse represents an API error response
// @Description Standard error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Code    int    `json:"code" example:"400"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents health check response
// @Description Server health status
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Version   string `json:"version" example:"1.0.0"`
	Timestamp string `json:"timestamp"`
}
