package models

// ConversationState is the per-session state of a progressive search.
// Owned by the progressive filter through a keyed session store; one
// instance exists per session id and is replaced wholesale each turn
// (last-write-wins). The pool at turn n is always a subset of the pool
// at turn n-1 unless a reset intervenes.
type ConversationState struct {
	SessionID string                `json:"session_id"`
	Turn      int                   `json:"turn"`
	History   []RequirementFragment `json:"history"`
	// Pool holds the candidate ids that survived the previous turn and
	// form the starting point for the next one. Empty plus Turn==0 means
	// the full universe.
	Pool []string `json:"pool"`
	// Exhausted marks that the last turn narrowed the pool to zero
	// candidates; a presentation layer may suggest relaxing a filter.
	Exhausted bool `json:"exhausted"`
	// Company is the employer profile used for culture matching in this
	// session, when one was supplied.
	Company *CompanyProfile `json:"company,omitempty"`
}

// NewConversationState returns a fresh state: full universe, no history.
func NewConversationState(sessionID string) *ConversationState {
	return &ConversationState{SessionID: sessionID}
}

// Reset clears accumulated requirements and restores the full universe
// while keeping the session id and company profile.
func (s *ConversationState) Reset() {
	s.Turn = 0
	s.History = nil
	s.Pool = nil
	s.Exhausted = false
}
