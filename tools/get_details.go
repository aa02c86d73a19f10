package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/storage"
)

// GetDetailsTool returns one candidate's full profile.
type GetDetailsTool struct {
	candidates storage.CandidateStore
}

// NewGetDetailsTool creates the candidate detail tool.
func NewGetDetailsTool(candidates storage.CandidateStore) *GetDetailsTool {
	return &GetDetailsTool{candidates: candidates}
}

// GetDetailsInput is the tool's input payload.
type GetDetailsInput struct {
	CandidateID string `json:"candidate_id"`
}

func (t *GetDetailsTool) Name() string {
	return "get_candidate_details"
}

func (t *GetDetailsTool) Description() string {
	return "Get a candidate's full profile: skills, experience, availability, location, bio and work history."
}

func (t *GetDetailsTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"candidate_id": map[string]interface{}{
				"type":        "string",
				"description": "ID of the candidate to fetch",
			},
		},
		"required": []string{"candidate_id"},
	}
}

func (t *GetDetailsTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	var in GetDetailsInput
	if err := json.Unmarshal(input, &in); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err)), nil
	}
	if in.CandidateID == "" {
		return NewErrorResult("candidate_id is required"), nil
	}

	cand, err := t.Details(ctx, in.CandidateID)
	if errors.Is(err, storage.ErrNotFound) {
		return NewErrorResult(fmt.Sprintf("candidate not found: %s", in.CandidateID)), nil
	}
	if err != nil {
		return NewErrorResult(err.Error()), nil
	}
	return NewSuccessResult(cand), nil
}

// Details fetches the candidate profile directly.
func (t *GetDetailsTool) Details(ctx context.Context, candidateID string) (*models.Candidate, error) {
	return t.candidates.GetCandidate(ctx, candidateID)
}
