package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/storage"
	"github.com/talentmatch/backend/tenure"
)

// AnalyzeTenureTool scores a candidate's work-history stability.
type AnalyzeTenureTool struct {
	candidates storage.CandidateStore
	analyzer   *tenure.Analyzer
}

// NewAnalyzeTenureTool creates the tenure analysis tool.
func NewAnalyzeTenureTool(candidates storage.CandidateStore, analyzer *tenure.Analyzer) *AnalyzeTenureTool {
	return &AnalyzeTenureTool{candidates: candidates, analyzer: analyzer}
}

// AnalyzeTenureInput is the tool's input payload.
type AnalyzeTenureInput struct {
	CandidateID string `json:"candidate_id"`
}

func (t *AnalyzeTenureTool) Name() string {
	return "analyze_candidate_tenure"
}

func (t *AnalyzeTenureTool) Description() string {
	return "Analyze a candidate's job stability from their work history. Returns a 0-100 score and a stable/moderate/high_risk label with any red flags."
}

func (t *AnalyzeTenureTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"candidate_id": map[string]interface{}{
				"type":        "string",
				"description": "ID of the candidate to analyze",
			},
		},
		"required": []string{"candidate_id"},
	}
}

func (t *AnalyzeTenureTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	var in AnalyzeTenureInput
	if err := json.Unmarshal(input, &in); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err)), nil
	}
	if in.CandidateID == "" {
		return NewErrorResult("candidate_id is required"), nil
	}

	resp, err := t.Analyze(ctx, in.CandidateID)
	if errors.Is(err, storage.ErrNotFound) {
		return NewErrorResult(fmt.Sprintf("candidate not found: %s", in.CandidateID)), nil
	}
	if err != nil {
		return NewErrorResult(err.Error()), nil
	}
	return NewSuccessResult(resp), nil
}

// Analyze fetches the candidate and runs the tenure policy.
func (t *AnalyzeTenureTool) Analyze(ctx context.Context, candidateID string) (*models.TenureResponse, error) {
	cand, err := t.candidates.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	analysis := t.analyzer.Analyze(cand.WorkHistory)
	return &models.TenureResponse{
		CandidateID:     cand.ID,
		Name:            cand.Name,
		Label:           analysis.Label,
		Score:           analysis.Score,
		AvgTenureMonths: analysis.AvgTenureMonths,
		ShortStints:     analysis.ShortStints,
		LongStints:      analysis.LongStints,
		RedFlags:        analysis.RedFlags,
	}, nil
}
