package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/talentmatch/backend/filter"
	"github.com/talentmatch/backend/models"
)

// ProgressiveSearchTool runs one progressive-filter turn for a session.
type ProgressiveSearchTool struct {
	filter *filter.Filter
}

// NewProgressiveSearchTool creates the search tool.
func NewProgressiveSearchTool(f *filter.Filter) *ProgressiveSearchTool {
	return &ProgressiveSearchTool{filter: f}
}

// ProgressiveSearchInput is the tool's input payload.
type ProgressiveSearchInput struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query"`
	Reset     bool   `json:"reset,omitempty"`
}

func (t *ProgressiveSearchTool) Name() string {
	return "progressive_search"
}

func (t *ProgressiveSearchTool) Description() string {
	return "Search for candidates. Constraints accumulate across calls within a session, narrowing the previous result pool. Set reset=true to start over from the full pool."
}

func (t *ProgressiveSearchTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"session_id": map[string]interface{}{
				"type":        "string",
				"description": "Conversation session identifier",
			},
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Natural-language hiring requirement, e.g. 'senior react developers available full-time'",
			},
			"reset": map[string]interface{}{
				"type":        "boolean",
				"description": "Start the search over from the full candidate pool",
			},
		},
		"required": []string{"session_id", "query"},
	}
}

func (t *ProgressiveSearchTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	var in ProgressiveSearchInput
	if err := json.Unmarshal(input, &in); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err)), nil
	}
	if in.Query == "" {
		return NewErrorResult("query is required"), nil
	}

	resp, err := t.Search(ctx, in.SessionID, in.Query, in.Reset)
	if err != nil {
		return NewErrorResult(err.Error()), nil
	}
	return NewSuccessResult(resp), nil
}

// Search runs a filter turn directly, bypassing the JSON envelope.
func (t *ProgressiveSearchTool) Search(ctx context.Context, sessionID, query string, reset bool) (*models.SearchResponse, error) {
	resp, err := t.filter.Filter(ctx, sessionID, query, reset, nil)
	if err != nil {
		return nil, err
	}
	resp.NarrativeSummary = filter.Summarize(resp)
	return resp, nil
}
