package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/talentmatch/backend/filter"
)

// ResetSearchTool reinitializes a session's search state.
type ResetSearchTool struct {
	filter *filter.Filter
}

// NewResetSearchTool creates the reset tool.
func NewResetSearchTool(f *filter.Filter) *ResetSearchTool {
	return &ResetSearchTool{filter: f}
}

// ResetSearchInput is the tool's input payload.
type ResetSearchInput struct {
	SessionID string `json:"session_id"`
}

func (t *ResetSearchTool) Name() string {
	return "reset_search"
}

func (t *ResetSearchTool) Description() string {
	return "Discard all accumulated requirements for a session and start over from the full candidate pool."
}

func (t *ResetSearchTool) InputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"session_id": map[string]interface{}{
				"type":        "string",
				"description": "Session to reset",
			},
		},
		"required": []string{"session_id"},
	}
}

func (t *ResetSearchTool) Execute(ctx context.Context, input json.RawMessage) (*ToolResult, error) {
	var in ResetSearchInput
	if err := json.Unmarshal(input, &in); err != nil {
		return NewErrorResult(fmt.Sprintf("invalid input: %v", err)), nil
	}
	if in.SessionID == "" {
		return NewErrorResult("session_id is required"), nil
	}

	available, err := t.Reset(ctx, in.SessionID)
	if errors.Is(err, filter.ErrUnknownSession) {
		return NewErrorResult(fmt.Sprintf("unknown session: %s", in.SessionID)), nil
	}
	if err != nil {
		return NewErrorResult(err.Error()), nil
	}

	return NewSuccessResult(map[string]interface{}{
		"session_id":           in.SessionID,
		"status":               "success",
		"candidates_available": available,
	}), nil
}

// Reset clears the session state directly.
func (t *ResetSearchTool) Reset(ctx context.Context, sessionID string) (int, error) {
	return t.filter.Reset(ctx, sessionID)
}
