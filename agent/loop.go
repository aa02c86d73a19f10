// Package agent runs the conversational tool-calling loop: it feeds the
// user message and tool results to the model until the model produces a
// final text reply, bounded by a cycle cap.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/tools"
)

// Message is one entry in a session's conversation history.
type Message struct {
	Role       string          `json:"role"` // "user", "model" or "tool"
	Text       string          `json:"text,omitempty"`
	ToolName   string          `json:"tool_name,omitempty"`
	ToolArgs   json.RawMessage `json:"tool_args,omitempty"`
	ToolResult json.RawMessage `json:"tool_result,omitempty"`
}

// ToolCall is a model request to execute one tool.
type ToolCall struct {
	Name string
	Args json.RawMessage
}

// Reply is the model's output for one reasoning step: either final text
// or one or more tool calls.
type Reply struct {
	Text  string
	Calls []ToolCall
}

// Model produces the next reasoning step given the conversation so far
// and the available tool definitions.
type Model interface {
	Reason(ctx context.Context, system string, history []Message, defs []tools.Definition) (*Reply, error)
}

// Loop drives a session's conversation through the model and tools.
type Loop struct {
	model     Model
	registry  *tools.ToolRegistry
	maxCycles int
	logger    *zap.SugaredLogger

	mu        sync.Mutex
	histories map[string][]Message
}

// NewLoop creates an agent loop. maxCycles bounds tool executions per
// turn; when the cap is hit the turn returns partial results flagged
// incomplete.
func NewLoop(model Model, registry *tools.ToolRegistry, maxCycles int, logger *zap.SugaredLogger) *Loop {
	if maxCycles <= 0 {
		maxCycles = 5
	}
	return &Loop{
		model:     model,
		registry:  registry,
		maxCycles: maxCycles,
		logger:    logger,
		histories: make(map[string][]Message),
	}
}

const systemPrompt = `You are a recruiting assistant helping an employer find candidates.

You have tools for searching candidates, analyzing their job stability, and fetching profiles. Requirements accumulate across the conversation: each search narrows the previous results. When the employer changes direction entirely, reset the search first.

Rules:
- Always pass session_id %q to every tool call.
- Use progressive_search for any hiring requirement the employer states.
- Use analyze_candidate_tenure when asked about stability, loyalty or job hopping.
- Use get_candidate_details when asked about one specific person.
- Use reset_search when the employer wants to start over or switches to a completely different role.
- After the tools return, reply conversationally. Mention top candidates by name with their scores. Keep it short.`

// Chat runs one conversation turn for the session and returns the
// model's final reply with any matches surfaced by search tools.
func (l *Loop) Chat(ctx context.Context, sessionID, message string) (*models.ChatResponse, error) {
	history := append(l.snapshot(sessionID), Message{Role: "user", Text: message})
	system := fmt.Sprintf(systemPrompt, sessionID)

	resp := &models.ChatResponse{SessionID: sessionID}
	cycles := 0

	for {
		reply, err := l.model.Reason(ctx, system, history, l.registry.Definitions())
		if err != nil {
			return nil, fmt.Errorf("model reasoning failed: %w", err)
		}

		if len(reply.Calls) == 0 {
			resp.Response = reply.Text
			history = append(history, Message{Role: "model", Text: reply.Text})
			break
		}

		capped := false
		for _, call := range reply.Calls {
			cycles++
			if cycles > l.maxCycles {
				capped = true
				break
			}
			history = l.executeCall(ctx, sessionID, call, history, resp)
		}
		if capped {
			resp.Incomplete = true
			resp.Response = l.partialReply(resp)
			history = append(history, Message{Role: "model", Text: resp.Response})
			break
		}
	}

	l.store(sessionID, history)
	return resp, nil
}

// executeCall runs one tool call, records it in the history and folds
// interesting results into the response.
func (l *Loop) executeCall(ctx context.Context, sessionID string, call ToolCall, history []Message, resp *models.ChatResponse) []Message {
	args := ensureSessionID(call.Args, sessionID)

	result, err := l.registry.Execute(ctx, call.Name, args)
	if err != nil {
		result = tools.NewErrorResult(err.Error())
	}
	resp.ToolsUsed = append(resp.ToolsUsed, call.Name)

	if result.Success {
		switch data := result.Data.(type) {
		case *models.SearchResponse:
			resp.Matches = data.Matches
		}
	}

	// Resetting the search also discards the conversational context
	// that produced the old pool.
	if call.Name == "reset_search" && result.Success {
		l.store(sessionID, nil)
		history = history[:0]
		resp.Matches = nil
	}

	payload, merr := json.Marshal(result)
	if merr != nil {
		payload = []byte(`{"success":false,"error":"unserializable tool result"}`)
	}

	l.logger.Debugw("tool executed", "session", sessionID, "tool", call.Name, "success", result.Success)

	return append(history, Message{
		Role:       "tool",
		ToolName:   call.Name,
		ToolArgs:   args,
		ToolResult: payload,
	})
}

// partialReply summarizes whatever the tools produced before the cycle
// cap was hit.
func (l *Loop) partialReply(resp *models.ChatResponse) string {
	if len(resp.Matches) > 0 {
		return fmt.Sprintf("I found %d candidates so far but couldn't finish refining the search. Here's what I have.", len(resp.Matches))
	}
	return "I couldn't finish working through that request. Could you rephrase or break it into smaller steps?"
}

// Reset discards the session's conversation history.
func (l *Loop) Reset(sessionID string) {
	l.store(sessionID, nil)
}

func (l *Loop) snapshot(sessionID string) []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	stored := l.histories[sessionID]
	out := make([]Message, len(stored))
	copy(out, stored)
	return out
}

func (l *Loop) store(sessionID string, history []Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if history == nil {
		delete(l.histories, sessionID)
		return
	}
	l.histories[sessionID] = history
}

// ensureSessionID injects the session id into tool arguments when the
// model leaves it out.
func ensureSessionID(args json.RawMessage, sessionID string) json.RawMessage {
	var m map[string]interface{}
	if err := json.Unmarshal(args, &m); err != nil || m == nil {
		m = map[string]interface{}{}
	}
	if s, ok := m["session_id"].(string); !ok || s == "" {
		m["session_id"] = sessionID
	}
	out, err := json.Marshal(m)
	if err != nil {
		return args
	}
	return out
}
