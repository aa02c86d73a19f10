package gemini

import (
	"encoding/json"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentmatch/backend/agent"
	"github.com/talentmatch/backend/tools"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanJSON(tt.in))
		})
	}
}

func TestExtractText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text("hello "), genai.Text("world")},
				},
			},
		},
	}

	assert.Equal(t, "hello world", extractText(resp))
	assert.Equal(t, "", extractText(nil))
	assert.Equal(t, "", extractText(&genai.GenerateContentResponse{}))
}

func TestToSchema(t *testing.T) {
	schema := toSchema(map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "search text",
			},
			"reset": map[string]interface{}{
				"type": "boolean",
			},
		},
		"required": []string{"query"},
	})

	require.NotNil(t, schema)
	assert.Equal(t, genai.TypeObject, schema.Type)
	require.Contains(t, schema.Properties, "query")
	assert.Equal(t, genai.TypeString, schema.Properties["query"].Type)
	assert.Equal(t, "search text", schema.Properties["query"].Description)
	assert.Equal(t, genai.TypeBoolean, schema.Properties["reset"].Type)
	assert.Equal(t, []string{"query"}, schema.Required)
}

func TestToGenaiTools(t *testing.T) {
	defs := []tools.Definition{
		{
			Name:        "progressive_search",
			Description: "search candidates",
			InputSchema: map[string]interface{}{"type": "object"},
		},
	}

	gt := toGenaiTools(defs)
	require.Len(t, gt, 1)
	require.Len(t, gt[0].FunctionDeclarations, 1)
	assert.Equal(t, "progressive_search", gt[0].FunctionDeclarations[0].Name)

	assert.Nil(t, toGenaiTools(nil))
}

func TestToContents(t *testing.T) {
	history := []agent.Message{
		{Role: "user", Text: "find react developers"},
		{
			Role:       "tool",
			ToolName:   "progressive_search",
			ToolArgs:   json.RawMessage(`{"query":"react"}`),
			ToolResult: json.RawMessage(`{"success":true}`),
		},
		{Role: "model", Text: "Found 3 candidates."},
	}

	contents := toContents(history)
	require.Len(t, contents, 4)

	assert.Equal(t, "user", contents[0].Role)
	assert.Equal(t, "model", contents[1].Role)
	call, ok := contents[1].Parts[0].(genai.FunctionCall)
	require.True(t, ok)
	assert.Equal(t, "progressive_search", call.Name)
	assert.Equal(t, "react", call.Args["query"])

	assert.Equal(t, "function", contents[2].Role)
	fr, ok := contents[2].Parts[0].(genai.FunctionResponse)
	require.True(t, ok)
	assert.Equal(t, true, fr.Response["success"])

	assert.Equal(t, "model", contents[3].Role)
}
