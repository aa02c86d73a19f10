// Package gemini wraps the Gemini API for the three model-backed
// concerns: requirement extraction, text embeddings and tool-calling
// reasoning for the agent loop.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/talentmatch/backend/agent"
	"github.com/talentmatch/backend/config"
	"github.com/talentmatch/backend/models"
	"github.com/talentmatch/backend/tools"
)

// Client wraps the Gemini API client with generation and embedding models.
type Client struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	embedder  *genai.EmbeddingModel
	timeout   time.Duration
	logger    *zap.SugaredLogger

	mu         sync.RWMutex
	embedCache map[string][]float32
}

// NewClient creates a Gemini client from configuration.
func NewClient(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.GeminiModel)
	model.SetTemperature(0.3)

	return &Client{
		client:     client,
		model:      model,
		modelName:  cfg.GeminiModel,
		embedder:   client.EmbeddingModel(cfg.EmbeddingModel),
		timeout:    time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
		logger:     logger,
		embedCache: make(map[string][]float32),
	}, nil
}

// Close releases the underlying API client.
func (c *Client) Close() error {
	return c.client.Close()
}

const extractPrompt = `You are a recruiting assistant. Extract structured hiring requirements from the employer's message.

Message: %q

Respond ONLY with valid JSON in this exact format:
{
  "skills": ["react", "typescript"],
  "experience_level": "junior, mid or senior, empty if not mentioned",
  "availability": "full-time, part-time, freelance or contract, empty if not mentioned",
  "location": "location text, empty if not mentioned",
  "culture_hints": ["phrases about team culture or work style"]
}

Rules:
- Only include what the message states or clearly implies.
- Use lowercase canonical skill names (e.g. "React.js" becomes "react", "NodeJS" becomes "node.js").
- Infer skills from role names ("frontend developer" implies javascript, html, css).
- Leave fields empty rather than guessing.`

// Extract derives a requirement fragment from one query using the model.
func (c *Client) Extract(ctx context.Context, query string) (models.RequirementFragment, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(fmt.Sprintf(extractPrompt, query)))
	if err != nil {
		return models.RequirementFragment{}, fmt.Errorf("gemini extraction failed: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return models.RequirementFragment{}, fmt.Errorf("empty extraction response")
	}

	var payload struct {
		Skills          []string `json:"skills"`
		ExperienceLevel string   `json:"experience_level"`
		Availability    string   `json:"availability"`
		Location        string   `json:"location"`
		CultureHints    []string `json:"culture_hints"`
	}
	if err := json.Unmarshal([]byte(cleanJSON(text)), &payload); err != nil {
		return models.RequirementFragment{}, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	return models.RequirementFragment{
		Skills:          payload.Skills,
		ExperienceLevel: models.NormalizeExperienceLevel(payload.ExperienceLevel),
		Availability:    models.NormalizeAvailability(payload.Availability),
		Location:        strings.TrimSpace(payload.Location),
		CultureHints:    strings.Join(payload.CultureHints, "; "),
		RawQuery:        query,
	}, nil
}

// Embed returns the embedding vector for a text. Vectors are cached per
// input so repeated scoring of the same requirement text is both cheap
// and deterministic.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	c.mu.RLock()
	cached, ok := c.embedCache[text]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	res, err := c.embedder.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embedding failed: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}

	c.mu.Lock()
	c.embedCache[text] = res.Embedding.Values
	c.mu.Unlock()

	return res.Embedding.Values, nil
}

// Reason produces the next agent step: a final text reply or tool calls.
func (c *Client) Reason(ctx context.Context, system string, history []agent.Message, defs []tools.Definition) (*agent.Reply, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	model := c.client.GenerativeModel(c.modelName)
	model.SetTemperature(0.3)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	model.Tools = toGenaiTools(defs)

	contents := toContents(history)
	if len(contents) == 0 {
		return nil, fmt.Errorf("empty conversation history")
	}

	cs := model.StartChat()
	cs.History = contents[:len(contents)-1]

	resp, err := cs.SendMessage(ctx, contents[len(contents)-1].Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini reasoning failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty reasoning response")
	}

	reply := &agent.Reply{}
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			reply.Text += string(p)
		case genai.FunctionCall:
			args, err := json.Marshal(p.Args)
			if err != nil {
				c.logger.Warnw("unserializable function call args", "tool", p.Name, "error", err)
				args = []byte("{}")
			}
			reply.Calls = append(reply.Calls, agent.ToolCall{Name: p.Name, Args: args})
		}
	}
	reply.Text = strings.TrimSpace(reply.Text)
	return reply, nil
}

// toContents converts loop history into Gemini chat contents. A tool
// message expands into the model's call turn plus the function response.
func toContents(history []agent.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		switch msg.Role {
		case "user":
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(msg.Text)},
			})
		case "model":
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text(msg.Text)},
			})
		case "tool":
			var args map[string]interface{}
			if err := json.Unmarshal(msg.ToolArgs, &args); err != nil {
				args = map[string]interface{}{}
			}
			var result map[string]interface{}
			if err := json.Unmarshal(msg.ToolResult, &result); err != nil {
				result = map[string]interface{}{"error": "unreadable tool result"}
			}
			contents = append(contents,
				&genai.Content{
					Role:  "model",
					Parts: []genai.Part{genai.FunctionCall{Name: msg.ToolName, Args: args}},
				},
				&genai.Content{
					Role:  "function",
					Parts: []genai.Part{genai.FunctionResponse{Name: msg.ToolName, Response: result}},
				},
			)
		}
	}
	return contents
}

// toGenaiTools converts the tool registry's definitions into Gemini
// function declarations.
func toGenaiTools(defs []tools.Definition) []*genai.Tool {
	if len(defs) == 0 {
		return nil
	}
	decls := make([]*genai.FunctionDeclaration, 0, len(defs))
	for _, def := range defs {
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  toSchema(def.InputSchema),
		})
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func toSchema(m map[string]interface{}) *genai.Schema {
	if m == nil {
		return nil
	}
	s := &genai.Schema{}

	switch m["type"] {
	case "object":
		s.Type = genai.TypeObject
	case "array":
		s.Type = genai.TypeArray
	case "string":
		s.Type = genai.TypeString
	case "boolean":
		s.Type = genai.TypeBoolean
	case "integer":
		s.Type = genai.TypeInteger
	case "number":
		s.Type = genai.TypeNumber
	}

	if d, ok := m["description"].(string); ok {
		s.Description = d
	}
	if props, ok := m["properties"].(map[string]interface{}); ok {
		s.Properties = make(map[string]*genai.Schema, len(props))
		for name, raw := range props {
			if pm, ok := raw.(map[string]interface{}); ok {
				s.Properties[name] = toSchema(pm)
			}
		}
	}
	if items, ok := m["items"].(map[string]interface{}); ok {
		s.Items = toSchema(items)
	}
	switch req := m["required"].(type) {
	case []string:
		s.Required = req
	case []interface{}:
		for _, r := range req {
			if name, ok := r.(string); ok {
				s.Required = append(s.Required, name)
			}
		}
	}
	return s
}

// extractText concatenates the text parts of a generation response.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

// cleanJSON strips markdown code fences the model sometimes wraps
// around JSON output.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
