// In file: internal/llm/gemini_client.go
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dileep-u-k/chat-gateway/internal/tools"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient is the alternate model endpoint, for deployments without a
// local inference server.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	// send performs one round against the API. Tests replace it.
	send func(ctx context.Context, req geminiRequest) (*genai.GenerateContentResponse, error)
}

// geminiRequest is one round, already converted to SDK types.
type geminiRequest struct {
	system   string
	contents []*genai.Content
	tools    []*genai.Tool
}

var _ ChatClient = (*GeminiClient)(nil)

// NewGeminiClient creates a client for modelID. Every round is bounded by
// timeout; a non-positive timeout selects the package default.
func NewGeminiClient(ctx context.Context, apiKey, modelID string, timeout time.Duration) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c := &GeminiClient{client: client, model: modelID}
	c.setTimeout(timeout)
	c.send = c.sendChat
	return c, nil
}

func (c *GeminiClient) setTimeout(timeout time.Duration) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c.timeout = timeout
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// Chat replays the conversation as a chat session and sends the last turn.
func (c *GeminiClient) Chat(ctx context.Context, messages []Message, availableTools []tools.Tool) (*Message, error) {
	system, contents := toGeminiContents(messages)
	if len(contents) == 0 {
		return nil, errors.New("gemini chat requires at least one non-system message")
	}
	req := geminiRequest{system: system, contents: contents}
	if len(availableTools) > 0 {
		req.tools = toGeminiTools(availableTools)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	resp, err := c.send(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("gemini API call failed: %w", err)
	}
	return parseGeminiResponse(resp)
}

// sendChat builds a fresh GenerativeModel per call so concurrent requests do
// not share tool or system settings.
func (c *GeminiClient) sendChat(ctx context.Context, req geminiRequest) (*genai.GenerateContentResponse, error) {
	model := c.client.GenerativeModel(c.model)
	if req.system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.system)}}
	}
	model.Tools = req.tools

	chat := model.StartChat()
	last := len(req.contents) - 1
	chat.History = req.contents[:last]
	return chat.SendMessage(ctx, req.contents[last].Parts...)
}

// toGeminiTools converts our internal tool definitions to the Gemini SDK's format.
func toGeminiTools(toolsToConvert []tools.Tool) []*genai.Tool {
	decls := make([]*genai.FunctionDeclaration, 0, len(toolsToConvert))
	for _, t := range toolsToConvert {
		decl := &genai.FunctionDeclaration{
			Name:        t.Function.Name,
			Description: t.Function.Description,
		}
		// Gemini rejects object schemas without properties.
		if len(t.Function.Parameters.Properties) > 0 {
			decl.Parameters = convertSchema(t.Function.Parameters)
		}
		decls = append(decls, decl)
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

// convertSchema converts our JSONSchema to the Gemini SDK's schema type.
func convertSchema(s tools.JSONSchema) *genai.Schema {
	genaiSchema := &genai.Schema{
		Description: s.Description,
		Required:    s.Required,
	}
	switch s.Type {
	case "object":
		genaiSchema.Type = genai.TypeObject
	case "string":
		genaiSchema.Type = genai.TypeString
	case "number":
		genaiSchema.Type = genai.TypeNumber
	case "integer":
		genaiSchema.Type = genai.TypeInteger
	case "boolean":
		genaiSchema.Type = genai.TypeBoolean
	case "array":
		genaiSchema.Type = genai.TypeArray
	}
	if s.Items != nil {
		genaiSchema.Items = convertSchema(*s.Items)
	}
	if s.Properties != nil {
		genaiSchema.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			genaiSchema.Properties[k] = convertSchema(*v)
		}
	}
	return genaiSchema
}

// toGeminiContents splits out the system instruction and maps the rest of
// the conversation to Gemini contents. Consecutive tool results are merged
// into a single turn of function responses.
func toGeminiContents(messages []Message) (string, []*genai.Content) {
	var (
		system   []string
		contents []*genai.Content
	)
	for _, msg := range messages {
		switch msg.Role {
		case RoleSystem:
			system = append(system, msg.Content)
		case RoleAssistant:
			content := &genai.Content{Role: "model"}
			if msg.Content != "" {
				content.Parts = append(content.Parts, genai.Text(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				content.Parts = append(content.Parts, genai.FunctionCall{
					Name: tc.Function.Name,
					Args: map[string]any(tc.Function.Arguments),
				})
			}
			contents = append(contents, content)
		case RoleTool:
			part := genai.FunctionResponse{Name: msg.ToolName, Response: toResponseMap(msg.Content)}
			if n := len(contents); n > 0 && isFunctionResponseTurn(contents[n-1]) {
				contents[n-1].Parts = append(contents[n-1].Parts, part)
				continue
			}
			contents = append(contents, &genai.Content{Role: "user", Parts: []genai.Part{part}})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(msg.Content)}})
		}
	}
	return strings.Join(system, "\n\n"), contents
}

func isFunctionResponseTurn(c *genai.Content) bool {
	if c.Role != "user" || len(c.Parts) == 0 {
		return false
	}
	_, ok := c.Parts[0].(genai.FunctionResponse)
	return ok
}

// toResponseMap decodes a serialized tool result. Gemini wants an object,
// so arrays and scalars are wrapped under "result".
func toResponseMap(content string) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(content), &obj); err == nil && obj != nil {
		return obj
	}
	var v any
	if err := json.Unmarshal([]byte(content), &v); err == nil {
		return map[string]any{"result": v}
	}
	return map[string]any{"result": content}
}

// parseGeminiResponse converts a Gemini API response into an assistant Message.
func parseGeminiResponse(resp *genai.GenerateContentResponse) (*Message, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyReply
	}

	var (
		text      strings.Builder
		toolCalls []tools.ToolCall
	)
	for _, part := range resp.Candidates[0].Content.Parts {
		switch v := part.(type) {
		case genai.Text:
			text.WriteString(string(v))
		case genai.FunctionCall:
			toolCalls = append(toolCalls, tools.ToolCall{
				Function: tools.ToolCallFunction{Name: v.Name, Arguments: tools.Arguments(v.Args)},
			})
		}
	}
	return &Message{
		Role:      RoleAssistant,
		Content:   strings.TrimSpace(text.String()),
		ToolCalls: toolCalls,
	}, nil
}
