// In file: internal/llm/ollama_client.go
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dileep-u-k/chat-gateway/internal/tools"

	ollama "github.com/ollama/ollama/api"
)

// OllamaClient talks to a local Ollama server's /api/chat endpoint.
type OllamaClient struct {
	client *ollama.Client
	model  string
}

// Statically verify that OllamaClient implements the ChatClient interface.
var _ ChatClient = (*OllamaClient)(nil)

// NewOllamaClient creates a client for baseURL using model for every request.
// A non-positive timeout selects the package default.
func NewOllamaClient(baseURL, model string, timeout time.Duration) (*OllamaClient, error) {
	if model == "" {
		return nil, errors.New("ollama model cannot be empty")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base URL %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OllamaClient{
		client: ollama.NewClient(u, &http.Client{Timeout: timeout}),
		model:  model,
	}, nil
}

// Chat performs a single non-streaming chat request.
func (c *OllamaClient) Chat(ctx context.Context, messages []Message, availableTools []tools.Tool) (*Message, error) {
	msgs, err := toOllamaMessages(messages)
	if err != nil {
		return nil, err
	}
	stream := false
	req := &ollama.ChatRequest{
		Model:    c.model,
		Messages: msgs,
		Stream:   &stream,
	}
	if len(availableTools) > 0 {
		if req.Tools, err = toOllamaTools(availableTools); err != nil {
			return nil, err
		}
	}

	// With streaming off the server sends one response object, but the
	// client API is callback based, so fold whatever arrives.
	var (
		received  bool
		role      string
		content   strings.Builder
		toolCalls []ollama.ToolCall
	)
	err = c.client.Chat(ctx, req, func(resp ollama.ChatResponse) error {
		received = true
		if resp.Message.Role != "" {
			role = resp.Message.Role
		}
		content.WriteString(resp.Message.Content)
		toolCalls = append(toolCalls, resp.Message.ToolCalls...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama chat request failed: %w", err)
	}
	if !received {
		return nil, ErrEmptyReply
	}
	if role == "" {
		role = string(RoleAssistant)
	}
	return fromOllamaMessage(ollama.Message{Role: role, Content: content.String(), ToolCalls: toolCalls})
}

// toOllamaMessages converts through JSON: Message already uses Ollama's wire
// field names, so this keeps the tool-call argument encoding in one place.
func toOllamaMessages(messages []Message) ([]ollama.Message, error) {
	b, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("failed to encode messages: %w", err)
	}
	var out []ollama.Message
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("failed to convert messages for ollama: %w", err)
	}
	return out, nil
}

func toOllamaTools(availableTools []tools.Tool) (ollama.Tools, error) {
	b, err := json.Marshal(availableTools)
	if err != nil {
		return nil, fmt.Errorf("failed to encode tools: %w", err)
	}
	var out ollama.Tools
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("failed to convert tools for ollama: %w", err)
	}
	return out, nil
}

func fromOllamaMessage(m ollama.Message) (*Message, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ollama message: %w", err)
	}
	var out Message
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("failed to parse ollama message: %w", err)
	}
	return &out, nil
}
