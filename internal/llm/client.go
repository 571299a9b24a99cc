// In file: internal/llm/client.go

// Package llm drives the conversation with the language-model endpoint:
// message types, provider clients, and the two-round tool orchestrator.
package llm

import (
	"context"
	"errors"

	"github.com/dileep-u-k/chat-gateway/internal/tools"
)

// ErrEmptyReply is returned when the model endpoint answers without a message.
var ErrEmptyReply = errors.New("model endpoint returned no message")

// =================================================================================
// Core Data Structures
// =================================================================================

// Role represents the originator of a message in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message represents a single message in a conversation. The JSON form is
// the Ollama chat wire format.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	// ToolName names the tool whose result a RoleTool message carries.
	ToolName string `json:"tool_name,omitempty"`
	// ToolCalls is set on assistant messages that request tool execution.
	ToolCalls []tools.ToolCall `json:"tool_calls,omitempty"`
}

// =================================================================================
// Chat Client Interface
// =================================================================================

// ChatClient is the interface every model endpoint client implements.
type ChatClient interface {
	// Chat sends the full conversation, plus the tool catalog when
	// availableTools is non-empty, and returns the assistant's reply. It is a
	// blocking, non-streaming call. Any non-success answer is an error.
	Chat(ctx context.Context, messages []Message, availableTools []tools.Tool) (*Message, error)
}
