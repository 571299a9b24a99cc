// In file: internal/llm/conversation.go
package llm

import (
	"context"
	"fmt"
	"log"

	"github.com/dileep-u-k/chat-gateway/internal/tools"

	"golang.org/x/sync/errgroup"
)

// ToolRunner executes a single tool call. It must always return a Result.
type ToolRunner interface {
	Execute(ctx context.Context, name string, args tools.Arguments) tools.Result
}

// Conversation is the outcome of one Converse call.
type Conversation struct {
	// Messages is the full sequence sent in the final round.
	Messages []Message
	// Reply is the assistant's final content.
	Reply string
	// Rounds is the number of model requests issued (1 or 2).
	Rounds int
}

// Orchestrator drives the two-round tool protocol: the model either answers
// directly in round 1, or requests tools whose results are fed back in
// round 2 for the final answer. Tool results never trigger a third round.
type Orchestrator struct {
	client      ChatClient
	runner      ToolRunner
	catalog     []tools.Tool
	concurrency int
}

// OrchestratorOption customizes an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithToolConcurrency lets up to n tool calls of one reply run at once.
// Result order in the conversation is unaffected.
func WithToolConcurrency(n int) OrchestratorOption {
	return func(o *Orchestrator) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

func NewOrchestrator(client ChatClient, runner ToolRunner, catalog []tools.Tool, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		client:      client,
		runner:      runner,
		catalog:     catalog,
		concurrency: defaultToolConcurrency,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Converse returns the final assistant reply for userMessage.
func (o *Orchestrator) Converse(ctx context.Context, userMessage string) (string, error) {
	conv, err := o.Run(ctx, userMessage)
	if err != nil {
		return "", err
	}
	return conv.Reply, nil
}

// Run is Converse with the full transcript retained.
func (o *Orchestrator) Run(ctx context.Context, userMessage string) (*Conversation, error) {
	log.Printf("📨 Processing chat (%d chars)", len(userMessage))

	messages := []Message{
		{Role: RoleSystem, Content: SystemPrompt},
		{Role: RoleUser, Content: userMessage},
	}

	// Round 1: awaiting a tool decision.
	first, err := o.client.Chat(ctx, messages, o.catalog)
	if err != nil {
		return nil, fmt.Errorf("model round 1 failed: %w", err)
	}
	if first == nil {
		return nil, fmt.Errorf("model round 1 failed: %w", ErrEmptyReply)
	}
	if len(first.ToolCalls) == 0 {
		return &Conversation{Messages: messages, Reply: first.Content, Rounds: 1}, nil
	}

	log.Printf("🧠 Model requested %d tool(s)", len(first.ToolCalls))
	messages = append(messages, Message{
		Role:      RoleAssistant,
		Content:   first.Content,
		ToolCalls: first.ToolCalls,
	})
	messages = append(messages, o.runTools(ctx, first.ToolCalls)...)

	// Round 2: awaiting the final answer. The catalog is not re-sent.
	log.Println("🤖 Calling model (round 2)...")
	final, err := o.client.Chat(ctx, messages, nil)
	if err != nil {
		return nil, fmt.Errorf("model round 2 failed: %w", err)
	}
	reply := ""
	if final != nil {
		reply = final.Content
	}
	return &Conversation{Messages: messages, Reply: reply, Rounds: 2}, nil
}

// runTools executes calls and returns one tool message per call, in call order.
func (o *Orchestrator) runTools(ctx context.Context, calls []tools.ToolCall) []Message {
	results := make([]tools.Result, len(calls))

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i, call := range calls {
		g.Go(func() error {
			results[i] = o.runner.Execute(ctx, call.Function.Name, call.Function.Arguments)
			return nil
		})
	}
	_ = g.Wait() // the runner never fails; errors live inside each Result

	out := make([]Message, len(calls))
	for i, call := range calls {
		out[i] = Message{
			Role:     RoleTool,
			Content:  results[i].String(),
			ToolName: call.Function.Name,
		}
	}
	return out
}
