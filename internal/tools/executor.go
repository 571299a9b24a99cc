// In file: internal/tools/executor.go
package tools

import "context"

// ToolExecutor defines the standard interface for any tool that can be
// executed on the model's behalf.
//
// Execute may return an error freely; the ToolManager turns it into an
// error Result so the conversation can continue.
type ToolExecutor interface {
	// Definition returns the tool's catalog entry.
	Definition() Tool

	// Execute runs the tool with the arguments the model generated.
	Execute(ctx context.Context, args Arguments) (Result, error)
}
