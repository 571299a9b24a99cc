// In file: internal/llm/constants.go
package llm

import "time"

// This file centralizes constants shared across the clients and the orchestrator.
const (
	defaultTimeout         = 120 * time.Second
	defaultToolConcurrency = 1
)
