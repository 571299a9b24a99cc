// In file: internal/tools/manager.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// ErrUnknownTool is returned by Handler for names outside the catalog.
var ErrUnknownTool = errors.New("unknown tool")

// Config holds the backend endpoints and limits for the default tool set.
type Config struct {
	GeocodingURL string
	WeatherURL   string
	SearchURL    string
	MatrixURL    string
	HanoiURL     string
	// Timeout bounds every outbound backend call.
	Timeout time.Duration
	// Now is the clock used by the time tools. Defaults to time.Now.
	Now func() time.Time
}

// ToolManager holds a registry of all available tools and is the single
// entry point through which tool calls are executed.
type ToolManager struct {
	tools map[Name]ToolExecutor
}

func NewToolManager() *ToolManager {
	return &ToolManager{
		tools: make(map[Name]ToolExecutor),
	}
}

// NewDefaultManager registers an executor for every catalog entry.
func NewDefaultManager(cfg Config) *ToolManager {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	httpClient := &http.Client{Timeout: cfg.Timeout}
	geocoder := NewGeocoder(cfg.GeocodingURL, httpClient)

	tm := NewToolManager()
	tm.Register(NewMatrixTool(cfg.MatrixURL, httpClient))
	tm.Register(NewHanoiTool(cfg.HanoiURL, httpClient))
	tm.Register(NewSearchTool(cfg.SearchURL, httpClient))
	tm.Register(NewLocalTimeTool(now))
	tm.Register(NewCityTimeTool(geocoder, now))
	tm.Register(NewWeatherTool(geocoder, cfg.WeatherURL, httpClient))
	return tm
}

// Register adds a new tool to the manager's registry.
func (tm *ToolManager) Register(tool ToolExecutor) {
	name := Name(tool.Definition().Function.Name)
	tm.tools[name] = tool
}

// GetDefinitions returns the definitions of registered tools in catalog order.
func (tm *ToolManager) GetDefinitions() []Tool {
	defs := make([]Tool, 0, len(tm.tools))
	for _, name := range Names {
		if tool, ok := tm.tools[name]; ok {
			defs = append(defs, tool.Definition())
		}
	}
	return defs
}

// Handler returns the executor registered for name.
func (tm *ToolManager) Handler(name string) (ToolExecutor, error) {
	tool, ok := tm.tools[Name(name)]
	if !ok {
		return nil, fmt.Errorf("tool '%s' not found: %w", name, ErrUnknownTool)
	}
	return tool, nil
}

// Execute runs a tool by name. It always returns a well-formed Result:
// unknown names, argument problems, and backend failures all become error
// Results. Start and end are logged with the elapsed time.
func (tm *ToolManager) Execute(ctx context.Context, name string, args Arguments) (result Result) {
	start := time.Now()
	log.Printf("🛠️  TOOL-START: Executing '%s'", name)

	defer func() {
		if r := recover(); r != nil {
			result = ErrorResult(fmt.Sprintf("Tool execution failed: %v", r))
			log.Printf("❌ TOOL-FAIL: '%s' panicked after %dms: %v", name, time.Since(start).Milliseconds(), r)
		}
	}()

	tool, err := tm.Handler(name)
	if err != nil {
		log.Printf("⚠️ TOOL-END: '%s' is not a known tool (%dms)", name, time.Since(start).Milliseconds())
		return ErrorResult(fmt.Sprintf("Unknown tool name: %s", name))
	}

	result, err = tool.Execute(ctx, args)
	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		log.Printf("❌ TOOL-FAIL: '%s' failed in %dms: %v", name, elapsed, err)
		return ErrorResult(fmt.Sprintf("Tool execution failed: %v", err))
	}
	log.Printf("✅ TOOL-END: '%s' completed in %dms", name, elapsed)
	return result
}

// ToolCount returns the number of registered tools.
func (tm *ToolManager) ToolCount() int {
	return len(tm.tools)
}
