// In file: internal/tools/compute_tool.go
package tools

import (
	"context"
	"net/http"
	"strings"
)

// ComputeTool forwards its arguments verbatim to a dedicated computation
// backend and returns that backend's JSON response as the payload.
type ComputeTool struct {
	name       Name
	endpoint   string
	httpClient *http.Client
}

var _ ToolExecutor = (*ComputeTool)(nil)

// NewMatrixTool posts to <baseURL>/tool/matrix.
func NewMatrixTool(baseURL string, httpClient *http.Client) *ComputeTool {
	return &ComputeTool{name: InvertMatrix, endpoint: strings.TrimRight(baseURL, "/") + "/tool/matrix", httpClient: httpClient}
}

// NewHanoiTool posts to <baseURL>/tool/hanoi.
func NewHanoiTool(baseURL string, httpClient *http.Client) *ComputeTool {
	return &ComputeTool{name: SolveHanoi, endpoint: strings.TrimRight(baseURL, "/") + "/tool/hanoi", httpClient: httpClient}
}

func (ct *ComputeTool) Definition() Tool {
	tool, _ := Lookup(string(ct.name))
	return tool
}

func (ct *ComputeTool) Execute(ctx context.Context, args Arguments) (Result, error) {
	if args == nil {
		args = Arguments{}
	}
	body, err := postJSON(ctx, ct.httpClient, ct.endpoint, string(ct.name)+" backend", args)
	if err != nil {
		return Result{}, err
	}
	return RawResult(body)
}
