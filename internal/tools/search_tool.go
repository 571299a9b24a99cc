// In file: internal/tools/search_tool.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// maxSearchResults is how many results are handed to the model.
const maxSearchResults = 3

// SearchHit is one normalized search result.
type SearchHit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// searxResponse is the subset of a SearXNG JSON response the tool reads.
type searxResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// SearchTool queries a SearXNG instance.
type SearchTool struct {
	baseURL    string
	httpClient *http.Client
}

var _ ToolExecutor = (*SearchTool)(nil)

func NewSearchTool(baseURL string, httpClient *http.Client) *SearchTool {
	return &SearchTool{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (st *SearchTool) Definition() Tool {
	tool, _ := Lookup(string(SearchInternet))
	return tool
}

// Execute returns up to three results with a usable http(s) URL. An empty
// upstream result set yields an explicit "No results found." payload.
func (st *SearchTool) Execute(ctx context.Context, args Arguments) (Result, error) {
	query, ok := args.String("query")
	if !ok || strings.TrimSpace(query) == "" {
		return Result{}, errors.New("argument 'query' is required")
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	searchURL := fmt.Sprintf("%s/search?%s", st.baseURL, params.Encode())

	var resp searxResponse
	if err := getJSON(ctx, st.httpClient, searchURL, "SearXNG", &resp); err != nil {
		return Result{}, err
	}

	if len(resp.Results) == 0 {
		return PayloadResult(map[string]string{"result": "No results found."})
	}

	hits := make([]SearchHit, 0, maxSearchResults)
	for _, r := range resp.Results {
		if !isWebURL(r.URL) {
			continue
		}
		hits = append(hits, SearchHit{Title: r.Title, URL: r.URL, Snippet: r.Content})
		if len(hits) == maxSearchResults {
			break
		}
	}
	return PayloadResult(map[string][]SearchHit{"results": hits})
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
