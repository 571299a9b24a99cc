// In file: internal/tools/backend.go
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const userAgent = "Chat-Gateway-Agent/1.0"

// maxBackendBody caps how much of a backend response is read.
const maxBackendBody = 4 << 20

// BackendError reports a non-2xx answer from a tool backend.
type BackendError struct {
	Backend    string
	StatusCode int
	Body       string
}

func (e *BackendError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("%s returned status %d", e.Backend, e.StatusCode)
}

// doRequest sends req and returns the response body when the status is 2xx.
func doRequest(client *http.Client, req *http.Request, backend string) ([]byte, error) {
	req.Header.Set("User-Agent", userAgent)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", backend, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBackendBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", backend, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &BackendError{Backend: backend, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

// getJSON performs a GET and decodes the JSON response into out. Status
// failures carry only the code, matching how third-party APIs are reported.
func getJSON(ctx context.Context, client *http.Client, rawURL, backend string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", backend, err)
	}
	req.Header.Set("Accept", "application/json")
	body, err := doRequest(client, req, backend)
	if err != nil {
		var be *BackendError
		if errors.As(err, &be) {
			return &BackendError{Backend: backend, StatusCode: be.StatusCode}
		}
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", backend, err)
	}
	return nil
}

// postJSON sends payload as a JSON body and returns the raw 2xx response.
func postJSON(ctx context.Context, client *http.Client, rawURL, backend string, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s request: %w", backend, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", backend, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return doRequest(client, req, backend)
}
