// In file: internal/tools/result.go
package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Result is the uniform outcome of a tool call: either a success payload
// (any JSON value a backend produced) or an error message. It is always
// well-formed, even when the underlying call failed.
type Result struct {
	// Payload is the normalized success body. Nil when Err is set.
	Payload json.RawMessage
	// Err is the failure message. Empty on success.
	Err string
}

// ErrorResult builds a failed Result.
func ErrorResult(msg string) Result {
	return Result{Err: msg}
}

// PayloadResult marshals v into a successful Result.
func PayloadResult(v any) (Result, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode tool payload: %w", err)
	}
	return Result{Payload: b}, nil
}

// RawResult wraps a backend's JSON body as a successful Result. The body is
// compacted; a body that is not JSON is rejected.
func RawResult(body []byte) (Result, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, body); err != nil {
		return Result{}, fmt.Errorf("malformed JSON payload: %w", err)
	}
	return Result{Payload: buf.Bytes()}, nil
}

// Failed reports whether the Result carries an error.
func (r Result) Failed() bool {
	return r.Err != ""
}

// MarshalJSON writes {"error": msg} for failures and the payload verbatim otherwise.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Err})
	}
	if len(r.Payload) == 0 {
		return []byte("null"), nil
	}
	return r.Payload, nil
}

// UnmarshalJSON is the inverse of MarshalJSON. An object whose only key is a
// non-empty string "error" decodes as a failure; anything else is a payload.
func (r *Result) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		return errors.New("tool result is not valid JSON")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err == nil && len(fields) == 1 {
		if raw, ok := fields["error"]; ok {
			var msg string
			if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
				*r = Result{Err: msg}
				return nil
			}
		}
	}
	*r = Result{Payload: append(json.RawMessage(nil), data...)}
	return nil
}

// String returns the wire form sent to the model as a tool message.
func (r Result) String() string {
	b, err := r.MarshalJSON()
	if err != nil {
		return fmt.Sprintf(`{"error":%q}`, err.Error())
	}
	return string(b)
}
