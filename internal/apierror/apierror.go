// Package apierror holds the JSON error envelopes on both sides of the console:
// the `{message}` body the remote API sends on failure, and the bodies the
// console itself returns to its UI.
package apierror

import "encoding/json"

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Message string `json:"message"`
}

func New(msg string) *APIError {
	return &APIError{Message: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Message: "Validation failed", Fields: fields}
}

// MessageFrom extracts a server-supplied error message from a response body.
// It reads `message`, then `error`, and reports false when neither is a
// non-empty string (or the body is not a JSON object).
func MessageFrom(body []byte) (string, bool) {
	var envelope struct {
		Message json.RawMessage `json:"message"`
		Error   json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", false
	}
	for _, raw := range []json.RawMessage{envelope.Message, envelope.Error} {
		var s string
		if len(raw) > 0 && json.Unmarshal(raw, &s) == nil && s != "" {
			return s, true
		}
	}
	return "", false
}
