package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// FromHTTP maps a non-2xx backend response onto the client error taxonomy,
// preserving the backend's detail message verbatim when one is present.
func FromHTTP(statusCode int, body []byte) *ClientError {
	detail := DetailFromBody(body)

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized.WithMessage(detail)
	case http.StatusNotFound:
		return ErrNotFound.WithMessage(detail)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return ErrValidationRejected.WithMessage(detail)
	default:
		err := ErrUnreachable.WithMessage(detail)
		err.StatusCode = statusCode
		return err
	}
}

// DetailFromBody extracts the backend's "detail" field. The backend emits
// either a plain string or a list of field errors; anything else collapses to
// an empty string so the sentinel's default message is used.
func DetailFromBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}

	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var items []map[string]any
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		parts := make([]string, 0, len(items))
		for _, item := range items {
			if msg, ok := item["msg"].(string); ok {
				parts = append(parts, msg)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, "; ")
		}
	}

	return fmt.Sprintf("%s", envelope.Detail)
}
