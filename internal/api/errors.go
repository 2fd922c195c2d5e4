package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
)

// Error is a non-2xx response from the backend. Message carries the
// human-readable summary; Details carries field-level validation messages
// when the backend returns them.
type Error struct {
	Status  int
	Message string
	Details map[string]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// FirstDetail returns one "field: message" pair for display, matching how the
// UI surfaces the first validation failure. Keys are sorted so the choice is
// deterministic.
func (e *Error) FirstDetail() string {
	if len(e.Details) == 0 {
		return ""
	}
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("%s: %s", fields[0], e.Details[fields[0]])
}

func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// decodeError maps the backend's error body onto Error. The backend answers
// either {"error": "..."} / {"detail": "..."} or a validation map of
// field -> message (or field -> [messages]).
func decodeError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		apiErr.Message = http.StatusText(status)
		return apiErr
	}

	for _, key := range []string{"error", "detail", "message"} {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		var msg string
		if json.Unmarshal(raw, &msg) == nil && msg != "" && apiErr.Message == "" {
			apiErr.Message = msg
		}
		delete(payload, key)
	}

	for field, raw := range payload {
		var msg string
		var msgs []string
		if json.Unmarshal(raw, &msgs) == nil && len(msgs) > 0 {
			msg = msgs[0]
		} else if json.Unmarshal(raw, &msg) != nil {
			continue
		}
		if msg == "" {
			continue
		}
		if apiErr.Details == nil {
			apiErr.Details = make(map[string]string)
		}
		apiErr.Details[field] = msg
	}

	if apiErr.Message == "" {
		if detail := apiErr.FirstDetail(); detail != "" {
			apiErr.Message = detail
		} else {
			apiErr.Message = http.StatusText(status)
		}
	}
	return apiErr
}
