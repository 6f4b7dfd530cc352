package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Error is every failure the gateway returns: transport errors (Status 0,
// Err set) and non-2xx responses (Status and Body set). Message is the
// human-readable text already shown through the notifier.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
	Body    []byte
	Err     error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// IsTransport reports whether no response was received.
func (e *Error) IsTransport() bool { return e.Status == 0 }

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the user-facing message carried by err.
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// extractMessage picks the first readable text from a failure body: the
// "message" field, the "error" field, then the first entry of "errors".
func extractMessage(body []byte, fallback string) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}

	for _, field := range []string{"message", "error"} {
		if s := rawString(payload[field]); s != "" {
			return s
		}
	}

	if s := firstError(payload["errors"]); s != "" {
		return s
	}
	return fallback
}

func firstError(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return ""
		}
		return rawString(list[0])
	}

	// field -> messages, as validation errors are usually shaped
	var byField map[string][]string
	if err := json.Unmarshal(raw, &byField); err == nil && len(byField) > 0 {
		fields := make([]string, 0, len(byField))
		for f := range byField {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			if msgs := byField[f]; len(msgs) > 0 && msgs[0] != "" {
				return msgs[0]
			}
		}
	}
	return ""
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
