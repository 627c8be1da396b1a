package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Error is a failed call. Status is zero when no response arrived.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("api: %s: %v", e.Message, e.Err)
	}
	return "api: " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorMessage picks error, detail or message from a JSON error body, in
// that order, and falls back otherwise. A FastAPI validation detail (a
// list of objects with msg) is joined.
func errorMessage(body []byte, fallback string) string {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(body, &doc); err != nil {
		return fallback
	}
	for _, key := range []string{"error", "detail", "message"} {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		if msg := messageText(raw); msg != "" {
			return msg
		}
	}
	return fallback
}

func messageText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &items); err == nil {
		var msgs []string
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
