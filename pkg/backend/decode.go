package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DecodeError reports a service document that does not match its contract.
// Index is the position inside a list response, or -1 for a single record.
type DecodeError struct {
	Entity string
	Index  int
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	where := e.Entity
	if e.Index >= 0 {
		where = fmt.Sprintf("%s[%d]", e.Entity, e.Index)
	}
	if e.Field != "" {
		return fmt.Sprintf("malformed %s: field %q %s", where, e.Field, e.Reason)
	}
	return fmt.Sprintf("malformed %s: %s", where, e.Reason)
}

var (
	taskRequired         = []string{"id", "title", "status", "priority"}
	projectRequired      = []string{"id", "name"}
	announcementRequired = []string{"id", "title", "body", "from_user_id"}
)

func DecodeTask(r io.Reader) (Task, error) {
	return decodeOne[Task](r, "task", taskRequired)
}

func DecodeTasks(r io.Reader) ([]Task, error) {
	return decodeMany[Task](r, "task", taskRequired)
}

func DecodeProject(r io.Reader) (Project, error) {
	return decodeOne[Project](r, "project", projectRequired)
}

func DecodeProjects(r io.Reader) ([]Project, error) {
	return decodeMany[Project](r, "project", projectRequired)
}

func DecodeAnnouncement(r io.Reader) (Announcement, error) {
	return decodeOne[Announcement](r, "announcement", announcementRequired)
}

func DecodeAnnouncements(r io.Reader) ([]Announcement, error) {
	return decodeMany[Announcement](r, "announcement", announcementRequired)
}

func decodeOne[T any](r io.Reader, entity string, required []string) (T, error) {
	var out T
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return out, &DecodeError{Entity: entity, Index: -1, Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	err := decodeRecord(raw, entity, -1, required, &out)
	return out, err
}

func decodeMany[T any](r io.Reader, entity string, required []string) ([]T, error) {
	var raws []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, &DecodeError{Entity: entity, Index: -1, Reason: fmt.Sprintf("expected a JSON array: %v", err)}
	}
	out := make([]T, len(raws))
	for i, raw := range raws {
		if err := decodeRecord(raw, entity, i, required, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// decodeRecord checks that every required field is present and non-null
// before decoding raw into dst.
func decodeRecord(raw json.RawMessage, entity string, index int, required []string, dst any) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return &DecodeError{Entity: entity, Index: index, Reason: "expected a JSON object"}
	}
	for _, name := range required {
		v, ok := fields[name]
		if !ok || string(v) == "null" {
			return &DecodeError{Entity: entity, Index: index, Field: name, Reason: "is missing"}
		}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return &DecodeError{
				Entity: entity,
				Index:  index,
				Field:  typeErr.Field,
				Reason: fmt.Sprintf("has %s, want %s", typeErr.Value, typeErr.Type),
			}
		}
		return &DecodeError{Entity: entity, Index: index, Reason: err.Error()}
	}
	return nil
}

// Decode reads a document that has no required-field contract, such as
// session receipts and chat replies.
func Decode[T any](r io.Reader, entity string) (T, error) {
	var out T
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return out, &DecodeError{
				Entity: entity,
				Index:  -1,
				Field:  typeErr.Field,
				Reason: fmt.Sprintf("has %s, want %s", typeErr.Value, typeErr.Type),
			}
		}
		return out, &DecodeError{Entity: entity, Index: -1, Reason: err.Error()}
	}
	return out, nil
}
