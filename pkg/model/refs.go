package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp is an ISO-8601 instant kept in its wire form. The zero value
// means the instant is unknown; it is never replaced with the current time.
type Timestamp struct {
	value string
}

// At wraps an ISO-8601 string. An empty string yields an unknown Timestamp.
func At(s string) Timestamp {
	return Timestamp{value: s}
}

// AtTime formats t as RFC 3339 in UTC.
func AtTime(t time.Time) Timestamp {
	return Timestamp{value: t.UTC().Format(time.RFC3339)}
}

func (t Timestamp) Known() bool {
	return t.value != ""
}

func (t Timestamp) String() string {
	return t.value
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Time parses the timestamp. Values without a zone are read as UTC.
func (t Timestamp) Time() (time.Time, error) {
	if !t.Known() {
		return time.Time{}, fmt.Errorf("timestamp is unknown")
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, t.value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", t.value)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Known() {
		return []byte("null"), nil
	}
	return json.Marshal(t.value)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	*t = At(s)
	return nil
}

// Person refers to a user by display name, by user id, or both. A Person
// without a name is unresolved: the UI has nothing human-readable to show.
type Person struct {
	Name   string
	UserID string
}

func Named(name string) Person {
	return Person{Name: name}
}

// UserRef refers to a user whose display name has not been resolved.
func UserRef(id string) Person {
	return Person{UserID: id}
}

func (p Person) Known() bool {
	return p.Name != ""
}

func (p Person) String() string {
	if p.Known() {
		return p.Name
	}
	if p.UserID != "" {
		return "user #" + p.UserID
	}
	return "unknown"
}

// MarshalJSON emits the display name, or null when it is unresolved.
func (p Person) MarshalJSON() ([]byte, error) {
	if !p.Known() {
		return []byte("null"), nil
	}
	return json.Marshal(p.Name)
}

func (p *Person) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*p = Person{}
		return nil
	}
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return fmt.Errorf("person must be a name string: %w", err)
	}
	*p = Named(name)
	return nil
}
