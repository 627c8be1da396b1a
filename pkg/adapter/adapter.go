// Package adapter maps task-service documents to the console's domain
// records and back. Every function is pure: the only outside inputs are the
// ones passed in through Options.
package adapter

import (
	"strconv"
	"time"
)

// Directory resolves a service user id to a display name.
type Directory interface {
	UserName(id string) (string, bool)
}

type options struct {
	now       func() time.Time
	directory Directory
}

type Option func(*options)

// WithClock fills task times that have no source at all with now().
// Without it such times stay unknown.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithDirectory resolves lead and sender user ids to names.
func WithDirectory(d Directory) Option {
	return func(o *options) { o.directory = d }
}

func apply(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) name(userID string) string {
	if o.directory == nil || userID == "" {
		return ""
	}
	name, ok := o.directory.UserName(userID)
	if !ok {
		return ""
	}
	return name
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
