package model

import "strings"

// Task is a scheduled unit of work as the console displays it.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ProjectID   string    `json:"projectId"`
	Assignee    string    `json:"assignee"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	Start       Timestamp `json:"start"`
	End         Timestamp `json:"end"`
}

// TaskInput carries the fields of a task to create. Empty Priority and
// Status take their defaults.
type TaskInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ProjectID   string    `json:"projectId"`
	Assignee    string    `json:"assignee"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	Start       Timestamp `json:"start"`
	End         Timestamp `json:"end"`
}

func (in TaskInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("task", "title", "required")
	}
	if in.ProjectID == "" {
		return invalid("task", "projectId", "required")
	}
	if in.Assignee == "" {
		return invalid("task", "assignee", "required")
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return invalid("task", "priority", "must be high, medium or low")
	}
	if in.Status != "" && !in.Status.Valid() {
		return invalid("task", "status", "must be pending, in_progress or done")
	}
	if !in.Start.Known() {
		return invalid("task", "start", "required")
	}
	if !in.End.Known() {
		return invalid("task", "end", "required")
	}
	return checkSpan(in.Start, in.End)
}

// checkSpan rejects a start that falls after the end.
func checkSpan(start, end Timestamp) error {
	s, err := start.Time()
	if err != nil {
		return invalid("task", "start", err.Error())
	}
	e, err := end.Time()
	if err != nil {
		return invalid("task", "end", err.Error())
	}
	if s.After(e) {
		return invalid("task", "end", "must not be before start")
	}
	return nil
}

// Validate checks a stored task, typically the result of merging a patch.
// Unknown times are allowed; known ones must parse and be in order.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return invalid("task", "title", "required")
	}
	if t.Priority != "" && !t.Priority.Valid() {
		return invalid("task", "priority", "must be high, medium or low")
	}
	if t.Status != "" && !t.Status.Valid() {
		return invalid("task", "status", "must be pending, in_progress or done")
	}
	if t.Start.Known() && t.End.Known() {
		return checkSpan(t.Start, t.End)
	}
	if t.Start.Known() {
		if _, err := t.Start.Time(); err != nil {
			return invalid("task", "start", err.Error())
		}
	}
	if t.End.Known() {
		if _, err := t.End.Time(); err != nil {
			return invalid("task", "end", err.Error())
		}
	}
	return nil
}

// TaskPatch is a partial task update. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	ProjectID   *string    `json:"projectId,omitempty"`
	Assignee    *string    `json:"assignee,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Start       *Timestamp `json:"start,omitempty"`
	End         *Timestamp `json:"end,omitempty"`
}

func (p TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("task", "title", "must not be empty")
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return invalid("task", "priority", "must be high, medium or low")
	}
	if p.Status != nil && !p.Status.Valid() {
		return invalid("task", "status", "must be pending, in_progress or done")
	}
	if p.Start != nil && p.Start.Known() {
		if _, err := p.Start.Time(); err != nil {
			return invalid("task", "start", err.Error())
		}
	}
	if p.End != nil && p.End.Known() {
		if _, err := p.End.Time(); err != nil {
			return invalid("task", "end", err.Error())
		}
	}
	if p.Start != nil && p.End != nil && p.Start.Known() && p.End.Known() {
		return checkSpan(*p.Start, *p.End)
	}
	return nil
}

// Apply merges the patch over t and returns the result.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ProjectID != nil {
		t.ProjectID = *p.ProjectID
	}
	if p.Assignee != nil {
		t.Assignee = *p.Assignee
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Start != nil {
		t.Start = *p.Start
	}
	if p.End != nil {
		t.End = *p.End
	}
	return t
}

// Ptr returns a pointer to v. Handy for building patches.
func Ptr[T any](v T) *T {
	return &v
}
