package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/harrisonrobin/taskdeck/pkg/model"
	"google.golang.org/api/calendar/v3"
)

// EventTaskIDKey is the private extended property linking an event to its
// task.
const EventTaskIDKey = "task_id"

// MinEventLength is given to tasks whose start and end coincide.
const MinEventLength = 30 * time.Minute

const (
	prefixDone       = "✓"
	prefixInProgress = "‣"
	prefixOverdue    = "!"
)

// EventSummary is the task title with a status marker: done, in progress,
// or overdue when the task ended before now without being done.
func EventSummary(task model.Task, end, now time.Time) string {
	prefix := ""
	switch {
	case task.Status == model.StatusDone:
		prefix = prefixDone
	case task.Status == model.StatusInProgress:
		prefix = prefixInProgress
	case end.Before(now):
		prefix = prefixOverdue
	}
	if prefix == "" {
		return task.Title
	}
	return fmt.Sprintf("%s %s", prefix, task.Title)
}

// OverdueSummary marks an existing summary as overdue.
func OverdueSummary(title string) string {
	return prefixOverdue + " " + title
}

// TaskSpan returns the task's start and end. Both must be known.
func TaskSpan(task model.Task) (time.Time, time.Time, error) {
	if !task.Start.Known() || !task.End.Known() {
		return time.Time{}, time.Time{}, fmt.Errorf("task %s has no start or end time", task.ID)
	}
	start, err := task.Start.Time()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("task %s start: %w", task.ID, err)
	}
	end, err := task.End.Time()
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("task %s end: %w", task.ID, err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("task %s ends before it starts", task.ID)
	}
	if end.Equal(start) {
		end = start.Add(MinEventLength)
	}
	return start, end, nil
}

// ConvertTaskToCalendarEvent builds the calendar event for task. colorID
// is a Google event color id. now only decides the summary marker, so
// converting again later yields the same event until the task changes or
// its end passes.
func ConvertTaskToCalendarEvent(task model.Task, colorID string, now time.Time) (*calendar.Event, error) {
	start, end, err := TaskSpan(task)
	if err != nil {
		return nil, err
	}

	var desc strings.Builder
	fmt.Fprintf(&desc, "Status: %s\n", task.Status)
	fmt.Fprintf(&desc, "Priority: %s\n", task.Priority)
	if task.ProjectID != "" {
		fmt.Fprintf(&desc, "Project: %s\n", task.ProjectID)
	}
	if task.Assignee != "" {
		fmt.Fprintf(&desc, "Assignee: %s\n", task.Assignee)
	}
	fmt.Fprintf(&desc, "ID: %s\n", task.ID)

	desc.WriteString("\nAccounting:\n")
	fmt.Fprintf(&desc, "• scheduled: %s\n", end.Sub(start))
	fmt.Fprintf(&desc, "• due: %s\n", end.UTC().Format(time.RFC3339))

	if task.Description != "" {
		desc.WriteString("\nNotes:\n")
		for _, line := range strings.Split(strings.TrimSpace(task.Description), "\n") {
			fmt.Fprintf(&desc, "‣ %s\n", line)
		}
	}

	return &calendar.Event{
		Summary: EventSummary(task, end, now),
		ColorId: colorID,
		Start: &calendar.EventDateTime{
			DateTime: start.UTC().Format(time.RFC3339),
		},
		End: &calendar.EventDateTime{
			DateTime: end.UTC().Format(time.RFC3339),
		},
		Description: desc.String(),
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{
				EventTaskIDKey: task.ID,
			},
		},
	}, nil
}

// EventNeedsUpdate returns a patch holding the fields of target that differ
// from existing, or nil when they match.
func EventNeedsUpdate(existing, target *calendar.Event) (*calendar.Event, error) {
	patch := &calendar.Event{}
	needsUpdate := false

	if existing.Summary != target.Summary {
		patch.Summary = target.Summary
		needsUpdate = true
	}
	if existing.Description != target.Description {
		patch.Description = target.Description
		needsUpdate = true
	}
	if existing.ColorId != target.ColorId {
		patch.ColorId = target.ColorId
		needsUpdate = true
	}

	sameStart, err := sameInstant(existing.Start, target.Start)
	if err != nil {
		return nil, err
	}
	sameEnd, err := sameInstant(existing.End, target.End)
	if err != nil {
		return nil, err
	}
	if !sameStart || !sameEnd {
		patch.Start = target.Start
		patch.End = target.End
		needsUpdate = true
	}

	if needsUpdate {
		return patch, nil
	}
	return nil, nil
}

func sameInstant(a, b *calendar.EventDateTime) (bool, error) {
	if a == nil || b == nil {
		return a == b, nil
	}
	at, err := time.Parse(time.RFC3339, a.DateTime)
	if err != nil {
		return false, err
	}
	bt, err := time.Parse(time.RFC3339, b.DateTime)
	if err != nil {
		return false, err
	}
	return at.Equal(bt), nil
}

var descriptionID = regexp.MustCompile(`(?m)^ID: (\S+)$`)

// TaskIDOf returns the task an event was exported from, reading the
// extended property first and the description second.
func TaskIDOf(event *calendar.Event) (string, bool) {
	if event.ExtendedProperties != nil {
		if id := event.ExtendedProperties.Private[EventTaskIDKey]; id != "" {
			return id, true
		}
	}
	matches := descriptionID.FindStringSubmatch(event.Description)
	if len(matches) > 1 {
		return matches[1], true
	}
	return "", false
}
