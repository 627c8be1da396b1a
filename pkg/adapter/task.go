package adapter

import (
	"github.com/harrisonrobin/taskdeck/pkg/backend"
	"github.com/harrisonrobin/taskdeck/pkg/model"
)

const (
	DefaultAssignee  = "Current User"
	DefaultProjectID = "0"
)

// StatusToDomain folds the service's status vocabulary into the console's.
// Unrecognized values read as pending.
func StatusToDomain(s string) model.Status {
	switch s {
	case backend.StatusCompleted, backend.StatusDone:
		return model.StatusDone
	case backend.StatusInProgress:
		return model.StatusInProgress
	default:
		return model.StatusPending
	}
}

// StatusToBackend renames done to completed and passes the rest through.
func StatusToBackend(s model.Status) string {
	if s == model.StatusDone {
		return backend.StatusCompleted
	}
	return string(s)
}

// PriorityToDomain reads urgent as high and anything unrecognized as medium.
func PriorityToDomain(p string) model.Priority {
	switch p {
	case backend.PriorityUrgent, backend.PriorityHigh:
		return model.PriorityHigh
	case backend.PriorityLow:
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}

// TaskToDomain converts a service task. Start and end each fall back from
// start_time/end_time to due_date; when neither is set they are unknown,
// or the clock's instant if WithClock is given.
func TaskToDomain(bt backend.Task, opts ...Option) model.Task {
	o := apply(opts)

	task := model.Task{
		ID:          formatID(bt.ID),
		Title:       bt.Title,
		Description: deref(bt.Description),
		ProjectID:   firstNonEmpty(deref(bt.ProjectID), DefaultProjectID),
		Assignee:    firstNonEmpty(deref(bt.Assignee), DefaultAssignee),
		Priority:    PriorityToDomain(bt.Priority),
		Status:      StatusToDomain(bt.Status),
		Start:       o.instant(bt.StartTime, bt.DueDate),
		End:         o.instant(bt.EndTime, bt.DueDate),
	}
	return task
}

func TasksToDomain(bts []backend.Task, opts ...Option) []model.Task {
	tasks := make([]model.Task, 0, len(bts))
	for _, bt := range bts {
		tasks = append(tasks, TaskToDomain(bt, opts...))
	}
	return tasks
}

// instant walks the fallback chain of candidate times.
func (o options) instant(candidates ...*string) model.Timestamp {
	for _, c := range candidates {
		if c != nil && *c != "" {
			return model.At(*c)
		}
	}
	if o.now != nil {
		return model.AtTime(o.now())
	}
	return model.Timestamp{}
}

// TaskToBackend converts a partial task into a service patch. due_date is
// taken from start, or end when start is absent. Unknown times are omitted.
func TaskToBackend(p model.TaskPatch) backend.TaskPatch {
	bp := backend.TaskPatch{
		Title:       p.Title,
		Description: p.Description,
		ProjectID:   p.ProjectID,
		Assignee:    p.Assignee,
		StartTime:   knownTime(p.Start),
		EndTime:     knownTime(p.End),
	}
	if p.Priority != nil {
		bp.Priority = model.Ptr(string(*p.Priority))
	}
	if p.Status != nil {
		bp.Status = model.Ptr(StatusToBackend(*p.Status))
	}
	if bp.StartTime != nil {
		bp.DueDate = bp.StartTime
	} else {
		bp.DueDate = bp.EndTime
	}
	return bp
}

// TaskInputToBackend converts a new task into a service create body.
func TaskInputToBackend(in model.TaskInput) backend.TaskPatch {
	p := model.TaskPatch{
		Title:     &in.Title,
		ProjectID: &in.ProjectID,
		Assignee:  &in.Assignee,
		Start:     &in.Start,
		End:       &in.End,
	}
	if in.Description != "" {
		p.Description = &in.Description
	}
	if in.Priority != "" {
		p.Priority = &in.Priority
	}
	if in.Status != "" {
		p.Status = &in.Status
	}
	return TaskToBackend(p)
}

func knownTime(t *model.Timestamp) *string {
	if t == nil || !t.Known() {
		return nil
	}
	return model.Ptr(t.String())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
