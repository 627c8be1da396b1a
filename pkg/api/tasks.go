package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/harrisonrobin/taskdeck/pkg/adapter"
	"github.com/harrisonrobin/taskdeck/pkg/backend"
	"github.com/harrisonrobin/taskdeck/pkg/model"
)

func (c *Client) toTasks(r io.Reader) ([]model.Task, error) {
	bts, err := backend.DecodeTasks(r)
	if err != nil {
		return nil, err
	}
	return adapter.TasksToDomain(bts, c.adapt...), nil
}

func (c *Client) toTask(r io.Reader) (model.Task, error) {
	bt, err := backend.DecodeTask(r)
	if err != nil {
		return model.Task{}, err
	}
	return adapter.TaskToDomain(bt, c.adapt...), nil
}

func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	return call(ctx, c, get("list tasks", "/api/tasks/list"), c.toTasks)
}

// TodayTasks lists the tasks the service schedules for today.
func (c *Client) TodayTasks(ctx context.Context) ([]model.Task, error) {
	return call(ctx, c, get("list today's tasks", "/api/tasks/today"), c.toTasks)
}

func (c *Client) GetTask(ctx context.Context, id string) (model.Task, error) {
	sid, err := serviceID("task", id)
	if err != nil {
		return model.Task{}, err
	}
	return call(ctx, c, get("get task", "/api/tasks/"+sid), c.toTask)
}

// CreateTask validates in locally before sending it.
func (c *Client) CreateTask(ctx context.Context, in model.TaskInput) (model.Task, error) {
	if err := in.Validate(); err != nil {
		return model.Task{}, err
	}
	req, err := jsonRequest("create task", http.MethodPost, "/api/tasks", adapter.TaskInputToBackend(in))
	if err != nil {
		return model.Task{}, err
	}
	return call(ctx, c, req, c.toTask)
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch model.TaskPatch) (model.Task, error) {
	if err := patch.Validate(); err != nil {
		return model.Task{}, err
	}
	sid, err := serviceID("task", id)
	if err != nil {
		return model.Task{}, err
	}
	req, err := jsonRequest("update task", http.MethodPatch, "/api/tasks/"+sid, adapter.TaskToBackend(patch))
	if err != nil {
		return model.Task{}, err
	}
	return call(ctx, c, req, c.toTask)
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	sid, err := serviceID("task", id)
	if err != nil {
		return err
	}
	_, err = c.send(ctx, request{op: "delete task", method: http.MethodDelete, path: "/api/tasks/" + sid})
	return err
}

// CalendarView is the span the service expands a target date to.
type CalendarView string

const (
	ViewDay   CalendarView = "day"
	ViewWeek  CalendarView = "week"
	ViewMonth CalendarView = "month"
)

// CalendarPage is the tasks falling between Start and End, both YYYY-MM-DD.
type CalendarPage struct {
	View  CalendarView
	Start string
	End   string
	Tasks []model.Task
}

// CalendarTasks lists the tasks in the view around date (YYYY-MM-DD). An
// empty date lets the service pick today.
func (c *Client) CalendarTasks(ctx context.Context, view CalendarView, date string) (CalendarPage, error) {
	switch view {
	case ViewDay, ViewWeek, ViewMonth:
	default:
		return CalendarPage{}, fmt.Errorf("calendar tasks: unknown view %q", view)
	}
	q := url.Values{"view": {string(view)}}
	if date != "" {
		q.Set("target_date", date)
	}
	return call(ctx, c, get("list calendar tasks", "/api/tasks/calendar?"+q.Encode()), c.toCalendarPage)
}

func (c *Client) toCalendarPage(r io.Reader) (CalendarPage, error) {
	doc, err := backend.Decode[backend.CalendarRange](r, "calendar range")
	if err != nil {
		return CalendarPage{}, err
	}
	out := CalendarPage{View: CalendarView(doc.View), Start: doc.StartDate, End: doc.EndDate}
	if len(doc.Tasks) > 0 && string(doc.Tasks) != "null" {
		bts, err := backend.DecodeTasks(bytes.NewReader(doc.Tasks))
		if err != nil {
			return CalendarPage{}, err
		}
		out.Tasks = adapter.TasksToDomain(bts, c.adapt...)
	}
	return out, nil
}
