package google

import (
	"errors"
	"fmt"
	"time"

	"github.com/harrisonrobin/taskdeck/pkg/colors"
	"github.com/harrisonrobin/taskdeck/pkg/index"
	"github.com/harrisonrobin/taskdeck/pkg/logging"
	"github.com/harrisonrobin/taskdeck/pkg/model"
	"github.com/harrisonrobin/taskdeck/pkg/overdue"
	"github.com/harrisonrobin/taskdeck/pkg/util"
	"google.golang.org/api/calendar/v3"
)

// Calendar is the part of CalendarClient the exporter drives.
type Calendar interface {
	SyncEvent(task model.Task, colorID string, now time.Time) (*calendar.Event, error)
	PatchEvent(eventID string, patch *calendar.Event) (*calendar.Event, error)
	DeleteEvent(eventID string) error
	ListEvents(timeMin time.Time) ([]*calendar.Event, error)
}

// Exporter mirrors a task list onto a calendar. Index, Colors and Overdue
// are optional.
type Exporter struct {
	Calendar Calendar
	Index    *index.EventIndex
	Colors   *colors.ColorCache
	Overdue  *overdue.Table
	Now      func() time.Time
	// Window is how far back Export looks for events to prune.
	Window time.Duration
}

// Report counts what one Export did.
type Report struct {
	Synced  int
	Skipped int
	Flagged int
	Pruned  int
	Failed  int
}

func (r Report) String() string {
	return fmt.Sprintf("%d synced, %d skipped, %d flagged overdue, %d pruned, %d failed",
		r.Synced, r.Skipped, r.Flagged, r.Pruned, r.Failed)
}

func (e *Exporter) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Export pushes every task with a known span, flags events of unfinished
// tasks whose end has passed, and removes events of tasks that no longer
// exist. Per-task failures are logged and counted; the error reports only
// failures to list events or persist local state.
func (e *Exporter) Export(tasks []model.Task) (Report, error) {
	var rep Report
	now := e.now()
	live := make(map[string]bool, len(tasks))

	for _, task := range tasks {
		live[task.ID] = true
		_, end, err := util.TaskSpan(task)
		if err != nil {
			logging.Logger.Debugf("Event ID: EXPORT_SKIP, Description: %v", err)
			rep.Skipped++
			continue
		}

		colorID := colors.NoProjectColor
		if e.Colors != nil {
			colorID = e.Colors.ColorID(task.ProjectID, task.Status != model.StatusDone)
		}

		event, err := e.Calendar.SyncEvent(task, colorID, now)
		if err != nil {
			logging.Logger.Errorf("Event ID: EXPORT_SYNC_FAILED, Description: task %s: %v", task.ID, err)
			rep.Failed++
			continue
		}
		rep.Synced++

		if e.Overdue != nil {
			if task.Status != model.StatusDone && end.After(now) {
				e.Overdue.Update(task.ID, event.Id, task.Title, end)
			} else {
				e.Overdue.Remove(task.ID)
			}
		}
	}

	if e.Overdue != nil {
		for _, entry := range e.Overdue.Sweep(now) {
			patch := &calendar.Event{Summary: util.OverdueSummary(entry.Summary)}
			if _, err := e.Calendar.PatchEvent(entry.EventID, patch); err != nil {
				logging.Logger.Errorf("Event ID: EXPORT_SWEEP_FAILED, Description: event %s: %v", entry.EventID, err)
				rep.Failed++
				continue
			}
			rep.Flagged++
		}
	}

	pruned, failed, err := e.prune(live, now)
	rep.Pruned, rep.Failed = pruned, rep.Failed+failed

	return rep, errors.Join(err, e.save())
}

// prune deletes exported events whose task is gone. Events without a task
// id were not created here and are left alone.
func (e *Exporter) prune(live map[string]bool, now time.Time) (int, int, error) {
	window := e.Window
	if window == 0 {
		window = 30 * 24 * time.Hour
	}
	events, err := e.Calendar.ListEvents(now.Add(-window))
	if err != nil {
		return 0, 0, err
	}

	pruned, failed := 0, 0
	for _, ev := range events {
		taskID, ok := util.TaskIDOf(ev)
		if !ok || live[taskID] {
			continue
		}
		if err := e.Calendar.DeleteEvent(ev.Id); err != nil {
			logging.Logger.Errorf("Event ID: EXPORT_PRUNE_FAILED, Description: event %s: %v", ev.Id, err)
			failed++
			continue
		}
		if e.Index != nil {
			e.Index.Remove(taskID)
		}
		if e.Overdue != nil {
			e.Overdue.Remove(taskID)
		}
		pruned++
	}
	return pruned, failed, nil
}

func (e *Exporter) save() error {
	var errs []error
	if e.Index != nil {
		errs = append(errs, e.Index.Save())
	}
	if e.Colors != nil {
		errs = append(errs, e.Colors.Save())
	}
	if e.Overdue != nil {
		errs = append(errs, e.Overdue.Save())
	}
	return errors.Join(errs...)
}
