package google

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/taskdeck/pkg/colors"
	"github.com/harrisonrobin/taskdeck/pkg/index"
	"github.com/harrisonrobin/taskdeck/pkg/model"
	"github.com/harrisonrobin/taskdeck/pkg/overdue"
	"github.com/harrisonrobin/taskdeck/pkg/util"
	"google.golang.org/api/calendar/v3"
)

type fakeCalendar struct {
	events  map[string]*calendar.Event
	synced  []string
	patched map[string]string
	deleted []string
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{events: map[string]*calendar.Event{}, patched: map[string]string{}}
}

func (f *fakeCalendar) SyncEvent(task model.Task, colorID string, now time.Time) (*calendar.Event, error) {
	ev, err := util.ConvertTaskToCalendarEvent(task, colorID, now)
	if err != nil {
		return nil, err
	}
	ev.Id = "evt-" + task.ID
	f.events[ev.Id] = ev
	f.synced = append(f.synced, task.ID)
	return ev, nil
}

func (f *fakeCalendar) PatchEvent(eventID string, patch *calendar.Event) (*calendar.Event, error) {
	f.patched[eventID] = patch.Summary
	return f.events[eventID], nil
}

func (f *fakeCalendar) DeleteEvent(eventID string) error {
	f.deleted = append(f.deleted, eventID)
	delete(f.events, eventID)
	return nil
}

func (f *fakeCalendar) ListEvents(time.Time) ([]*calendar.Event, error) {
	out := make([]*calendar.Event, 0, len(f.events))
	for _, ev := range f.events {
		out = append(out, ev)
	}
	return out, nil
}

func task(id string, status model.Status, start, end time.Time) model.Task {
	return model.Task{
		ID:        id,
		Title:     "Task " + id,
		ProjectID: "p1",
		Assignee:  "Emily Davis",
		Priority:  model.PriorityMedium,
		Status:    status,
		Start:     model.AtTime(start),
		End:       model.AtTime(end),
	}
}

func TestExportSyncsSkipsAndPrunes(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	dir := t.TempDir()
	idx, err := index.NewEventIndex(filepath.Join(dir, index.FileName))
	if err != nil {
		t.Fatal(err)
	}
	idx.Set("gone", "evt-gone")
	cache, err := colors.NewColorCache(filepath.Join(dir, colors.FileName))
	if err != nil {
		t.Fatal(err)
	}

	cal := newFakeCalendar()
	cal.events["evt-gone"] = &calendar.Event{
		Id:                 "evt-gone",
		ExtendedProperties: &calendar.EventExtendedProperties{Private: map[string]string{util.EventTaskIDKey: "gone"}},
	}
	cal.events["evt-foreign"] = &calendar.Event{Id: "evt-foreign", Summary: "Dentist"}

	unscheduled := task("3", model.StatusPending, now, now)
	unscheduled.End = model.Timestamp{}

	exp := &Exporter{
		Calendar: cal,
		Index:    idx,
		Colors:   cache,
		Now:      func() time.Time { return now },
	}
	rep, err := exp.Export([]model.Task{
		task("1", model.StatusPending, now.Add(time.Hour), now.Add(2*time.Hour)),
		task("2", model.StatusDone, now.Add(-2*time.Hour), now.Add(-time.Hour)),
		unscheduled,
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if rep.Synced != 2 || rep.Skipped != 1 || rep.Pruned != 1 || rep.Failed != 0 {
		t.Errorf("Unexpected report: %s", rep)
	}
	if len(cal.deleted) != 1 || cal.deleted[0] != "evt-gone" {
		t.Errorf("Expected only evt-gone to be pruned, deleted %v", cal.deleted)
	}
	if idx.Get("gone") != "" {
		t.Error("Expected pruned task to leave the index")
	}
	if !strings.HasPrefix(cal.events["evt-2"].Summary, "✓") {
		t.Errorf("Expected done marker, got %q", cal.events["evt-2"].Summary)
	}
	if cal.events["evt-1"].ColorId != cal.events["evt-2"].ColorId {
		t.Error("Expected tasks of one project to share a color")
	}
}

func TestExportFlagsOverdueTasks(t *testing.T) {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	table, err := overdue.NewTable(filepath.Join(t.TempDir(), overdue.FileName))
	if err != nil {
		t.Fatal(err)
	}

	cal := newFakeCalendar()
	clock := start.Add(-time.Hour)
	exp := &Exporter{Calendar: cal, Overdue: table, Now: func() time.Time { return clock }}
	tasks := []model.Task{task("1", model.StatusPending, start, end)}

	if _, err := exp.Export(tasks); err != nil {
		t.Fatal(err)
	}
	if _, ok := table.Entries["1"]; !ok {
		t.Fatal("Expected the pending task to be tracked")
	}

	// The next run after the end passes flags the event once.
	clock = end.Add(time.Minute)
	cal.events = map[string]*calendar.Event{}
	rep, err := exp.Export(nil)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Flagged != 1 || cal.patched["evt-1"] != "! Task 1" {
		t.Errorf("Expected evt-1 flagged overdue, report %s, patches %v", rep, cal.patched)
	}
}
