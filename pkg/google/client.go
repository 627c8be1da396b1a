package google

import (
	"context"
	"fmt"

	"github.com/harrisonrobin/taskdeck/pkg/auth"
	"github.com/harrisonrobin/taskdeck/pkg/index"
	"google.golang.org/api/calendar/v3"
)

// NewClient authenticates and binds to the calendar named calendarName.
func NewClient(ctx context.Context, calendarName string, idx *index.EventIndex) (*CalendarClient, error) {
	srv, err := auth.CalendarService(ctx)
	if err != nil {
		return nil, err
	}
	calendarID, err := FindCalendar(srv, calendarName)
	if err != nil {
		return nil, err
	}
	return NewCalendarClient(srv, calendarID, idx), nil
}

// FindCalendar returns the id of the calendar whose summary is name.
func FindCalendar(srv *calendar.Service, name string) (string, error) {
	calendarList, err := srv.CalendarList.List().Do()
	if err != nil {
		return "", fmt.Errorf("unable to retrieve calendar list: %w", err)
	}
	for _, item := range calendarList.Items {
		if item.Summary == name {
			return item.Id, nil
		}
	}
	return "", fmt.Errorf("calendar '%s' not found", name)
}
