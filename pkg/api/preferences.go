package api

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/harrisonrobin/taskdeck/pkg/backend"
	"github.com/harrisonrobin/taskdeck/pkg/model"
)

// Settings and daily updates travel in the console's own shape, so they
// are decoded straight into the domain types.

func (c *Client) GetSettings(ctx context.Context) (model.Settings, error) {
	return call(ctx, c, get("load settings", "/api/settings"), decodeSettings)
}

// SaveSettings replaces the settings record as a whole.
func (c *Client) SaveSettings(ctx context.Context, s model.Settings) (model.Settings, error) {
	if err := s.Validate(); err != nil {
		return model.Settings{}, err
	}
	req, err := jsonRequest("save settings", http.MethodPut, "/api/settings", s)
	if err != nil {
		return model.Settings{}, err
	}
	return call(ctx, c, req, decodeSettings)
}

func decodeSettings(r io.Reader) (model.Settings, error) {
	s, err := backend.Decode[model.Settings](r, "settings")
	if err != nil {
		return model.Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return model.Settings{}, &backend.DecodeError{Entity: "settings", Index: -1, Reason: err.Error()}
	}
	return s, nil
}

// ListDailyUpdates lists the caller's updates. An empty date lists all of
// them.
func (c *Client) ListDailyUpdates(ctx context.Context, date string) ([]model.DailyUpdate, error) {
	path := "/api/daily-updates"
	if date != "" {
		path += "?" + url.Values{"date": {date}}.Encode()
	}
	return call(ctx, c, get("list daily updates", path), decodeDailyUpdates)
}

func (c *Client) CreateDailyUpdate(ctx context.Context, in model.DailyUpdateInput) (model.DailyUpdate, error) {
	if err := in.Validate(); err != nil {
		return model.DailyUpdate{}, err
	}
	req, err := jsonRequest("create daily update", http.MethodPost, "/api/daily-updates", in)
	if err != nil {
		return model.DailyUpdate{}, err
	}
	return call(ctx, c, req, decodeDailyUpdate)
}

func (c *Client) UpdateDailyUpdate(ctx context.Context, id string, patch model.DailyUpdatePatch) (model.DailyUpdate, error) {
	req, err := jsonRequest("update daily update", http.MethodPatch, "/api/daily-updates/"+url.PathEscape(id), patch)
	if err != nil {
		return model.DailyUpdate{}, err
	}
	return call(ctx, c, req, decodeDailyUpdate)
}

func (c *Client) DeleteDailyUpdate(ctx context.Context, id string) error {
	_, err := c.send(ctx, request{op: "delete daily update", method: http.MethodDelete, path: "/api/daily-updates/" + url.PathEscape(id)})
	return err
}

func decodeDailyUpdates(r io.Reader) ([]model.DailyUpdate, error) {
	return backend.Decode[[]model.DailyUpdate](r, "daily update")
}

func decodeDailyUpdate(r io.Reader) (model.DailyUpdate, error) {
	return backend.Decode[model.DailyUpdate](r, "daily update")
}

// ConvertUpdatesToEvents asks the service to turn every stored daily update
// into calendar events.
func (c *Client) ConvertUpdatesToEvents(ctx context.Context) (backend.EventExtraction, error) {
	req := request{op: "convert daily updates", method: http.MethodPost, path: "/api/daily-updates/update-all-to-events"}
	return call(ctx, c, req, func(r io.Reader) (backend.EventExtraction, error) {
		return backend.Decode[backend.EventExtraction](r, "event extraction")
	})
}
