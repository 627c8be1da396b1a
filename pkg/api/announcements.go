package api

import (
	"context"
	"io"
	"net/http"

	"github.com/harrisonrobin/taskdeck/pkg/adapter"
	"github.com/harrisonrobin/taskdeck/pkg/backend"
	"github.com/harrisonrobin/taskdeck/pkg/model"
)

func (c *Client) toAnnouncements(r io.Reader) ([]model.Announcement, error) {
	bas, err := backend.DecodeAnnouncements(r)
	if err != nil {
		return nil, err
	}
	return adapter.AnnouncementsToDomain(bas, c.adapt...), nil
}

func (c *Client) toAnnouncement(r io.Reader) (model.Announcement, error) {
	ba, err := backend.DecodeAnnouncement(r)
	if err != nil {
		return model.Announcement{}, err
	}
	return adapter.AnnouncementToDomain(ba, c.adapt...), nil
}

func (c *Client) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	return call(ctx, c, get("list announcements", "/api/announcements"), c.toAnnouncements)
}

func (c *Client) GetAnnouncement(ctx context.Context, id string) (model.Announcement, error) {
	sid, err := serviceID("announcement", id)
	if err != nil {
		return model.Announcement{}, err
	}
	return call(ctx, c, get("get announcement", "/api/announcements/"+sid), c.toAnnouncement)
}

// CreateAnnouncement posts in. The service records the caller as sender,
// so in.From is not sent.
func (c *Client) CreateAnnouncement(ctx context.Context, in model.AnnouncementInput) (model.Announcement, error) {
	if err := in.Validate(); err != nil {
		return model.Announcement{}, err
	}
	req, err := jsonRequest("create announcement", http.MethodPost, "/api/announcements", adapter.AnnouncementToBackend(in))
	if err != nil {
		return model.Announcement{}, err
	}
	return call(ctx, c, req, c.toAnnouncement)
}

func (c *Client) DeleteAnnouncement(ctx context.Context, id string) error {
	sid, err := serviceID("announcement", id)
	if err != nil {
		return err
	}
	_, err = c.send(ctx, request{op: "delete announcement", method: http.MethodDelete, path: "/api/announcements/" + sid})
	return err
}
