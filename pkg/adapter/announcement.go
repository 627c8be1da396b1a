package adapter

import (
	"strconv"

	"github.com/harrisonrobin/taskdeck/pkg/backend"
	"github.com/harrisonrobin/taskdeck/pkg/model"
)

// AnnouncementToDomain converts a service announcement. The sender is the
// service user id; it gets a display name only through a Directory.
func AnnouncementToDomain(ba backend.Announcement, opts ...Option) model.Announcement {
	o := apply(opts)

	var projectID string
	if ba.ProjectID != nil {
		projectID = formatID(*ba.ProjectID)
	}
	from := formatID(ba.FromUserID)

	typ := model.AnnouncementType(ba.Type)
	if !typ.Valid() {
		typ = model.AnnouncementGeneral
	}

	return model.Announcement{
		ID:        formatID(ba.ID),
		ProjectID: projectID,
		Title:     ba.Title,
		Body:      ba.Body,
		From:      model.Person{UserID: from, Name: o.name(from)},
		CreatedAt: model.At(ba.CreatedAt),
		Type:      typ,
	}
}

func AnnouncementsToDomain(bas []backend.Announcement, opts ...Option) []model.Announcement {
	out := make([]model.Announcement, 0, len(bas))
	for _, ba := range bas {
		out = append(out, AnnouncementToDomain(ba, opts...))
	}
	return out
}

// AnnouncementToBackend builds a create body. The sender is never sent;
// the service records the authenticated caller. A project id that is not
// a service integer id is dropped.
func AnnouncementToBackend(in model.AnnouncementInput) backend.AnnouncementCreate {
	out := backend.AnnouncementCreate{
		Title: in.Title,
		Body:  in.Body,
		Type:  string(in.Type),
	}
	if out.Type == "" {
		out.Type = string(model.AnnouncementGeneral)
	}
	if in.ProjectID != "" {
		if id, err := strconv.ParseInt(in.ProjectID, 10, 64); err == nil {
			out.ProjectID = &id
		}
	}
	return out
}
