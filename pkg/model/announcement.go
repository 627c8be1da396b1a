package model

import "strings"

type Announcement struct {
	ID        string           `json:"id"`
	ProjectID string           `json:"projectId,omitempty"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	From      Person           `json:"from"`
	CreatedAt Timestamp        `json:"createdAt"`
	Type      AnnouncementType `json:"type"`
}

// AnnouncementInput is an announcement to post. CreatedAt is assigned by
// whoever stores it.
type AnnouncementInput struct {
	ProjectID string           `json:"projectId,omitempty"`
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	From      Person           `json:"from"`
	Type      AnnouncementType `json:"type"`
}

func (in AnnouncementInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("announcement", "title", "required")
	}
	if strings.TrimSpace(in.Body) == "" {
		return invalid("announcement", "body", "required")
	}
	if in.Type != "" && !in.Type.Valid() {
		return invalid("announcement", "type", "must be task_assigned or general")
	}
	return nil
}

type AnnouncementPatch struct {
	ProjectID *string           `json:"projectId,omitempty"`
	Title     *string           `json:"title,omitempty"`
	Body      *string           `json:"body,omitempty"`
	Type      *AnnouncementType `json:"type,omitempty"`
}

func (p AnnouncementPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("announcement", "title", "must not be empty")
	}
	if p.Body != nil && strings.TrimSpace(*p.Body) == "" {
		return invalid("announcement", "body", "must not be empty")
	}
	if p.Type != nil && !p.Type.Valid() {
		return invalid("announcement", "type", "must be task_assigned or general")
	}
	return nil
}

func (p AnnouncementPatch) Apply(a Announcement) Announcement {
	if p.ProjectID != nil {
		a.ProjectID = *p.ProjectID
	}
	if p.Title != nil {
		a.Title = *p.Title
	}
	if p.Body != nil {
		a.Body = *p.Body
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	return a
}
