package adapter

import (
	"github.com/harrisonrobin/taskdeck/pkg/backend"
	"github.com/harrisonrobin/taskdeck/pkg/model"
)

// ProjectToDomain converts a service project. The service only knows the
// lead's user id, so the lead stays unresolved unless a Directory names it.
func ProjectToDomain(bp backend.Project, opts ...Option) model.Project {
	o := apply(opts)

	var lead model.Person
	if bp.LeadUserID != nil {
		id := formatID(*bp.LeadUserID)
		lead = model.Person{UserID: id, Name: o.name(id)}
	}

	return model.Project{
		ID:          formatID(bp.ID),
		Name:        bp.Name,
		Lead:        lead,
		Deadline:    deref(bp.Deadline),
		Description: deref(bp.Description),
		Color:       bp.Color,
	}
}

func ProjectsToDomain(bps []backend.Project, opts ...Option) []model.Project {
	projects := make([]model.Project, 0, len(bps))
	for _, bp := range bps {
		projects = append(projects, ProjectToDomain(bp, opts...))
	}
	return projects
}

// ProjectToBackend converts a partial project. lead_user_id is always
// null: turning a lead name into a service user id is left to the service.
func ProjectToBackend(p model.ProjectPatch) backend.ProjectPatch {
	return backend.ProjectPatch{
		Name:        p.Name,
		Description: p.Description,
		LeadUserID:  nil,
		Deadline:    p.Deadline,
		Color:       p.Color,
	}
}

func ProjectInputToBackend(in model.ProjectInput) backend.ProjectPatch {
	p := model.ProjectPatch{Name: &in.Name}
	if in.Description != "" {
		p.Description = &in.Description
	}
	if in.Deadline != "" {
		p.Deadline = &in.Deadline
	}
	if in.Color != "" {
		p.Color = &in.Color
	}
	return ProjectToBackend(p)
}
