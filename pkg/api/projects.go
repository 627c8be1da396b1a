package api

import (
	"context"
	"io"
	"net/http"

	"github.com/harrisonrobin/taskdeck/pkg/adapter"
	"github.com/harrisonrobin/taskdeck/pkg/backend"
	"github.com/harrisonrobin/taskdeck/pkg/model"
)

func (c *Client) toProjects(r io.Reader) ([]model.Project, error) {
	bps, err := backend.DecodeProjects(r)
	if err != nil {
		return nil, err
	}
	return adapter.ProjectsToDomain(bps, c.adapt...), nil
}

func (c *Client) toProject(r io.Reader) (model.Project, error) {
	bp, err := backend.DecodeProject(r)
	if err != nil {
		return model.Project{}, err
	}
	return adapter.ProjectToDomain(bp, c.adapt...), nil
}

func (c *Client) ListProjects(ctx context.Context) ([]model.Project, error) {
	return call(ctx, c, get("list projects", "/api/projects"), c.toProjects)
}

func (c *Client) GetProject(ctx context.Context, id string) (model.Project, error) {
	sid, err := serviceID("project", id)
	if err != nil {
		return model.Project{}, err
	}
	return call(ctx, c, get("get project", "/api/projects/"+sid), c.toProject)
}

func (c *Client) CreateProject(ctx context.Context, in model.ProjectInput) (model.Project, error) {
	if err := in.Validate(); err != nil {
		return model.Project{}, err
	}
	req, err := jsonRequest("create project", http.MethodPost, "/api/projects", adapter.ProjectInputToBackend(in))
	if err != nil {
		return model.Project{}, err
	}
	return call(ctx, c, req, c.toProject)
}

func (c *Client) UpdateProject(ctx context.Context, id string, patch model.ProjectPatch) (model.Project, error) {
	if err := patch.Validate(); err != nil {
		return model.Project{}, err
	}
	sid, err := serviceID("project", id)
	if err != nil {
		return model.Project{}, err
	}
	req, err := jsonRequest("update project", http.MethodPatch, "/api/projects/"+sid, adapter.ProjectToBackend(patch))
	if err != nil {
		return model.Project{}, err
	}
	return call(ctx, c, req, c.toProject)
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	sid, err := serviceID("project", id)
	if err != nil {
		return err
	}
	_, err = c.send(ctx, request{op: "delete project", method: http.MethodDelete, path: "/api/projects/" + sid})
	return err
}
