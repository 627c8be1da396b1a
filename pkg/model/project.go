package model

import (
	"regexp"
	"strings"
)

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Lead        Person `json:"lead"`
	Deadline    string `json:"deadline"` // may be empty
	Description string `json:"description"`
	Color       string `json:"color"`
}

type ProjectInput struct {
	Name        string `json:"name"`
	Lead        Person `json:"lead"`
	Deadline    string `json:"deadline"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func (in ProjectInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return invalid("project", "name", "required")
	}
	if in.Color != "" && !hexColor.MatchString(in.Color) {
		return invalid("project", "color", "must be a #RRGGBB hex string")
	}
	return nil
}

type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	Lead        *Person `json:"lead,omitempty"`
	Deadline    *string `json:"deadline,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}

func (p ProjectPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalid("project", "name", "must not be empty")
	}
	if p.Color != nil && *p.Color != "" && !hexColor.MatchString(*p.Color) {
		return invalid("project", "color", "must be a #RRGGBB hex string")
	}
	return nil
}

func (p ProjectPatch) Apply(pr Project) Project {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Lead != nil {
		pr.Lead = *p.Lead
	}
	if p.Deadline != nil {
		pr.Deadline = *p.Deadline
	}
	if p.Description != nil {
		pr.Description = *p.Description
	}
	if p.Color != nil {
		pr.Color = *p.Color
	}
	return pr
}
