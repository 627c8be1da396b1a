package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/harrisonrobin/taskdeck/pkg/backend"
)

// ResponseMode tunes how the team assistant answers.
type ResponseMode string

const (
	ModePrecise  ResponseMode = "precise"
	ModeBalanced ResponseMode = "balanced"
	ModeCreative ResponseMode = "creative"
)

func (m ResponseMode) Valid() bool {
	return m == ModePrecise || m == ModeBalanced || m == ModeCreative
}

// TeamChat is one message to the team leader's assistant. An empty
// Session starts a new conversation; an empty Mode means precise.
type TeamChat struct {
	Message string
	Members []int64
	Mode    ResponseMode
	Session string
}

// Team-leader calls are answered with 403 for callers who do not lead a
// team; that arrives as *Error like any other refusal.

func (c *Client) ListTeamMembers(ctx context.Context) ([]backend.TeamMember, error) {
	return call(ctx, c, get("list team members", "/api/team-leader/members"), func(r io.Reader) ([]backend.TeamMember, error) {
		return backend.Decode[[]backend.TeamMember](r, "team member")
	})
}

func (c *Client) AddTeamMember(ctx context.Context, in backend.TeamMemberCreate) (backend.TeamMember, error) {
	if in.MemberUserID <= 0 {
		return backend.TeamMember{}, fmt.Errorf("add team member: member user id is required")
	}
	req, err := jsonRequest("add team member", http.MethodPost, "/api/team-leader/members", in)
	if err != nil {
		return backend.TeamMember{}, err
	}
	return call(ctx, c, req, func(r io.Reader) (backend.TeamMember, error) {
		return backend.Decode[backend.TeamMember](r, "team member")
	})
}

// RemoveTeamMember takes the membership id, not the member's user id.
func (c *Client) RemoveTeamMember(ctx context.Context, id int64) error {
	path := "/api/team-leader/members/" + strconv.FormatInt(id, 10)
	_, err := c.send(ctx, request{op: "remove team member", method: http.MethodDelete, path: path})
	return err
}

func (c *Client) TeamDashboard(ctx context.Context) (backend.TeamDashboard, error) {
	return call(ctx, c, get("load team dashboard", "/api/team-leader/dashboard"), func(r io.Reader) (backend.TeamDashboard, error) {
		return backend.Decode[backend.TeamDashboard](r, "team dashboard")
	})
}

// SendTeamChat asks the team assistant about the mentioned members.
func (c *Client) SendTeamChat(ctx context.Context, msg TeamChat) (backend.ChatReply, error) {
	if msg.Message == "" {
		return backend.ChatReply{}, fmt.Errorf("send team chat: message is required")
	}
	if msg.Mode == "" {
		msg.Mode = ModePrecise
	}
	if !msg.Mode.Valid() {
		return backend.ChatReply{}, fmt.Errorf("send team chat: unknown response mode %q", msg.Mode)
	}
	body := backend.TeamChatRequest{
		Message:          msg.Message,
		MentionedMembers: append([]int64{}, msg.Members...),
		ResponseMode:     string(msg.Mode),
	}
	if msg.Session != "" {
		body.SessionID = &msg.Session
	}
	req, err := jsonRequest("send team chat", http.MethodPost, "/api/team-leader/chat", body)
	if err != nil {
		return backend.ChatReply{}, err
	}
	return call(ctx, c, req, func(r io.Reader) (backend.ChatReply, error) {
		return backend.Decode[backend.ChatReply](r, "chat reply")
	})
}
