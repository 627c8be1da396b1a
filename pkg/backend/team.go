package backend

import "encoding/json"

// TeamMember is a user a team leader has added to their team.
type TeamMember struct {
	ID           int64   `json:"id"`
	TeamLeaderID int64   `json:"team_leader_id"`
	MemberUserID int64   `json:"member_user_id"`
	Name         string  `json:"name"`
	Username     string  `json:"username"`
	Role         *string `json:"role"`
	Email        *string `json:"email"`
	AddedAt      string  `json:"added_at"`
}

type TeamMemberCreate struct {
	MemberUserID int64  `json:"member_user_id"`
	Role         string `json:"role,omitempty"`
	Email        string `json:"email,omitempty"`
}

// MemberActivity is one member's row on the team dashboard.
type MemberActivity struct {
	UserID          int64           `json:"user_id"`
	Name            string          `json:"name"`
	Username        string          `json:"username"`
	Role            *string         `json:"role"`
	TotalTasks      int             `json:"total_tasks"`
	CompletedTasks  int             `json:"completed_tasks"`
	InProgressTasks int             `json:"in_progress_tasks"`
	RecentSessions  []SessionStatus `json:"recent_sessions"`
}

type SessionStatus struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type TeamDashboard struct {
	TeamMembers  []MemberActivity `json:"team_members"`
	TotalMembers int              `json:"total_members"`
}

// TeamChatRequest asks the team assistant about the mentioned members.
type TeamChatRequest struct {
	Message          string  `json:"message"`
	MentionedMembers []int64 `json:"mentioned_members"`
	ResponseMode     string  `json:"response_mode"`
	SessionID        *string `json:"session_id"`
}

// ChatSession summarizes one conversation of the individual assistant.
type ChatSession struct {
	SessionID     string `json:"session_id"`
	MessageCount  int    `json:"message_count"`
	LastMessageAt string `json:"last_message_at"`
}

type ChatSessions struct {
	Sessions []ChatSession `json:"sessions"`
}

// CalendarRange is the task list for a day, week or month. Tasks is kept
// raw so it can be checked against the task contract.
type CalendarRange struct {
	View      string          `json:"view"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Tasks     json.RawMessage `json:"tasks"`
}

// ExtractedEvent is a calendar entry the service derived from daily updates.
type ExtractedEvent struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Type        string `json:"type"`
	Priority    string `json:"priority"`
	Date        string `json:"date"`
}

type EventExtraction struct {
	Success               bool             `json:"success"`
	Message               string           `json:"message"`
	TotalUpdatesProcessed int              `json:"total_updates_processed"`
	EventsCreated         int              `json:"events_created"`
	Events                []ExtractedEvent `json:"events"`
	Summary               string           `json:"summary"`
}
