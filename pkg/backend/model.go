// Package backend describes the JSON documents exchanged with the task
// service: integer ids, snake_case names, nullable foreign keys and the
// service's own status and priority vocabulary.
package backend

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusDone       = "done"
	StatusCancelled  = "cancelled"

	PriorityUrgent = "urgent"
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

type Task struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	DueDate     *string `json:"due_date"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
	Assignee    *string `json:"assignee,omitempty"`
	Completed   bool    `json:"completed"`
	CompletedAt *string `json:"completed_at"`
	CreatedAt   string  `json:"created_at"`
}

// TaskPatch is the body of task create and update requests. Nil fields are
// omitted from the document.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
	Assignee    *string `json:"assignee,omitempty"`
}

type Project struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	LeadUserID  *int64  `json:"lead_user_id"`
	Deadline    *string `json:"deadline"`
	Color       string  `json:"color"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ProjectPatch always carries lead_user_id, null unless the caller knows
// the service-side user id.
type ProjectPatch struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	LeadUserID  *int64  `json:"lead_user_id"`
	Deadline    *string `json:"deadline,omitempty"`
	Color       *string `json:"color,omitempty"`
}

type Announcement struct {
	ID         int64  `json:"id"`
	ProjectID  *int64 `json:"project_id"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	FromUserID int64  `json:"from_user_id"`
	Type       string `json:"type"`
	CreatedAt  string `json:"created_at"`
}

// AnnouncementCreate has no sender: the service stamps the caller.
type AnnouncementCreate struct {
	ProjectID *int64 `json:"project_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Type      string `json:"type"`
}
