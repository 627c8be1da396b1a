package backend

// Session is a user's working session for one day.
type Session struct {
	ID             int64   `json:"id"`
	UserID         int64   `json:"user_id"`
	Date           string  `json:"date"`
	Status         string  `json:"status"`
	GitHubUsername *string `json:"github_username,omitempty"`
	GitHubRepo     *string `json:"github_repo,omitempty"`
	CreatedAt      string  `json:"created_at"`
	SubmittedAt    *string `json:"submitted_at,omitempty"`
}

type SessionCreate struct {
	Date           string `json:"date"`
	GitHubUsername string `json:"github_username,omitempty"`
	GitHubRepo     string `json:"github_repo,omitempty"`
}

// Upload is the receipt returned for transcript, video and file uploads.
type Upload struct {
	ID              int64    `json:"id"`
	Filename        string   `json:"filename"`
	UploadType      *string  `json:"upload_type,omitempty"`
	ContentPreview  string   `json:"content_preview,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	UploadedAt      string   `json:"uploaded_at"`
}

type ProcessResult struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	TasksGenerated int    `json:"tasks_generated"`
	Tasks          []Task `json:"tasks"`
	Summary        string `json:"llm_summary,omitempty"`
}

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type ChatReply struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

type ChatMessage struct {
	ID        int64  `json:"id"`
	Role      string `json:"role"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
}
