package model

// Priority is the urgency of a task as shown on the board.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type AnnouncementType string

const (
	AnnouncementTaskAssigned AnnouncementType = "task_assigned"
	AnnouncementGeneral      AnnouncementType = "general"
)

func (t AnnouncementType) Valid() bool {
	return t == AnnouncementTaskAssigned || t == AnnouncementGeneral
}

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

type CalendarDensity string

const (
	DensityComfortable CalendarDensity = "comfortable"
	DensityCompact     CalendarDensity = "compact"
)

func (d CalendarDensity) Valid() bool {
	return d == DensityComfortable || d == DensityCompact
}

// UpdateType names the kind of a daily update.
type UpdateType string

const (
	UpdateFileUpload        UpdateType = "file_upload"
	UpdateScreenRecording   UpdateType = "screen_recording"
	UpdateGitHub            UpdateType = "github_update"
	UpdateProjectTranscript UpdateType = "project_transcript"
	UpdateTextNote          UpdateType = "text_note"
)

func (t UpdateType) Valid() bool {
	switch t {
	case UpdateFileUpload, UpdateScreenRecording, UpdateGitHub, UpdateProjectTranscript, UpdateTextNote:
		return true
	}
	return false
}
