package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UpdateDetail is the type-specific payload of a daily update. Exactly one
// of FileUpload, ScreenRecording, GitHubUpdate, ProjectTranscript or
// TextNote.
type UpdateDetail interface {
	Type() UpdateType
	toWire(w *dailyUpdateWire)
}

type FileUpload struct {
	FileName string
	FileURL  string
	FileSize string
}

type ScreenRecording struct {
	Duration     string
	Interval     string
	RecordingURL string
}

type GitHubUpdate struct {
	Username string
	Repo     string
	Commits  string
}

type ProjectTranscript struct {
	Content string
}

type TextNote struct {
	Content string
}

func (FileUpload) Type() UpdateType        { return UpdateFileUpload }
func (ScreenRecording) Type() UpdateType   { return UpdateScreenRecording }
func (GitHubUpdate) Type() UpdateType      { return UpdateGitHub }
func (ProjectTranscript) Type() UpdateType { return UpdateProjectTranscript }
func (TextNote) Type() UpdateType          { return UpdateTextNote }

func (d FileUpload) toWire(w *dailyUpdateWire) {
	w.FileName, w.FileURL, w.FileSize = opt(d.FileName), opt(d.FileURL), opt(d.FileSize)
}

func (d ScreenRecording) toWire(w *dailyUpdateWire) {
	w.RecordingDuration, w.RecordingInterval, w.RecordingURL = opt(d.Duration), opt(d.Interval), opt(d.RecordingURL)
}

func (d GitHubUpdate) toWire(w *dailyUpdateWire) {
	w.GitHubUsername, w.GitHubRepo, w.GitHubCommits = opt(d.Username), opt(d.Repo), opt(d.Commits)
}

func (d ProjectTranscript) toWire(w *dailyUpdateWire) {
	w.TranscriptContent = opt(d.Content)
}

func (d TextNote) toWire(w *dailyUpdateWire) {
	w.Content = opt(d.Content)
}

// DailyUpdate is one entry of a user's work log for a day.
type DailyUpdate struct {
	ID          string
	UserID      string
	Date        string
	Title       string
	Description string
	CreatedAt   Timestamp
	Detail      UpdateDetail
}

func (u DailyUpdate) Type() UpdateType {
	if u.Detail == nil {
		return ""
	}
	return u.Detail.Type()
}

type DailyUpdateInput struct {
	UserID      string
	Date        string
	Title       string
	Description string
	Detail      UpdateDetail
}

func (in DailyUpdateInput) Validate() error {
	if in.UserID == "" {
		return invalid("daily update", "userId", "required")
	}
	if in.Date == "" {
		return invalid("daily update", "date", "required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return invalid("daily update", "title", "required")
	}
	switch d := in.Detail.(type) {
	case nil:
		return invalid("daily update", "type", "required")
	case GitHubUpdate:
		if d.Username == "" || d.Repo == "" {
			return invalid("daily update", "githubRepo", "username and repository are required for GitHub updates")
		}
	case ProjectTranscript:
		if strings.TrimSpace(d.Content) == "" {
			return invalid("daily update", "transcriptContent", "required and cannot be empty")
		}
	case TextNote:
		if strings.TrimSpace(d.Content) == "" {
			return invalid("daily update", "content", "required and cannot be empty for text notes")
		}
	}
	return nil
}

type DailyUpdatePatch struct {
	Date        *string `json:"date,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (p DailyUpdatePatch) Apply(u DailyUpdate) DailyUpdate {
	if p.Date != nil {
		u.Date = *p.Date
	}
	if p.Title != nil {
		u.Title = *p.Title
	}
	if p.Description != nil {
		u.Description = *p.Description
	}
	return u
}

// dailyUpdateWire is the flat record the console exchanges over HTTP.
type dailyUpdateWire struct {
	ID                string     `json:"id,omitempty"`
	UserID            string     `json:"userId"`
	Date              string     `json:"date"`
	Type              UpdateType `json:"type"`
	Title             string     `json:"title"`
	Description       *string    `json:"description"`
	FileName          *string    `json:"fileName,omitempty"`
	FileURL           *string    `json:"fileUrl,omitempty"`
	FileSize          *string    `json:"fileSize,omitempty"`
	RecordingDuration *string    `json:"recordingDuration,omitempty"`
	RecordingInterval *string    `json:"recordingInterval,omitempty"`
	RecordingURL      *string    `json:"recordingUrl,omitempty"`
	GitHubUsername    *string    `json:"githubUsername,omitempty"`
	GitHubRepo        *string    `json:"githubRepo,omitempty"`
	GitHubCommits     *string    `json:"githubCommits,omitempty"`
	TranscriptContent *string    `json:"transcriptContent,omitempty"`
	Content           *string    `json:"content,omitempty"`
	CreatedAt         *Timestamp `json:"createdAt,omitempty"`
}

func (w dailyUpdateWire) detail() (UpdateDetail, error) {
	switch w.Type {
	case UpdateFileUpload:
		return FileUpload{FileName: val(w.FileName), FileURL: val(w.FileURL), FileSize: val(w.FileSize)}, nil
	case UpdateScreenRecording:
		return ScreenRecording{Duration: val(w.RecordingDuration), Interval: val(w.RecordingInterval), RecordingURL: val(w.RecordingURL)}, nil
	case UpdateGitHub:
		return GitHubUpdate{Username: val(w.GitHubUsername), Repo: val(w.GitHubRepo), Commits: val(w.GitHubCommits)}, nil
	case UpdateProjectTranscript:
		return ProjectTranscript{Content: val(w.TranscriptContent)}, nil
	case UpdateTextNote:
		return TextNote{Content: val(w.Content)}, nil
	case "":
		return nil, fmt.Errorf("daily update type is required")
	}
	return nil, fmt.Errorf("unknown daily update type %q", w.Type)
}

func (u DailyUpdate) MarshalJSON() ([]byte, error) {
	w := dailyUpdateWire{
		ID:          u.ID,
		UserID:      u.UserID,
		Date:        u.Date,
		Type:        u.Type(),
		Title:       u.Title,
		Description: opt(u.Description),
		CreatedAt:   &u.CreatedAt,
	}
	if u.Detail != nil {
		u.Detail.toWire(&w)
	}
	return json.Marshal(w)
}

func (u *DailyUpdate) UnmarshalJSON(b []byte) error {
	var w dailyUpdateWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	detail, err := w.detail()
	if err != nil {
		return err
	}
	*u = DailyUpdate{
		ID:          w.ID,
		UserID:      w.UserID,
		Date:        w.Date,
		Title:       w.Title,
		Description: val(w.Description),
		Detail:      detail,
	}
	if w.CreatedAt != nil {
		u.CreatedAt = *w.CreatedAt
	}
	return nil
}

func (in DailyUpdateInput) MarshalJSON() ([]byte, error) {
	w := dailyUpdateWire{
		UserID:      in.UserID,
		Date:        in.Date,
		Title:       in.Title,
		Description: opt(in.Description),
	}
	if in.Detail != nil {
		w.Type = in.Detail.Type()
		in.Detail.toWire(&w)
	}
	return json.Marshal(w)
}

func (in *DailyUpdateInput) UnmarshalJSON(b []byte) error {
	var w dailyUpdateWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	detail, err := w.detail()
	if err != nil {
		return err
	}
	*in = DailyUpdateInput{
		UserID:      w.UserID,
		Date:        w.Date,
		Title:       w.Title,
		Description: val(w.Description),
		Detail:      detail,
	}
	return nil
}

func opt(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func val(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
