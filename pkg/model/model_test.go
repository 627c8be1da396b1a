package model

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTimestampJSON(t *testing.T) {
	var unknown Timestamp
	b, err := json.Marshal(unknown)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "null" {
		t.Errorf("Expected unknown timestamp to marshal as null, got %s", b)
	}

	var back Timestamp
	if err := json.Unmarshal([]byte("null"), &back); err != nil {
		t.Fatal(err)
	}
	if back.Known() {
		t.Error("Expected null to decode as unknown")
	}

	if err := json.Unmarshal([]byte(`"2024-02-03T04:05:06Z"`), &back); err != nil {
		t.Fatal(err)
	}
	got, err := back.Time()
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)) {
		t.Errorf("Unexpected time %v", got)
	}

	if err := json.Unmarshal([]byte(`42`), &back); err == nil {
		t.Error("Expected a number to be rejected")
	}
}

func TestTimestampLayouts(t *testing.T) {
	for _, s := range []string{"2024-02-03T04:05:06.123Z", "2024-02-03T04:05:06", "2024-02-03T04:05", "2024-02-03"} {
		if _, err := At(s).Time(); err != nil {
			t.Errorf("Expected %q to parse: %v", s, err)
		}
	}
	if _, err := At("yesterday").Time(); err == nil {
		t.Error("Expected an unrecognized timestamp to fail")
	}
	if _, err := (Timestamp{}).Time(); err == nil {
		t.Error("Expected an unknown timestamp to fail")
	}
}

func TestPersonJSON(t *testing.T) {
	b, _ := json.Marshal(UserRef("17"))
	if string(b) != "null" {
		t.Errorf("Expected unresolved person to marshal as null, got %s", b)
	}
	b, _ = json.Marshal(Person{Name: "Sarah Johnson", UserID: "17"})
	if string(b) != `"Sarah Johnson"` {
		t.Errorf("Expected the display name, got %s", b)
	}
	if got := UserRef("17").String(); got != "user #17" {
		t.Errorf("Unexpected String() %q", got)
	}

	var p Person
	if err := json.Unmarshal([]byte(`"Michael Chen"`), &p); err != nil {
		t.Fatal(err)
	}
	if p != Named("Michael Chen") {
		t.Errorf("Unexpected person %+v", p)
	}
}

func validTaskInput() TaskInput {
	return TaskInput{
		Title:     "Ship",
		ProjectID: "p1",
		Assignee:  "Emily Davis",
		Start:     At("2024-01-01T09:00:00Z"),
		End:       At("2024-01-01T10:00:00Z"),
	}
}

func TestTaskInputValidate(t *testing.T) {
	if err := validTaskInput().Validate(); err != nil {
		t.Fatalf("Expected valid input, got %v", err)
	}

	tests := []struct {
		name  string
		edit  func(*TaskInput)
		field string
	}{
		{"blank title", func(in *TaskInput) { in.Title = "  " }, "title"},
		{"no project", func(in *TaskInput) { in.ProjectID = "" }, "projectId"},
		{"no assignee", func(in *TaskInput) { in.Assignee = "" }, "assignee"},
		{"bad priority", func(in *TaskInput) { in.Priority = "urgent" }, "priority"},
		{"bad status", func(in *TaskInput) { in.Status = "completed" }, "status"},
		{"unknown start", func(in *TaskInput) { in.Start = Timestamp{} }, "start"},
		{"end before start", func(in *TaskInput) { in.End = At("2024-01-01T08:00:00Z") }, "end"},
	}
	for _, tt := range tests {
		in := validTaskInput()
		tt.edit(&in)
		err := in.Validate()
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected ValidationError, got %v", tt.name, err)
			continue
		}
		if ve.Field != tt.field {
			t.Errorf("%s: expected field %s, got %s", tt.name, tt.field, ve.Field)
		}
	}
}

func TestTaskPatchApply(t *testing.T) {
	task := Task{ID: "1", Title: "Old", Priority: PriorityLow, Status: StatusPending}
	got := TaskPatch{Title: Ptr("New"), Status: Ptr(StatusDone)}.Apply(task)
	if got.Title != "New" || got.Status != StatusDone || got.Priority != PriorityLow || got.ID != "1" {
		t.Errorf("Unexpected merge result %+v", got)
	}
}

func TestTaskPatchValidateTimes(t *testing.T) {
	tests := []struct {
		name  string
		patch TaskPatch
		field string
	}{
		{"unparseable start", TaskPatch{Start: Ptr(At("not a time"))}, "start"},
		{"unparseable end", TaskPatch{End: Ptr(At("soon"))}, "end"},
		{"end before start", TaskPatch{Start: Ptr(At("2025-01-01T10:00:00Z")), End: Ptr(At("2025-01-01T09:00:00Z"))}, "end"},
	}
	for _, tt := range tests {
		var ve *ValidationError
		if err := tt.patch.Validate(); !errors.As(err, &ve) || ve.Field != tt.field {
			t.Errorf("%s: Validate() = %v, want error on %s", tt.name, err, tt.field)
		}
	}
	if err := (TaskPatch{Start: Ptr(Timestamp{})}).Validate(); err != nil {
		t.Errorf("Clearing start should be allowed, got %v", err)
	}
}

func TestTaskValidateSpan(t *testing.T) {
	task := Task{Title: "Ship", Start: At("2025-01-01T10:00:00Z"), End: At("2025-01-01T11:00:00Z")}
	if err := task.Validate(); err != nil {
		t.Fatalf("Expected a valid task, got %v", err)
	}
	task.End = At("2024-12-31T10:00:00Z")
	if err := task.Validate(); err == nil {
		t.Error("Expected end before start to be rejected")
	}
}

func TestSettingsValidate(t *testing.T) {
	if err := DefaultSettings().Validate(); err != nil {
		t.Fatalf("Expected defaults to be valid, got %v", err)
	}
	s := DefaultSettings()
	s.WorkingHoursStart = "18:00"
	if err := s.Validate(); err == nil {
		t.Error("Expected start after end to be rejected")
	}
	s = DefaultSettings()
	s.WorkingHoursEnd = "5pm"
	if err := s.Validate(); err == nil {
		t.Error("Expected a non HH:MM time to be rejected")
	}
}

func TestSettingsPatchKeepsOtherFields(t *testing.T) {
	dark := ThemeDark
	got := SettingsPatch{Theme: &dark}.Apply(DefaultSettings())
	want := DefaultSettings()
	want.Theme = ThemeDark
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestProjectInputValidate(t *testing.T) {
	if err := (ProjectInput{Name: "Site", Color: "#3B82F6"}).Validate(); err != nil {
		t.Errorf("Expected valid project, got %v", err)
	}
	if err := (ProjectInput{Name: "Site", Color: "blue"}).Validate(); err == nil {
		t.Error("Expected a non-hex color to be rejected")
	}
	if err := (ProjectInput{}).Validate(); err == nil {
		t.Error("Expected a missing name to be rejected")
	}
}

func TestDailyUpdateJSON(t *testing.T) {
	u := DailyUpdate{
		ID:        "u1",
		UserID:    "7",
		Date:      "2024-03-01",
		Title:     "Pushed fixes",
		CreatedAt: At("2024-03-01T17:00:00Z"),
		Detail:    GitHubUpdate{Username: "octo", Repo: "deck", Commits: "fix: tests"},
	}
	b, err := json.Marshal(u)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, want := range []string{`"type":"github_update"`, `"githubUsername":"octo"`, `"githubRepo":"deck"`, `"description":null`} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %s in %s", want, s)
		}
	}
	if strings.Contains(s, "transcriptContent") || strings.Contains(s, "fileName") {
		t.Errorf("Expected fields of other variants to be absent: %s", s)
	}

	var back DailyUpdate
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.Detail != u.Detail || back.CreatedAt != u.CreatedAt || back.Type() != UpdateGitHub {
		t.Errorf("Unexpected decoded update %+v", back)
	}
}

func TestDailyUpdateRejectsUnknownType(t *testing.T) {
	var in DailyUpdateInput
	err := json.Unmarshal([]byte(`{"userId":"1","date":"2024-03-01","type":"voice_memo","title":"x"}`), &in)
	if err == nil {
		t.Fatal("Expected an unknown type to be rejected")
	}
	if err := json.Unmarshal([]byte(`{"userId":"1","date":"2024-03-01","title":"x"}`), &in); err == nil {
		t.Fatal("Expected a missing type to be rejected")
	}
}

func TestDailyUpdateInputValidate(t *testing.T) {
	base := DailyUpdateInput{UserID: "1", Date: "2024-03-01", Title: "Notes"}

	tests := []struct {
		detail UpdateDetail
		ok     bool
	}{
		{TextNote{Content: "shipped"}, true},
		{TextNote{Content: "   "}, false},
		{ProjectTranscript{}, false},
		{GitHubUpdate{Username: "octo"}, false},
		{FileUpload{FileName: "a.pdf"}, true},
		{ScreenRecording{}, true},
		{nil, false},
	}
	for _, tt := range tests {
		in := base
		in.Detail = tt.detail
		if err := in.Validate(); (err == nil) != tt.ok {
			t.Errorf("Validate(%#v) = %v, want ok=%v", tt.detail, err, tt.ok)
		}
	}
}
