package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harrisonrobin/taskdeck/pkg/model"
	"github.com/harrisonrobin/taskdeck/pkg/store"
)

func newTestHandler(seed store.Seed) http.Handler {
	return New(store.New(store.WithSeed(seed))).Handler()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestHealth(t *testing.T) {
	rec := do(t, newTestHandler(store.Seed{}), http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := decode[map[string]string](t, rec)
	if body["status"] != "Server is running" || body["timestamp"] == "" {
		t.Errorf("Unexpected health body %v", body)
	}
}

func TestTaskEndpoints(t *testing.T) {
	h := newTestHandler(store.Seed{Projects: []model.Project{{ID: "p1", Name: "Site"}}})

	rec := do(t, h, http.MethodPost, "/api/tasks", `{"title":"Ship","projectId":"p1","assignee":"Emily Davis","start":"2024-01-01T09:00:00Z","end":"2024-01-01T10:00:00Z"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body)
	}
	created := decode[model.Task](t, rec)
	if created.ID == "" || created.Status != model.StatusPending || created.Priority != model.PriorityMedium {
		t.Errorf("Unexpected created task %+v", created)
	}

	rec = do(t, h, http.MethodGet, "/api/tasks", "")
	if tasks := decode[[]model.Task](t, rec); len(tasks) != 1 || tasks[0] != created {
		t.Errorf("Expected exactly the created task, got %+v", tasks)
	}

	rec = do(t, h, http.MethodPatch, "/api/tasks/"+created.ID, `{"status":"done"}`)
	if rec.Code != http.StatusOK || decode[model.Task](t, rec).Status != model.StatusDone {
		t.Errorf("Expected the patch to mark the task done, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodDelete, "/api/tasks/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodGet, "/api/tasks/"+created.ID, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", rec.Code)
	}
	if body := decode[map[string]string](t, rec); body["error"] != "task not found" {
		t.Errorf("Unexpected error body %v", body)
	}
}

func TestCreateTaskRejectsBadInput(t *testing.T) {
	h := newTestHandler(store.Seed{})
	tests := []struct {
		body string
		want string
	}{
		{`{"title":""}`, "invalid task title: required"},
		{`{"title":"x","projectId":"p","assignee":"a","start":"2024-01-02T00:00:00Z","end":"2024-01-01T00:00:00Z"}`, "invalid task end: must not be before start"},
		{`not json`, "invalid JSON body"},
	}
	for _, tt := range tests {
		rec := do(t, h, http.MethodPost, "/api/tasks", tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.body, rec.Code)
			continue
		}
		if msg := decode[map[string]string](t, rec)["error"]; !strings.HasPrefix(msg, tt.want) {
			t.Errorf("%s: expected %q, got %q", tt.body, tt.want, msg)
		}
	}
}

func TestPatchTaskKeepsSpanValid(t *testing.T) {
	h := newTestHandler(store.Seed{})
	rec := do(t, h, http.MethodPost, "/api/tasks", `{"title":"Meeting","projectId":"p","assignee":"Ana","start":"2025-01-01T00:00:00Z","end":"2025-01-01T01:00:00Z"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body)
	}
	created := decode[model.Task](t, rec)

	tests := []struct {
		body string
		want string
	}{
		{`{"end":"2024-01-01T00:00:00Z"}`, "invalid task end: must not be before start"},
		{`{"start":"not a time"}`, "invalid task start"},
		{`{"title":"  "}`, "invalid task title"},
	}
	for _, tt := range tests {
		rec := do(t, h, http.MethodPatch, "/api/tasks/"+created.ID, tt.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tt.body, rec.Code)
			continue
		}
		if msg := decode[map[string]string](t, rec)["error"]; !strings.HasPrefix(msg, tt.want) {
			t.Errorf("%s: expected %q, got %q", tt.body, tt.want, msg)
		}
	}

	rec = do(t, h, http.MethodGet, "/api/tasks/"+created.ID, "")
	if got := decode[model.Task](t, rec); got != created {
		t.Errorf("Expected the task to be unchanged, got %+v", got)
	}
	rec = do(t, h, http.MethodPatch, "/api/tasks/missing", `{"end":"2024-01-01T00:00:00Z"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for a missing task, got %d", rec.Code)
	}
}

func TestListTasksByProject(t *testing.T) {
	h := newTestHandler(store.Seed{Tasks: []model.Task{
		{ID: "1", Title: "a", ProjectID: "p1"},
		{ID: "2", Title: "b", ProjectID: "p2"},
	}})
	rec := do(t, h, http.MethodGet, "/api/tasks?projectId=p2", "")
	if tasks := decode[[]model.Task](t, rec); len(tasks) != 1 || tasks[0].ID != "2" {
		t.Errorf("Expected only task 2, got %+v", tasks)
	}
}

func TestProjectGetsSwatch(t *testing.T) {
	h := newTestHandler(store.Seed{})
	rec := do(t, h, http.MethodPost, "/api/projects", `{"name":"Site","lead":"Sarah Johnson"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body)
	}
	p := decode[model.Project](t, rec)
	if p.Color != store.ProjectColors[0] || p.Lead.Name != "Sarah Johnson" {
		t.Errorf("Unexpected project %+v", p)
	}

	rec = do(t, h, http.MethodPost, "/api/projects", `{"name":"Site","color":"red"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a bad color, got %d", rec.Code)
	}
}

func TestAnnouncementDefaultsToGeneral(t *testing.T) {
	h := newTestHandler(store.Seed{})
	rec := do(t, h, http.MethodPost, "/api/announcements", `{"title":"Hi","body":"All hands","from":"Me"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body)
	}
	a := decode[model.Announcement](t, rec)
	if a.Type != model.AnnouncementGeneral || !a.CreatedAt.Known() {
		t.Errorf("Unexpected announcement %+v", a)
	}
}

func TestSettingsEndpoints(t *testing.T) {
	h := newTestHandler(store.Seed{})

	rec := do(t, h, http.MethodPatch, "/api/settings", `{"theme":"dark"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body)
	}
	want := model.DefaultSettings()
	want.Theme = model.ThemeDark
	if got := decode[model.Settings](t, rec); got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	rec = do(t, h, http.MethodPatch, "/api/settings", `{"workingHoursStart":"18:00"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 when start passes end, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPut, "/api/settings", `{"theme":"light"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an incomplete record, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPut, "/api/settings", `{"theme":"light","workingHoursStart":"07:00","workingHoursEnd":"15:00","calendarDensity":"compact"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body)
	}
	rec = do(t, h, http.MethodGet, "/api/settings", "")
	if got := decode[model.Settings](t, rec); got.WorkingHoursStart != "07:00" || got.CalendarDensity != model.DensityCompact {
		t.Errorf("Expected the replaced record, got %+v", got)
	}
}

func TestCreateUser(t *testing.T) {
	h := newTestHandler(store.Seed{})

	rec := do(t, h, http.MethodPost, "/api/users", `{"email":"ada@example.com","name":"Ada","password":"pw"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body)
	}
	if strings.Contains(rec.Body.String(), "pw") {
		t.Error("Expected the password to stay out of the response")
	}

	if rec := do(t, h, http.MethodPost, "/api/users", `{"email":"ADA@example.com","name":"Ada"}`); rec.Code != http.StatusConflict {
		t.Errorf("Expected 409 for a duplicate email, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/users", `{"email":"nope","name":"Ada"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a bad email, got %d", rec.Code)
	}
}

func TestDailyUpdateEndpoints(t *testing.T) {
	h := newTestHandler(store.Seed{})

	rec := do(t, h, http.MethodPost, "/api/daily-updates", `{"userId":"1","date":"2024-03-01","type":"github_update","title":"Pushed","githubUsername":"octo","githubRepo":"deck"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body)
	}
	created := decode[model.DailyUpdate](t, rec)
	if created.Type() != model.UpdateGitHub || !created.CreatedAt.Known() {
		t.Errorf("Unexpected update %+v", created)
	}

	rec = do(t, h, http.MethodPost, "/api/daily-updates", `{"userId":"1","date":"2024-03-01","type":"text_note","title":"Note","content":"  "}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an empty note, got %d", rec.Code)
	}
	rec = do(t, h, http.MethodPost, "/api/daily-updates", `{"userId":"1","date":"2024-03-01","type":"fax","title":"x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an unknown type, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodGet, "/api/daily-updates?userId=1&date=2024-03-01", "")
	if list := decode[[]model.DailyUpdate](t, rec); len(list) != 1 || list[0].ID != created.ID {
		t.Errorf("Expected the created update, got %+v", list)
	}
	rec = do(t, h, http.MethodGet, "/api/daily-updates?userId=2", "")
	if list := decode[[]model.DailyUpdate](t, rec); len(list) != 0 {
		t.Errorf("Expected no updates for user 2, got %+v", list)
	}

	rec = do(t, h, http.MethodPatch, "/api/daily-updates/"+created.ID, `{"title":"Renamed"}`)
	if got := decode[model.DailyUpdate](t, rec); got.Title != "Renamed" || got.Detail != created.Detail {
		t.Errorf("Unexpected patched update %+v", got)
	}
	if rec := do(t, h, http.MethodDelete, "/api/daily-updates/"+created.ID, ""); rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}
}

func TestCORSAndFallbacks(t *testing.T) {
	h := newTestHandler(store.Seed{})

	rec := do(t, h, http.MethodOptions, "/api/tasks", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("Expected a CORS preflight answer, got %d %v", rec.Code, rec.Header())
	}

	rec = do(t, h, http.MethodGet, "/api/nope", "")
	if rec.Code != http.StatusNotFound || rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected a JSON 404, got %d", rec.Code)
	}

	rec = do(t, h, http.MethodPut, "/api/tasks", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}
