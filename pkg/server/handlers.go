package server

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/harrisonrobin/taskdeck/pkg/model"
)

// Tasks

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks := s.store.ListTasks()
	if project := r.URL.Query().Get("projectId"); project != "" {
		filtered := tasks[:0]
		for _, t := range tasks {
			if t.ProjectID == project {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	task, ok := s.store.GetTask(mux.Vars(r)["id"])
	if !ok {
		notFound(w, "task")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in model.TaskInput
	if !readJSON(w, r, &in) || !validated(w, in.Validate()) {
		return
	}
	writeJSON(w, http.StatusCreated, s.store.CreateTask(in))
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	var patch model.TaskPatch
	if !readJSON(w, r, &patch) || !validated(w, patch.Validate()) {
		return
	}
	task, ok, err := s.store.UpdateTaskChecked(mux.Vars(r)["id"], patch, model.Task.Validate)
	if !ok {
		notFound(w, "task")
		return
	}
	if !validated(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteTask(mux.Vars(r)["id"]) {
		notFound(w, "task")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Projects

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListProjects())
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	project, ok := s.store.GetProject(mux.Vars(r)["id"])
	if !ok {
		notFound(w, "project")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var in model.ProjectInput
	if !readJSON(w, r, &in) || !validated(w, in.Validate()) {
		return
	}
	writeJSON(w, http.StatusCreated, s.store.CreateProject(in))
}

func (s *Server) updateProject(w http.ResponseWriter, r *http.Request) {
	var patch model.ProjectPatch
	if !readJSON(w, r, &patch) || !validated(w, patch.Validate()) {
		return
	}
	project, ok := s.store.UpdateProject(mux.Vars(r)["id"], patch)
	if !ok {
		notFound(w, "project")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteProject(mux.Vars(r)["id"]) {
		notFound(w, "project")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Announcements

func (s *Server) listAnnouncements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListAnnouncements())
}

func (s *Server) getAnnouncement(w http.ResponseWriter, r *http.Request) {
	a, ok := s.store.GetAnnouncement(mux.Vars(r)["id"])
	if !ok {
		notFound(w, "announcement")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) createAnnouncement(w http.ResponseWriter, r *http.Request) {
	var in model.AnnouncementInput
	if !readJSON(w, r, &in) || !validated(w, in.Validate()) {
		return
	}
	writeJSON(w, http.StatusCreated, s.store.CreateAnnouncement(in))
}

func (s *Server) updateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var patch model.AnnouncementPatch
	if !readJSON(w, r, &patch) || !validated(w, patch.Validate()) {
		return
	}
	a, ok := s.store.UpdateAnnouncement(mux.Vars(r)["id"], patch)
	if !ok {
		notFound(w, "announcement")
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) deleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteAnnouncement(mux.Vars(r)["id"]) {
		notFound(w, "announcement")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Settings

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.Settings())
}

// replaceSettings takes a complete record.
func (s *Server) replaceSettings(w http.ResponseWriter, r *http.Request) {
	var next model.Settings
	if !readJSON(w, r, &next) || !validated(w, next.Validate()) {
		return
	}
	writeJSON(w, http.StatusOK, s.store.UpdateSettings(model.SettingsPatch{
		Theme:             &next.Theme,
		WorkingHoursStart: &next.WorkingHoursStart,
		WorkingHoursEnd:   &next.WorkingHoursEnd,
		CalendarDensity:   &next.CalendarDensity,
	}))
}

// patchSettings merges a partial record; the merged result must be valid.
func (s *Server) patchSettings(w http.ResponseWriter, r *http.Request) {
	var patch model.SettingsPatch
	if !readJSON(w, r, &patch) {
		return
	}
	next, err := s.store.UpdateSettingsChecked(patch, model.Settings.Validate)
	if !validated(w, err) {
		return
	}
	writeJSON(w, http.StatusOK, next)
}

// Users

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListUsers())
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, ok := s.store.GetUser(mux.Vars(r)["id"])
	if !ok {
		notFound(w, "user")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in model.UserInput
	if !readJSON(w, r, &in) {
		return
	}
	in.Email = strings.TrimSpace(in.Email)
	if in.Email == "" || !strings.Contains(in.Email, "@") {
		writeError(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if _, exists := s.store.GetUserByEmail(in.Email); exists {
		writeError(w, http.StatusConflict, "a user with this email already exists")
		return
	}
	writeJSON(w, http.StatusCreated, s.store.CreateUser(in))
}

// Daily updates

func (s *Server) listDailyUpdates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, s.store.ListDailyUpdates(q.Get("userId"), q.Get("date")))
}

func (s *Server) getDailyUpdate(w http.ResponseWriter, r *http.Request) {
	u, ok := s.store.GetDailyUpdate(mux.Vars(r)["id"])
	if !ok {
		notFound(w, "daily update")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) createDailyUpdate(w http.ResponseWriter, r *http.Request) {
	var in model.DailyUpdateInput
	if !readJSON(w, r, &in) || !validated(w, in.Validate()) {
		return
	}
	writeJSON(w, http.StatusCreated, s.store.CreateDailyUpdate(in))
}

func (s *Server) updateDailyUpdate(w http.ResponseWriter, r *http.Request) {
	var patch model.DailyUpdatePatch
	if !readJSON(w, r, &patch) {
		return
	}
	u, ok := s.store.UpdateDailyUpdate(mux.Vars(r)["id"], patch)
	if !ok {
		notFound(w, "daily update")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deleteDailyUpdate(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteDailyUpdate(mux.Vars(r)["id"]) {
		notFound(w, "daily update")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
