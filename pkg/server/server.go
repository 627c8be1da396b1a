// Package server exposes a Storage over HTTP in the console's own JSON
// shape. It backs local development when the task service is not around.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/harrisonrobin/taskdeck/pkg/logging"
	"github.com/harrisonrobin/taskdeck/pkg/model"
	"github.com/sirupsen/logrus"
)

// Storage is what the handlers need. *store.MemStore implements it.
type Storage interface {
	ListTasks() []model.Task
	GetTask(id string) (model.Task, bool)
	CreateTask(in model.TaskInput) model.Task
	UpdateTask(id string, patch model.TaskPatch) (model.Task, bool)
	UpdateTaskChecked(id string, patch model.TaskPatch, check func(model.Task) error) (model.Task, bool, error)
	DeleteTask(id string) bool

	ListProjects() []model.Project
	GetProject(id string) (model.Project, bool)
	CreateProject(in model.ProjectInput) model.Project
	UpdateProject(id string, patch model.ProjectPatch) (model.Project, bool)
	DeleteProject(id string) bool

	ListAnnouncements() []model.Announcement
	GetAnnouncement(id string) (model.Announcement, bool)
	CreateAnnouncement(in model.AnnouncementInput) model.Announcement
	UpdateAnnouncement(id string, patch model.AnnouncementPatch) (model.Announcement, bool)
	DeleteAnnouncement(id string) bool

	Settings() model.Settings
	UpdateSettings(patch model.SettingsPatch) model.Settings
	UpdateSettingsChecked(patch model.SettingsPatch, check func(model.Settings) error) (model.Settings, error)

	ListUsers() []model.User
	GetUser(id string) (model.User, bool)
	GetUserByEmail(email string) (model.User, bool)
	CreateUser(in model.UserInput) model.User

	ListDailyUpdates(userID, date string) []model.DailyUpdate
	GetDailyUpdate(id string) (model.DailyUpdate, bool)
	CreateDailyUpdate(in model.DailyUpdateInput) model.DailyUpdate
	UpdateDailyUpdate(id string, patch model.DailyUpdatePatch) (model.DailyUpdate, bool)
	DeleteDailyUpdate(id string) bool
}

type Server struct {
	store Storage
	now   func() time.Time
}

func New(store Storage) *Server {
	return &Server{store: store, now: time.Now}
}

// Handler returns the routed API wrapped in CORS and request logging.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", s.health).Methods(http.MethodGet)

	api.HandleFunc("/tasks", s.listTasks).Methods(http.MethodGet)
	api.HandleFunc("/tasks", s.createTask).Methods(http.MethodPost)
	api.HandleFunc("/tasks/{id}", s.getTask).Methods(http.MethodGet)
	api.HandleFunc("/tasks/{id}", s.updateTask).Methods(http.MethodPatch)
	api.HandleFunc("/tasks/{id}", s.deleteTask).Methods(http.MethodDelete)

	api.HandleFunc("/projects", s.listProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", s.createProject).Methods(http.MethodPost)
	api.HandleFunc("/projects/{id}", s.getProject).Methods(http.MethodGet)
	api.HandleFunc("/projects/{id}", s.updateProject).Methods(http.MethodPatch)
	api.HandleFunc("/projects/{id}", s.deleteProject).Methods(http.MethodDelete)

	api.HandleFunc("/announcements", s.listAnnouncements).Methods(http.MethodGet)
	api.HandleFunc("/announcements", s.createAnnouncement).Methods(http.MethodPost)
	api.HandleFunc("/announcements/{id}", s.getAnnouncement).Methods(http.MethodGet)
	api.HandleFunc("/announcements/{id}", s.updateAnnouncement).Methods(http.MethodPatch)
	api.HandleFunc("/announcements/{id}", s.deleteAnnouncement).Methods(http.MethodDelete)

	api.HandleFunc("/settings", s.getSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.replaceSettings).Methods(http.MethodPut)
	api.HandleFunc("/settings", s.patchSettings).Methods(http.MethodPatch)

	api.HandleFunc("/users", s.listUsers).Methods(http.MethodGet)
	api.HandleFunc("/users", s.createUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", s.getUser).Methods(http.MethodGet)

	api.HandleFunc("/daily-updates", s.listDailyUpdates).Methods(http.MethodGet)
	api.HandleFunc("/daily-updates", s.createDailyUpdate).Methods(http.MethodPost)
	api.HandleFunc("/daily-updates/{id}", s.getDailyUpdate).Methods(http.MethodGet)
	api.HandleFunc("/daily-updates/{id}", s.updateDailyUpdate).Methods(http.MethodPatch)
	api.HandleFunc("/daily-updates/{id}", s.deleteDailyUpdate).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return enableCORS(logRequests(r))
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logging.Logger.Info("Event ID: SERVER_SHUTDOWN, Description: shutting down")
	return srv.Shutdown(shutdownCtx)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.Logger.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).Round(time.Microsecond),
		}).Info("Event ID: HTTP_REQUEST")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Errorf("Event ID: RESPONSE_ENCODE_ERROR, Description: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes the request body into dst, answering 400 on failure.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// validated answers 400 with the validation message when err is non-nil.
func validated(w http.ResponseWriter, err error) bool {
	if err == nil {
		return true
	}
	writeError(w, http.StatusBadRequest, err.Error())
	return false
}

func notFound(w http.ResponseWriter, entity string) {
	writeError(w, http.StatusNotFound, entity+" not found")
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "Server is running",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}
