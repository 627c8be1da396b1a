// Package store is the in-memory stand-in for the task service used during
// local development. Its state lives for the life of the process.
package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harrisonrobin/taskdeck/pkg/model"
)

// ProjectColors is the swatch palette handed to projects created without
// a color.
var ProjectColors = []string{
	"#3B82F6", "#8B5CF6", "#EC4899", "#10B981",
	"#F59E0B", "#EF4444", "#06B6D4", "#6366F1",
}

// MemStore holds one table per entity. A missing id is reported with a
// false result; only the Checked updates return errors, from their check.
type MemStore struct {
	mu sync.RWMutex

	tasks         *table[model.Task]
	projects      *table[model.Project]
	announcements *table[model.Announcement]
	users         *table[model.User]
	dailyUpdates  *table[model.DailyUpdate]
	settings      model.Settings

	now   func() time.Time
	newID func() string
}

type config struct {
	now   func() time.Time
	newID func() string
	seed  *Seed
}

type Option func(*config)

func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithIDs replaces the random UUID generator.
func WithIDs(newID func() string) Option {
	return func(c *config) { c.newID = newID }
}

// WithSeed replaces the demo data. Pass an empty Seed for an empty store.
func WithSeed(seed Seed) Option {
	return func(c *config) { c.seed = &seed }
}

func New(opts ...Option) *MemStore {
	cfg := config{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	seed := cfg.seed
	if seed == nil {
		demo := DemoSeed(cfg.now())
		seed = &demo
	}

	s := &MemStore{
		tasks:         newTable[model.Task](),
		projects:      newTable[model.Project](),
		announcements: newTable[model.Announcement](),
		users:         newTable[model.User](),
		dailyUpdates:  newTable[model.DailyUpdate](),
		settings:      model.DefaultSettings(),
		now:           cfg.now,
		newID:         cfg.newID,
	}
	s.load(*seed)
	return s
}

func (s *MemStore) load(seed Seed) {
	for _, u := range seed.Users {
		s.users.put(u.ID, u)
	}
	for _, p := range seed.Projects {
		s.projects.put(p.ID, p)
	}
	for _, t := range seed.Tasks {
		s.tasks.put(t.ID, t)
	}
	for _, a := range seed.Announcements {
		s.announcements.put(a.ID, a)
	}
	for _, u := range seed.DailyUpdates {
		s.dailyUpdates.put(u.ID, u)
	}
	if seed.Settings != nil {
		s.settings = *seed.Settings
	}
}

func (s *MemStore) stamp() model.Timestamp {
	return model.AtTime(s.now())
}

// Tasks

func (s *MemStore) ListTasks() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks.list()
}

func (s *MemStore) GetTask(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tasks.get(id)
}

// CreateTask stores a new task. Priority defaults to medium and status to
// pending.
func (s *MemStore) CreateTask(in model.TaskInput) model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := model.Task{
		ID:          s.newID(),
		Title:       in.Title,
		Description: in.Description,
		ProjectID:   in.ProjectID,
		Assignee:    in.Assignee,
		Priority:    in.Priority,
		Status:      in.Status,
		Start:       in.Start,
		End:         in.End,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.Status == "" {
		task.Status = model.StatusPending
	}
	s.tasks.put(task.ID, task)
	return task
}

func (s *MemStore) UpdateTask(id string, patch model.TaskPatch) (model.Task, bool) {
	task, ok, _ := s.UpdateTaskChecked(id, patch, nil)
	return task, ok
}

// UpdateTaskChecked merges patch and stores the result only if check
// accepts it. Merge, check and store happen under one lock.
func (s *MemStore) UpdateTaskChecked(id string, patch model.TaskPatch, check func(model.Task) error) (model.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks.get(id)
	if !ok {
		return model.Task{}, false, nil
	}
	task = patch.Apply(task)
	if check != nil {
		if err := check(task); err != nil {
			return model.Task{}, true, err
		}
	}
	s.tasks.put(id, task)
	return task, true, nil
}

func (s *MemStore) DeleteTask(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.remove(id)
}

// Projects

func (s *MemStore) ListProjects() []model.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.list()
}

func (s *MemStore) GetProject(id string) (model.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projects.get(id)
}

// CreateProject stores a new project. A project without a color takes the
// next swatch of ProjectColors.
func (s *MemStore) CreateProject(in model.ProjectInput) model.Project {
	s.mu.Lock()
	defer s.mu.Unlock()

	project := model.Project{
		ID:          s.newID(),
		Name:        in.Name,
		Lead:        in.Lead,
		Deadline:    in.Deadline,
		Description: in.Description,
		Color:       in.Color,
	}
	if project.Color == "" {
		project.Color = ProjectColors[s.projects.len()%len(ProjectColors)]
	}
	s.projects.put(project.ID, project)
	return project
}

func (s *MemStore) UpdateProject(id string, patch model.ProjectPatch) (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.projects.get(id)
	if !ok {
		return model.Project{}, false
	}
	project = patch.Apply(project)
	s.projects.put(id, project)
	return project, true
}

func (s *MemStore) DeleteProject(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.projects.remove(id)
}

// Announcements

func (s *MemStore) ListAnnouncements() []model.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.announcements.list()
}

func (s *MemStore) GetAnnouncement(id string) (model.Announcement, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.announcements.get(id)
}

// CreateAnnouncement stamps the creation time. Type defaults to general.
func (s *MemStore) CreateAnnouncement(in model.AnnouncementInput) model.Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := model.Announcement{
		ID:        s.newID(),
		ProjectID: in.ProjectID,
		Title:     in.Title,
		Body:      in.Body,
		From:      in.From,
		CreatedAt: s.stamp(),
		Type:      in.Type,
	}
	if a.Type == "" {
		a.Type = model.AnnouncementGeneral
	}
	s.announcements.put(a.ID, a)
	return a
}

func (s *MemStore) UpdateAnnouncement(id string, patch model.AnnouncementPatch) (model.Announcement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.announcements.get(id)
	if !ok {
		return model.Announcement{}, false
	}
	a = patch.Apply(a)
	s.announcements.put(id, a)
	return a, true
}

func (s *MemStore) DeleteAnnouncement(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.announcements.remove(id)
}

// Settings

func (s *MemStore) Settings() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings merges the patch into the single settings record.
func (s *MemStore) UpdateSettings(patch model.SettingsPatch) model.Settings {
	next, _ := s.UpdateSettingsChecked(patch, nil)
	return next
}

// UpdateSettingsChecked merges the patch and keeps the result only if
// check accepts it.
func (s *MemStore) UpdateSettingsChecked(patch model.SettingsPatch, check func(model.Settings) error) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := patch.Apply(s.settings)
	if check != nil {
		if err := check(next); err != nil {
			return s.settings, err
		}
	}
	s.settings = next
	return next, nil
}

// Users

func (s *MemStore) ListUsers() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.list()
}

func (s *MemStore) GetUser(id string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.get(id)
}

// GetUserByEmail matches case-insensitively.
func (s *MemStore) GetUserByEmail(email string) (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users.list() {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return model.User{}, false
}

func (s *MemStore) CreateUser(in model.UserInput) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := model.User{
		ID:        s.newID(),
		Email:     in.Email,
		Name:      in.Name,
		Password:  in.Password,
		CreatedAt: s.stamp(),
	}
	s.users.put(u.ID, u)
	return u
}

// UserName lets the store resolve people for the adapters.
func (s *MemStore) UserName(id string) (string, bool) {
	u, ok := s.GetUser(id)
	if !ok {
		return "", false
	}
	return u.Name, true
}

// Daily updates

// ListDailyUpdates returns updates newest first. Empty userID or date
// disables that filter.
func (s *MemStore) ListDailyUpdates(userID, date string) []model.DailyUpdate {
	s.mu.RLock()
	all := s.dailyUpdates.list()
	s.mu.RUnlock()

	out := all[:0]
	for _, u := range all {
		if userID != "" && u.UserID != userID {
			continue
		}
		if date != "" && u.Date != date {
			continue
		}
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool {
		ti, _ := out[i].CreatedAt.Time()
		tj, _ := out[j].CreatedAt.Time()
		return ti.After(tj)
	})
	return out
}

func (s *MemStore) GetDailyUpdate(id string) (model.DailyUpdate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dailyUpdates.get(id)
}

func (s *MemStore) CreateDailyUpdate(in model.DailyUpdateInput) model.DailyUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := model.DailyUpdate{
		ID:          s.newID(),
		UserID:      in.UserID,
		Date:        in.Date,
		Title:       in.Title,
		Description: in.Description,
		CreatedAt:   s.stamp(),
		Detail:      in.Detail,
	}
	s.dailyUpdates.put(u.ID, u)
	return u
}

func (s *MemStore) UpdateDailyUpdate(id string, patch model.DailyUpdatePatch) (model.DailyUpdate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.dailyUpdates.get(id)
	if !ok {
		return model.DailyUpdate{}, false
	}
	u = patch.Apply(u)
	s.dailyUpdates.put(id, u)
	return u, true
}

func (s *MemStore) DeleteDailyUpdate(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dailyUpdates.remove(id)
}
