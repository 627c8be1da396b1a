package colors

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/harrisonrobin/taskdeck/pkg/logging"
)

// FileName is the cache file inside the config directory.
const FileName = "project_colors.json"

// NoProjectColor is Google's graphite, used for tasks outside any project.
const NoProjectColor = "8"

// slots are the Google event color ids handed out to projects.
const slots = 11

type ProjectState struct {
	ColorID      string    `json:"color_id"`
	LastModified time.Time `json:"last_modified"`
}

// ColorCache gives every project a stable event color. When all slots are
// taken the least recently used project gives its color up.
type ColorCache struct {
	Path     string
	Projects map[string]*ProjectState `json:"projects"`
	now      func() time.Time
	dirty    bool
}

// NewColorCache opens the cache at path. A missing file is an empty cache.
func NewColorCache(path string) (*ColorCache, error) {
	cache := &ColorCache{
		Path:     path,
		Projects: make(map[string]*ProjectState),
		now:      time.Now,
	}
	if _, err := os.Stat(path); err == nil {
		if err := cache.Load(); err != nil {
			return nil, err
		}
	}
	return cache, nil
}

func (c *ColorCache) Load() error {
	f, err := os.Open(c.Path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&c.Projects); err != nil {
		return err
	}
	if c.Projects == nil {
		c.Projects = make(map[string]*ProjectState)
	}
	return nil
}

func (c *ColorCache) Save() error {
	if !c.dirty {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.Path), 0700); err != nil {
		logging.Logger.Errorf("Event ID: COLOR_CACHE_DIR_ERROR, Description: %v", err)
		return err
	}

	f, err := os.Create(c.Path)
	if err != nil {
		logging.Logger.Errorf("Event ID: COLOR_CACHE_WRITE_ERROR, Description: %v", err)
		return err
	}
	defer f.Close()
	err = json.NewEncoder(f).Encode(c.Projects)
	if err == nil {
		c.dirty = false
	}
	return err
}

// ColorID returns the color for projectID. Only active projects refresh
// their place in the LRU order; finished work does not keep a slot alive.
func (c *ColorCache) ColorID(projectID string, active bool) string {
	if projectID == "" {
		return NoProjectColor
	}

	if state, exists := c.Projects[projectID]; exists {
		if active {
			state.LastModified = c.now()
			c.dirty = true
		}
		return state.ColorID
	}
	return c.assign(projectID)
}

func (c *ColorCache) assign(projectID string) string {
	used := make(map[string]bool, len(c.Projects))
	for _, s := range c.Projects {
		used[s.ColorID] = true
	}

	for i := 1; i <= slots; i++ {
		id := strconv.Itoa(i)
		if !used[id] {
			c.claim(projectID, id)
			return id
		}
	}

	var oldest string
	var oldestTime time.Time
	for p, s := range c.Projects {
		if oldest == "" || s.LastModified.Before(oldestTime) {
			oldest, oldestTime = p, s.LastModified
		}
	}
	recycled := c.Projects[oldest].ColorID
	delete(c.Projects, oldest)
	c.claim(projectID, recycled)
	return recycled
}

func (c *ColorCache) claim(projectID, colorID string) {
	c.Projects[projectID] = &ProjectState{ColorID: colorID, LastModified: c.now()}
	c.dirty = true
}
