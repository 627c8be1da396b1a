package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harrisonrobin/taskdeck/pkg/model"
)

// Seed is the data a store starts with.
type Seed struct {
	Users         []model.User
	Projects      []model.Project
	Tasks         []model.Task
	Announcements []model.Announcement
	DailyUpdates  []model.DailyUpdate
	Settings      *model.Settings
}

var seedNamespace = uuid.MustParse("6f1c3f0e-7a4b-4d55-9a3e-3b2f9c1d8e20")

// seedID derives a stable id so demo links survive restarts.
func seedID(kind string, i int) string {
	return uuid.NewSHA1(seedNamespace, []byte(fmt.Sprintf("%s/%d", kind, i))).String()
}

var (
	demoPeople = []string{"Sarah Johnson", "Michael Chen", "Emily Davis", "David Wilson", "Jessica Martinez", "Alex Thompson"}

	demoProjects = []struct {
		name, description string
		days              int
	}{
		{"Website Redesign", "Complete overhaul of company website with modern design", 30},
		{"Mobile App Development", "Build iOS and Android apps for customer portal", 60},
		{"Marketing Campaign", "Q4 product launch marketing initiative", 14},
		{"Infrastructure Upgrade", "Migrate services to cloud infrastructure", 45},
		{"Analytics Dashboard", "Build real-time analytics and reporting dashboard", 21},
	}

	demoTasks = []string{
		"Design homepage mockups", "Implement user authentication", "Write API documentation",
		"Set up CI/CD pipeline", "Conduct user research", "Create marketing materials",
		"Database schema design", "Performance optimization", "Security audit",
		"Mobile UI design", "Integration testing", "Content strategy planning",
		"Server configuration", "Bug fixes and improvements", "Code review",
		"Deploy to staging", "Client presentation", "Analytics implementation",
		"A/B testing setup", "Documentation update",
	}

	demoAnnouncements = []struct {
		title, body string
		typ         model.AnnouncementType
	}{
		{"New team member joining", "Please welcome Alex Thompson to the development team!", model.AnnouncementGeneral},
		{"Sprint planning meeting", "Scheduled for tomorrow at 10 AM in Conference Room A", model.AnnouncementGeneral},
		{"Task assigned", "You've been assigned to complete the homepage redesign", model.AnnouncementTaskAssigned},
		{"Deadline reminder", "Mobile App Development milestone due in 3 days", model.AnnouncementGeneral},
		{"Code review requested", "Please review PR #234 for authentication module", model.AnnouncementGeneral},
	}
)

// DemoSeed builds the fixed sample data set: one demo user, five projects,
// twenty tasks and five announcements. Dates are laid out relative to now;
// everything else, ids included, is the same on every run.
func DemoSeed(now time.Time) Seed {
	now = now.UTC()
	day := 24 * time.Hour
	today := now.Truncate(day)

	seed := Seed{
		Users: []model.User{{
			ID:        seedID("user", 0),
			Email:     "admin@example.com",
			Name:      "Demo User",
			Password:  "password123",
			CreatedAt: model.AtTime(now),
		}},
	}

	for i, p := range demoProjects {
		seed.Projects = append(seed.Projects, model.Project{
			ID:          seedID("project", i),
			Name:        p.name,
			Lead:        model.Named(demoPeople[i]),
			Deadline:    now.Add(time.Duration(p.days) * day).Format(time.RFC3339),
			Description: p.description,
			Color:       ProjectColors[i],
		})
	}

	priorities := []model.Priority{model.PriorityHigh, model.PriorityMedium, model.PriorityLow}
	statuses := []model.Status{model.StatusPending, model.StatusInProgress, model.StatusDone}
	for i, title := range demoTasks {
		start := today.Add(time.Duration((i*7)%30)*day + time.Duration(9+i%6)*time.Hour)
		end := start.Add(time.Duration(1+i%4) * time.Hour)
		seed.Tasks = append(seed.Tasks, model.Task{
			ID:          seedID("task", i),
			Title:       title,
			Description: "Detailed description for " + strings.ToLower(title),
			ProjectID:   seed.Projects[(i*3)%len(seed.Projects)].ID,
			Assignee:    demoPeople[(i*5)%len(demoPeople)],
			Priority:    priorities[i%len(priorities)],
			Status:      statuses[(i/2)%len(statuses)],
			Start:       model.AtTime(start),
			End:         model.AtTime(end),
		})
	}

	for i, a := range demoAnnouncements {
		ann := model.Announcement{
			ID:        seedID("announcement", i),
			Title:     a.title,
			Body:      a.body,
			From:      model.Named(demoPeople[i%len(demoPeople)]),
			CreatedAt: model.AtTime(now.Add(-time.Duration(i) * time.Hour)),
			Type:      a.typ,
		}
		if i%2 == 0 {
			ann.ProjectID = seed.Projects[i%len(seed.Projects)].ID
		}
		seed.Announcements = append(seed.Announcements, ann)
	}

	return seed
}
