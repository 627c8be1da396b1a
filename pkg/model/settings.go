package model

import "time"

// Settings is the single preferences record of a deployment.
type Settings struct {
	Theme             Theme           `json:"theme"`
	WorkingHoursStart string          `json:"workingHoursStart"`
	WorkingHoursEnd   string          `json:"workingHoursEnd"`
	CalendarDensity   CalendarDensity `json:"calendarDensity"`
}

func DefaultSettings() Settings {
	return Settings{
		Theme:             ThemeSystem,
		WorkingHoursStart: "09:00",
		WorkingHoursEnd:   "17:00",
		CalendarDensity:   DensityComfortable,
	}
}

func (s Settings) Validate() error {
	if !s.Theme.Valid() {
		return invalid("settings", "theme", "must be light, dark or system")
	}
	if !s.CalendarDensity.Valid() {
		return invalid("settings", "calendarDensity", "must be comfortable or compact")
	}
	start, err := time.Parse("15:04", s.WorkingHoursStart)
	if err != nil {
		return invalid("settings", "workingHoursStart", "must be HH:MM")
	}
	end, err := time.Parse("15:04", s.WorkingHoursEnd)
	if err != nil {
		return invalid("settings", "workingHoursEnd", "must be HH:MM")
	}
	if !start.Before(end) {
		return invalid("settings", "workingHoursEnd", "must be after workingHoursStart")
	}
	return nil
}

type SettingsPatch struct {
	Theme             *Theme           `json:"theme,omitempty"`
	WorkingHoursStart *string          `json:"workingHoursStart,omitempty"`
	WorkingHoursEnd   *string          `json:"workingHoursEnd,omitempty"`
	CalendarDensity   *CalendarDensity `json:"calendarDensity,omitempty"`
}

func (p SettingsPatch) Apply(s Settings) Settings {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.WorkingHoursStart != nil {
		s.WorkingHoursStart = *p.WorkingHoursStart
	}
	if p.WorkingHoursEnd != nil {
		s.WorkingHoursEnd = *p.WorkingHoursEnd
	}
	if p.CalendarDensity != nil {
		s.CalendarDensity = *p.CalendarDensity
	}
	return s
}

// User is an account known to the console. The password never leaves the
// process in JSON.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Password  string    `json:"-"`
	CreatedAt Timestamp `json:"createdAt"`
}

type UserInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
