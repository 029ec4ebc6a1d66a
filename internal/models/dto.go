package models

import "time"

// AccountSummary is the account view returned by register/login. It never
// carries the password hash.
type AccountSummary struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	AvatarURL *string  `json:"avatar_url,omitempty"`
}

// PublicProfile is the full public view of an account, role fields included.
type PublicProfile struct {
	AccountSummary
	Bio               *string   `json:"bio,omitempty"`
	Subject           *string   `json:"subject,omitempty"`
	ExperienceYears   *int      `json:"experience_years,omitempty"`
	Availability      *string   `json:"availability,omitempty"`
	GradeLevel        *string   `json:"grade_level,omitempty"`
	PreferredSubjects *string   `json:"preferred_subjects,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// TeacherSummary is the discovery/search view of a teacher account.
type TeacherSummary struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Subject         *string `json:"subject,omitempty"`
	ExperienceYears *int    `json:"experience_years,omitempty"`
	Availability    *string `json:"availability,omitempty"`
	Bio             *string `json:"bio,omitempty"`
	AvatarURL       *string `json:"avatar_url,omitempty"`
}
