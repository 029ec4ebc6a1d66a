package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

// Valid reports whether the role is one of the two supported account roles.
// Role is fixed at registration and never changes afterwards.
func (r UserRole) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// User is the single account row shared by both roles. Role-specific columns
// are nullable and only populated for the matching role; the email unique
// index is the authoritative guard against duplicate registrations.
type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Name         string   `json:"name" gorm:"not null;size:100"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string   `json:"-" gorm:"column:password_hash;not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;size:20"`

	// Profile info
	AvatarURL *string `json:"avatar_url" gorm:"size:500"`
	Bio       *string `json:"bio" gorm:"type:text"`

	// Teacher fields
	Subject         *string `json:"subject" gorm:"size:200"`
	ExperienceYears *int    `json:"experience_years"`
	Availability    *string `json:"availability" gorm:"size:500"`

	// Student fields
	GradeLevel        *string `json:"grade_level" gorm:"size:100"`
	PreferredSubjects *string `json:"preferred_subjects" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Summary returns the non-sensitive account view sent back with tokens.
func (u *User) Summary() *AccountSummary {
	return &AccountSummary{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
	}
}

// PublicProfile returns the full profile view, still without the hash.
func (u *User) PublicProfile() *PublicProfile {
	return &PublicProfile{
		AccountSummary:    *u.Summary(),
		Bio:               u.Bio,
		Subject:           u.Subject,
		ExperienceYears:   u.ExperienceYears,
		Availability:      u.Availability,
		GradeLevel:        u.GradeLevel,
		PreferredSubjects: u.PreferredSubjects,
		CreatedAt:         u.CreatedAt,
	}
}

// TeacherSummary returns the discovery view of a teacher account.
func (u *User) TeacherSummary() *TeacherSummary {
	return &TeacherSummary{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		Subject:         u.Subject,
		ExperienceYears: u.ExperienceYears,
		Availability:    u.Availability,
		Bio:             u.Bio,
		AvatarURL:       u.AvatarURL,
	}
}
