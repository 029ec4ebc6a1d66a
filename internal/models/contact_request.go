package models

import (
	"time"
)

type RequestStatus string

const (
	RequestPending RequestStatus = "pending"
)

// ContactRequest is a student's durable outreach to a teacher. StudentName is
// captured at creation time and never re-derived from the student account, so
// the inbox keeps showing the name the request was sent under.
type ContactRequest struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	StudentID    uint          `json:"student_id" gorm:"not null;index"`
	TeacherID    uint          `json:"teacher_id" gorm:"not null;index"`
	StudentName  string        `json:"student_name" gorm:"not null;size:100"`
	Requirements string        `json:"requirements" gorm:"type:text"`
	Availability string        `json:"availability" gorm:"size:500"`
	Note         *string       `json:"note" gorm:"type:text"`
	Status       RequestStatus `json:"status" gorm:"not null;size:20;default:'pending'"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (ContactRequest) TableName() string {
	return "contact_requests"
}
