package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	// Source identifies this service in published events.
	Source = "tutoring-service"

	// Version is the event envelope version.
	Version = "1.0"
)

// Event types published by this service.
const (
	EventContactRequestCreated = "contact_request.created"
	EventAccountRegistered     = "account.registered"
)

// Event is the envelope for every message this service publishes.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope around the given payload.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    Source,
		Version:   Version,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// ContactRequestNotification is the payload delivered to the notification
// channel when a student reaches out to a teacher. The downstream mailer
// renders it into the actual message.
type ContactRequestNotification struct {
	RequestID    uint    `json:"request_id"`
	TeacherEmail string  `json:"teacher_email"`
	TeacherName  string  `json:"teacher_name"`
	StudentName  string  `json:"student_name"`
	Requirements string  `json:"requirements"`
	Availability string  `json:"availability"`
	Note         *string `json:"note,omitempty"`
}

// AccountRegisteredNotification announces a new account.
type AccountRegisteredNotification struct {
	AccountID uint   `json:"account_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}
