package repositories

import (
	"context"

	"github.com/sikado/tutoring-service/internal/models"
)

// ContactRequestRepository owns the contact request store. Requests are
// append-only in this service: no update or delete operations exist.
type ContactRequestRepository interface {
	Create(ctx context.Context, request *models.ContactRequest) error
	GetByID(ctx context.Context, id uint) (*models.ContactRequest, error)

	// ListByTeacher returns a teacher's requests newest first. A teacher with
	// no requests gets an empty slice, not an error.
	ListByTeacher(ctx context.Context, teacherID uint) ([]*models.ContactRequest, error)
}
