package repositories

import (
	"context"

	"github.com/sikado/tutoring-service/internal/models"
)

// TeacherFilters defines the discovery filters. Query matches name or subject
// as a case-insensitive substring; Subject must match exactly. Both are
// AND-combined when supplied.
type TeacherFilters struct {
	Query   string
	Subject string
}

// UserRepository owns the account store.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error

	// Discovery over teacher accounts, insertion (id) order.
	SearchTeachers(ctx context.Context, filters TeacherFilters) ([]*models.User, error)

	// Validation and checks
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
