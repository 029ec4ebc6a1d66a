package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/sikado/tutoring-service/internal/models"
	"github.com/sikado/tutoring-service/internal/repositories"
	"github.com/sikado/tutoring-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Request shapes live next to their validation tags.
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type TeacherProfileUpdateRequest = validator.TeacherProfileUpdateRequest
type StudentProfileUpdateRequest = validator.StudentProfileUpdateRequest
type SendContactRequest = validator.ContactRequestCreate

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token   string                 `json:"token"`
	Account *models.AccountSummary `json:"account"`
}

// SendContactResponse reports a created request. Notified records whether
// the best-effort notification went out; the request exists either way.
type SendContactResponse struct {
	Request  *models.ContactRequest `json:"request"`
	Notified bool                   `json:"notified"`
	Message  string                 `json:"message"`
}

// ===== SERVICE INTERFACES =====

type IdentityService interface {
	// Register creates an account, hashes the secret and issues a session
	// token. A duplicate email yields ErrEmailTaken.
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)

	// Login verifies credentials and issues a session token. Unknown email
	// and wrong password are indistinguishable (ErrInvalidCredentials).
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)

	// Verify checks a session token and returns the asserted account id.
	Verify(token string) (uint, error)
}

type ProfileService interface {
	// UpdateTeacherProfile fully replaces the teacher fields. A supplied
	// avatar replaces the stored reference; an absent one preserves it.
	UpdateTeacherProfile(ctx context.Context, accountID uint, req *TeacherProfileUpdateRequest) (*models.PublicProfile, error)

	// UpdateStudentProfile has the same replace-or-preserve avatar semantics.
	UpdateStudentProfile(ctx context.Context, accountID uint, req *StudentProfileUpdateRequest) (*models.PublicProfile, error)

	GetProfile(ctx context.Context, accountID uint) (*models.PublicProfile, error)
}

type DiscoveryService interface {
	// SearchTeachers returns public teacher summaries matching the filters.
	SearchTeachers(ctx context.Context, filters repositories.TeacherFilters) ([]*models.TeacherSummary, error)
}

type ContactService interface {
	// SendRequest persists the request, then attempts a best-effort
	// notification; notification failure never fails the operation.
	SendRequest(ctx context.Context, studentID uint, req *SendContactRequest) (*SendContactResponse, error)

	// ListForTeacher returns the teacher's requests newest first.
	ListForTeacher(ctx context.Context, teacherID uint) ([]*models.ContactRequest, error)

	// ExportForTeacher renders the inbox as an .xlsx workbook.
	ExportForTeacher(ctx context.Context, teacherID uint) (*excelize.File, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Identity() IdentityService
	Profile() ProfileService
	Discovery() DiscoveryService
	Contact() ContactService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
