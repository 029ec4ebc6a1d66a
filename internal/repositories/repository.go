package repositories

import "context"

// Repository aggregates all repository interfaces behind one handle.
type Repository interface {
	// Account domain
	User() UserRepository

	// Contact request domain
	ContactRequest() ContactRequestRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
