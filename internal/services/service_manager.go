package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sikado/tutoring-service/internal/auth"
	"github.com/sikado/tutoring-service/internal/cache"
	"github.com/sikado/tutoring-service/internal/events"
	"github.com/sikado/tutoring-service/internal/repositories"
	"github.com/sikado/tutoring-service/internal/validator"
)

// Deps carries everything the services need. Cache may be nil; the services
// degrade to uncached reads.
type Deps struct {
	Repo          repositories.Repository
	Logger        *slog.Logger
	Validator     *validator.Validator
	Tokens        *auth.TokenCodec
	Publisher     events.EventPublisher
	Cache         *cache.CacheManager
	NotifyTimeout time.Duration
}

type serviceManager struct {
	identity  IdentityService
	profile   ProfileService
	discovery DiscoveryService
	contact   ContactService

	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger

	mu          sync.RWMutex
	initialized bool
	shutdown    bool
}

func NewServiceManager(deps Deps) ServiceManager {
	notifier := NewEventNotifier(deps.Publisher)

	return &serviceManager{
		identity:  NewIdentityService(deps.Repo, deps.Logger, deps.Validator, deps.Tokens, deps.Publisher),
		profile:   NewProfileService(deps.Repo, deps.Logger, deps.Validator, deps.Cache),
		discovery: NewDiscoveryService(deps.Repo, deps.Logger),
		contact:   NewContactService(deps.Repo, deps.Logger, deps.Validator, notifier, deps.NotifyTimeout),
		repo:      deps.Repo,
		publisher: deps.Publisher,
		logger:    deps.Logger,
	}
}

func (m *serviceManager) Identity() IdentityService   { return m.identity }
func (m *serviceManager) Profile() ProfileService     { return m.profile }
func (m *serviceManager) Discovery() DiscoveryService { return m.discovery }
func (m *serviceManager) Contact() ContactService     { return m.contact }

func (m *serviceManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if m.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := m.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository not reachable: %w", err)
	}

	m.initialized = true
	m.logger.Info("Service manager initialized")
	return nil
}

func (m *serviceManager) HealthCheck(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if m.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	return m.repo.Ping(ctx)
}

func (m *serviceManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shutdown {
		return nil
	}
	m.shutdown = true

	if err := m.publisher.Close(); err != nil {
		m.logger.Warn("Failed to close event publisher", "error", err)
	}

	m.logger.Info("Service manager shut down")
	return nil
}
