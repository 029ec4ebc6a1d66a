package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sikado/tutoring-service/internal/auth"
	"github.com/sikado/tutoring-service/internal/events"
	"github.com/sikado/tutoring-service/internal/models"
	"github.com/sikado/tutoring-service/internal/repositories"
	"github.com/sikado/tutoring-service/internal/validator"
)

type identityService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	tokens    *auth.TokenCodec
	publisher events.EventPublisher
}

func NewIdentityService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	tokens *auth.TokenCodec,
	publisher events.EventPublisher,
) IdentityService {
	return &identityService{
		repo:      repo,
		logger:    logger,
		validator: validator,
		tokens:    tokens,
		publisher: publisher,
	}
}

func (s *identityService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	role := models.UserRole(req.Role)
	s.logger.Info("Registering account", "email", req.Email, "role", role)

	// The lookup is a fast path only: two concurrent registrations can both
	// pass it. The unique index on email is the real guard, handled below.
	exists, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check email: %v", ErrStoreUnavailable, err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		AvatarURL:    req.AvatarURL,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			// Lost the race against a concurrent identical registration.
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("%w: failed to create account: %v", ErrStoreUnavailable, err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Account registered", "account_id", user.ID, "role", user.Role)

	// Announcement only; registration already succeeded.
	event := events.NewEvent(events.EventAccountRegistered, &events.AccountRegisteredNotification{
		AccountID: user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish registration event", "account_id", user.ID, "error", err)
	}

	return &AuthResponse{Token: token, Account: user.Summary()}, nil
}

func (s *identityService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Same error as a wrong password on purpose.
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: failed to load account: %v", ErrStoreUnavailable, err)
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("Account logged in", "account_id", user.ID)

	return &AuthResponse{Token: token, Account: user.Summary()}, nil
}

func (s *identityService) Verify(token string) (uint, error) {
	accountID, err := s.tokens.Verify(token)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnauthenticated, err)
	}
	return accountID, nil
}
