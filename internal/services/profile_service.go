package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sikado/tutoring-service/internal/cache"
	"github.com/sikado/tutoring-service/internal/models"
	"github.com/sikado/tutoring-service/internal/repositories"
	"github.com/sikado/tutoring-service/internal/validator"
)

type profileService struct {
	repo         repositories.Repository
	logger       *slog.Logger
	validator    *validator.Validator
	cacheManager *cache.CacheManager
}

func NewProfileService(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	cacheManager *cache.CacheManager,
) ProfileService {
	return &profileService{
		repo:         repo,
		logger:       logger,
		validator:    validator,
		cacheManager: cacheManager,
	}
}

func (s *profileService) UpdateTeacherProfile(ctx context.Context, accountID uint, req *TeacherProfileUpdateRequest) (*models.PublicProfile, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	s.logger.Info("Updating teacher profile", "account_id", accountID)

	user, err := s.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleTeacher {
		return nil, ErrForbidden
	}

	// Full replacement of the four profile fields.
	user.Subject = &req.Subject
	user.ExperienceYears = &req.ExperienceYears
	user.Availability = &req.Availability
	user.Bio = &req.Bio

	// Avatar is replace-or-preserve: an absent reference must not null out
	// the stored one.
	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: failed to update profile: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Teacher profile updated", "account_id", accountID)
	return user.PublicProfile(), nil
}

func (s *profileService) UpdateStudentProfile(ctx context.Context, accountID uint, req *StudentProfileUpdateRequest) (*models.PublicProfile, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	s.logger.Info("Updating student profile", "account_id", accountID)

	user, err := s.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleStudent {
		return nil, ErrForbidden
	}

	user.GradeLevel = &req.GradeLevel
	user.PreferredSubjects = &req.PreferredSubjects
	user.Bio = &req.Bio

	if req.AvatarURL != nil {
		user.AvatarURL = req.AvatarURL
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: failed to update profile: %v", ErrStoreUnavailable, err)
	}

	s.logger.Info("Student profile updated", "account_id", accountID)
	return user.PublicProfile(), nil
}

func (s *profileService) GetProfile(ctx context.Context, accountID uint) (*models.PublicProfile, error) {
	cacheKey := fmt.Sprintf("id:%d", accountID)

	if s.cacheManager != nil {
		var cached models.PublicProfile
		if err := s.cacheManager.Profiles.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.loadAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	profile := user.PublicProfile()

	if s.cacheManager != nil {
		// Cache writes are best effort
		_ = s.cacheManager.Profiles.Set(ctx, cacheKey, profile, cache.ProfileCacheConfig.TTL)
	}

	return profile, nil
}

func (s *profileService) loadAccount(ctx context.Context, accountID uint) (*models.User, error) {
	user, err := s.repo.User().GetByID(ctx, accountID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%w: failed to load account: %v", ErrStoreUnavailable, err)
	}
	return user, nil
}
