package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sikado/tutoring-service/internal/models"
	"github.com/sikado/tutoring-service/internal/repositories"
)

type discoveryService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDiscoveryService(repo repositories.Repository, logger *slog.Logger) DiscoveryService {
	return &discoveryService{
		repo:   repo,
		logger: logger,
	}
}

func (s *discoveryService) SearchTeachers(ctx context.Context, filters repositories.TeacherFilters) ([]*models.TeacherSummary, error) {
	teachers, err := s.repo.User().SearchTeachers(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to search teachers: %v", ErrStoreUnavailable, err)
	}

	summaries := make([]*models.TeacherSummary, 0, len(teachers))
	for _, teacher := range teachers {
		summaries = append(summaries, teacher.TeacherSummary())
	}

	s.logger.Debug("Teacher search completed",
		"query", filters.Query,
		"subject", filters.Subject,
		"results", len(summaries))

	return summaries, nil
}
