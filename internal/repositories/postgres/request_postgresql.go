package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/sikado/tutoring-service/internal/models"
	"github.com/sikado/tutoring-service/internal/repositories"
)

type contactRequestRepository struct {
	db *gorm.DB
}

func NewContactRequestPostgreSQL(db *gorm.DB) repositories.ContactRequestRepository {
	return &contactRequestRepository{db: db}
}

func (r *contactRequestRepository) Create(ctx context.Context, request *models.ContactRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return handleDBError(err, "create contact request")
	}
	return nil
}

func (r *contactRequestRepository) GetByID(ctx context.Context, id uint) (*models.ContactRequest, error) {
	var request models.ContactRequest
	if err := r.db.WithContext(ctx).First(&request, id).Error; err != nil {
		return nil, handleDBError(err, "get contact request by id")
	}
	return &request, nil
}

func (r *contactRequestRepository) ListByTeacher(ctx context.Context, teacherID uint) ([]*models.ContactRequest, error) {
	requests := make([]*models.ContactRequest, 0)
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, handleDBError(err, "list contact requests by teacher")
	}
	return requests, nil
}
