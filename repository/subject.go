package repository

import (
	"context"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type subjectRepo struct {
	db *gorm.DB
}

func (r *subjectRepo) Create(ctx context.Context, subject *models.Subject) error {
	err := r.db.WithContext(ctx).Create(subject).Error
	return conflictAs(err, &services.Error{Code: services.CodeConflict, Message: "subject already exists"})
}

func (r *subjectRepo) Get(ctx context.Context, id uuid.UUID) (*models.Subject, error) {
	var subject models.Subject
	if err := r.db.WithContext(ctx).First(&subject, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, services.ErrSubjectNotFound)
	}
	return &subject, nil
}

func (r *subjectRepo) List(ctx context.Context) ([]models.Subject, error) {
	var subjects []models.Subject
	err := r.db.WithContext(ctx).Order("name").Find(&subjects).Error
	return subjects, err
}
