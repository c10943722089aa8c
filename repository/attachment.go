package repository

import (
	"context"

	"github.com/educat/tutor_marketplace/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type attachmentRepo struct {
	db *gorm.DB
}

func (r *attachmentRepo) Create(ctx context.Context, attachment *models.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *attachmentRepo) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]models.Attachment, error) {
	var attachments []models.Attachment
	err := r.db.WithContext(ctx).
		Where("lesson_id = ?", lessonID).
		Order("uploaded_at").
		Find(&attachments).Error
	return attachments, err
}
