package repository

import (
	"context"
	"errors"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reviewRepo struct {
	db *gorm.DB
}

func (r *reviewRepo) FindByLessonAndStudent(ctx context.Context, lessonID, studentID uuid.UUID) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("lesson_id = ? AND student_id = ?", lessonID, studentID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepo) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Review, error) {
	return r.list(ctx, "teacher_id = ?", teacherID)
}

func (r *reviewRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Review, error) {
	return r.list(ctx, "student_id = ?", studentID)
}

func (r *reviewRepo) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]models.Review, error) {
	return r.list(ctx, "lesson_id = ?", lessonID)
}

func (r *reviewRepo) list(ctx context.Context, query string, args ...any) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where(query, args...).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepo) Insert(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error
	return conflictAs(err, services.ErrDuplicateReview)
}
