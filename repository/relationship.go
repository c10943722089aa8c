package repository

import (
	"context"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type relationshipRepo struct {
	db *gorm.DB
}

func (r *relationshipRepo) Create(ctx context.Context, rel *models.TeacherStudent) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rel).Error
}

func (r *relationshipRepo) Get(ctx context.Context, id uuid.UUID) (*models.TeacherStudent, error) {
	var rel models.TeacherStudent
	if err := r.db.WithContext(ctx).First(&rel, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, services.ErrRequestNotFound)
	}
	return &rel, nil
}

func (r *relationshipRepo) Find(ctx context.Context, teacherID, studentID uuid.UUID, status models.RequestStatus) (*models.TeacherStudent, error) {
	var rel models.TeacherStudent
	err := r.db.WithContext(ctx).
		Where("teacher_id = ? AND student_id = ? AND status = ?", teacherID, studentID, status).
		First(&rel).Error
	if err != nil {
		return nil, notFoundAs(err, services.ErrRelationshipNotFound)
	}
	return &rel, nil
}

func (r *relationshipRepo) ListByTeacher(ctx context.Context, teacherID uuid.UUID, status models.RequestStatus) ([]models.TeacherStudent, error) {
	return r.list(ctx, "teacher_id = ?", teacherID, status)
}

func (r *relationshipRepo) ListByStudent(ctx context.Context, studentID uuid.UUID, status models.RequestStatus) ([]models.TeacherStudent, error) {
	return r.list(ctx, "student_id = ?", studentID, status)
}

func (r *relationshipRepo) list(ctx context.Context, query string, id uuid.UUID, status models.RequestStatus) ([]models.TeacherStudent, error) {
	q := r.db.WithContext(ctx).Preload("Student").Where(query, id)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var rels []models.TeacherStudent
	err := q.Order("requested_at").Find(&rels).Error
	return rels, err
}

func (r *relationshipRepo) CountByTeacher(ctx context.Context, teacherID uuid.UUID, status models.RequestStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TeacherStudent{}).
		Where("teacher_id = ? AND status = ?", teacherID, status).
		Count(&count).Error
	return count, err
}

func (r *relationshipRepo) Save(ctx context.Context, rel *models.TeacherStudent) error {
	res := r.db.WithContext(ctx).
		Model(&models.TeacherStudent{}).
		Where("id = ?", rel.ID).
		Updates(map[string]any{"status": rel.Status, "accepted_at": rel.AcceptedAt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrRequestNotFound
	}
	return nil
}

func (r *relationshipRepo) DeleteBetween(ctx context.Context, teacherID, studentID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("teacher_id = ? AND student_id = ?", teacherID, studentID).
		Delete(&models.TeacherStudent{})
	return res.RowsAffected, res.Error
}
