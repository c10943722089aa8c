package repository

import (
	"context"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type teacherSubjectRepo struct {
	db *gorm.DB
}

func (r *teacherSubjectRepo) ListSubjectIDs(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.TeacherSubject{}).
		Where("teacher_id = ?", teacherID).
		Order("subject_id").
		Pluck("subject_id", &ids).Error
	return ids, err
}

func (r *teacherSubjectRepo) Replace(ctx context.Context, teacherID uuid.UUID, subjectIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("teacher_id = ?", teacherID).Delete(&models.TeacherSubject{}).Error; err != nil {
			return err
		}
		if len(subjectIDs) == 0 {
			return nil
		}
		rows := make([]models.TeacherSubject, 0, len(subjectIDs))
		for _, id := range subjectIDs {
			rows = append(rows, models.TeacherSubject{TeacherID: teacherID, SubjectID: id})
		}
		err := tx.Create(&rows).Error
		return conflictAs(err, &services.Error{Code: services.CodeConflict, Message: "duplicate subject in specializations"})
	})
}

type preparationProgramRepo struct {
	db *gorm.DB
}

func (r *preparationProgramRepo) Create(ctx context.Context, program *models.PreparationProgram) error {
	err := r.db.WithContext(ctx).Create(program).Error
	return conflictAs(err, &services.Error{Code: services.CodeConflict, Message: "preparation program already exists"})
}

func (r *preparationProgramRepo) List(ctx context.Context) ([]models.PreparationProgram, error) {
	var programs []models.PreparationProgram
	err := r.db.WithContext(ctx).Order("name").Find(&programs).Error
	return programs, err
}
