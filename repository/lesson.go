package repository

import (
	"context"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type lessonRepo struct {
	db *gorm.DB
}

func (r *lessonRepo) Create(ctx context.Context, lesson *models.Lesson) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(lesson).Error
}

func (r *lessonRepo) Get(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, "id = ?", id).Error; err != nil {
		return nil, notFoundAs(err, services.ErrLessonNotFound)
	}
	return &lesson, nil
}

func (r *lessonRepo) ListScheduledBefore(ctx context.Context, now time.Time) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := r.db.WithContext(ctx).
		Where("status = ? AND start_time <= ?", models.LessonScheduled, now).
		Order("start_time").
		Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepo) ListByTeacher(ctx context.Context, teacherID uuid.UUID, window services.TimeWindow) ([]models.Lesson, error) {
	return r.list(ctx, window, "teacher_id = ?", teacherID)
}

func (r *lessonRepo) ListByStudent(ctx context.Context, studentID uuid.UUID, window services.TimeWindow) ([]models.Lesson, error) {
	return r.list(ctx, window, "student_id = ?", studentID)
}

func (r *lessonRepo) list(ctx context.Context, window services.TimeWindow, query string, args ...any) ([]models.Lesson, error) {
	q := r.db.WithContext(ctx).Where(query, args...)
	if window.From != nil {
		q = q.Where("start_time >= ?", *window.From)
	}
	if window.To != nil {
		q = q.Where("start_time <= ?", *window.To)
	}

	var lessons []models.Lesson
	err := q.Order("start_time").Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepo) ListUpcoming(ctx context.Context, from, to time.Time) ([]models.Lesson, error) {
	var lessons []models.Lesson
	err := r.db.WithContext(ctx).
		Where("status = ? AND start_time >= ? AND start_time < ?", models.LessonScheduled, from, to).
		Order("start_time").
		Find(&lessons).Error
	return lessons, err
}

// UpdateStatus is a compare-and-set on the status column so a terminal
// status written by someone else is never overwritten.
func (r *lessonRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.LessonStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Lesson{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{"status": to, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Lesson{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return false, err
		}
		if count == 0 {
			return false, services.ErrLessonNotFound
		}
	}
	return res.RowsAffected > 0, nil
}

type transition struct {
	from, to models.LessonStatus
}

// UpdateStatuses locks the rows still in their expected status, then updates
// exactly those, so the returned ids are the rows that changed.
func (r *lessonRepo) UpdateStatuses(ctx context.Context, changes []services.StatusChange) ([]uuid.UUID, error) {
	if len(changes) == 0 {
		return nil, nil
	}

	groups := make(map[transition][]uuid.UUID)
	var order []transition
	for _, c := range changes {
		key := transition{from: c.From, to: c.To}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], c.LessonID)
	}

	var changed []uuid.UUID
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, key := range order {
			var ids []uuid.UUID
			err := tx.Model(&models.Lesson{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id IN ? AND status = ?", groups[key], key.from).
				Pluck("id", &ids).Error
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				continue
			}
			err = tx.Model(&models.Lesson{}).
				Where("id IN ?", ids).
				Updates(map[string]any{"status": key.to, "updated_at": now}).Error
			if err != nil {
				return err
			}
			changed = append(changed, ids...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changed, nil
}
