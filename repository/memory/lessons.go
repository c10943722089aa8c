package memory

import (
	"context"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
)

type lessonStore struct{ s *Store }

func (r lessonStore) Create(ctx context.Context, lesson *models.Lesson) error {
	return r.s.write(ctx, func(db *tables) error {
		lesson.ID = newID(lesson.ID)
		if lesson.CreatedAt.IsZero() {
			lesson.CreatedAt = time.Now().UTC()
		}
		lesson.UpdatedAt = lesson.CreatedAt
		db.lessons[lesson.ID] = *lesson
		return nil
	})
}

func (r lessonStore) Get(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	var out models.Lesson
	err := r.s.read(ctx, func(db *tables) error {
		lesson, ok := db.lessons[id]
		if !ok {
			return services.ErrLessonNotFound
		}
		out = lesson
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r lessonStore) ListScheduledBefore(ctx context.Context, now time.Time) ([]models.Lesson, error) {
	return r.filter(ctx, func(l models.Lesson) bool {
		return l.Status == models.LessonScheduled && !l.StartTime.After(now)
	})
}

func (r lessonStore) ListByTeacher(ctx context.Context, teacherID uuid.UUID, window services.TimeWindow) ([]models.Lesson, error) {
	return r.filter(ctx, func(l models.Lesson) bool {
		return l.TeacherID == teacherID && inWindow(l.StartTime, window)
	})
}

func (r lessonStore) ListByStudent(ctx context.Context, studentID uuid.UUID, window services.TimeWindow) ([]models.Lesson, error) {
	return r.filter(ctx, func(l models.Lesson) bool {
		return l.StudentID != nil && *l.StudentID == studentID && inWindow(l.StartTime, window)
	})
}

func (r lessonStore) ListUpcoming(ctx context.Context, from, to time.Time) ([]models.Lesson, error) {
	return r.filter(ctx, func(l models.Lesson) bool {
		return l.Status == models.LessonScheduled && !l.StartTime.Before(from) && l.StartTime.Before(to)
	})
}

func (r lessonStore) filter(ctx context.Context, keep func(models.Lesson) bool) ([]models.Lesson, error) {
	var out []models.Lesson
	err := r.s.read(ctx, func(db *tables) error {
		for _, l := range db.lessons {
			if keep(l) {
				out = append(out, l)
			}
		}
		return nil
	})
	sortLessons(out)
	return out, err
}

func (r lessonStore) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.LessonStatus) (bool, error) {
	changed := false
	err := r.s.write(ctx, func(db *tables) error {
		lesson, ok := db.lessons[id]
		if !ok {
			return services.ErrLessonNotFound
		}
		if lesson.Status != from {
			return nil
		}
		lesson.Status = to
		lesson.UpdatedAt = time.Now().UTC()
		db.lessons[id] = lesson
		changed = true
		return nil
	})
	return changed, err
}

func (r lessonStore) UpdateStatuses(ctx context.Context, changes []services.StatusChange) ([]uuid.UUID, error) {
	var changed []uuid.UUID
	err := r.s.write(ctx, func(db *tables) error {
		for _, c := range changes {
			lesson, ok := db.lessons[c.LessonID]
			if !ok || lesson.Status != c.From {
				continue
			}
			lesson.Status = c.To
			lesson.UpdatedAt = time.Now().UTC()
			db.lessons[c.LessonID] = lesson
			changed = append(changed, c.LessonID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changed, nil
}

type attachmentStore struct{ s *Store }

func (r attachmentStore) Create(ctx context.Context, attachment *models.Attachment) error {
	return r.s.write(ctx, func(db *tables) error {
		attachment.ID = newID(attachment.ID)
		db.attachments[attachment.ID] = *attachment
		return nil
	})
}

func (r attachmentStore) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]models.Attachment, error) {
	var out []models.Attachment
	err := r.s.read(ctx, func(db *tables) error {
		for _, a := range db.attachments {
			if a.LessonID == lessonID {
				out = append(out, a)
			}
		}
		return nil
	})
	return out, err
}
