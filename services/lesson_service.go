package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxTransitionAttempts = 3

type LessonService struct {
	store    Store
	clock    Clock
	cache    StatisticsCache
	notifier Notifier
	log      *zap.Logger
}

func NewLessonService(store Store, clock Clock, cache StatisticsCache, notifier Notifier, log *zap.Logger) *LessonService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &LessonService{
		store:    store,
		clock:    clock,
		cache:    cacheOrNop(cache),
		notifier: notifierOrNop(notifier),
		log:      log.Named("lessons"),
	}
}

type CreateLessonInput struct {
	TeacherID      uuid.UUID
	StudentID      uuid.UUID
	SubjectID      uuid.UUID
	StartTime      time.Time
	EndTime        time.Time
	ConferenceLink string
	WhiteboardLink string
}

// CreateLesson schedules a lesson between a teacher and a student whose
// connection request was accepted. Overlapping lessons are allowed.
func (s *LessonService) CreateLesson(ctx context.Context, in CreateLessonInput) (*models.Lesson, error) {
	if in.StartTime.IsZero() || in.EndTime.IsZero() {
		return nil, newError(CodeInvalidInput, "start and end time are required")
	}
	start, end := in.StartTime.UTC(), in.EndTime.UTC()
	if !end.After(start) {
		return nil, newError(CodeInvalidInput, "end time must be after start time")
	}

	if _, err := s.store.TeacherProfiles().GetByUserID(ctx, in.TeacherID); err != nil {
		if errors.Is(err, ErrTeacherProfileNotFound) {
			s.log.Warn("lesson teacher not found", zap.String("teacher_id", in.TeacherID.String()))
			return nil, ErrTeacherNotFound
		}
		return nil, storageFailure(err)
	}

	ok, err := s.store.Users().Exists(ctx, in.StudentID, models.RoleStudent)
	if err != nil {
		return nil, storageFailure(err)
	}
	if !ok {
		s.log.Warn("lesson student not found", zap.String("student_id", in.StudentID.String()))
		return nil, ErrStudentNotFound
	}

	if _, err := s.store.Relationships().Find(ctx, in.TeacherID, in.StudentID, models.RequestAccepted); err != nil {
		if errors.Is(err, ErrRelationshipNotFound) {
			s.log.Warn("student is not connected to teacher",
				zap.String("teacher_id", in.TeacherID.String()),
				zap.String("student_id", in.StudentID.String()))
		}
		return nil, storageFailure(err)
	}

	if _, err := s.store.Subjects().Get(ctx, in.SubjectID); err != nil {
		return nil, storageFailure(err)
	}

	studentID := in.StudentID
	lesson := &models.Lesson{
		TeacherID:      in.TeacherID,
		StudentID:      &studentID,
		SubjectID:      in.SubjectID,
		StartTime:      start,
		EndTime:        end,
		Status:         models.LessonScheduled,
		ConferenceLink: optional(in.ConferenceLink),
		WhiteboardLink: optional(in.WhiteboardLink),
	}
	if err := s.store.Lessons().Create(ctx, lesson); err != nil {
		return nil, storageFailure(err)
	}

	s.cache.Invalidate(ctx, in.TeacherID)
	s.notifier.Notify(studentID, Event{Type: EventLessonCreated, Payload: lesson})
	s.log.Info("lesson created",
		zap.String("lesson_id", lesson.ID.String()),
		zap.String("teacher_id", in.TeacherID.String()),
		zap.Time("start", start), zap.Time("end", end))
	return lesson, nil
}

// GetLesson returns the lesson with its status as of now, persisting the
// status first when time has moved it on.
func (s *LessonService) GetLesson(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	lesson, err := s.store.Lessons().Get(ctx, id)
	if err != nil {
		return nil, storageFailure(err)
	}
	if err := s.materialize(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// GetLessonAs is GetLesson for a caller who must take part in the lesson
// unless admin is set. Other callers get ErrLessonNotFound and cause no write.
func (s *LessonService) GetLessonAs(ctx context.Context, id, viewerID uuid.UUID, admin bool) (*models.Lesson, error) {
	lesson, err := s.store.Lessons().Get(ctx, id)
	if err != nil {
		return nil, storageFailure(err)
	}
	if !admin && !lesson.HasParticipant(viewerID) {
		return nil, ErrLessonNotFound
	}
	if err := s.materialize(ctx, lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) materialize(ctx context.Context, lesson *models.Lesson) error {
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		effective := EffectiveStatus(lesson, s.clock.Now())
		if effective == lesson.Status {
			return nil
		}
		changed, err := s.store.Lessons().UpdateStatus(ctx, lesson.ID, lesson.Status, effective)
		if err != nil {
			return storageFailure(err)
		}
		if changed {
			from := lesson.Status
			lesson.Status = effective
			s.announce(lesson, from)
			return nil
		}
		// Someone else wrote the row since we read it.
		fresh, err := s.store.Lessons().Get(ctx, lesson.ID)
		if err != nil {
			return storageFailure(err)
		}
		*lesson = *fresh
	}
	return newError(CodeConflict, "lesson %s was modified concurrently, try again", lesson.ID)
}

func (s *LessonService) CancelLesson(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	return s.changeStatus(ctx, id, models.LessonCancelled)
}

func (s *LessonService) CompleteLesson(ctx context.Context, id uuid.UUID) (*models.Lesson, error) {
	return s.changeStatus(ctx, id, models.LessonCompleted)
}

func (s *LessonService) changeStatus(ctx context.Context, id uuid.UUID, to models.LessonStatus) (*models.Lesson, error) {
	for attempt := 0; attempt < maxTransitionAttempts; attempt++ {
		lesson, err := s.GetLesson(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := checkTransition(lesson.Status, to); err != nil {
			s.log.Warn("rejected lesson transition",
				zap.String("lesson_id", id.String()),
				zap.String("from", string(lesson.Status)),
				zap.String("to", string(to)))
			return nil, err
		}
		changed, err := s.store.Lessons().UpdateStatus(ctx, id, lesson.Status, to)
		if err != nil {
			return nil, storageFailure(err)
		}
		if changed {
			from := lesson.Status
			lesson.Status = to
			s.cache.Invalidate(ctx, lesson.TeacherID)
			s.announce(lesson, from)
			return lesson, nil
		}
	}
	return nil, newError(CodeConflict, "lesson %s was modified concurrently, try again", id)
}

func checkTransition(from, to models.LessonStatus) error {
	if from == to {
		return newError(CodeInvalidTransition, "lesson is already %s", to)
	}
	if from.IsTerminal() {
		return newError(CodeInvalidTransition, "lesson is %s and cannot be %s", from, to)
	}
	return nil
}

func (s *LessonService) ListTeacherLessons(ctx context.Context, teacherID uuid.UUID, window TimeWindow) ([]models.Lesson, error) {
	lessons, err := s.store.Lessons().ListByTeacher(ctx, teacherID, window)
	if err != nil {
		return nil, storageFailure(err)
	}
	return s.materializeAll(ctx, lessons, func() ([]models.Lesson, error) {
		return s.store.Lessons().ListByTeacher(ctx, teacherID, window)
	})
}

func (s *LessonService) ListStudentLessons(ctx context.Context, studentID uuid.UUID, window TimeWindow) ([]models.Lesson, error) {
	lessons, err := s.store.Lessons().ListByStudent(ctx, studentID, window)
	if err != nil {
		return nil, storageFailure(err)
	}
	return s.materializeAll(ctx, lessons, func() ([]models.Lesson, error) {
		return s.store.Lessons().ListByStudent(ctx, studentID, window)
	})
}

// materializeAll persists the effective status of every listed lesson in one
// batch. If some guarded updates lost a race, the list is read again.
func (s *LessonService) materializeAll(ctx context.Context, lessons []models.Lesson, reload func() ([]models.Lesson, error)) ([]models.Lesson, error) {
	now := s.clock.Now()
	var changes []StatusChange
	for i := range lessons {
		if effective := EffectiveStatus(&lessons[i], now); effective != lessons[i].Status {
			changes = append(changes, StatusChange{LessonID: lessons[i].ID, From: lessons[i].Status, To: effective})
		}
	}
	if len(changes) == 0 {
		return lessons, nil
	}

	changed, err := s.store.Lessons().UpdateStatuses(ctx, changes)
	if err != nil {
		return nil, storageFailure(err)
	}
	if len(changed) != len(changes) {
		fresh, err := reload()
		if err != nil {
			return nil, storageFailure(err)
		}
		return fresh, nil
	}
	for i := range lessons {
		lessons[i].Status = EffectiveStatus(&lessons[i], now)
	}
	return lessons, nil
}

// SweepStatuses moves every stale scheduled lesson to in_progress or
// completed in one batch and returns how many rows changed.
func (s *LessonService) SweepStatuses(ctx context.Context) (int, error) {
	now := s.clock.Now()
	lessons, err := s.store.Lessons().ListScheduledBefore(ctx, now)
	if err != nil {
		return 0, storageFailure(err)
	}

	var completed, inProgress []StatusChange
	for i := range lessons {
		switch EffectiveStatus(&lessons[i], now) {
		case models.LessonCompleted:
			completed = append(completed, StatusChange{LessonID: lessons[i].ID, From: models.LessonScheduled, To: models.LessonCompleted})
		case models.LessonInProgress:
			inProgress = append(inProgress, StatusChange{LessonID: lessons[i].ID, From: models.LessonScheduled, To: models.LessonInProgress})
		}
	}
	if len(completed)+len(inProgress) == 0 {
		return 0, nil
	}

	changed, err := s.store.Lessons().UpdateStatuses(ctx, append(completed, inProgress...))
	if err != nil {
		return 0, storageFailure(err)
	}

	s.log.Info("lesson statuses swept",
		zap.Int("completed", len(completed)),
		zap.Int("in_progress", len(inProgress)),
		zap.Int("updated", len(changed)))

	won := make(map[uuid.UUID]bool, len(changed))
	for _, id := range changed {
		won[id] = true
	}
	// Rows another writer got to first keep that writer's status and event.
	for i := range lessons {
		if !won[lessons[i].ID] {
			continue
		}
		from := lessons[i].Status
		lessons[i].Status = EffectiveStatus(&lessons[i], now)
		s.announce(&lessons[i], from)
	}
	return len(changed), nil
}

type LessonReminder struct {
	Lesson  models.Lesson
	Teacher models.User
	Student models.User
}

// UpcomingReminders lists scheduled lessons starting in [from, to) together
// with both participants.
func (s *LessonService) UpcomingReminders(ctx context.Context, from, to time.Time) ([]LessonReminder, error) {
	lessons, err := s.store.Lessons().ListUpcoming(ctx, from, to)
	if err != nil {
		return nil, storageFailure(err)
	}

	reminders := make([]LessonReminder, 0, len(lessons))
	for _, lesson := range lessons {
		if lesson.StudentID == nil {
			continue
		}
		teacher, err := s.store.Users().Get(ctx, lesson.TeacherID)
		if err != nil {
			return nil, storageFailure(err)
		}
		student, err := s.store.Users().Get(ctx, *lesson.StudentID)
		if err != nil {
			return nil, storageFailure(err)
		}
		reminders = append(reminders, LessonReminder{Lesson: lesson, Teacher: *teacher, Student: *student})
	}
	return reminders, nil
}

func (s *LessonService) announce(lesson *models.Lesson, from models.LessonStatus) {
	s.log.Debug("lesson status changed",
		zap.String("lesson_id", lesson.ID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(lesson.Status)))

	event := Event{Type: EventLessonStatusChanged, Payload: map[string]any{
		"lesson_id": lesson.ID,
		"from":      from,
		"to":        lesson.Status,
	}}
	s.notifier.Notify(lesson.TeacherID, event)
	if lesson.StudentID != nil {
		s.notifier.Notify(*lesson.StudentID, event)
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
