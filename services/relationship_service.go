package services

import (
	"context"
	"errors"

	"github.com/educat/tutor_marketplace/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RelationshipService manages student to teacher connection requests.
type RelationshipService struct {
	store    Store
	clock    Clock
	cache    StatisticsCache
	notifier Notifier
	log      *zap.Logger
}

func NewRelationshipService(store Store, clock Clock, cache StatisticsCache, notifier Notifier, log *zap.Logger) *RelationshipService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &RelationshipService{
		store:    store,
		clock:    clock,
		cache:    cacheOrNop(cache),
		notifier: notifierOrNop(notifier),
		log:      log.Named("relationships"),
	}
}

func (s *RelationshipService) SendRequest(ctx context.Context, studentID, teacherID uuid.UUID) (*models.TeacherStudent, error) {
	ok, err := s.store.Users().Exists(ctx, studentID, models.RoleStudent)
	if err != nil {
		return nil, storageFailure(err)
	}
	if !ok {
		return nil, ErrStudentNotFound
	}
	if _, err := s.store.TeacherProfiles().GetByUserID(ctx, teacherID); err != nil {
		if errors.Is(err, ErrTeacherProfileNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, storageFailure(err)
	}

	for _, existing := range []struct {
		status models.RequestStatus
		msg    string
	}{
		{models.RequestPending, "a request to this teacher is already pending"},
		{models.RequestAccepted, "you are already connected to this teacher"},
	} {
		_, err := s.store.Relationships().Find(ctx, teacherID, studentID, existing.status)
		if err == nil {
			return nil, newError(CodeConflict, "%s", existing.msg)
		}
		if !errors.Is(err, ErrRelationshipNotFound) {
			return nil, storageFailure(err)
		}
	}

	req := &models.TeacherStudent{
		TeacherID:   teacherID,
		StudentID:   studentID,
		Status:      models.RequestPending,
		RequestedAt: s.clock.Now(),
	}
	if err := s.store.Relationships().Create(ctx, req); err != nil {
		return nil, storageFailure(err)
	}

	s.notifier.Notify(teacherID, Event{Type: EventRequestReceived, Payload: req})
	s.log.Info("connection request sent",
		zap.String("request_id", req.ID.String()),
		zap.String("teacher_id", teacherID.String()),
		zap.String("student_id", studentID.String()))
	return req, nil
}

func (s *RelationshipService) ListPendingRequests(ctx context.Context, teacherID uuid.UUID) ([]models.TeacherStudent, error) {
	reqs, err := s.store.Relationships().ListByTeacher(ctx, teacherID, models.RequestPending)
	return reqs, storageFailure(err)
}

func (s *RelationshipService) ListStudentRequests(ctx context.Context, studentID uuid.UUID) ([]models.TeacherStudent, error) {
	reqs, err := s.store.Relationships().ListByStudent(ctx, studentID, "")
	return reqs, storageFailure(err)
}

func (s *RelationshipService) AcceptRequest(ctx context.Context, teacherID, requestID uuid.UUID) (*models.TeacherStudent, error) {
	return s.process(ctx, teacherID, requestID, models.RequestAccepted)
}

func (s *RelationshipService) RejectRequest(ctx context.Context, teacherID, requestID uuid.UUID) (*models.TeacherStudent, error) {
	return s.process(ctx, teacherID, requestID, models.RequestRejected)
}

func (s *RelationshipService) process(ctx context.Context, teacherID, requestID uuid.UUID, to models.RequestStatus) (*models.TeacherStudent, error) {
	req, err := s.store.Relationships().Get(ctx, requestID)
	if err != nil {
		return nil, storageFailure(err)
	}
	if req.TeacherID != teacherID {
		return nil, ErrRequestNotFound
	}
	if req.Status != models.RequestPending {
		return nil, newError(CodeInvalidTransition, "request has already been processed")
	}

	req.Status = to
	if to == models.RequestAccepted {
		now := s.clock.Now()
		req.AcceptedAt = &now
	}
	if err := s.store.Relationships().Save(ctx, req); err != nil {
		return nil, storageFailure(err)
	}

	event := EventRequestRejected
	if to == models.RequestAccepted {
		event = EventRequestAccepted
		s.cache.Invalidate(ctx, teacherID)
	}
	s.notifier.Notify(req.StudentID, Event{Type: event, Payload: req})
	s.log.Info("connection request processed",
		zap.String("request_id", requestID.String()),
		zap.String("status", string(to)))
	return req, nil
}

// RemoveStudent deletes every relationship row between the teacher and the student.
func (s *RelationshipService) RemoveStudent(ctx context.Context, teacherID, studentID uuid.UUID) error {
	n, err := s.store.Relationships().DeleteBetween(ctx, teacherID, studentID)
	if err != nil {
		return storageFailure(err)
	}
	if n == 0 {
		return ErrRelationshipNotFound
	}
	s.cache.Invalidate(ctx, teacherID)
	return nil
}

func (s *RelationshipService) ListTeacherStudents(ctx context.Context, teacherID uuid.UUID) ([]models.TeacherStudent, error) {
	rels, err := s.store.Relationships().ListByTeacher(ctx, teacherID, models.RequestAccepted)
	return rels, storageFailure(err)
}

func (s *RelationshipService) ListStudentTeachers(ctx context.Context, studentID uuid.UUID) ([]models.TeacherStudent, error) {
	rels, err := s.store.Relationships().ListByStudent(ctx, studentID, models.RequestAccepted)
	return rels, storageFailure(err)
}
