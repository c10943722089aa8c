package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/educat/tutor_marketplace/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MinCommentLength = 10
	MaxCommentLength = 2000
)

type ReviewService struct {
	store    Store
	lessons  *LessonService
	ratings  *RatingService
	clock    Clock
	notifier Notifier
	log      *zap.Logger
}

func NewReviewService(store Store, lessons *LessonService, ratings *RatingService, clock Clock, notifier Notifier, log *zap.Logger) *ReviewService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &ReviewService{
		store:    store,
		lessons:  lessons,
		ratings:  ratings,
		clock:    clock,
		notifier: notifierOrNop(notifier),
		log:      log.Named("reviews"),
	}
}

type CreateReviewInput struct {
	LessonID  uuid.UUID
	TeacherID uuid.UUID
	StudentID uuid.UUID
	Rating    int
	Comment   string
}

// CreateReview attaches a student's review to a completed lesson and
// recomputes the teacher's rating in the same transaction. The checks run in
// a fixed order so the reported reason is deterministic.
func (s *ReviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	log := s.log.With(
		zap.String("lesson_id", in.LessonID.String()),
		zap.String("teacher_id", in.TeacherID.String()),
		zap.String("student_id", in.StudentID.String()))

	if in.Rating < MinRating || in.Rating > MaxRating {
		return nil, ErrInvalidRating
	}
	comment := strings.TrimSpace(in.Comment)
	if n := utf8.RuneCountInString(comment); n < MinCommentLength || n > MaxCommentLength {
		return nil, ErrInvalidComment
	}

	lesson, err := s.lessons.GetLesson(ctx, in.LessonID)
	if err != nil {
		if errors.Is(err, ErrLessonNotFound) {
			log.Warn("review for unknown lesson")
		}
		return nil, err
	}
	if lesson.Status != models.LessonCompleted {
		log.Warn("review for lesson that is not completed", zap.String("status", string(lesson.Status)))
		return nil, newError(CodeLessonNotCompleted,
			"reviews can only be left for completed lessons, current status: %s", lesson.Status)
	}
	if lesson.StudentID == nil || *lesson.StudentID != in.StudentID {
		log.Warn("lesson belongs to another student")
		return nil, ErrLessonStudentMismatch
	}

	var review *models.Review
	err = s.store.Transaction(ctx, func(tx Store) error {
		ok, err := tx.Users().Exists(ctx, in.TeacherID, models.RoleTeacher)
		if err != nil {
			return err
		}
		if !ok {
			return ErrTeacherNotFound
		}

		profile, err := tx.TeacherProfiles().GetByUserID(ctx, in.TeacherID)
		if err != nil {
			return err
		}

		if lesson.TeacherID != in.TeacherID {
			return ErrLessonTeacherMismatch
		}

		existing, err := tx.Reviews().FindByLessonAndStudent(ctx, in.LessonID, in.StudentID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateReview
		}

		ok, err = tx.Users().Exists(ctx, in.StudentID, models.RoleStudent)
		if err != nil {
			return err
		}
		if !ok {
			return ErrStudentNotFound
		}

		review = &models.Review{
			LessonID:  in.LessonID,
			TeacherID: profile.UserID,
			StudentID: in.StudentID,
			Rating:    in.Rating,
			Comment:   comment,
			CreatedAt: s.clock.Now(),
		}
		if err := tx.Reviews().Insert(ctx, review); err != nil {
			return err
		}
		return s.ratings.recompute(ctx, tx, profile)
	})
	if err != nil {
		if CodeOf(err) == CodeStorageFailure {
			log.Error("failed to create review", zap.Error(err))
		} else {
			log.Warn("review rejected", zap.String("reason", string(CodeOf(err))))
		}
		return nil, storageFailure(err)
	}

	s.ratings.invalidate(ctx, review.TeacherID)
	s.notifier.Notify(review.TeacherID, Event{Type: EventReviewCreated, Payload: review})
	log.Info("review created", zap.String("review_id", review.ID.String()), zap.Int("rating", review.Rating))
	return review, nil
}

func (s *ReviewService) ListTeacherReviews(ctx context.Context, teacherID uuid.UUID) ([]models.Review, error) {
	reviews, err := s.store.Reviews().ListByTeacher(ctx, teacherID)
	return reviews, storageFailure(err)
}

func (s *ReviewService) ListStudentReviews(ctx context.Context, studentID uuid.UUID) ([]models.Review, error) {
	reviews, err := s.store.Reviews().ListByStudent(ctx, studentID)
	return reviews, storageFailure(err)
}

func (s *ReviewService) ListLessonReviews(ctx context.Context, lessonID uuid.UUID) ([]models.Review, error) {
	reviews, err := s.store.Reviews().ListByLesson(ctx, lessonID)
	return reviews, storageFailure(err)
}
