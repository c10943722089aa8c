package services

import (
	"context"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/google/uuid"
)

// Store implementations return ErrXxxNotFound for missing rows and plain
// errors for infrastructure failures.

type LessonStore interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	Get(ctx context.Context, id uuid.UUID) (*models.Lesson, error)
	// ListScheduledBefore returns lessons stored as scheduled whose start time is <= now.
	ListScheduledBefore(ctx context.Context, now time.Time) ([]models.Lesson, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID, window TimeWindow) ([]models.Lesson, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, window TimeWindow) ([]models.Lesson, error)
	ListUpcoming(ctx context.Context, from, to time.Time) ([]models.Lesson, error)
	// UpdateStatus sets status to `to` only if it is still `from`; it reports whether a row changed.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.LessonStatus) (bool, error)
	// UpdateStatuses applies every change atomically with the same guard as
	// UpdateStatus and returns the ids of the lessons it actually changed.
	UpdateStatuses(ctx context.Context, changes []StatusChange) ([]uuid.UUID, error)
}

type StatusChange struct {
	LessonID uuid.UUID
	From     models.LessonStatus
	To       models.LessonStatus
}

// TimeWindow bounds a lesson range query on start time; nil ends are open.
type TimeWindow struct {
	From *time.Time
	To   *time.Time
}

type ReviewStore interface {
	FindByLessonAndStudent(ctx context.Context, lessonID, studentID uuid.UUID) (*models.Review, error)
	ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Review, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Review, error)
	ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]models.Review, error)
	// Insert returns ErrDuplicateReview when (lesson, student) already has a review.
	Insert(ctx context.Context, review *models.Review) error
}

type TeacherProfileStore interface {
	Create(ctx context.Context, profile *models.TeacherProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.TeacherProfile, error)
	List(ctx context.Context) ([]models.TeacherProfile, error)
	// Save writes the derived Rating and ReviewsCount.
	Save(ctx context.Context, profile *models.TeacherProfile) error
	// UpdateDetails writes the teacher-editable columns only.
	UpdateDetails(ctx context.Context, profile *models.TeacherProfile) error
	// Search returns profiles matching every set field of filter, best rated first.
	Search(ctx context.Context, filter TeacherFilter) ([]models.TeacherProfile, error)
}

// TeacherFilter narrows a teacher search. Nil fields match everything.
type TeacherFilter struct {
	SubjectID     *uuid.UUID
	MinPrice      *float64
	MaxPrice      *float64
	MinExperience *int
	MinRating     *float64
}

type TeacherSubjectStore interface {
	ListSubjectIDs(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error)
	// Replace makes subjectIDs the teacher's full set of specializations.
	Replace(ctx context.Context, teacherID uuid.UUID, subjectIDs []uuid.UUID) error
}

type PreparationProgramStore interface {
	Create(ctx context.Context, program *models.PreparationProgram) error
	List(ctx context.Context) ([]models.PreparationProgram, error)
}

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Exists(ctx context.Context, id uuid.UUID, role models.Role) (bool, error)
}

type SubjectStore interface {
	Create(ctx context.Context, subject *models.Subject) error
	Get(ctx context.Context, id uuid.UUID) (*models.Subject, error)
	List(ctx context.Context) ([]models.Subject, error)
}

type RelationshipStore interface {
	Create(ctx context.Context, rel *models.TeacherStudent) error
	Get(ctx context.Context, id uuid.UUID) (*models.TeacherStudent, error)
	// Find returns the relationship between teacher and student in the given
	// status, or ErrRelationshipNotFound.
	Find(ctx context.Context, teacherID, studentID uuid.UUID, status models.RequestStatus) (*models.TeacherStudent, error)
	// ListByTeacher and ListByStudent filter on status unless it is empty.
	ListByTeacher(ctx context.Context, teacherID uuid.UUID, status models.RequestStatus) ([]models.TeacherStudent, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID, status models.RequestStatus) ([]models.TeacherStudent, error)
	CountByTeacher(ctx context.Context, teacherID uuid.UUID, status models.RequestStatus) (int64, error)
	Save(ctx context.Context, rel *models.TeacherStudent) error
	DeleteBetween(ctx context.Context, teacherID, studentID uuid.UUID) (int64, error)
}

type AttachmentStore interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]models.Attachment, error)
}

// Store groups the collaborator stores. Transaction runs fn against a Store
// bound to one transaction; returning an error rolls it back.
type Store interface {
	Lessons() LessonStore
	Reviews() ReviewStore
	TeacherProfiles() TeacherProfileStore
	Users() UserStore
	Subjects() SubjectStore
	Relationships() RelationshipStore
	Attachments() AttachmentStore
	TeacherSubjects() TeacherSubjectStore
	PreparationPrograms() PreparationProgramStore
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
