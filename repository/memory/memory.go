// Package memory is an in-memory implementation of services.Store used by
// tests and local runs without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
)

type tables struct {
	users         map[uuid.UUID]models.User
	profiles      map[uuid.UUID]models.TeacherProfile
	subjects      map[uuid.UUID]models.Subject
	relationships map[uuid.UUID]models.TeacherStudent
	lessons       map[uuid.UUID]models.Lesson
	attachments   map[uuid.UUID]models.Attachment
	reviews       map[uuid.UUID]models.Review
	// teacherSubjects slices are replaced, never mutated, so clone can share them.
	teacherSubjects map[uuid.UUID][]uuid.UUID
	programs        map[uuid.UUID]models.PreparationProgram
}

func (t *tables) clone() *tables {
	return &tables{
		users:         cloneMap(t.users),
		profiles:      cloneMap(t.profiles),
		subjects:      cloneMap(t.subjects),
		relationships: cloneMap(t.relationships),
		lessons:       cloneMap(t.lessons),
		attachments:   cloneMap(t.attachments),
		reviews:       cloneMap(t.reviews),

		teacherSubjects: cloneMap(t.teacherSubjects),
		programs:        cloneMap(t.programs),
	}
}

func cloneMap[V any](m map[uuid.UUID]V) map[uuid.UUID]V {
	out := make(map[uuid.UUID]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type state struct {
	mutex   sync.RWMutex
	txMutex sync.Mutex
	db      *tables
}

type Store struct {
	*state
	inTx bool

	// FailWith, when set, is returned by every store call.
	FailWith error
}

var _ services.Store = (*Store)(nil)

func New() *Store {
	return &Store{state: &state{db: &tables{
		users:         map[uuid.UUID]models.User{},
		profiles:      map[uuid.UUID]models.TeacherProfile{},
		subjects:      map[uuid.UUID]models.Subject{},
		relationships: map[uuid.UUID]models.TeacherStudent{},
		lessons:       map[uuid.UUID]models.Lesson{},
		attachments:   map[uuid.UUID]models.Attachment{},
		reviews:       map[uuid.UUID]models.Review{},

		teacherSubjects: map[uuid.UUID][]uuid.UUID{},
		programs:        map[uuid.UUID]models.PreparationProgram{},
	}}}
}

func (s *Store) Lessons() services.LessonStore                 { return lessonStore{s} }
func (s *Store) Reviews() services.ReviewStore                 { return reviewStore{s} }
func (s *Store) TeacherProfiles() services.TeacherProfileStore { return profileStore{s} }
func (s *Store) Users() services.UserStore                     { return userStore{s} }
func (s *Store) Subjects() services.SubjectStore               { return subjectStore{s} }
func (s *Store) Relationships() services.RelationshipStore     { return relationshipStore{s} }
func (s *Store) Attachments() services.AttachmentStore         { return attachmentStore{s} }
func (s *Store) TeacherSubjects() services.TeacherSubjectStore { return teacherSubjectStore{s} }
func (s *Store) PreparationPrograms() services.PreparationProgramStore {
	return programStore{s}
}

// Transaction restores a snapshot when fn fails. Writes outside a
// transaction wait on txMutex, so a rollback never discards them. Reads do
// not wait and may observe writes of a transaction that later rolls back.
// A nested call joins the enclosing transaction.
func (s *Store) Transaction(ctx context.Context, fn func(tx services.Store) error) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if s.inTx {
		return fn(s)
	}
	s.txMutex.Lock()
	defer s.txMutex.Unlock()

	s.mutex.RLock()
	snapshot := s.db.clone()
	s.mutex.RUnlock()

	tx := &Store{state: s.state, inTx: true, FailWith: s.FailWith}
	if err := fn(tx); err != nil {
		s.mutex.Lock()
		s.db = snapshot
		s.mutex.Unlock()
		return err
	}
	return nil
}

func (s *Store) check(ctx context.Context) error {
	if s.FailWith != nil {
		return s.FailWith
	}
	return ctx.Err()
}

func (s *Store) read(ctx context.Context, fn func(db *tables) error) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return fn(s.db)
}

func (s *Store) write(ctx context.Context, fn func(db *tables) error) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if !s.inTx {
		s.txMutex.Lock()
		defer s.txMutex.Unlock()
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return fn(s.db)
}

func sortLessons(lessons []models.Lesson) {
	sort.Slice(lessons, func(i, j int) bool { return lessons[i].StartTime.Before(lessons[j].StartTime) })
}

func sortReviews(reviews []models.Review) {
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
}

func inWindow(t time.Time, w services.TimeWindow) bool {
	if w.From != nil && t.Before(*w.From) {
		return false
	}
	if w.To != nil && t.After(*w.To) {
		return false
	}
	return true
}

func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
