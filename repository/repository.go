// Package repository implements services.Store on top of gorm and Postgres.
package repository

import (
	"context"
	"errors"

	"github.com/educat/tutor_marketplace/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

var _ services.Store = (*Store)(nil)

// New expects db to be opened with TranslateError so unique violations
// surface as gorm.ErrDuplicatedKey.
func New(db *gorm.DB, log *zap.Logger) *Store {
	return &Store{db: db, log: log.Named("repository")}
}

func (s *Store) Lessons() services.LessonStore                 { return &lessonRepo{db: s.db} }
func (s *Store) Reviews() services.ReviewStore                 { return &reviewRepo{db: s.db} }
func (s *Store) TeacherProfiles() services.TeacherProfileStore { return &teacherProfileRepo{db: s.db} }
func (s *Store) Users() services.UserStore                     { return &userRepo{db: s.db} }
func (s *Store) Subjects() services.SubjectStore               { return &subjectRepo{db: s.db} }
func (s *Store) Relationships() services.RelationshipStore     { return &relationshipRepo{db: s.db} }
func (s *Store) Attachments() services.AttachmentStore         { return &attachmentRepo{db: s.db} }
func (s *Store) TeacherSubjects() services.TeacherSubjectStore { return &teacherSubjectRepo{db: s.db} }
func (s *Store) PreparationPrograms() services.PreparationProgramStore {
	return &preparationProgramRepo{db: s.db}
}

func (s *Store) Transaction(ctx context.Context, fn func(tx services.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx, log: s.log})
	})
}

// notFoundAs maps gorm.ErrRecordNotFound to the given domain error.
func notFoundAs(err error, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

func conflictAs(err error, target error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return target
	}
	return err
}
