package services

import (
	"context"
	"strings"

	"github.com/educat/tutor_marketplace/models"
)

type SubjectService struct {
	store Store
}

func NewSubjectService(store Store) *SubjectService {
	return &SubjectService{store: store}
}

func (s *SubjectService) Create(ctx context.Context, name, description string) (*models.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newError(CodeInvalidInput, "subject name is required")
	}
	subject := &models.Subject{Name: name, Description: optional(description)}
	if err := s.store.Subjects().Create(ctx, subject); err != nil {
		return nil, storageFailure(err)
	}
	return subject, nil
}

func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.store.Subjects().List(ctx)
	return subjects, storageFailure(err)
}

func (s *SubjectService) CreatePreparationProgram(ctx context.Context, name, description string) (*models.PreparationProgram, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newError(CodeInvalidInput, "program name is required")
	}
	program := &models.PreparationProgram{Name: name, Description: optional(description)}
	if err := s.store.PreparationPrograms().Create(ctx, program); err != nil {
		return nil, storageFailure(err)
	}
	return program, nil
}

func (s *SubjectService) ListPreparationPrograms(ctx context.Context) ([]models.PreparationProgram, error) {
	programs, err := s.store.PreparationPrograms().List(ctx)
	return programs, storageFailure(err)
}
