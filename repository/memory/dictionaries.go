package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
)

type teacherSubjectStore struct{ s *Store }

func (r teacherSubjectStore) ListSubjectIDs(ctx context.Context, teacherID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	err := r.s.read(ctx, func(db *tables) error {
		out = slices.Clone(db.teacherSubjects[teacherID])
		return nil
	})
	slices.SortFunc(out, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	return out, err
}

func (r teacherSubjectStore) Replace(ctx context.Context, teacherID uuid.UUID, subjectIDs []uuid.UUID) error {
	return r.s.write(ctx, func(db *tables) error {
		seen := make(map[uuid.UUID]bool, len(subjectIDs))
		for _, id := range subjectIDs {
			if seen[id] {
				return &services.Error{Code: services.CodeConflict, Message: "duplicate subject in specializations"}
			}
			seen[id] = true
		}
		if len(subjectIDs) == 0 {
			delete(db.teacherSubjects, teacherID)
			return nil
		}
		db.teacherSubjects[teacherID] = slices.Clone(subjectIDs)
		return nil
	})
}

type programStore struct{ s *Store }

func (r programStore) Create(ctx context.Context, program *models.PreparationProgram) error {
	return r.s.write(ctx, func(db *tables) error {
		for _, existing := range db.programs {
			if existing.Name == program.Name {
				return &services.Error{Code: services.CodeConflict, Message: "preparation program already exists"}
			}
		}
		program.ID = newID(program.ID)
		db.programs[program.ID] = *program
		return nil
	})
}

func (r programStore) List(ctx context.Context) ([]models.PreparationProgram, error) {
	var out []models.PreparationProgram
	err := r.s.read(ctx, func(db *tables) error {
		for _, program := range db.programs {
			out = append(out, program)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}
