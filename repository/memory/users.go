package memory

import (
	"context"
	"sort"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
)

type userStore struct{ s *Store }

func (r userStore) Create(ctx context.Context, user *models.User) error {
	return r.s.write(ctx, func(db *tables) error {
		for _, existing := range db.users {
			if existing.Email == user.Email {
				return &services.Error{Code: services.CodeConflict, Message: "email already exists"}
			}
		}
		user.ID = newID(user.ID)
		user.CreatedAt = time.Now().UTC()
		user.UpdatedAt = user.CreatedAt
		db.users[user.ID] = *user
		return nil
	})
}

func (r userStore) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var out models.User
	err := r.s.read(ctx, func(db *tables) error {
		user, ok := db.users[id]
		if !ok {
			return services.ErrUserNotFound
		}
		out = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r userStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var out *models.User
	err := r.s.read(ctx, func(db *tables) error {
		for _, user := range db.users {
			if user.Email == email {
				user := user
				out = &user
				return nil
			}
		}
		return services.ErrUserNotFound
	})
	return out, err
}

func (r userStore) Exists(ctx context.Context, id uuid.UUID, role models.Role) (bool, error) {
	found := false
	err := r.s.read(ctx, func(db *tables) error {
		user, ok := db.users[id]
		found = ok && user.Role == role
		return nil
	})
	return found, err
}

type subjectStore struct{ s *Store }

func (r subjectStore) Create(ctx context.Context, subject *models.Subject) error {
	return r.s.write(ctx, func(db *tables) error {
		for _, existing := range db.subjects {
			if existing.Name == subject.Name {
				return &services.Error{Code: services.CodeConflict, Message: "subject already exists"}
			}
		}
		subject.ID = newID(subject.ID)
		db.subjects[subject.ID] = *subject
		return nil
	})
}

func (r subjectStore) Get(ctx context.Context, id uuid.UUID) (*models.Subject, error) {
	var out models.Subject
	err := r.s.read(ctx, func(db *tables) error {
		subject, ok := db.subjects[id]
		if !ok {
			return services.ErrSubjectNotFound
		}
		out = subject
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r subjectStore) List(ctx context.Context) ([]models.Subject, error) {
	var out []models.Subject
	err := r.s.read(ctx, func(db *tables) error {
		for _, subject := range db.subjects {
			out = append(out, subject)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

type relationshipStore struct{ s *Store }

func (r relationshipStore) Create(ctx context.Context, rel *models.TeacherStudent) error {
	return r.s.write(ctx, func(db *tables) error {
		rel.ID = newID(rel.ID)
		db.relationships[rel.ID] = *rel
		return nil
	})
}

func (r relationshipStore) Get(ctx context.Context, id uuid.UUID) (*models.TeacherStudent, error) {
	var out models.TeacherStudent
	err := r.s.read(ctx, func(db *tables) error {
		rel, ok := db.relationships[id]
		if !ok {
			return services.ErrRequestNotFound
		}
		out = rel
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r relationshipStore) Find(ctx context.Context, teacherID, studentID uuid.UUID, status models.RequestStatus) (*models.TeacherStudent, error) {
	var out *models.TeacherStudent
	err := r.s.read(ctx, func(db *tables) error {
		for _, rel := range db.relationships {
			if rel.TeacherID == teacherID && rel.StudentID == studentID && rel.Status == status {
				rel := rel
				out = &rel
				return nil
			}
		}
		return services.ErrRelationshipNotFound
	})
	return out, err
}

func (r relationshipStore) ListByTeacher(ctx context.Context, teacherID uuid.UUID, status models.RequestStatus) ([]models.TeacherStudent, error) {
	return r.filter(ctx, func(rel models.TeacherStudent) bool {
		return rel.TeacherID == teacherID && (status == "" || rel.Status == status)
	})
}

func (r relationshipStore) ListByStudent(ctx context.Context, studentID uuid.UUID, status models.RequestStatus) ([]models.TeacherStudent, error) {
	return r.filter(ctx, func(rel models.TeacherStudent) bool {
		return rel.StudentID == studentID && (status == "" || rel.Status == status)
	})
}

func (r relationshipStore) filter(ctx context.Context, keep func(models.TeacherStudent) bool) ([]models.TeacherStudent, error) {
	var out []models.TeacherStudent
	err := r.s.read(ctx, func(db *tables) error {
		for _, rel := range db.relationships {
			if keep(rel) {
				rel.Student = db.users[rel.StudentID]
				out = append(out, rel)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.Before(out[j].RequestedAt) })
	return out, err
}

func (r relationshipStore) CountByTeacher(ctx context.Context, teacherID uuid.UUID, status models.RequestStatus) (int64, error) {
	rels, err := r.ListByTeacher(ctx, teacherID, status)
	return int64(len(rels)), err
}

func (r relationshipStore) Save(ctx context.Context, rel *models.TeacherStudent) error {
	return r.s.write(ctx, func(db *tables) error {
		if _, ok := db.relationships[rel.ID]; !ok {
			return services.ErrRequestNotFound
		}
		saved := *rel
		saved.Student = models.User{}
		saved.Teacher = models.User{}
		db.relationships[rel.ID] = saved
		return nil
	})
}

func (r relationshipStore) DeleteBetween(ctx context.Context, teacherID, studentID uuid.UUID) (int64, error) {
	var n int64
	err := r.s.write(ctx, func(db *tables) error {
		for id, rel := range db.relationships {
			if rel.TeacherID == teacherID && rel.StudentID == studentID {
				delete(db.relationships, id)
				n++
			}
		}
		return nil
	})
	return n, err
}
