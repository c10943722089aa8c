package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
)

type reviewStore struct{ s *Store }

func (r reviewStore) FindByLessonAndStudent(ctx context.Context, lessonID, studentID uuid.UUID) (*models.Review, error) {
	var found *models.Review
	err := r.s.read(ctx, func(db *tables) error {
		for _, review := range db.reviews {
			if review.LessonID == lessonID && review.StudentID == studentID {
				review := review
				found = &review
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r reviewStore) ListByTeacher(ctx context.Context, teacherID uuid.UUID) ([]models.Review, error) {
	return r.filter(ctx, func(review models.Review) bool { return review.TeacherID == teacherID })
}

func (r reviewStore) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]models.Review, error) {
	return r.filter(ctx, func(review models.Review) bool { return review.StudentID == studentID })
}

func (r reviewStore) ListByLesson(ctx context.Context, lessonID uuid.UUID) ([]models.Review, error) {
	return r.filter(ctx, func(review models.Review) bool { return review.LessonID == lessonID })
}

func (r reviewStore) filter(ctx context.Context, keep func(models.Review) bool) ([]models.Review, error) {
	var out []models.Review
	err := r.s.read(ctx, func(db *tables) error {
		for _, review := range db.reviews {
			if keep(review) {
				out = append(out, review)
			}
		}
		return nil
	})
	sortReviews(out)
	return out, err
}

func (r reviewStore) Insert(ctx context.Context, review *models.Review) error {
	return r.s.write(ctx, func(db *tables) error {
		for _, existing := range db.reviews {
			if existing.LessonID == review.LessonID && existing.StudentID == review.StudentID {
				return services.ErrDuplicateReview
			}
		}
		review.ID = newID(review.ID)
		if review.CreatedAt.IsZero() {
			review.CreatedAt = time.Now().UTC()
		}
		db.reviews[review.ID] = *review
		return nil
	})
}

type profileStore struct{ s *Store }

func (r profileStore) Create(ctx context.Context, profile *models.TeacherProfile) error {
	return r.s.write(ctx, func(db *tables) error {
		for _, existing := range db.profiles {
			if existing.UserID == profile.UserID {
				return &services.Error{Code: services.CodeConflict, Message: "teacher profile already exists"}
			}
		}
		profile.ID = newID(profile.ID)
		profile.CreatedAt = time.Now().UTC()
		profile.UpdatedAt = profile.CreatedAt
		db.profiles[profile.ID] = *profile
		return nil
	})
}

func (r profileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.TeacherProfile, error) {
	var out *models.TeacherProfile
	err := r.s.read(ctx, func(db *tables) error {
		for _, p := range db.profiles {
			if p.UserID == userID {
				p := p
				p.User = db.users[userID]
				out = &p
				return nil
			}
		}
		return services.ErrTeacherProfileNotFound
	})
	return out, err
}

func (r profileStore) List(ctx context.Context) ([]models.TeacherProfile, error) {
	var out []models.TeacherProfile
	err := r.s.read(ctx, func(db *tables) error {
		for _, p := range db.profiles {
			out = append(out, p)
		}
		return nil
	})
	return out, err
}

func (r profileStore) Search(ctx context.Context, filter services.TeacherFilter) ([]models.TeacherProfile, error) {
	var out []models.TeacherProfile
	err := r.s.read(ctx, func(db *tables) error {
		for _, p := range db.profiles {
			if filter.SubjectID != nil && !slices.Contains(db.teacherSubjects[p.UserID], *filter.SubjectID) {
				continue
			}
			if filter.MinPrice != nil && p.HourlyRate < *filter.MinPrice {
				continue
			}
			if filter.MaxPrice != nil && p.HourlyRate > *filter.MaxPrice {
				continue
			}
			if filter.MinExperience != nil && p.ExperienceYears < *filter.MinExperience {
				continue
			}
			if filter.MinRating != nil && p.Rating < *filter.MinRating {
				continue
			}
			p.User = db.users[p.UserID]
			out = append(out, p)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, err
}

func (r profileStore) Save(ctx context.Context, profile *models.TeacherProfile) error {
	return r.update(ctx, profile.ID, func(p *models.TeacherProfile) {
		p.Rating = profile.Rating
		p.ReviewsCount = profile.ReviewsCount
	})
}

func (r profileStore) UpdateDetails(ctx context.Context, profile *models.TeacherProfile) error {
	return r.update(ctx, profile.ID, func(p *models.TeacherProfile) {
		p.Education = profile.Education
		p.ExperienceYears = profile.ExperienceYears
		p.HourlyRate = profile.HourlyRate
	})
}

func (r profileStore) update(ctx context.Context, id uuid.UUID, apply func(*models.TeacherProfile)) error {
	return r.s.write(ctx, func(db *tables) error {
		p, ok := db.profiles[id]
		if !ok {
			return services.ErrTeacherProfileNotFound
		}
		apply(&p)
		p.UpdatedAt = time.Now().UTC()
		db.profiles[id] = p
		return nil
	})
}
