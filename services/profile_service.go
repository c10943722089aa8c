package services

import (
	"context"
	"errors"
	"strings"

	"github.com/educat/tutor_marketplace/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const MaxExperienceYears = 50

type ProfileService struct {
	store Store
	log   *zap.Logger
}

func NewProfileService(store Store, log *zap.Logger) *ProfileService {
	return &ProfileService{store: store, log: log.Named("profiles")}
}

// Profile is a user's account together with the teacher profile, when the
// user teaches.
type Profile struct {
	User    *models.User           `json:"user"`
	Teacher *models.TeacherProfile `json:"teacher_profile,omitempty"`
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	user, err := s.store.Users().Get(ctx, userID)
	if err != nil {
		return nil, storageFailure(err)
	}
	out := &Profile{User: user}
	if user.Role != models.RoleTeacher {
		return out, nil
	}
	teacher, err := s.store.TeacherProfiles().GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, ErrTeacherProfileNotFound) {
		return nil, storageFailure(err)
	}
	if teacher != nil {
		if teacher.SubjectIDs, err = s.store.TeacherSubjects().ListSubjectIDs(ctx, userID); err != nil {
			return nil, storageFailure(err)
		}
	}
	out.Teacher = teacher
	return out, nil
}

// UpdateTeacherProfileInput leaves a field unchanged when it is nil.
type UpdateTeacherProfileInput struct {
	Education       *string
	ExperienceYears *int
	HourlyRate      *float64
	// SubjectIDs replaces the teacher's specializations; an empty slice clears them.
	SubjectIDs *[]uuid.UUID
}

// UpdateTeacherProfile edits the teacher's own details. Rating and review
// count are never touched here.
func (s *ProfileService) UpdateTeacherProfile(ctx context.Context, teacherID uuid.UUID, in UpdateTeacherProfileInput) (*models.TeacherProfile, error) {
	profile, err := s.store.TeacherProfiles().GetByUserID(ctx, teacherID)
	if err != nil {
		return nil, storageFailure(err)
	}

	if in.Education != nil {
		education := strings.TrimSpace(*in.Education)
		if education == "" {
			return nil, newError(CodeInvalidInput, "education is required")
		}
		profile.Education = education
	}
	if in.ExperienceYears != nil {
		if *in.ExperienceYears < 0 || *in.ExperienceYears > MaxExperienceYears {
			return nil, newError(CodeInvalidInput, "experience years must be between 0 and %d", MaxExperienceYears)
		}
		profile.ExperienceYears = *in.ExperienceYears
	}
	if in.HourlyRate != nil {
		if *in.HourlyRate < 0 {
			return nil, newError(CodeInvalidInput, "hourly rate cannot be negative")
		}
		profile.HourlyRate = *in.HourlyRate
	}

	err = s.store.Transaction(ctx, func(tx Store) error {
		if err := tx.TeacherProfiles().UpdateDetails(ctx, profile); err != nil {
			return err
		}
		if in.SubjectIDs == nil {
			return nil
		}
		if err := checkSubjects(ctx, tx, *in.SubjectIDs); err != nil {
			return err
		}
		return tx.TeacherSubjects().Replace(ctx, teacherID, *in.SubjectIDs)
	})
	if err != nil {
		return nil, storageFailure(err)
	}
	if profile.SubjectIDs, err = s.store.TeacherSubjects().ListSubjectIDs(ctx, teacherID); err != nil {
		return nil, storageFailure(err)
	}
	s.log.Info("teacher profile updated", zap.String("teacher_id", teacherID.String()))
	return profile, nil
}

func checkSubjects(ctx context.Context, store Store, ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return newError(CodeInvalidInput, "subject %s is listed twice", id)
		}
		seen[id] = true
		if _, err := store.Subjects().Get(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// SearchTeachers lists teacher profiles matching filter, best rated first.
func (s *ProfileService) SearchTeachers(ctx context.Context, filter TeacherFilter) ([]models.TeacherProfile, error) {
	if filter.MinPrice != nil && *filter.MinPrice < 0 || filter.MaxPrice != nil && *filter.MaxPrice < 0 {
		return nil, newError(CodeInvalidInput, "price cannot be negative")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		return nil, newError(CodeInvalidInput, "min price cannot exceed max price")
	}
	if filter.MinExperience != nil && *filter.MinExperience < 0 {
		return nil, newError(CodeInvalidInput, "experience cannot be negative")
	}
	if filter.MinRating != nil && (*filter.MinRating < 0 || *filter.MinRating > MaxRating) {
		return nil, newError(CodeInvalidInput, "min rating must be between 0 and %d", MaxRating)
	}

	profiles, err := s.store.TeacherProfiles().Search(ctx, filter)
	if err != nil {
		return nil, storageFailure(err)
	}
	for i := range profiles {
		ids, err := s.store.TeacherSubjects().ListSubjectIDs(ctx, profiles[i].UserID)
		if err != nil {
			return nil, storageFailure(err)
		}
		profiles[i].SubjectIDs = ids
	}
	return profiles, nil
}
