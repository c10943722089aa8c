package repository

import (
	"context"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type teacherProfileRepo struct {
	db *gorm.DB
}

func (r *teacherProfileRepo) Create(ctx context.Context, profile *models.TeacherProfile) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
	return conflictAs(err, &services.Error{Code: services.CodeConflict, Message: "teacher profile already exists"})
}

func (r *teacherProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.TeacherProfile, error) {
	var profile models.TeacherProfile
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, notFoundAs(err, services.ErrTeacherProfileNotFound)
	}
	return &profile, nil
}

func (r *teacherProfileRepo) List(ctx context.Context) ([]models.TeacherProfile, error) {
	var profiles []models.TeacherProfile
	err := r.db.WithContext(ctx).Order("created_at").Find(&profiles).Error
	return profiles, err
}

func (r *teacherProfileRepo) Search(ctx context.Context, filter services.TeacherFilter) ([]models.TeacherProfile, error) {
	query := r.db.WithContext(ctx).Model(&models.TeacherProfile{}).Preload("User")
	if filter.SubjectID != nil {
		query = query.Where("user_id IN (?)", r.db.Model(&models.TeacherSubject{}).
			Select("teacher_id").
			Where("subject_id = ?", *filter.SubjectID))
	}
	if filter.MinPrice != nil {
		query = query.Where("hourly_rate >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("hourly_rate <= ?", *filter.MaxPrice)
	}
	if filter.MinExperience != nil {
		query = query.Where("experience_years >= ?", *filter.MinExperience)
	}
	if filter.MinRating != nil {
		query = query.Where("rating >= ?", *filter.MinRating)
	}

	var profiles []models.TeacherProfile
	err := query.Order("rating DESC").Order("created_at").Find(&profiles).Error
	return profiles, err
}

// Save writes the derived rating columns.
func (r *teacherProfileRepo) Save(ctx context.Context, profile *models.TeacherProfile) error {
	return r.update(ctx, profile.ID, map[string]any{
		"rating":        profile.Rating,
		"reviews_count": profile.ReviewsCount,
	})
}

func (r *teacherProfileRepo) UpdateDetails(ctx context.Context, profile *models.TeacherProfile) error {
	return r.update(ctx, profile.ID, map[string]any{
		"education":        profile.Education,
		"experience_years": profile.ExperienceYears,
		"hourly_rate":      profile.HourlyRate,
	})
}

func (r *teacherProfileRepo) update(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.TeacherProfile{}).
		Where("id = ?", id).
		Updates(columns)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrTeacherProfileNotFound
	}
	return nil
}
