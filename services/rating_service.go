package services

import (
	"context"

	"github.com/educat/tutor_marketplace/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RatingService keeps TeacherProfile.Rating and ReviewsCount equal to the
// mean and count of the teacher's reviews. Every recompute is a full rescan.
type RatingService struct {
	store Store
	cache StatisticsCache
	log   *zap.Logger
}

func NewRatingService(store Store, cache StatisticsCache, log *zap.Logger) *RatingService {
	return &RatingService{store: store, cache: cacheOrNop(cache), log: log.Named("ratings")}
}

func (s *RatingService) Recompute(ctx context.Context, teacherUserID uuid.UUID) (*models.TeacherProfile, error) {
	var profile *models.TeacherProfile
	err := s.store.Transaction(ctx, func(tx Store) error {
		var err error
		profile, err = tx.TeacherProfiles().GetByUserID(ctx, teacherUserID)
		if err != nil {
			return err
		}
		return s.recompute(ctx, tx, profile)
	})
	if err != nil {
		return nil, storageFailure(err)
	}
	s.invalidate(ctx, teacherUserID)
	return profile, nil
}

// RecomputeAll recomputes every teacher profile and returns how many were processed.
func (s *RatingService) RecomputeAll(ctx context.Context) (int, error) {
	profiles, err := s.store.TeacherProfiles().List(ctx)
	if err != nil {
		return 0, storageFailure(err)
	}

	processed := 0
	for i := range profiles {
		if err := ctx.Err(); err != nil {
			return processed, storageFailure(err)
		}
		if err := s.recompute(ctx, s.store, &profiles[i]); err != nil {
			s.log.Error("failed to recompute teacher rating",
				zap.String("teacher_id", profiles[i].UserID.String()), zap.Error(err))
			return processed, storageFailure(err)
		}
		s.invalidate(ctx, profiles[i].UserID)
		processed++
	}
	s.log.Info("teacher ratings recomputed", zap.Int("profiles", processed))
	return processed, nil
}

func (s *RatingService) recompute(ctx context.Context, store Store, profile *models.TeacherProfile) error {
	reviews, err := store.Reviews().ListByTeacher(ctx, profile.UserID)
	if err != nil {
		return err
	}

	rating, count := Aggregate(reviews)
	profile.Rating = rating
	profile.ReviewsCount = count
	if err := store.TeacherProfiles().Save(ctx, profile); err != nil {
		return err
	}

	s.log.Debug("teacher rating updated",
		zap.String("teacher_id", profile.UserID.String()),
		zap.Float64("rating", rating),
		zap.Int("reviews", count))
	return nil
}

func (s *RatingService) invalidate(ctx context.Context, teacherUserID uuid.UUID) {
	s.cache.Invalidate(ctx, teacherUserID)
}

// Aggregate returns the mean rating and the number of reviews; 0, 0 when empty.
func Aggregate(reviews []models.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews)), len(reviews)
}
