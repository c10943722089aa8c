package services

import (
	"context"
	"math"

	"github.com/educat/tutor_marketplace/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatisticsCache stores computed teacher statistics. Implementations are
// best effort: failures are logged, not returned.
type StatisticsCache interface {
	Get(ctx context.Context, teacherID uuid.UUID) (*models.TeacherStatistics, bool)
	Set(ctx context.Context, stats *models.TeacherStatistics)
	Invalidate(ctx context.Context, teacherID uuid.UUID)
}

type nopCache struct{}

func (nopCache) Get(context.Context, uuid.UUID) (*models.TeacherStatistics, bool) { return nil, false }
func (nopCache) Set(context.Context, *models.TeacherStatistics)                  {}
func (nopCache) Invalidate(context.Context, uuid.UUID)                           {}

func cacheOrNop(c StatisticsCache) StatisticsCache {
	if c == nil {
		return nopCache{}
	}
	return c
}

type StatisticsService struct {
	store Store
	clock Clock
	cache StatisticsCache
	log   *zap.Logger
}

func NewStatisticsService(store Store, clock Clock, cache StatisticsCache, log *zap.Logger) *StatisticsService {
	if clock == nil {
		clock = SystemClock{}
	}
	return &StatisticsService{store: store, clock: clock, cache: cacheOrNop(cache), log: log.Named("statistics")}
}

func (s *StatisticsService) TeacherStatistics(ctx context.Context, teacherID uuid.UUID) (*models.TeacherStatistics, error) {
	if stats, ok := s.cache.Get(ctx, teacherID); ok {
		return stats, nil
	}

	profile, err := s.store.TeacherProfiles().GetByUserID(ctx, teacherID)
	if err != nil {
		return nil, storageFailure(err)
	}
	students, err := s.store.Relationships().CountByTeacher(ctx, teacherID, models.RequestAccepted)
	if err != nil {
		return nil, storageFailure(err)
	}
	lessons, err := s.store.Lessons().ListByTeacher(ctx, teacherID, TimeWindow{})
	if err != nil {
		return nil, storageFailure(err)
	}
	reviews, err := s.store.Reviews().ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, storageFailure(err)
	}

	now := s.clock.Now()
	stats := &models.TeacherStatistics{
		TeacherID:          teacherID,
		TotalStudents:      students,
		TotalLessons:       len(lessons),
		Rating:             profile.Rating,
		ReviewsCount:       profile.ReviewsCount,
		LessonsBySubject:   make(map[uuid.UUID]int),
		RatingDistribution: make(map[int]int, MaxRating),
	}
	for i := range lessons {
		status := EffectiveStatus(&lessons[i], now)
		if status == models.LessonCompleted {
			stats.CompletedLessons++
		}
		if status == models.LessonScheduled && lessons[i].StartTime.After(now) {
			stats.UpcomingLessons++
		}
		stats.LessonsBySubject[lessons[i].SubjectID]++
	}
	for r := MinRating; r <= MaxRating; r++ {
		stats.RatingDistribution[r] = 0
	}
	for _, review := range reviews {
		stats.RatingDistribution[review.Rating]++
	}

	s.cache.Set(ctx, stats)
	return stats, nil
}

// StudentStatistics summarizes the student's lessons. Hours count completed
// lessons only, rounded to the nearest hour.
func (s *StatisticsService) StudentStatistics(ctx context.Context, studentID uuid.UUID) (*models.StudentStatistics, error) {
	ok, err := s.store.Users().Exists(ctx, studentID, models.RoleStudent)
	if err != nil {
		return nil, storageFailure(err)
	}
	if !ok {
		return nil, ErrStudentNotFound
	}
	lessons, err := s.store.Lessons().ListByStudent(ctx, studentID, TimeWindow{})
	if err != nil {
		return nil, storageFailure(err)
	}
	connections, err := s.store.Relationships().ListByStudent(ctx, studentID, models.RequestAccepted)
	if err != nil {
		return nil, storageFailure(err)
	}

	now := s.clock.Now()
	stats := &models.StudentStatistics{
		StudentID:        studentID,
		TotalLessons:     len(lessons),
		LessonsBySubject: make(map[uuid.UUID]int),
	}
	teachers := make(map[uuid.UUID]bool, len(connections))
	for _, rel := range connections {
		teachers[rel.TeacherID] = true
	}
	stats.TeachersCount = len(teachers)

	var hours float64
	for i := range lessons {
		status := EffectiveStatus(&lessons[i], now)
		if status == models.LessonCompleted {
			stats.CompletedLessons++
			hours += lessons[i].EndTime.Sub(lessons[i].StartTime).Hours()
		}
		if status == models.LessonScheduled && lessons[i].StartTime.After(now) {
			stats.UpcomingLessons++
		}
		stats.LessonsBySubject[lessons[i].SubjectID]++
	}
	stats.TotalHours = int(math.Round(hours))
	return stats, nil
}
