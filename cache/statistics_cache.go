package cache

import (
	"context"
	"errors"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatisticsCache implements services.StatisticsCache. Redis errors are
// logged and treated as a miss.
type StatisticsCache struct {
	cache *Cache
	ttl   time.Duration
	log   *zap.Logger
}

var _ services.StatisticsCache = (*StatisticsCache)(nil)

func NewStatisticsCache(cache *Cache, ttl time.Duration, log *zap.Logger) *StatisticsCache {
	if ttl <= 0 {
		ttl = TTLTeacherStatistics
	}
	return &StatisticsCache{cache: cache, ttl: ttl, log: log.Named("statistics_cache")}
}

func statisticsKey(teacherID uuid.UUID) string {
	return PrefixTeacherStatistics + teacherID.String()
}

func (s *StatisticsCache) Get(ctx context.Context, teacherID uuid.UUID) (*models.TeacherStatistics, bool) {
	var stats models.TeacherStatistics
	if err := s.cache.Get(ctx, statisticsKey(teacherID), &stats); err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn("failed to read teacher statistics", zap.String("teacher_id", teacherID.String()), zap.Error(err))
		}
		return nil, false
	}
	return &stats, true
}

func (s *StatisticsCache) Set(ctx context.Context, stats *models.TeacherStatistics) {
	if err := s.cache.Set(ctx, statisticsKey(stats.TeacherID), stats, s.ttl); err != nil {
		s.log.Warn("failed to cache teacher statistics", zap.String("teacher_id", stats.TeacherID.String()), zap.Error(err))
	}
}

func (s *StatisticsCache) Invalidate(ctx context.Context, teacherID uuid.UUID) {
	if err := s.cache.Delete(ctx, statisticsKey(teacherID)); err != nil {
		s.log.Warn("failed to invalidate teacher statistics", zap.String("teacher_id", teacherID.String()), zap.Error(err))
	}
}
