package jobs

import (
	"context"

	"go.uber.org/zap"
)

// SweepLessonStatuses persists the time-derived status of every stale
// scheduled lesson.
func (j *Jobs) SweepLessonStatuses() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := j.lessons.SweepStatuses(ctx)
	if err != nil {
		j.log.Error("lesson status sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		j.log.Info("lesson status sweep finished", zap.Int("updated", n))
	}
}
