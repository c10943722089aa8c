package jobs

import (
	"context"

	"go.uber.org/zap"
)

// RecomputeRatings rebuilds every teacher rating from the reviews table.
func (j *Jobs) RecomputeRatings() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := j.ratings.RecomputeAll(ctx)
	if err != nil {
		j.log.Error("rating recompute failed", zap.Int("processed", n), zap.Error(err))
		return
	}
	j.log.Info("rating recompute finished", zap.Int("profiles", n))
}
