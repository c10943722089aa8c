package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/educat/tutor_marketplace/services"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = 2 * time.Minute

// Mailer sends one HTML email.
type Mailer interface {
	SendEmail(ctx context.Context, toName, toEmail, subject, htmlContent string) error
}

type Jobs struct {
	lessons *services.LessonService
	ratings *services.RatingService
	mailer  Mailer
	clock   services.Clock
	log     *zap.Logger
}

func New(lessons *services.LessonService, ratings *services.RatingService, mailer Mailer, clock services.Clock, log *zap.Logger) *Jobs {
	if clock == nil {
		clock = services.SystemClock{}
	}
	return &Jobs{lessons: lessons, ratings: ratings, mailer: mailer, clock: clock, log: log.Named("jobs")}
}

type Schedules struct {
	Sweep    string
	Ratings  string
	Reminder string
}

// NewScheduler registers every job on a cron scheduler that recovers from
// panics and logs through zap. The caller starts and stops it.
func NewScheduler(j *Jobs, s Schedules) (*cron.Cron, error) {
	logger := cronLogger{j.log.Sugar()}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
	)

	for _, entry := range []struct {
		name string
		spec string
		fn   func()
	}{
		{"lesson status sweep", s.Sweep, j.SweepLessonStatuses},
		{"rating recompute", s.Ratings, j.RecomputeRatings},
		{"lesson reminders", s.Reminder, j.SendLessonReminders},
	} {
		if entry.spec == "" {
			j.log.Info("job disabled", zap.String("job", entry.name))
			continue
		}
		if _, err := c.AddFunc(entry.spec, entry.fn); err != nil {
			return nil, fmt.Errorf("schedule %s %q: %w", entry.name, entry.spec, err)
		}
		j.log.Info("job scheduled", zap.String("job", entry.name), zap.String("spec", entry.spec))
	}
	return c, nil
}

type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Errorw(msg, append(keysAndValues, "error", err)...)
}
