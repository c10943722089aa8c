package jobs

import (
	"context"
	"time"

	"github.com/educat/tutor_marketplace/notifications"
	"go.uber.org/zap"
)

// The window is as wide as the default schedule interval so every lesson is
// reminded once.
const (
	reminderLead   = 60 * time.Minute
	reminderWindow = 5 * time.Minute
)

// SendLessonReminders emails both participants of every scheduled lesson
// starting in about an hour.
func (j *Jobs) SendLessonReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	from := j.clock.Now().Add(reminderLead)
	reminders, err := j.lessons.UpcomingReminders(ctx, from, from.Add(reminderWindow))
	if err != nil {
		j.log.Error("failed to load upcoming lessons", zap.Error(err))
		return
	}

	subject := notifications.LessonReminderSubject()
	for _, r := range reminders {
		j.log.Debug("sending lesson reminder", zap.String("lesson_id", r.Lesson.ID.String()))
		_ = j.mailer.SendEmail(ctx, r.Student.FullName, r.Student.Email, subject,
			notifications.LessonReminderBody(r.Student.FullName, r.Teacher.FullName, r.Lesson.StartTime, r.Lesson.ConferenceLink))
		_ = j.mailer.SendEmail(ctx, r.Teacher.FullName, r.Teacher.Email, subject,
			notifications.LessonReminderBody(r.Teacher.FullName, r.Student.FullName, r.Lesson.StartTime, r.Lesson.ConferenceLink))
	}
	if len(reminders) > 0 {
		j.log.Info("lesson reminders sent", zap.Int("lessons", len(reminders)))
	}
}
