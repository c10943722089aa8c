package services

import (
	"time"

	"github.com/educat/tutor_marketplace/models"
)

// EffectiveStatus is the status a lesson has at instant now. Completed and
// cancelled are terminal; otherwise the status follows the lesson window.
func EffectiveStatus(lesson *models.Lesson, now time.Time) models.LessonStatus {
	if lesson.Status.IsTerminal() {
		return lesson.Status
	}
	switch {
	case lesson.EndTime.Before(now):
		return models.LessonCompleted
	case !lesson.StartTime.After(now) && now.Before(lesson.EndTime):
		return models.LessonInProgress
	default:
		return models.LessonScheduled
	}
}
