package services_test

import (
	"testing"
	"time"

	"github.com/educat/tutor_marketplace/models"
	"github.com/educat/tutor_marketplace/services"
	"github.com/stretchr/testify/assert"
)

func TestEffectiveStatus(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name   string
		stored models.LessonStatus
		now    time.Time
		want   models.LessonStatus
	}{
		{"before start", models.LessonScheduled, start.Add(-time.Minute), models.LessonScheduled},
		{"at start", models.LessonScheduled, start, models.LessonInProgress},
		{"inside window", models.LessonScheduled, start.Add(30 * time.Minute), models.LessonInProgress},
		{"at end", models.LessonScheduled, end, models.LessonScheduled},
		{"after end", models.LessonScheduled, end.Add(time.Second), models.LessonCompleted},
		{"in progress after end", models.LessonInProgress, end.Add(time.Hour), models.LessonCompleted},
		{"completed before start", models.LessonCompleted, start.Add(-time.Hour), models.LessonCompleted},
		{"cancelled inside window", models.LessonCancelled, start.Add(10 * time.Minute), models.LessonCancelled},
		{"cancelled after end", models.LessonCancelled, end.Add(24 * time.Hour), models.LessonCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lesson := &models.Lesson{StartTime: start, EndTime: end, Status: tt.stored}
			assert.Equal(t, tt.want, services.EffectiveStatus(lesson, tt.now))
		})
	}
}

func TestEffectiveStatusIsPure(t *testing.T) {
	lesson := &models.Lesson{
		StartTime: epoch.Add(-2 * time.Hour),
		EndTime:   epoch.Add(-time.Hour),
		Status:    models.LessonScheduled,
	}
	assert.Equal(t, models.LessonCompleted, services.EffectiveStatus(lesson, epoch))
	assert.Equal(t, models.LessonScheduled, lesson.Status)
}
