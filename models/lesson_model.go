package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LessonStatus string

const (
	LessonScheduled  LessonStatus = "scheduled"
	LessonInProgress LessonStatus = "in_progress"
	LessonCompleted  LessonStatus = "completed"
	LessonCancelled  LessonStatus = "cancelled"
)

// IsTerminal reports whether the status can no longer change with time.
func (s LessonStatus) IsTerminal() bool {
	return s == LessonCompleted || s == LessonCancelled
}

type Lesson struct {
	ID             uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherID      uuid.UUID    `gorm:"type:uuid;not null;index" json:"teacher_id"`
	StudentID      *uuid.UUID   `gorm:"type:uuid;index" json:"student_id"`
	SubjectID      uuid.UUID    `gorm:"type:uuid;not null" json:"subject_id"`
	StartTime      time.Time    `gorm:"not null;index" json:"start_time"`
	EndTime        time.Time    `gorm:"not null" json:"end_time"`
	Status         LessonStatus `gorm:"size:20;not null;default:'scheduled';index" json:"status"`
	ConferenceLink *string      `gorm:"size:512" json:"conference_link,omitempty"`
	WhiteboardLink *string      `gorm:"size:512" json:"whiteboard_link,omitempty"`

	Attachments []Attachment `gorm:"foreignkey:LessonID" json:"attachments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// HasParticipant reports whether userID is the lesson's teacher or student.
func (l *Lesson) HasParticipant(userID uuid.UUID) bool {
	if l.TeacherID == userID {
		return true
	}
	return l.StudentID != nil && *l.StudentID == userID
}
