package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LessonID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_lesson_student" json:"lesson_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_lesson_student" json:"student_id"`
	TeacherID uuid.UUID `gorm:"type:uuid;not null;index" json:"teacher_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"size:2000;not null" json:"comment"`

	Student User `gorm:"foreignkey:StudentID" json:"-"`
	Teacher User `gorm:"foreignkey:TeacherID" json:"-"`

	CreatedAt time.Time `gorm:"<-:create" json:"created_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
