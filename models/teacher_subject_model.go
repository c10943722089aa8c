package models

import "github.com/google/uuid"

// TeacherSubject marks a subject the teacher specializes in. TeacherID is the
// teacher's user id.
type TeacherSubject struct {
	TeacherID uuid.UUID `gorm:"type:uuid;primaryKey" json:"teacher_id"`
	SubjectID uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"subject_id"`
}
