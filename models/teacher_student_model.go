package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// TeacherStudent is a connection request from a student to a teacher. Lessons
// can only be scheduled once the request has been accepted.
type TeacherStudent struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"teacher_id"`
	StudentID   uuid.UUID     `gorm:"type:uuid;not null;index" json:"student_id"`
	Status      RequestStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	RequestedAt time.Time     `gorm:"not null" json:"requested_at"`
	AcceptedAt  *time.Time    `json:"accepted_at,omitempty"`

	Teacher User `gorm:"foreignkey:TeacherID" json:"-"`
	Student User `gorm:"foreignkey:StudentID" json:"student,omitempty"`
}

func (ts *TeacherStudent) BeforeCreate(tx *gorm.DB) error {
	if ts.ID == uuid.Nil {
		ts.ID = uuid.New()
	}
	return nil
}
