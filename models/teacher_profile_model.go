package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeacherProfile holds the teacher's public data. Rating and ReviewsCount are
// derived from the reviews table and only written by the rating recompute.
type TeacherProfile struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Education       string    `gorm:"size:512;not null" json:"education"`
	ExperienceYears int       `gorm:"not null;default:0;check:experience_years >= 0 AND experience_years <= 50" json:"experience_years"`
	HourlyRate      float64   `gorm:"type:numeric(10,2);not null;default:0.00" json:"hourly_rate"`
	Rating          float64   `gorm:"not null;default:0" json:"rating"`
	ReviewsCount    int       `gorm:"not null;default:0" json:"reviews_count"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`
	// SubjectIDs is loaded from teacher_subjects, not stored on the profile.
	SubjectIDs []uuid.UUID `gorm:"-" json:"subject_ids"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (p *TeacherProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
