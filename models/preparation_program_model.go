package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreparationProgram is a dictionary entry such as an exam a student can
// prepare for.
type PreparationProgram struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:512;not null;unique" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
}

func (p *PreparationProgram) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
