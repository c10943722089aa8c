package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Subject struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:512;not null;unique" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
}

func (s *Subject) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
