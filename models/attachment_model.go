package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Attachment keeps the file either inline (Base64Content) or in external
// storage (FileURL), never both.
type Attachment struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	LessonID      uuid.UUID `gorm:"type:uuid;not null;index" json:"lesson_id"`
	UploadedBy    uuid.UUID `gorm:"type:uuid;not null" json:"uploaded_by"`
	FileName      string    `gorm:"size:255;not null" json:"file_name"`
	FileType      string    `gorm:"size:100;not null" json:"file_type"`
	SizeKB        int64     `gorm:"not null" json:"size_kb"`
	Base64Content *string   `gorm:"type:text" json:"base64_content,omitempty"`
	FileURL       *string   `gorm:"type:text" json:"file_url,omitempty"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
