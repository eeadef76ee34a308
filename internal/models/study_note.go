package models

import (
	"time"

	"github.com/google/uuid"
)

type StudyNote struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExamTypeID uuid.UUID `gorm:"type:uuid;not null;index" json:"exam_type_id"`
	SubjectID  uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject    Subject   `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"subject,omitempty"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedBy  uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
