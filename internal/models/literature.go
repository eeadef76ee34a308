package models

import (
	"time"

	"github.com/google/uuid"
)

type Literature struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExamTypeID uuid.UUID `gorm:"type:uuid;not null;index" json:"exam_type_id"`
	ExamType   ExamType  `gorm:"foreignKey:ExamTypeID;constraint:OnDelete:CASCADE" json:"-"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Author     string    `gorm:"size:255" json:"author"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedBy  uuid.UUID `gorm:"type:uuid" json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
}
