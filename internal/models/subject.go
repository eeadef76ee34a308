package models

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExamTypeID uuid.UUID `gorm:"type:uuid;not null;index" json:"exam_type_id"`
	ExamType   ExamType  `gorm:"foreignKey:ExamTypeID;constraint:OnDelete:CASCADE" json:"-"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	CreatedAt  time.Time `json:"created_at"`
}
