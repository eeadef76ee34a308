package models

import (
	"time"

	"github.com/google/uuid"
)

type ExamType struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Subjects    []Subject `gorm:"foreignKey:ExamTypeID" json:"subjects,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
